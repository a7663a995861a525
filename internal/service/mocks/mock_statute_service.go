package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"statutes/internal/model"
	"statutes/internal/service"
)

type MockStatuteService struct {
	mock.Mock
}

func (m *MockStatuteService) Jurisdictions(ctx context.Context) ([]model.Jurisdiction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Jurisdiction), args.Error(1)
}

func (m *MockStatuteService) Browse(ctx context.Context, state service.BrowseState) (*service.BrowsePage, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BrowsePage), args.Error(1)
}

func (m *MockStatuteService) Get(ctx context.Context, id string) (*model.Statute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Statute), args.Error(1)
}
