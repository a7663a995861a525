package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"statutes/internal/model"
	"statutes/internal/repository"
)

type MockStatuteRepository struct {
	mock.Mock
}

func (m *MockStatuteRepository) Jurisdictions(ctx context.Context, recordType string) ([]string, error) {
	args := m.Called(ctx, recordType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatuteRepository) Count(ctx context.Context, f repository.StatuteFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *MockStatuteRepository) Fetch(ctx context.Context, f repository.StatuteFilter, pq repository.PageQuery) ([]model.RawStatute, error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawStatute), args.Error(1)
}

func (m *MockStatuteRepository) FindByID(ctx context.Context, id string) (*model.RawStatute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawStatute), args.Error(1)
}

func (m *MockStatuteRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
