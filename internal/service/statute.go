package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"statutes/internal/model"
	"statutes/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("statute not found")
)

// Notice explains why a browse page carries no rows.
type Notice int

const (
	NoticeNone Notice = iota
	NoticeNoCatalog
	NoticeEmptySelection
	NoticeNoResults
)

// Message is the user-facing text of the notice.
func (n Notice) Message() string {
	switch n {
	case NoticeNoCatalog:
		return "No jurisdictions found in the database."
	case NoticeEmptySelection:
		return "Please select at least one jurisdiction."
	case NoticeNoResults:
		return "No law texts found for the selected jurisdictions."
	}
	return ""
}

// Code is the machine-readable form of the notice.
func (n Notice) Code() string {
	switch n {
	case NoticeNoCatalog:
		return "no_catalog"
	case NoticeEmptySelection:
		return "empty_selection"
	case NoticeNoResults:
		return "no_results"
	}
	return ""
}

// Summary is one result card.
type Summary struct {
	model.Statute
	Preview string
}

// BrowsePage is the outcome of one browse render.
type BrowsePage struct {
	// State is the request state after selection resolution and clamping.
	State    BrowseState
	Catalog  []model.Jurisdiction
	Selected []model.Jurisdiction
	Notice   Notice

	Total     int
	PageCount int
	PageSize  int
	// FirstRow and LastRow are 1-based and inclusive.
	FirstRow int
	LastRow  int
	Items    []Summary
}

// Subtitle describes the selection in the page header.
func (p *BrowsePage) Subtitle() string {
	n := len(p.Selected)
	switch {
	case n == 0:
		return ""
	case n == len(p.Catalog):
		return "All Jurisdictions"
	case n == 1:
		return p.Selected[0].Label
	case n <= 3:
		labels := make([]string, n)
		for i, j := range p.Selected {
			labels[i] = j.Label
		}
		return strings.Join(labels, ", ")
	}
	return strconv.Itoa(n) + " Jurisdictions Selected"
}

// HasPrev reports whether Prev and First lead anywhere.
func (p *BrowsePage) HasPrev() bool { return p.State.Page > 0 }

// HasNext reports whether Next and Last lead anywhere.
func (p *BrowsePage) HasNext() bool { return p.State.Page < p.PageCount-1 }

// StatuteService defines the read use cases of the statute browser.
type StatuteService interface {
	// Jurisdictions returns the catalog, sorted by code.
	Jurisdictions(ctx context.Context) ([]model.Jurisdiction, error)

	// Browse resolves the selection, counts and fetches the requested page.
	// Empty catalog, empty selection and zero matches are reported through
	// BrowsePage.Notice, not as errors.
	Browse(ctx context.Context, state BrowseState) (*BrowsePage, error)

	// Get returns one statute by identifier.
	Get(ctx context.Context, id string) (*model.Statute, error)
}

// Options tunes a StatuteService.
type Options struct {
	RecordType string
	// SingleSelection keeps only the first chosen jurisdiction.
	SingleSelection bool
	EscapeWildcards bool
}

type statuteService struct {
	repo repository.StatuteRepository
	opts Options
}

// NewStatuteService constructs a new StatuteService.
func NewStatuteService(repo repository.StatuteRepository, opts Options) StatuteService {
	return &statuteService{repo: repo, opts: opts}
}

func (s *statuteService) Jurisdictions(ctx context.Context) ([]model.Jurisdiction, error) {
	codes, err := s.repo.Jurisdictions(ctx, s.opts.RecordType)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	out := make([]model.Jurisdiction, 0, len(codes))
	for _, c := range codes {
		out = append(out, model.NewJurisdiction(c))
	}
	return out, nil
}

func (s *statuteService) Browse(ctx context.Context, state BrowseState) (*BrowsePage, error) {
	page := &BrowsePage{PageSize: repository.PageSize, PageCount: 1}

	catalog, err := s.Jurisdictions(ctx)
	if err != nil {
		return nil, err
	}
	page.Catalog = catalog
	if len(catalog) == 0 {
		page.State = state.Clamp(1)
		page.Notice = NoticeNoCatalog
		return page, nil
	}

	state = s.resolveSelection(state, catalog)
	for _, code := range s.selectedCodes(state, catalog) {
		page.Selected = append(page.Selected, model.NewJurisdiction(code))
	}
	if len(page.Selected) == 0 {
		page.State = state.Clamp(1)
		page.Notice = NoticeEmptySelection
		return page, nil
	}

	codes := make([]string, len(page.Selected))
	for i, j := range page.Selected {
		codes[i] = j.Code
	}
	f, err := repository.NewStatuteFilter(s.opts.RecordType, codes, state.Search, s.opts.EscapeWildcards)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count statutes: %w", err)
	}
	page.Total = total
	if total == 0 {
		page.State = state.Clamp(1)
		page.Notice = NoticeNoResults
		return page, nil
	}

	page.PageCount = PageCount(total)
	state = state.Clamp(page.PageCount)
	page.State = state

	offset := state.Offset()
	rows, err := s.repo.Fetch(ctx, f, repository.PageQuery{Limit: repository.PageSize, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("fetch statutes: %w", err)
	}

	page.FirstRow = offset + 1
	page.LastRow = min(offset+repository.PageSize, total)
	page.Items = make([]Summary, 0, len(rows))
	for _, st := range model.ProjectAll(rows) {
		page.Items = append(page.Items, Summary{Statute: st, Preview: st.Preview()})
	}
	return page, nil
}

// resolveSelection applies the default choice for a fresh visit and the
// single-selection rule.
func (s *statuteService) resolveSelection(state BrowseState, catalog []model.Jurisdiction) BrowseState {
	if !state.SelectAll && !state.Explicit && len(state.Jurisdictions) == 0 {
		state.Jurisdictions = []string{catalog[0].Code}
	}
	if s.opts.SingleSelection {
		if state.SelectAll && len(state.Jurisdictions) == 0 {
			state.Jurisdictions = []string{catalog[0].Code}
		}
		state.SelectAll = false
		if len(state.Jurisdictions) > 1 {
			state.Jurisdictions = state.Jurisdictions[:1]
		}
	}
	return state
}

// selectedCodes returns the chosen codes that exist in the catalog, in
// catalog order.
func (s *statuteService) selectedCodes(state BrowseState, catalog []model.Jurisdiction) []string {
	var out []string
	for _, j := range catalog {
		if state.SelectAll || state.IsSelected(j.Code) {
			out = append(out, j.Code)
		}
	}
	return out
}

func (s *statuteService) Get(ctx context.Context, id string) (*model.Statute, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}
	raw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st := model.Project(*raw)
	return &st, nil
}
