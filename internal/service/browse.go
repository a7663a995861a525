package service

import (
	"slices"
	"strings"

	"statutes/internal/repository"
)

// Nav is a pagination control.
type Nav int

const (
	NavFirst Nav = iota
	NavPrev
	NavNext
	NavLast
)

func (n Nav) String() string {
	switch n {
	case NavFirst:
		return "first"
	case NavPrev:
		return "prev"
	case NavNext:
		return "next"
	case NavLast:
		return "last"
	}
	return "unknown"
}

// BrowseState is everything one browse render depends on. It is parsed from
// the request and written back into links; nothing is kept between requests.
type BrowseState struct {
	Page          int
	SelectAll     bool
	Jurisdictions []string
	Search        string
	// Explicit is set once the user has submitted a selection, so an empty
	// selection is not replaced by the default one.
	Explicit bool
}

// PageCount returns max(1, ceil(total/PageSize)).
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + repository.PageSize - 1) / repository.PageSize
}

// Offset returns the index of the first row of the current page.
func (s BrowseState) Offset() int {
	return s.Page * repository.PageSize
}

// Navigate applies a pagination control. The result is always inside
// [0, pageCount-1].
func (s BrowseState) Navigate(nav Nav, pageCount int) BrowseState {
	last := max(pageCount, 1) - 1
	switch nav {
	case NavFirst:
		s.Page = 0
	case NavPrev:
		s.Page = max(s.Page-1, 0)
	case NavNext:
		s.Page = min(s.Page+1, last)
	case NavLast:
		s.Page = last
	}
	return s.Clamp(pageCount)
}

// Clamp forces the page into [0, pageCount-1].
func (s BrowseState) Clamp(pageCount int) BrowseState {
	last := max(pageCount, 1) - 1
	s.Page = min(max(s.Page, 0), last)
	return s
}

// WithSelection replaces the jurisdiction selection and returns to page 0.
func (s BrowseState) WithSelection(all bool, jurisdictions []string) BrowseState {
	s.SelectAll = all
	s.Jurisdictions = append([]string(nil), jurisdictions...)
	s.Explicit = true
	s.Page = 0
	return s
}

// WithSearch replaces the search term and returns to page 0.
func (s BrowseState) WithSearch(term string) BrowseState {
	s.Search = strings.TrimSpace(term)
	s.Page = 0
	return s
}

// IsSelected reports whether code is part of the user's choice.
func (s BrowseState) IsSelected(code string) bool {
	return slices.Contains(s.Jurisdictions, code)
}
