package repository

import (
	"slices"
	"strconv"
	"strings"
)

// StatuteFilter is the backend-neutral form of a browse query: equality on
// the record type, membership on jurisdiction and an optional
// case-insensitive substring match on the law text.
type StatuteFilter struct {
	RecordType    string
	Jurisdictions []string
	Search        string
	// EscapeWildcards makes % and _ in Search match literally.
	EscapeWildcards bool
}

// NewStatuteFilter validates and normalizes a filter. Jurisdictions are
// deduplicated and sorted so equal selections produce equal filters.
func NewStatuteFilter(recordType string, jurisdictions []string, search string, escapeWildcards bool) (StatuteFilter, error) {
	js := make([]string, 0, len(jurisdictions))
	for _, j := range jurisdictions {
		if j = strings.TrimSpace(j); j != "" {
			js = append(js, j)
		}
	}
	if len(js) == 0 {
		return StatuteFilter{}, ErrEmptySelection
	}
	slices.Sort(js)
	js = slices.Compact(js)

	return StatuteFilter{
		RecordType:      recordType,
		Jurisdictions:   js,
		Search:          search,
		EscapeWildcards: escapeWildcards,
	}, nil
}

// HasSearch reports whether the law text must be matched.
func (f StatuteFilter) HasSearch() bool {
	return f.Search != ""
}

// Pattern returns the ILIKE pattern for the search term.
func (f StatuteFilter) Pattern() string {
	return LikePattern(f.Search, f.EscapeWildcards)
}

// Key identifies the filter for memoization. Every free-form value is
// quoted so separators inside codes or terms cannot collide.
func (f StatuteFilter) Key() string {
	var b strings.Builder
	b.WriteString("type=")
	b.WriteString(strconv.Quote(f.RecordType))
	b.WriteString(";j=")
	for i, j := range f.Jurisdictions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(j))
	}
	b.WriteString(";esc=")
	b.WriteString(strconv.FormatBool(f.EscapeWildcards))
	b.WriteString(";q=")
	b.WriteString(strconv.Quote(f.Search))
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps term as %term%. With escape set, LIKE metacharacters in
// term are backslash-escaped; otherwise they keep their wildcard meaning.
func LikePattern(term string, escape bool) string {
	if escape {
		term = likeEscaper.Replace(term)
	}
	return "%" + term + "%"
}
