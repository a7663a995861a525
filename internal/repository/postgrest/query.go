package postgrest

import (
	"net/url"
	"regexp"
	"strings"

	"statutes/internal/repository"
)

// Column aliases used in select lists so rows decode into model.RawStatute
// whatever the jurisdiction column is called.
const (
	statuteSelect = "id,jurisdiction:%s,properties"
	lawTextColumn = "properties->>law_text"
)

// filterParams renders the filter in PostgREST's horizontal filter grammar.
func filterParams(f repository.StatuteFilter, jurisdictionField string) url.Values {
	v := url.Values{}
	v.Set("type", "eq."+f.RecordType)
	v.Set(jurisdictionField, "in.("+quoteList(f.Jurisdictions)+")")
	if f.HasSearch() {
		v.Set(lawTextColumn, searchOperator(f))
	}
	return v
}

// searchOperator picks the case-insensitive substring operator. PostgREST
// rewrites every * in a like pattern to %, so a literal * cannot be
// expressed with ilike; such terms go through imatch with the term quoted
// as a regular expression instead.
func searchOperator(f repository.StatuteFilter) string {
	if f.EscapeWildcards && strings.Contains(f.Search, "*") {
		return "imatch." + regexp.QuoteMeta(f.Search)
	}
	return "ilike." + f.Pattern()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteList double-quotes every value so commas, dots and parentheses
// inside codes are not read as list syntax.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = `"` + quoteEscaper.Replace(s) + `"`
	}
	return strings.Join(quoted, ",")
}
