package postgres

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"statutes/internal/repository"
)

// quoteIdent quotes a possibly schema-qualified identifier such as
// "public.state_statutes".
func quoteIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// whereClause renders the filter as a WHERE clause with positional
// parameters starting at $1.
func whereClause(f repository.StatuteFilter, jurisdictionCol string) (string, []any) {
	args := make([]any, 0, len(f.Jurisdictions)+2)
	var b strings.Builder

	args = append(args, f.RecordType)
	b.WriteString(`WHERE "type" = $1 AND `)
	b.WriteString(jurisdictionCol)
	b.WriteString(" IN (")
	for i, j := range f.Jurisdictions {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, j)
		b.WriteString("$" + strconv.Itoa(len(args)))
	}
	b.WriteString(")")

	if f.HasSearch() {
		args = append(args, f.Pattern())
		b.WriteString(" AND properties->>'law_text' ILIKE $" + strconv.Itoa(len(args)))
	}
	return b.String(), args
}
