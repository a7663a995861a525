package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"statutes/internal/model"
	"statutes/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const appTitle = "Statutes Browser"

// pages holds one template set per page, each combining the shared layout
// with that page's "content" block.
var pages = mustParsePages("browse", "detail", "error", "setup")

var funcs = template.FuncMap{
	"number":  formatNumber,
	"lawText": lawText,
}

func mustParsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.New(name).Funcs(funcs)
		out[name] = template.Must(t.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

// render executes a page into the response with the given status.
func render(c *fiber.Ctx, status int, page string, data any) error {
	t, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// formatNumber groups digits with thousands separators.
func formatNumber(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// lawText escapes text and turns newlines into line breaks.
func lawText(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

type layoutData struct {
	Title     string
	RequestID string
}

type catalogOption struct {
	model.Jurisdiction
	Selected bool
}

type navLink struct {
	Label    string
	Href     string
	Disabled bool
}

type card struct {
	service.Summary
	Href string
}

type browseData struct {
	layoutData
	State           service.BrowseState
	SingleSelection bool
	Catalog         []catalogOption
	Subtitle        string
	Notice          string
	SelectedCount   int
	Total           int
	PageCount       int
	PageSize        int
	PageNumber      int
	FirstRow        int
	LastRow         int
	Nav             []navLink
	Cards           []card
}

var navLabels = []struct {
	nav   service.Nav
	label string
}{
	{service.NavFirst, "« First"},
	{service.NavPrev, "‹ Prev"},
	{service.NavNext, "Next ›"},
	{service.NavLast, "Last »"},
}

func newBrowseData(rid string, page *service.BrowsePage, single bool) browseData {
	st := page.State
	d := browseData{
		layoutData:      layoutData{Title: appTitle, RequestID: rid},
		State:           st,
		SingleSelection: single,
		Subtitle:        page.Subtitle(),
		Notice:          page.Notice.Message(),
		SelectedCount:   len(page.Selected),
		Total:           page.Total,
		PageCount:       page.PageCount,
		PageSize:        page.PageSize,
		PageNumber:      st.Page + 1,
		FirstRow:        page.FirstRow,
		LastRow:         page.LastRow,
	}

	selected := make(map[string]bool, len(page.Selected))
	for _, j := range page.Selected {
		selected[j.Code] = true
	}
	for _, j := range page.Catalog {
		d.Catalog = append(d.Catalog, catalogOption{Jurisdiction: j, Selected: selected[j.Code]})
	}

	for _, n := range navLabels {
		target := st.Navigate(n.nav, page.PageCount)
		d.Nav = append(d.Nav, navLink{
			Label:    n.label,
			Href:     browseHref(target),
			Disabled: target.Page == st.Page,
		})
	}

	for _, it := range page.Items {
		d.Cards = append(d.Cards, card{Summary: it, Href: detailHref(st, it.ID)})
	}
	return d
}

type detailData struct {
	layoutData
	Statute           *model.Statute
	JurisdictionLabel string
	BackHref          string
}

type errorData struct {
	layoutData
	Heading   string
	Message   string
	NotFound  bool
	RetryHref string
	BackHref  string
}

type setupData struct {
	layoutData
	Problem     string
	Remediation string
}

// browseValues writes the browse state into query parameters. The page is
// 1-based in URLs and omitted on the first page. Links mark a user-made
// selection with s=1; f=1 belongs to the filter form only, since it resets
// the page.
func browseValues(s service.BrowseState) url.Values {
	v := url.Values{}
	if s.Explicit {
		v.Set("s", "1")
	}
	if s.SelectAll {
		v.Set("all", "true")
	}
	for _, j := range s.Jurisdictions {
		v.Add("j", j)
	}
	if s.Search != "" {
		v.Set("q", s.Search)
	}
	if s.Page > 0 {
		v.Set("page", strconv.Itoa(s.Page+1))
	}
	return v
}

func browseHref(s service.BrowseState) string {
	v := browseValues(s)
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func detailHref(s service.BrowseState, id string) string {
	v := browseValues(s)
	v.Set("id", id)
	return "/?" + v.Encode()
}
