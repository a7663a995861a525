package handler

import (
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"statutes/internal/config"
	"statutes/internal/http/middleware"
	"statutes/internal/model"
	"statutes/internal/repository"
	repoMocks "statutes/internal/repository/mocks"
	"statutes/internal/service"
	serviceMocks "statutes/internal/service/mocks"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHealthCheck(t *testing.T) {
	store := new(repoMocks.MockStatuteRepository)

	app := fiber.New()
	app.Get("/health", HealthCheck(store))

	t.Run("healthy", func(t *testing.T) {
		store.On("Ping", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		store.On("Ping", mock.Anything).Return(errors.New("store error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("no store", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	store.AssertExpectations(t)
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func samplePage() *service.BrowsePage {
	return &service.BrowsePage{
		State:     service.BrowseState{Jurisdictions: []string{"ohio"}, Explicit: true},
		Catalog:   []model.Jurisdiction{model.NewJurisdiction("new_york"), model.NewJurisdiction("ohio")},
		Selected:  []model.Jurisdiction{model.NewJurisdiction("ohio")},
		Total:     1234,
		PageCount: 13,
		PageSize:  100,
		FirstRow:  1,
		LastRow:   100,
		Items: []service.Summary{
			{Statute: model.Statute{ID: "42", Jurisdiction: "ohio", Title: "Sec. 5747.02 Tax rates", Citation: "ORC 5747.02"}, Preview: "Income tax..."},
			{Statute: model.Statute{ID: "43", Jurisdiction: "ohio"}, Preview: "Zoning only"},
		},
	}
}

func TestViewRouter_Browse(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatuteService)
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", ViewRouter(mockSvc, ViewOptions{}))

	t.Run("renders page", func(t *testing.T) {
		mockSvc.On("Browse", mock.Anything, service.BrowseState{}).Return(samplePage(), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

		body := readBody(t, resp)
		assert.Contains(t, body, "<p>Ohio</p>")
		assert.Contains(t, body, "Page <strong>1</strong> of <strong>13</strong>")
		assert.Contains(t, body, "Showing results 1 - 100 of 1,234")
		assert.NotContains(t, body, "matching")
		assert.Contains(t, body, "Sec. 5747.02 Tax rates")
		assert.Contains(t, body, `<span class="citation">ORC 5747.02</span>`)
		assert.Contains(t, body, "Untitled Section")
		assert.Equal(t, 1, strings.Count(body, `class="citation"`), "citation omitted for the untitled record")
		assert.Contains(t, body, `<span class="disabled">« First</span>`)
		assert.Contains(t, body, `<span class="disabled">‹ Prev</span>`)
		assert.Contains(t, body, "page=2")
		assert.Contains(t, body, "page=13")
		assert.Contains(t, body, "id=42")
		assert.Contains(t, body, `value="ohio" checked`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("parses state from query", func(t *testing.T) {
		want := service.BrowseState{Page: 2, Jurisdictions: []string{"ohio", "texas"}, Search: "tax", Explicit: true}
		page := samplePage()
		page.State = want
		mockSvc.On("Browse", mock.Anything, want).Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/?j=ohio&j=texas&q=+tax+&page=3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `matching "<strong>tax</strong>"`)
		assert.Contains(t, body, "Page <strong>3</strong> of <strong>13</strong>")
		mockSvc.AssertExpectations(t)
	})

	t.Run("form submission resets page", func(t *testing.T) {
		want := service.BrowseState{SelectAll: true, Search: "zoning", Explicit: true}
		mockSvc.On("Browse", mock.Anything, want).Return(samplePage(), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/?f=1&all=true&q=zoning&page=7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("notice", func(t *testing.T) {
		page := &service.BrowsePage{
			State:     service.BrowseState{Explicit: true},
			Catalog:   []model.Jurisdiction{model.NewJurisdiction("ohio")},
			Notice:    service.NoticeEmptySelection,
			PageCount: 1,
			PageSize:  100,
		}
		mockSvc.On("Browse", mock.Anything, service.BrowseState{Explicit: true}).Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/?f=1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Please select at least one jurisdiction.")
		assert.NotContains(t, body, "Showing results")
		mockSvc.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("Browse", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout")).Once()

		req := httptest.NewRequest(http.MethodGet, "/?j=ohio", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Store Unavailable")
		assert.Contains(t, body, "Request ID: rid-1")
		assert.NotContains(t, body, "dial tcp")
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?page=-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "invalid query parameter page")
	})
}

var (
	nextLinkRe = regexp.MustCompile(`<a href="([^"]*)">Next ›</a>`)
	cardLinkRe = regexp.MustCompile(`class="view-btn" href="([^"]*)"`)
	backLinkRe = regexp.MustCompile(`class="back-btn" href="([^"]*)"`)
)

// follow requests target and returns the body.
func follow(t *testing.T, app *fiber.App, target string) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, target)
	return readBody(t, resp)
}

func href(t *testing.T, re *regexp.Regexp, body string) string {
	t.Helper()
	m := re.FindStringSubmatch(body)
	require.NotNil(t, m, "link %s not rendered", re)
	return html.UnescapeString(m[1])
}

func TestViewRouter_LinksKeepBrowseState(t *testing.T) {
	const total = 250
	store := new(repoMocks.MockStatuteRepository)
	store.On("Jurisdictions", mock.Anything, "law_text").Return([]string{"california", "texas"}, nil)
	store.On("Count", mock.Anything, mock.Anything).Return(total, nil)
	for offset := 0; offset < total; offset += 100 {
		var rows []model.RawStatute
		for i := offset; i < min(offset+100, total); i++ {
			rows = append(rows, model.RawStatute{
				ID:           model.ID(strconv.Itoa(i + 1)),
				Jurisdiction: "california",
				Properties:   map[string]any{"title": "Section " + strconv.Itoa(i+1)},
			})
		}
		store.On("Fetch", mock.Anything, mock.Anything, repository.PageQuery{Limit: 100, Offset: offset}).Return(rows, nil)
	}
	store.On("FindByID", mock.Anything, "101").Return(&model.RawStatute{
		ID: "101", Jurisdiction: "california", Properties: map[string]any{"title": "Section 101"},
	}, nil)

	svc := service.NewStatuteService(store, service.Options{RecordType: "law_text"})
	app := fiber.New()
	app.Get("/", ViewRouter(svc, ViewOptions{}))

	first := follow(t, app, "/?f=1&j=california")
	assert.Contains(t, first, "Page <strong>1</strong> of <strong>3</strong>")

	second := follow(t, app, href(t, nextLinkRe, first))
	assert.Contains(t, second, "Page <strong>2</strong> of <strong>3</strong>")
	assert.Contains(t, second, "Showing results 101 - 200 of 250")

	third := follow(t, app, href(t, nextLinkRe, second))
	assert.Contains(t, third, "Page <strong>3</strong> of <strong>3</strong>")
	assert.Contains(t, third, "Showing results 201 - 250 of 250")
	assert.Contains(t, third, `<span class="disabled">Next ›</span>`)

	detail := follow(t, app, href(t, cardLinkRe, second))
	assert.Contains(t, detail, "<h1>Section 101</h1>")

	back := follow(t, app, href(t, backLinkRe, detail))
	assert.Contains(t, back, "Page <strong>2</strong> of <strong>3</strong>")
	assert.Contains(t, back, `value="california" checked`)
	assert.NotContains(t, back, `value="texas" checked`)

	resubmitted := follow(t, app, "/?f=1&j=california&page=2")
	assert.Contains(t, resubmitted, "Page <strong>1</strong> of <strong>3</strong>")
}

func TestViewRouter_SingleSelection(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatuteService)
	app := fiber.New()
	app.Get("/", ViewRouter(mockSvc, ViewOptions{SingleSelection: true}))

	mockSvc.On("Browse", mock.Anything, service.BrowseState{}).Return(samplePage(), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `<select id="j" name="j">`)
	assert.Contains(t, body, `<option value="ohio" selected>Ohio</option>`)
	assert.NotContains(t, body, "Select All Jurisdictions")
	mockSvc.AssertExpectations(t)
}

func TestViewRouter_Detail(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatuteService)
	app := fiber.New()
	app.Get("/", ViewRouter(mockSvc, ViewOptions{}))

	t.Run("found", func(t *testing.T) {
		st := &model.Statute{
			ID:           "42",
			Jurisdiction: "new_york",
			Title:        "Sec. 1",
			Citation:     "NY 1",
			SourceURL:    "https://example.com/ny/1",
			FullText:     "Line one\nLine <two>",
		}
		mockSvc.On("Get", mock.Anything, "42").Return(st, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/?id=+42+&j=new_york&page=2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "New York Statutes")
		assert.Contains(t, body, "<h1>Sec. 1</h1>")
		assert.Contains(t, body, ">Citation<")
		assert.Contains(t, body, "View Original")
		assert.Contains(t, body, "Line one<br>Line &lt;two&gt;")
		assert.Contains(t, body, "Back to Browse")
		assert.Contains(t, body, `href="/?j=new_york&amp;page=2&amp;s=1"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("sparse record", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "7").Return(&model.Statute{ID: "7", Jurisdiction: "ohio"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/?id=7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "<h1>Untitled Section</h1>")
		assert.NotContains(t, body, ">Citation<")
		assert.NotContains(t, body, "View Original")
		assert.Contains(t, body, "No law text available for this statute.")
		assert.Contains(t, body, `href="/"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "missing").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/?id=missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Statute Not Found")
		assert.Contains(t, body, "Back to Browse")
		mockSvc.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "9").Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodGet, "/?id=9", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Try Again")
		mockSvc.AssertExpectations(t)
	})
}

func TestListJurisdictions(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatuteService)
	app := fiber.New()
	app.Get("/api/jurisdictions", ListJurisdictions(mockSvc, nil))

	t.Run("success", func(t *testing.T) {
		js := []model.Jurisdiction{model.NewJurisdiction("ohio"), model.NewJurisdiction("texas")}
		mockSvc.On("Jurisdictions", mock.Anything).Return(js, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/jurisdictions", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result JurisdictionListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, js, result.Items)
		mockSvc.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("Jurisdictions", mock.Anything).Return(nil, errors.New("down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/jurisdictions", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORE_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListStatutes(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatuteService)
	app := fiber.New()
	app.Get("/api/statutes", ListStatutes(mockSvc, nil))

	t.Run("success", func(t *testing.T) {
		want := service.BrowseState{Page: 1, Jurisdictions: []string{"ohio"}, Search: "tax", Explicit: true}
		page := samplePage()
		page.State = want
		mockSvc.On("Browse", mock.Anything, want).Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/statutes?jurisdiction=ohio&q=tax&page=2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result StatuteListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 1234, result.Total)
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, 13, result.PageCount)
		assert.Equal(t, 100, result.PageSize)
		assert.Equal(t, []string{"ohio"}, result.Jurisdictions)
		assert.Empty(t, result.Notice)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "42", result.Items[0].ID)
		assert.Equal(t, "Income tax...", result.Items[0].Preview)
		mockSvc.AssertExpectations(t)
	})

	t.Run("notice", func(t *testing.T) {
		page := &service.BrowsePage{State: service.BrowseState{Explicit: true}, Notice: service.NoticeEmptySelection, PageCount: 1, PageSize: 100}
		mockSvc.On("Browse", mock.Anything, service.BrowseState{Explicit: true}).Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/statutes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result StatuteListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "empty_selection", result.Notice)
		assert.Empty(t, result.Items)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/statutes?page=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_QUERY", res.Error.Code)
	})

	t.Run("search too long", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/statutes?q="+strings.Repeat("a", 201), nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "invalid query parameter q: failed max=200", res.Error.Message)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("Browse", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/statutes?all=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetStatute(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatuteService)
	app := fiber.New()
	app.Get("/api/statutes/:id", GetStatute(mockSvc, nil))

	t.Run("success", func(t *testing.T) {
		st := &model.Statute{ID: "42", Jurisdiction: "ohio", Title: "Sec. 1", FullText: "text"}
		mockSvc.On("Get", mock.Anything, "42").Return(st, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/statutes/42", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Statute
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, *st, result)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "404").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/statutes/404", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "1").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/statutes/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORE_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestSetupRequired(t *testing.T) {
	cfgErr := &config.Error{Driver: config.DriverPostgREST, Missing: []string{"SUPABASE_URL", "SUPABASE_KEY"}}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterSetupRoutes(app, cfgErr, prometheus.NewRegistry())

	t.Run("html", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?j=ohio", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Configuration Required")
		assert.Contains(t, body, "missing SUPABASE_URL, SUPABASE_KEY")
		assert.Contains(t, body, "SUPABASE_URL=https://your-project-id.supabase.co")
	})

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/statutes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "SETUP_REQUIRED", res.Error.Code)
	})

	t.Run("liveness still answers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockStatuteService)
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "routing_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	RegisterRoutes(app, Deps{Statutes: mockSvc, Gatherer: reg})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("not found page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Back to Browse")
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "routing_test_total 1")
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "100", formatNumber(100))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestBrowseHref(t *testing.T) {
	assert.Equal(t, "/", browseHref(service.BrowseState{}))
	assert.Equal(t, "/?all=true&page=3&q=a+b&s=1", browseHref(service.BrowseState{Page: 2, SelectAll: true, Search: "a b", Explicit: true}))
	assert.Equal(t, "/?id=9&j=ohio&j=texas", detailHref(service.BrowseState{Jurisdictions: []string{"ohio", "texas"}}, "9"))
}
