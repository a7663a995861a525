package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"statutes/internal/http/middleware"
	"statutes/internal/logging"
	"statutes/internal/model"
	"statutes/internal/service"
)

// browseQuery is the URL form of the browse state plus the detail id.
type browseQuery struct {
	ID            string   `query:"id" validate:"max=256"`
	Jurisdictions []string `query:"j" validate:"max=100,dive,max=64"`
	All           bool     `query:"all"`
	Search        string   `query:"q" validate:"max=200"`
	Page          int      `query:"page" validate:"gte=0"`
	Form          bool     `query:"f"`
	Selected      bool     `query:"s"`
}

// State converts the query into a browse state. A submitted form (f=1)
// always starts from the first page; links carry s=1 and keep their page.
func (q browseQuery) State() service.BrowseState {
	s := service.BrowseState{
		Page:          max(q.Page-1, 0),
		SelectAll:     q.All,
		Jurisdictions: q.Jurisdictions,
		Search:        strings.TrimSpace(q.Search),
		Explicit:      q.Selected || q.All || len(q.Jurisdictions) > 0,
	}
	if q.Form {
		s = s.WithSelection(q.All, q.Jurisdictions).WithSearch(q.Search)
	}
	return s
}

// ViewOptions tunes the HTML views.
type ViewOptions struct {
	SingleSelection bool
	Logger          *logging.Logger
}

// ViewRouter serves GET /: a non-empty id shows the detail view, anything
// else the browse view.
//
// @Summary Statute browser
// @Description HTML browse and detail views.
// @Tags views
// @Produce html
// @Param id query string false "statute id; shows the detail view"
// @Param j query []string false "jurisdiction codes" collectionFormat(multi)
// @Param all query bool false "select every jurisdiction"
// @Param q query string false "search term"
// @Param page query int false "1-based page"
// @Param f query bool false "filter form submitted; resets to page 1"
// @Param s query bool false "selection was made by the user"
// @Success 200 {string} string "HTML page"
// @Failure 400 {string} string "HTML error page"
// @Failure 404 {string} string "HTML not found page"
// @Failure 502 {string} string "HTML error page"
// @Router / [get]
func ViewRouter(svc service.StatuteService, opts ViewOptions) fiber.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return func(c *fiber.Ctx) error {
		var q browseQuery
		if err := parseQuery(c, &q); err != nil {
			return renderError(c, fiber.StatusBadRequest, "Invalid Request", err.Error(), "")
		}
		state := q.State()

		if id := strings.TrimSpace(q.ID); id != "" {
			return detailView(c, svc, logger, id, state)
		}
		return browseView(c, svc, logger, state, opts.SingleSelection)
	}
}

func browseView(c *fiber.Ctx, svc service.StatuteService, logger *logging.Logger, state service.BrowseState, single bool) error {
	page, err := svc.Browse(c.UserContext(), state)
	if err != nil {
		logStoreError(c, logger, err)
		return renderError(c, fiber.StatusBadGateway, "Store Unavailable",
			"The statute store could not be reached. Please try again.", c.OriginalURL())
	}
	return render(c, fiber.StatusOK, "browse", newBrowseData(middleware.RequestIDFrom(c), page, single))
}

func detailView(c *fiber.Ctx, svc service.StatuteService, logger *logging.Logger, id string, back service.BrowseState) error {
	backHref := browseHref(back)

	st, err := svc.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return render(c, fiber.StatusNotFound, "error", errorData{
				layoutData: layoutData{Title: "Not Found | " + appTitle, RequestID: middleware.RequestIDFrom(c)},
				Heading:    "Statute Not Found",
				Message:    "The requested statute could not be found.",
				NotFound:   true,
				BackHref:   backHref,
			})
		}
		logStoreError(c, logger, err)
		return render(c, fiber.StatusBadGateway, "error", errorData{
			layoutData: layoutData{Title: "Error | " + appTitle, RequestID: middleware.RequestIDFrom(c)},
			Heading:    "Store Unavailable",
			Message:    "The statute could not be loaded. Please try again.",
			RetryHref:  c.OriginalURL(),
			BackHref:   backHref,
		})
	}

	label := model.JurisdictionLabel(st.Jurisdiction)
	return render(c, fiber.StatusOK, "detail", detailData{
		layoutData:        layoutData{Title: st.DisplayTitle() + " | " + appTitle, RequestID: middleware.RequestIDFrom(c)},
		Statute:           st,
		JurisdictionLabel: label,
		BackHref:          backHref,
	})
}

func renderError(c *fiber.Ctx, status int, heading, msg, retry string) error {
	return render(c, status, "error", errorData{
		layoutData: layoutData{Title: heading + " | " + appTitle, RequestID: middleware.RequestIDFrom(c)},
		Heading:    heading,
		Message:    msg,
		NotFound:   status == fiber.StatusNotFound,
		RetryHref:  retry,
		BackHref:   "/",
	})
}
