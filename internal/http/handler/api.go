package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"statutes/internal/logging"
	"statutes/internal/model"
	"statutes/internal/service"
)

// JurisdictionListResult is the response of GET /api/jurisdictions.
type JurisdictionListResult struct {
	Items []model.Jurisdiction `json:"data"`
	Total int                  `json:"total"`
}

// StatuteSummary is a statute with its list preview.
type StatuteSummary struct {
	model.Statute
	Preview string `json:"preview"`
}

// StatuteListResult is the response of GET /api/statutes.
type StatuteListResult struct {
	Items         []StatuteSummary `json:"data"`
	Total         int              `json:"total"`
	Page          int              `json:"page"`
	PageCount     int              `json:"page_count"`
	PageSize      int              `json:"page_size"`
	Jurisdictions []string         `json:"jurisdictions"`
	Notice        string           `json:"notice,omitempty"`
}

type statuteListQuery struct {
	Jurisdictions []string `query:"jurisdiction" validate:"max=100,dive,required,max=64"`
	All           bool     `query:"all"`
	Search        string   `query:"q" validate:"max=200"`
	Page          int      `query:"page" validate:"gte=0"`
}

// ListJurisdictions returns the jurisdiction catalog.
//
// @Summary List jurisdictions
// @Tags statutes
// @Produce json
// @Success 200 {object} JurisdictionListResult
// @Failure 502 {object} errorPayload
// @Router /api/jurisdictions [get]
func ListJurisdictions(svc service.StatuteService, logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		js, err := svc.Jurisdictions(c.UserContext())
		if err != nil {
			logStoreError(c, logger, err)
			return writeError(c, fiber.StatusBadGateway, "STORE_UNAVAILABLE", "statute store unavailable")
		}
		return c.JSON(JurisdictionListResult{Items: js, Total: len(js)})
	}
}

// ListStatutes returns one page of statutes for the selected jurisdictions.
//
// @Summary List statutes
// @Tags statutes
// @Produce json
// @Param jurisdiction query []string false "jurisdiction codes" collectionFormat(multi)
// @Param all query bool false "select every jurisdiction"
// @Param q query string false "case-insensitive substring of the law text"
// @Param page query int false "1-based page"
// @Success 200 {object} StatuteListResult
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/statutes [get]
func ListStatutes(svc service.StatuteService, logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q statuteListQuery
		if err := parseQuery(c, &q); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
		}

		state := service.BrowseState{
			Page:          max(q.Page-1, 0),
			SelectAll:     q.All,
			Jurisdictions: q.Jurisdictions,
			Search:        strings.TrimSpace(q.Search),
			Explicit:      true,
		}
		page, err := svc.Browse(c.UserContext(), state)
		if err != nil {
			logStoreError(c, logger, err)
			return writeError(c, fiber.StatusBadGateway, "STORE_UNAVAILABLE", "statute store unavailable")
		}

		res := StatuteListResult{
			Items:         make([]StatuteSummary, 0, len(page.Items)),
			Total:         page.Total,
			Page:          page.State.Page + 1,
			PageCount:     page.PageCount,
			PageSize:      page.PageSize,
			Jurisdictions: make([]string, 0, len(page.Selected)),
			Notice:        page.Notice.Code(),
		}
		for _, it := range page.Items {
			res.Items = append(res.Items, StatuteSummary{Statute: it.Statute, Preview: it.Preview})
		}
		for _, j := range page.Selected {
			res.Jurisdictions = append(res.Jurisdictions, j.Code)
		}
		return c.JSON(res)
	}
}

// GetStatute returns one statute with its full text.
//
// @Summary Get statute
// @Tags statutes
// @Produce json
// @Param id path string true "statute id"
// @Success 200 {object} model.Statute
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/statutes/{id} [get]
func GetStatute(svc service.StatuteService, logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "statute not found")
			}
			logStoreError(c, logger, err)
			return writeError(c, fiber.StatusBadGateway, "STORE_UNAVAILABLE", "statute store unavailable")
		}
		return c.JSON(st)
	}
}
