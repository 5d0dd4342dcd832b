package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/aurana-storefront/api/responses"
	"github.com/angelmondragon/aurana-storefront/api/validators"
	"github.com/angelmondragon/aurana-storefront/internal/cart"
	"github.com/angelmondragon/aurana-storefront/internal/pages"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
)

type clickRequest struct {
	Action    string `json:"action" validate:"required,max=32"`
	ProductID string `json:"product_id" validate:"required,max=64"`
}

type pageResponse struct {
	PageID string    `json:"page_id"`
	Cart   cart.View `json:"cart"`
}

type clickResponse struct {
	Handled   bool            `json:"handled"`
	Changed   bool            `json:"changed"`
	Outcome   string          `json:"outcome"`
	Indicator *cart.Indicator `json:"indicator,omitempty"`
	Cart      cart.View       `json:"cart"`
}

// PagesOpen opens an anonymous page and returns its empty cart.
func PagesOpen(svc PageService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Open(r.Context(), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newPageResponse(snap))
	}
}

// PagesCart returns the current cart view of a page.
func PagesCart(svc PageService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pageID := chi.URLParam(r, "pageId")
		if logg != nil {
			ctx = logg.WithPageID(ctx, pageID)
		}

		snap, err := svc.View(ctx, pageID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(snap))
	}
}

// PagesClick applies a quantity control and returns the indicator update
// together with the re-rendered cart.
func PagesClick(svc PageService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pageID := chi.URLParam(r, "pageId")
		if logg != nil {
			ctx = logg.WithPageID(ctx, pageID)
		}

		var payload clickRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome, err := svc.Click(ctx, pageID, payload.Action, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		logClick(ctx, logg, outcome)
		responses.WriteSuccess(w, newClickResponse(outcome))
	}
}

func newPageResponse(snap *pages.Snapshot) pageResponse {
	return pageResponse{PageID: snap.Page.ID, Cart: snap.View}
}

func newClickResponse(outcome *pages.ClickOutcome) clickResponse {
	resp := clickResponse{
		Handled: outcome.Result.Handled(),
		Changed: outcome.Result.Changed(),
		Outcome: outcome.Result.Outcome.String(),
	}
	if ind, ok := outcome.Result.Indicator(); ok {
		resp.Indicator = &ind
	}
	if outcome.Snapshot != nil {
		resp.Cart = outcome.Snapshot.View
	}
	return resp
}
