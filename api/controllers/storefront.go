package controllers

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/aurana-storefront/api/responses"
	"github.com/angelmondragon/aurana-storefront/api/validators"
	"github.com/angelmondragon/aurana-storefront/internal/customers"
	"github.com/angelmondragon/aurana-storefront/internal/pages"
	"github.com/angelmondragon/aurana-storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
)

// MaxCustomerNameLength caps the registered name, in characters.
const MaxCustomerNameLength = 100

// StorefrontHome opens a fresh anonymous page.
func StorefrontHome(svc PageService, renderer PageRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Open(r.Context(), "")
		if err != nil {
			responses.WriteHTMLError(r.Context(), logg, w, err)
			return
		}
		writePage(w, r, renderer, logg, snap, nil, "")
	}
}

// StorefrontCustomer opens a page personalized for the QR card holder. Unknown
// codes fall back to the anonymous storefront.
func StorefrontCustomer(svc PageService, custs CustomerService, renderer PageRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		code := chi.URLParam(r, "secretCode")
		if logg != nil {
			ctx = logg.WithCustomerCode(ctx, code)
		}

		customer, walletQR, err := personalize(ctx, custs, logg, code)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				responses.Redirect(w, r, "/")
				return
			}
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}

		snap, err := svc.Open(ctx, customer.SecretCode)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		writePage(w, r.WithContext(ctx), renderer, logg, snap, customer, walletQR)
	}
}

// StorefrontRegister stores the name typed into the registration form and
// sends the visitor back to their personalized page.
func StorefrontRegister(custs CustomerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		code := chi.URLParam(r, "secretCode")
		if logg != nil {
			ctx = logg.WithCustomerCode(ctx, code)
		}

		if err := r.ParseForm(); err != nil {
			responses.WriteHTMLError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form"))
			return
		}
		name := validators.SanitizeString(r.PostFormValue("customer_name"), MaxCustomerNameLength)

		updated, err := custs.Register(ctx, code, name)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		if updated && logg != nil {
			logg.Info(ctx, "customer.registered")
		}
		responses.Redirect(w, r, "/"+url.PathEscape(code))
	}
}

// StorefrontPage re-renders an existing page. Expired or unknown pages send
// the visitor back to the storefront root.
func StorefrontPage(svc PageService, custs CustomerService, renderer PageRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pageID := chi.URLParam(r, "pageId")
		if logg != nil {
			ctx = logg.WithPageID(ctx, pageID)
		}

		snap, err := svc.View(ctx, pageID)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				responses.Redirect(w, r, "/")
				return
			}
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}

		var (
			customer *customers.CustomerDTO
			walletQR template.URL
		)
		if code := snap.Page.CustomerCode; code != "" {
			customer, walletQR, err = personalize(ctx, custs, logg, code)
			if err != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "storefront.personalize_failed")
			}
		}
		writePage(w, r.WithContext(ctx), renderer, logg, snap, customer, walletQR)
	}
}

// StorefrontClick applies a quantity control posted from a product card and
// redirects back to the page.
func StorefrontClick(svc PageService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pageID := chi.URLParam(r, "pageId")
		if logg != nil {
			ctx = logg.WithPageID(ctx, pageID)
		}

		if err := r.ParseForm(); err != nil {
			responses.WriteHTMLError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form"))
			return
		}

		outcome, err := svc.Click(ctx, pageID, r.PostFormValue("action"), r.PostFormValue("product_id"))
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				responses.Redirect(w, r, "/")
				return
			}
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		logClick(ctx, logg, outcome)
		responses.Redirect(w, r, storefront.PagePath(pageID))
	}
}

func personalize(ctx context.Context, custs CustomerService, logg *logger.Logger, code string) (*customers.CustomerDTO, template.URL, error) {
	if custs == nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	customer, err := custs.Lookup(ctx, code)
	if err != nil {
		return nil, "", err
	}
	walletQR, err := custs.WalletQR(customer.SecretCode)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "storefront.wallet_qr_failed", err)
		}
		walletQR = ""
	}
	return customer, walletQR, nil
}

func writePage(w http.ResponseWriter, r *http.Request, renderer PageRenderer, logg *logger.Logger, snap *pages.Snapshot, customer *customers.CustomerDTO, walletQR template.URL) {
	in := storefront.PageInput{
		PageID:   snap.Page.ID,
		Products: snap.Products,
		View:     snap.View,
		Customer: customer,
		WalletQR: walletQR,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := renderer.RenderPage(w, in); err != nil {
		w.Header().Del("Cache-Control")
		responses.WriteHTMLError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render page"))
	}
}

func logClick(ctx context.Context, logg *logger.Logger, outcome *pages.ClickOutcome) {
	if logg == nil || outcome == nil {
		return
	}
	click := logger.Click{
		Action:    outcome.Result.Action,
		ProductID: outcome.Result.ProductID,
		Outcome:   outcome.Result.Outcome,
		Quantity:  outcome.Result.After,
	}
	if outcome.Snapshot != nil {
		click.CartTotal = outcome.Snapshot.View.Total
	}
	logg.Click(ctx, click)
}
