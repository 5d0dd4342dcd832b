package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
	"github.com/angelmondragon/aurana-storefront/pkg/types"
)

const apiPrefix = "/api/"

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data, RequestID: requestID(w)})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed, meta := classify(err)
	logError(ctx, logg, err, typed)

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:      string(typed.Code()),
			Message:   publicMessage(typed, meta),
			Retryable: meta.Retryable,
		},
		RequestID: requestID(w),
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

// WriteHTMLError renders a plain error page for storefront routes.
func WriteHTMLError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed, meta := classify(err)
	logError(ctx, logg, err, typed)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(meta.HTTPStatus)
	fmt.Fprintf(w, "%d %s\n", meta.HTTPStatus, publicMessage(typed, meta))
	if id := requestID(w); id != "" {
		fmt.Fprintf(w, "request id: %s\n", id)
	}
}

// requestID returns the id the request id middleware stamped on the response.
func requestID(w http.ResponseWriter) string {
	return w.Header().Get(types.RequestIDHeader)
}

// Redirect answers a form post or a stale link with 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// WantsJSON reports whether the request targets the JSON API.
func WantsJSON(r *http.Request) bool {
	if r == nil {
		return false
	}
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func classify(err error) (*pkgerrors.Error, pkgerrors.Metadata) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	return typed, pkgerrors.MetadataFor(typed.Code())
}

func publicMessage(typed *pkgerrors.Error, meta pkgerrors.Metadata) string {
	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}
	return msg
}

func logError(ctx context.Context, logg *logger.Logger, err error, typed *pkgerrors.Error) {
	if logg == nil || err == nil {
		return
	}

	dump := pkgerrors.Dump(err)
	fields := map[string]any{
		"error":       dump.TopMessage,
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
	}
	if dump.PGCode != "" {
		fields["pg_code"] = dump.PGCode
		fields["pg_detail"] = dump.PGDetail
		fields["pg_message"] = dump.PGMessage
		fields["pg_table"] = dump.PGTable
		fields["pg_constraint"] = dump.PGConstraint
	}

	ctx = logg.WithFields(ctx, fields)
	if pkgerrors.MetadataFor(typed.Code()).HTTPStatus >= http.StatusInternalServerError {
		logg.Error(ctx, "request.error", err)
		return
	}
	logg.Warn(ctx, "request.rejected")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
