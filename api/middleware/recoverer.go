package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/aurana-storefront/api/responses"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
)

// Recoverer turns a handler panic into a 500 response. JSON routes get the
// error envelope, storefront routes a plain error page.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					typed := pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic")
					if responses.WantsJSON(r) {
						responses.WriteError(ctx, nil, w, typed)
						return
					}
					responses.WriteHTMLError(ctx, nil, w, typed)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
