package middleware

import (
	"net/http"
	"runtime/debug"

	"hospital-management-api/pkg/response"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Recover gives every request its own Sentry hub and turns panics into a 500.
func Recover(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hub := sentry.CurrentHub().Clone()
			hub.Scope().SetRequest(r)
			ctx := sentry.SetHubOnContext(r.Context(), hub)

			defer func() {
				if rec := recover(); rec != nil {
					log.WithField("stack", string(debug.Stack())).Errorf("Recovered from panic: %v", rec)
					hub.RecoverWithContext(ctx, rec)
					response.InternalServerError(w, "")
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
