package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates a bearer token and returns the reporter identity
// it carries.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

type contextKeyReporterID struct{}

// ContextKeyReporterID is exported for use in handlers and tests.
var ContextKeyReporterID = contextKeyReporterID{}

// GetReporterID retrieves the authenticated reporter identity from the
// context.
func GetReporterID(ctx context.Context) string {
	reporterID, ok := ctx.Value(ContextKeyReporterID).(string)
	if !ok {
		return ""
	}
	return reporterID
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// reporter identity in the request context for handlers to pass on
// explicitly.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok {
				unauthorized(w, r, logger, "missing or invalid Authorization header")
				return
			}

			reporterID, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w, r, logger, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyReporterID, reporterID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`)); err != nil {
		logger.ErrorContext(r.Context(), "failed to write unauthorized response",
			"error", err,
			"request_id", GetRequestID(r.Context()),
		)
	}
}
