package http

import (
	"context"
	"net/http"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
)

type contextKey string

const (
	applicantContextKey contextKey = "applicant"
	adminContextKey     contextKey = "admin"
)

func applicantFrom(ctx context.Context) *domain.Applicant {
	a, _ := ctx.Value(applicantContextKey).(*domain.Applicant)
	return a
}

func adminFrom(ctx context.Context) *domain.Admin {
	a, _ := ctx.Value(adminContextKey).(*domain.Admin)
	return a
}

// loggingMiddleware logs each request with its duration and status.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requireApplicant authenticates the bearer token and resolves the
// applicant record behind it, creating a stub on first contact.
func (a *API) requireApplicant(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, err := a.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		applicant, err := a.identity.ResolveApplicant(r.Context(), ident)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), applicantContextKey, applicant)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin authenticates the bearer token and requires an active
// admin record for the identity.
func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, err := a.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		admin, err := a.identity.ResolveAdmin(r.Context(), ident)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), adminContextKey, admin)
		next(w, r.WithContext(ctx))
	}
}
