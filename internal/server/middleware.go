package server

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mirifer/internal/domain"
)

type ctxKey int

const userKey ctxKey = 0

// userFrom returns the authenticated user stashed by requireAuth. Handlers
// behind the middleware can assume it is present.
func userFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}

// requireAuth resolves the X-Access-Code header to an active user and
// refreshes their last-login stamp. The 401 is identical for missing,
// unknown, and deactivated codes.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.Header.Get("X-Access-Code")
		if code == "" {
			writeError(w, http.StatusUnauthorized, "Invalid access code")
			return
		}
		user, err := s.users.GetByAccessCode(r.Context(), code)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid access code")
			return
		}
		if err := s.users.TouchLastLogin(r.Context(), user.ID); err != nil {
			s.log.Warn("touching last login", zap.String("user_id", user.ID), zap.Error(err))
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// requireAdmin gates a handler on the static X-Admin-Password secret.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-Admin-Password")
		if s.adminPassword == "" ||
			subtle.ConstantTimeCompare([]byte(got), []byte(s.adminPassword)) != 1 {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

// rateLimit refuses requests once the client's window is exhausted.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
