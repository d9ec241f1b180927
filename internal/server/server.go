package server

import (
	"net/http"

	"go.uber.org/zap"

	"mirifer/internal/journey"
	"mirifer/internal/metrics"
	"mirifer/internal/notify"
	"mirifer/internal/report"
	"mirifer/internal/repository"
)

// Server wires the HTTP surface onto the journey core. It owns no state of
// its own beyond the injected collaborators.
type Server struct {
	users    repository.UserRepo
	surveys  repository.SurveyRepo
	journey  journey.Service
	reports  report.Service
	metrics  *metrics.Aggregator
	notifier notify.Notifier
	limiter  RateLimiter
	log      *zap.Logger

	adminPassword string
}

// Options carries the Server's collaborators.
type Options struct {
	Users         repository.UserRepo
	Surveys       repository.SurveyRepo
	Journey       journey.Service
	Reports       report.Service
	Metrics       *metrics.Aggregator
	Notifier      notify.Notifier
	Limiter       RateLimiter
	Log           *zap.Logger
	AdminPassword string
}

// New creates a Server. Nil optional collaborators get safe defaults.
func New(opts Options) *Server {
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	if opts.Limiter == nil {
		opts.Limiter = Unlimited{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Server{
		users:         opts.Users,
		surveys:       opts.Surveys,
		journey:       opts.Journey,
		reports:       opts.Reports,
		metrics:       opts.Metrics,
		notifier:      opts.Notifier,
		limiter:       opts.Limiter,
		log:           opts.Log,
		adminPassword: opts.AdminPassword,
	}
}

// Handler builds the routed handler with rate limiting and request logging
// applied outermost.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/journey/days", s.requireAuth(s.handleDays))
	mux.HandleFunc("POST /api/journey/respond", s.requireAuth(s.handleRespond))
	mux.HandleFunc("GET /api/journey/entries", s.requireAuth(s.handleEntries))
	mux.HandleFunc("POST /api/journey/save", s.requireAuth(s.handleSave))
	mux.HandleFunc("DELETE /api/journey/data", s.requireAuth(s.handleWipe))
	mux.HandleFunc("GET /api/journey/progress", s.requireAuth(s.handleProgress))
	mux.HandleFunc("GET /api/journey/report", s.requireAuth(s.handleReport))
	mux.HandleFunc("GET /api/journey/survey/status", s.requireAuth(s.handleSurveyStatus))
	mux.HandleFunc("POST /api/journey/survey", s.requireAuth(s.handleSurveySubmit))

	mux.HandleFunc("GET /api/admin/metrics", s.requireAdmin(s.handleMetrics))

	return s.logRequests(s.rateLimit(mux))
}
