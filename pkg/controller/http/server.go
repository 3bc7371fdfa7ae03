package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/brolife/pkg/usecase"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
)

const (
	// DefaultRateLimit is the sustained number of AI-backed requests per second per client
	DefaultRateLimit = 1.0
	// DefaultRateBurst is the number of AI-backed requests a client may send at once
	DefaultRateBurst = 5
)

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	version   string
	rateLimit float64
	rateBurst int
}

type Options func(*Server)

func WithVersion(version string) Options {
	return func(s *Server) {
		s.version = version
	}
}

// WithRateLimit sets the per-client token bucket of /api/chat and
// /api/generate-timetable. A non-positive limit disables limiting.
func WithRateLimit(limit float64, burst int) Options {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateBurst = burst
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		uc:        uc,
		version:   "dev",
		rateLimit: DefaultRateLimit,
		rateBurst: DefaultRateBurst,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(notFoundHandler)

	r.Get("/", s.rootHandler)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Post("/user/setup", s.setupUserHandler)
		r.Get("/user/{user_id}", s.getUserHandler)

		r.Group(func(r chi.Router) {
			if s.rateLimit > 0 {
				r.Use(rateLimiter(s.rateLimit, s.rateBurst))
			}
			r.Post("/chat", s.chatHandler)
			r.Post("/generate-timetable", s.generateTimetableHandler)
		})

		r.Get("/chat-history/{user_id}", s.chatHistoryHandler)
		r.Get("/timetables/{user_id}", s.timetablesHandler)
		r.Get("/overview/{user_id}", s.overviewHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
