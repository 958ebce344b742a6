// Package httpapi exposes the catalog, reference data, authentication,
// login requests and contributor submissions as a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/ratelimit"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/services"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Session(ctx context.Context, userID string) (*models.User, error)
	Authenticate(accessToken string) (string, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]catalog.Record, error)
	Get(ctx context.Context, id string) (*catalog.Record, error)
	Search(ctx context.Context, st filter.State, page int) (filter.Page[catalog.Entry], error)
	FilterOptions(ctx context.Context) (*services.FilterOptions, error)
	Colors(ctx context.Context) fallback.Result[options.Option]
	ReferenceOptions(ctx context.Context, r refdata.Resource) fallback.Result[options.Option]
	ReferenceRaw(ctx context.Context, r refdata.Resource) fallback.Result[json.RawMessage]
}

type SubmissionService interface {
	Create(ctx context.Context, userID string, form catalog.SubmissionForm, img *services.Image) (*services.CreateResult, error)
	List(ctx context.Context, userID string, q filter.SubmissionQuery) ([]catalog.Submission, error)
	Get(ctx context.Context, userID, id string) (*catalog.Submission, error)
	Publish(ctx context.Context, userID, id string) (*services.PublishResult, error)
}

type LoginRequestService interface {
	Create(ctx context.Context, req models.LoginRequest) (*models.LoginRequest, error)
}

// Options tune the server. Zero values fall back to defaults.
type Options struct {
	AllowedOrigins         []string
	MaxImageSize           int64
	LoginRequestsPerMinute int
	// Ping reports database reachability for /health.
	Ping func(ctx context.Context) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	auth          AuthService
	catalog       CatalogService
	submissions   SubmissionService
	loginRequests LoginRequestService
	log           logging.Logger
	opts          Options
	router        *chi.Mux
	loginLimiter  *ratelimit.KeyedRateLimiter
	publicLimiter *ratelimit.KeyedRateLimiter
}

func NewServer(auth AuthService, cat CatalogService, subs SubmissionService, lr LoginRequestService, log logging.Logger, opts Options) *Server {
	if log == nil {
		log = logging.Discard()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.MaxImageSize <= 0 {
		opts.MaxImageSize = 10 << 20
	}
	if opts.LoginRequestsPerMinute <= 0 {
		opts.LoginRequestsPerMinute = 5
	}

	s := &Server{
		auth:          auth,
		catalog:       cat,
		submissions:   subs,
		loginRequests: lr,
		log:           log.With("component", "http"),
		opts:          opts,
		router:        chi.NewRouter(),
		loginLimiter:  ratelimit.PerMinute(opts.LoginRequestsPerMinute),
		publicLimiter: ratelimit.PerMinute(opts.LoginRequestsPerMinute),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the rate limiter cleanup goroutines.
func (s *Server) Close() {
	s.loginLimiter.Stop()
	s.publicLimiter.Stop()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleListCatalog)
			r.Get("/search", s.handleSearchCatalog)
			r.Get("/{id}", s.handleGetRecord)
		})

		r.Get("/filters", s.handleFilterOptions)
		r.Get("/filters/colors", s.handleColors)
		r.Get("/reference/{resource}", s.handleReference)

		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimit(s.loginLimiter)).Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.With(s.requireAuth).Post("/logout", s.handleLogout)
			r.With(s.requireAuth).Get("/session", s.handleSession)
		})

		r.With(s.rateLimit(s.publicLimiter)).Post("/login-requests", s.handleCreateLoginRequest)

		r.Route("/submissions", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateSubmission)
			r.Get("/", s.handleListSubmissions)
			r.Get("/{id}", s.handleGetSubmission)
			r.Post("/{id}/publish", s.handlePublishSubmission)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ping != nil {
		if err := s.opts.Ping(r.Context()); err != nil {
			s.log.Warn(r.Context(), "health check failed", "error", err)
			s.fail(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	s.ok(w, r, map[string]string{"status": "ok"})
}
