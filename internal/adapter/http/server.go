package adapthttp

import (
	"net/http"

	"webstore/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options configures the HTTP adapter.
type Options struct {
	WebDir             string
	CORSAllowedOrigins []string
	// OIDC is nil when SSO is not configured.
	OIDC *OIDCConfig
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	catalog     *app.CatalogService
	authSvc     *app.AuthService
	log         *zap.Logger
	webDir      string
	corsOrigins []string
	oidcConfig  *OIDCConfig
}

// New creates a Server wired to the given application services.
func New(cs *app.CatalogService, as *app.AuthService, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	oc := opts.OIDC
	if oc == nil {
		oc = &OIDCConfig{}
	}
	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		catalog:     cs,
		authSvc:     as,
		log:         log,
		webDir:      opts.WebDir,
		corsOrigins: origins,
		oidcConfig:  oc,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Group(func(api chi.Router) {
		api.Use(withNoCache)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		api.Get("/info", s.handleInfo)

		api.Post("/signin", s.handleSignin)
		api.Post("/login", s.handleLogin)

		api.Get("/auth/config", s.handleConfig)
		api.Get("/auth/sso/login", s.handleSSOLogin)
		api.Get("/auth/sso/callback", s.handleSSOCallback)

		api.Group(func(protected chi.Router) {
			protected.Use(s.authMiddleware)
			protected.Post("/logout", s.handleLogout)
			protected.Get("/product-groups", s.handleProductGroups)
			protected.Get("/products/{pgId}", s.handleProducts)
			protected.Get("/product/{pgId}/{pId}", s.handleProduct)
		})
	})

	r.Handle("/*", spaFromDisk(s.webDir))
	return r
}
