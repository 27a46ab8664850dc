package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eventdesk/registry/internal/registry/service"
	"github.com/eventdesk/registry/internal/registry/store"
	"github.com/eventdesk/registry/pkg/httpx"
	"github.com/eventdesk/registry/pkg/slogx"
	"github.com/eventdesk/registry/pkg/tokenx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	Sessions     *tokenx.Issuer
	AuthService  *service.AuthService
	EventService *service.EventService
}

func NewRouter(sessions *tokenx.Issuer, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		Sessions:     sessions,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerEvents()
	r.registerProfile()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	loginHandler := &LoginHandler{AuthService: r.AuthService, Sessions: r.Sessions}

	// Strict rate limits: both endpoints take a password guess.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerEvents() {
	eventsHandler := &EventsHandler{EventService: r.EventService}

	// Public read-only listing, no authentication required.
	r.Mux.Handle("GET /v1/events",
		httpx.Chain(http.HandlerFunc(eventsHandler.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/events/{id}",
		httpx.Chain(http.HandlerFunc(eventsHandler.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerProfile() {
	profileHandler := &ProfileHandler{AuthService: r.AuthService}

	r.Mux.Handle("GET /v1/profile",
		httpx.Chain(http.HandlerFunc(profileHandler.HandleGet),
			httpx.AuthnMiddleware(r.Sessions),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/profile",
		httpx.Chain(http.HandlerFunc(profileHandler.HandleUpdate),
			httpx.AuthnMiddleware(r.Sessions),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
