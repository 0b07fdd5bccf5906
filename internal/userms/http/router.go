package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/premmsharma122/user-management-system/internal/userms/service"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/pkg/httpx"
	"github.com/premmsharma122/user-management-system/pkg/slogx"
	"github.com/premmsharma122/user-management-system/pkg/tokenx"

	_ "github.com/premmsharma122/user-management-system/api/userms" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *tokenx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	codec *tokenx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
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
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			User Management Service API
//	@version		0.1.0
//	@description	Session and user management service issuing JWT-based access and refresh tokens.
//	@description
//	@description				Access and refresh tokens are HS256-signed JWTs. The service keeps no
//	@description				session state; a refresh rotation returns a complete new pair.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP + loginId body field to slow
	// brute force against a single account from many addresses
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "loginId"),
		),
	)

	// POST /refresh-token - strict rate limit by IP
	refreshHandler := &RefreshHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/refresh-token",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	authn := httpx.AuthnMiddleware(r.codec, r.AuthService.ResolveIdentity)

	// GET /users - admin-only listing, lenient rate limit by user
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		authn,
		httpx.RequireAdmin(),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// GET /users/{id} - self or admin, enforced in the handler
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		authn,
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// PUT /users/{id} - self or admin, enforced in the handler
	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdate),
		authn,
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// DELETE /users/{id} - admin only, moderate rate limit
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		authn,
		httpx.RequireAdmin(),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/users", securedList)
	r.Mux.Handle("GET /api/users/{id}", securedGet)
	r.Mux.Handle("PUT /api/users/{id}", securedUpdate)
	r.Mux.Handle("DELETE /api/users/{id}", securedDelete)
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
