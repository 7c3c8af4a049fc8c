package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/idgate/internal/auth/domain"
	"github.com/aussiebroadwan/idgate/internal/auth/service"
	"github.com/aussiebroadwan/idgate/pkg/httpx"
	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/aussiebroadwan/idgate/pkg/slogx"

	_ "github.com/aussiebroadwan/idgate/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	db           Pinger
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	AuthService  *service.AuthService
	RolesService *service.RolesService
}

func NewRouter(
	keys *jwtx.KeySet,
	tokens *service.TokenIssuer,
	db Pinger,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     jwtx.VerifierFunc(tokens.Validate),
		db:           db,
		buildVersion: buildVersion,
		startTime:    time.Now(),
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
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			idgate Identity Service API
//	@version		0.1.0
//	@description	Registration, email verification, password login with optional emailed two-factor codes, and role-gated access.
//	@description
//	@description				Session tokens are JWTs signed with EdDSA or ES256 and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/idgate
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
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and the given guards.
func (r *Router) secured(h http.HandlerFunc, guards ...service.Guard) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireGuards(writeError, guards...),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.HandleFunc("POST /v1/auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /v1/auth/login", h.HandleLogin)
	r.Mux.HandleFunc("POST /v1/auth/verify-email", h.HandleVerifyEmail)
	r.Mux.HandleFunc("POST /v1/auth/resend-verification", h.HandleResendVerification)

	// Only the temporary token from a two-factor login is accepted here.
	r.Mux.Handle("POST /v1/auth/verify-2fa", r.secured(h.HandleVerifyTwoFactor, service.TemporaryOnly))

	r.Mux.Handle("POST /v1/auth/enable-2fa", r.secured(h.HandleEnableTwoFactor, service.Verified))
	r.Mux.Handle("POST /v1/auth/disable-2fa", r.secured(h.HandleDisableTwoFactor, service.Verified))
	r.Mux.Handle("GET /v1/auth/profile", r.secured(h.HandleProfile, service.Verified))
}

func (r *Router) registerAdmin() {
	h := &RolesHandler{RolesService: r.RolesService}
	admin := service.Chain(service.Verified, service.RoleRequired(domain.RoleAdmin))

	r.Mux.Handle("GET /v1/admin/roles", r.secured(h.HandleList, admin))
	r.Mux.Handle("PUT /v1/admin/identities/{id}/roles/{role}", r.secured(h.HandleGrant, admin))
	r.Mux.Handle("DELETE /v1/admin/identities/{id}/roles/{role}", r.secured(h.HandleRevoke, admin))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.db, r.keys))
}
