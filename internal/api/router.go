package api

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/payment-instructions/internal/auth"
	"github.com/example/payment-instructions/internal/security"
	"github.com/example/payment-instructions/pkg/audit"
)

type Auditor interface {
	Append(payload string) *audit.LogEntry
}

// Dependencies carries everything the router needs. OAuth, JWTValidator,
// Auditor, and RateLimiter are optional; the corresponding surface or
// middleware is simply absent when nil.
type Dependencies struct {
	Logger       *slog.Logger
	OAuth        *auth.OAuthServer
	JWTValidator *auth.JWTValidator
	Auditor      Auditor
	RateLimiter  *security.RedisTokenBucket
	IPAllowlist  []*net.IPNet
	MaxBodyBytes int64
}

func NewRouter(deps Dependencies) (http.Handler, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	instructionV, err := security.NewJSONSchemaValidator(paymentInstructionSchema)
	if err != nil {
		return nil, err
	}

	onAuthError := func(w http.ResponseWriter, r *http.Request, status int, code string) {
		security.WriteJSONError(w, r, status, code)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(security.CorrelationID)
	r.Use(RequestLogger(deps.Logger))
	r.Use(security.BodySizeLimit(deps.MaxBodyBytes))
	r.Use(security.IPAllowlist(deps.IPAllowlist))
	if deps.RateLimiter != nil {
		r.Use(security.RateLimitMiddleware(deps.RateLimiter, rateLimitKeyByIP))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if deps.OAuth != nil {
		r.Post("/oauth/token", deps.OAuth.TokenHandler)
		r.Get("/oauth/jwks.json", deps.OAuth.JWKSHandler)
	}

	execute := r.With(instructionV.Middleware)
	if deps.JWTValidator != nil {
		execute = r.With(
			auth.Authenticate(deps.JWTValidator, onAuthError),
			auth.RequireScopes(onAuthError, "instructions:execute"),
			instructionV.Middleware,
		)
	}
	execute.Post("/payment-instructions", handlePaymentInstruction(deps))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		security.WriteJSONError(w, r, http.StatusNotFound, "not_found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		security.WriteJSONError(w, r, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return r, nil
}

func rateLimitKeyByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	return "ip:" + host
}
