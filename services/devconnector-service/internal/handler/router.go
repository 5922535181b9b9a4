package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/metrics"
	"github.com/vasapolrittideah/devconnector-api/shared/middleware"
)

// HealthPath is the liveness route, also used as the Consul check target.
const HealthPath = "/healthz"

// RouterDeps holds everything NewRouter needs.
type RouterDeps struct {
	Logger    *zerolog.Logger
	Validator RequestValidator

	AuthUsecase    usecase.AuthUsecase
	ProfileUsecase usecase.ProfileUsecase
	Tokens         middleware.TokenValidator

	// Optional
	Metrics     *metrics.Collector
	RateLimiter *middleware.RateLimiter
	Pinger      Pinger

	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

// NewRouter builds the HTTP routes and middleware chain.
//
// Middleware order:
//
//	[RealIP] → RequestLogger → Recoverer → Metrics
//
// RealIP runs only when TrustProxyHeaders is set, otherwise the rate limiter
// keys on the connection's remote address.
//
// /register and /login are rate limited; everything under the auth group
// requires a valid bearer token.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	if deps.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewRequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	var recorder metrics.AuthRecorder = metrics.NopRecorder{}
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
		recorder = deps.Metrics
	}

	if deps.Pinger != nil {
		r.Get(HealthPath, Health(deps.Pinger))
	}

	authHandler := NewAuthHandler(deps.AuthUsecase, deps.Validator)
	profileHandler := NewProfileHandler(deps.ProfileUsecase, deps.Validator)

	// --- Public routes ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware)
		}

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// --- Authenticated routes ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.Tokens, deps.AuthUsecase, recorder))

		r.Get("/auth/me", authHandler.Me)

		r.Route("/profile", func(r chi.Router) {
			r.Post("/", profileHandler.UpsertProfile)
			r.Delete("/", profileHandler.DeleteAccount)
			r.Get("/me", profileHandler.GetMyProfile)
			r.Get("/all", profileHandler.ListProfiles)
			r.Get("/user/{id}", profileHandler.GetProfileByUserID)

			r.Post("/experience", profileHandler.AddExperience)
			r.Delete("/experience/{id}", profileHandler.DeleteExperience)

			r.Post("/education", profileHandler.AddEducation)
			r.Delete("/education/{id}", profileHandler.DeleteEducation)
		})
	})

	return r
}
