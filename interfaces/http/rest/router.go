package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ciprian88m/user-posts-lambda/interfaces/functions"
	"github.com/ciprian88m/user-posts-lambda/interfaces/http/rest/middleware"
	"github.com/ciprian88m/user-posts-lambda/pkg/auth"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options controls the optional parts of the router
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	// Validator verifies bearer tokens on the post routes. When nil the
	// caller id header is taken from the request as is.
	Validator *auth.JWTValidator
	// Metrics is served on /metrics when set
	Metrics *observability.Collector
}

// Router serves the named functions over HTTP
type Router struct {
	registry *functions.Registry
	errors   *apperrors.ErrorHandler
	options  Options
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(registry *functions.Registry, options Options, logger *zap.Logger) *Router {
	return &Router{
		registry: registry,
		errors:   apperrors.NewErrorHandler(logger),
		options:  options,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errors.Middleware)
	router.Use(middleware.Logger(rt.logger))

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.options.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	if rt.options.Metrics != nil {
		router.Handle("/metrics", rt.options.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Use(middleware.CallerIdentity(rt.options.Validator, rt.logger))
			r.Get("/", rt.invoke(functions.FuncGetPosts))
			r.Post("/", rt.invoke(functions.FuncSavePost))
			r.Delete("/", rt.invoke(functions.FuncDeletePost))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", rt.invoke(functions.FuncRegisterUser))
			r.Post("/login", rt.invoke(functions.FuncLoginUser))
		})
	})

	return router
}

// invoke adapts a named function to an HTTP handler. The function's
// response status becomes the HTTP status.
func (rt *Router) invoke(name string) http.HandlerFunc {
	handler, err := rt.registry.Lookup(name)
	if err != nil {
		panic(err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := buildEnvelope(r)
		if err != nil {
			rt.errors.Handle(w, r, apperrors.NewDeserializationError(err))
			return
		}

		resp, err := handler(r.Context(), raw)
		if err != nil {
			rt.errors.Handle(w, r, err)
			return
		}

		rt.writeResponse(w, resp)
	}
}

func (rt *Router) writeResponse(w http.ResponseWriter, resp common.Response) {
	status := resp.Status()
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		rt.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
