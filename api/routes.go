package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	rh "github.com/evportal-ch/newshub/route-handlers"
	"github.com/evportal-ch/newshub/webutil"
)

const (
	apiBasePath    = "/api"
	newsBasePath   = "/news"
	statusBasePath = "/status"
)

const (
	serviceName    = "EV Portal Schweiz API"
	serviceVersion = "1.0.0"
)

func SetupRoutes(
	newsHandler *rh.NewsHandler,
	statusHandler *rh.StatusHandler,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Log every request
	r.Use(middleware.Recoverer) // Recover from panics
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Timeout(3 * time.Minute)) // Refresh requests wait on a full aggregation pass
	r.Use(SetHeader(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8))

	r.Route(apiBasePath, func(r chi.Router) {
		r.Get("/", handleRoot)
		r.Get("/health", handleHealth)
		configureNewsRoutes(r, newsHandler)
		configureStatusRoutes(r, statusHandler)
	})

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	return r
}

// --- News Routes ---
func configureNewsRoutes(r chi.Router, handler *rh.NewsHandler) {
	r.Route(newsBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetNews))
		r.Get("/sources", webutil.MakeHandler(handler.HandleGetSources))
		r.Get("/categories", webutil.MakeHandler(handler.HandleGetCategories))
		r.Post("/refresh", webutil.MakeHandler(handler.HandleRefresh))
	})
}

// --- Status Check Routes ---
func configureStatusRoutes(r chi.Router, handler *rh.StatusHandler) {
	r.Route(statusBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetStatusChecks))
		r.Post("/", webutil.MakeHandler(handler.HandleCreateStatusCheck))
	})
}

// --- Utility Functions ---

func handleRoot(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": serviceName,
		"version": serviceVersion,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// handleHealthCheck responds to a plain-text liveness probe.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// SetHeader is a middleware to set a response header.
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, value)
			next.ServeHTTP(w, r)
		})
	}
}
