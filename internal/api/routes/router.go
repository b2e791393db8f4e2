package routes

import (
	"net/http"

	"github.com/synchealth/wellness-backend/internal/api/handlers"
	"github.com/synchealth/wellness-backend/internal/api/middleware"
	"github.com/synchealth/wellness-backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	memberHandler *handlers.MemberHandler

	importHandler *handlers.ImportHandler

	analysisHandler *handlers.AnalysisHandler

	cacheMiddleware *middleware.CacheMiddleware
	bearerToken     string
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(
	memberHandler *handlers.MemberHandler,
	importHandler *handlers.ImportHandler,
	analysisHandler *handlers.AnalysisHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	bearerToken string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		memberHandler: memberHandler,

		importHandler: importHandler,

		analysisHandler: analysisHandler,

		cacheMiddleware: cacheMiddleware,
		bearerToken:     bearerToken,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.Header().Set("Content-Type", "application/json")

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte(`{"status":"ok","service":"wellness-backend"}`)); err != nil {
			return
		}

	})

	// Member endpoints

	r.mux.HandleFunc("GET /api/members", r.memberHandler.ListMembers)

	r.mux.HandleFunc("GET /api/members/departments", r.memberHandler.ListDepartments)

	r.mux.HandleFunc("GET /api/members/{id}", r.memberHandler.GetMember)

	r.mux.HandleFunc("POST /api/members/import", r.importHandler.ImportMembers)

	r.mux.HandleFunc("POST /api/members/sync", r.memberHandler.SyncMembers)

	// Analysis endpoint

	r.mux.HandleFunc("POST /api/analysis", r.analysisHandler.Analyze)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.AuthMiddleware(r.bearerToken)(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
