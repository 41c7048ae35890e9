package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/wordsplit/internal/api"
	apiMiddleware "github.com/phrazzld/wordsplit/internal/api/middleware"
	"github.com/phrazzld/wordsplit/internal/service/auth"
)

// maxRequestBytes bounds request bodies ahead of the per-field limits.
const maxRequestBytes = 1 << 20

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxRequestBytes))

	segmentHandler := api.NewSegmentHandler(app.segmentService)
	dictionaryHandler := api.NewDictionaryHandler(app.dictionaryService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, auth.ScopeWrite)

	r.Route("/api", func(r chi.Router) {
		r.Use(app.rateLimiter.Limit)

		r.Post("/segment", segmentHandler.Segment)

		r.Route("/dictionaries", func(r chi.Router) {
			r.Get("/", dictionaryHandler.ListDictionaries)
			r.Get("/{id}", dictionaryHandler.GetDictionary)
			r.Post("/{id}/segment", dictionaryHandler.CheckText)
			r.Post("/{id}/segment/batch", dictionaryHandler.CheckBatch)

			// Write routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", dictionaryHandler.CreateDictionary)
				r.Delete("/{id}", dictionaryHandler.DeleteDictionary)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
