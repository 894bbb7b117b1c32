package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every endpoint under /api
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.healthHandler.health())

		// Auth Handler endpoints
		r.Post("/auth/signup", handlers.authHandler.signup())
		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/refresh", handlers.authHandler.refresh())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/me", handlers.authHandler.me())

			// Post Handler endpoints
			r.Get("/posts", handlers.postHandler.listPosts())
			r.Post("/posts", handlers.postHandler.createPost())
			r.Put("/posts/{postID}", handlers.postHandler.updatePost())
			r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

			// User Handler endpoints
			r.Put("/users/{userID}", handlers.userHandler.updateUser())
			r.Delete("/users/{userID}", handlers.userHandler.deleteUser())
		})
	})
}
