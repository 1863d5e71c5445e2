package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/udhekryqi/udhekryqi-backend/internal/handlers"
	"github.com/udhekryqi/udhekryqi-backend/internal/middleware"
)

// Handlers bundles everything the route table wires up.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Posts         *handlers.PostHandler
	Subscriptions *handlers.SubscriptionHandler
	Upload        *handlers.UploadHandler
	Preview       *handlers.PreviewHandler
}

func Setup(r *chi.Mux, h *Handlers, jwtSecret []byte) {
	requireAuth := middleware.RequireAuth(jwtSecret)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Get("/verify/{token}", h.Auth.VerifyEmail)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/reset-password/{token}", h.Auth.ResetPassword)
		r.Post("/contact", h.Auth.Contact)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Put("/user/{id}", h.Auth.UpdateUser)
			r.Delete("/user/{id}", h.Auth.DeleteUser)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.Posts.List)
		r.Get("/{id}", h.Posts.Get)
		r.Get("/{id}/comments", h.Posts.Comments)

		// Publishing is admin-only
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireAdmin)
			r.Post("/", h.Posts.Create)
			r.Put("/{id}", h.Posts.Update)
			r.Delete("/{id}", h.Posts.Delete)
		})

		// Engagement needs a verified account, not admin
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/{id}/like", h.Posts.ToggleLike)
			r.Post("/{id}/comments", h.Posts.AddComment)
			r.Delete("/{postId}/comments/{commentId}", h.Posts.DeleteComment)
		})
	})

	r.Route("/api/subscriptions", func(r chi.Router) {
		r.Post("/", h.Subscriptions.Subscribe)
		r.Get("/unsubscribe", h.Subscriptions.Unsubscribe)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireAdmin)
		r.Post("/api/upload", h.Upload.Upload)
	})

	// Social-media crawlers hit the canonical post URL directly
	r.Get("/posts/{id}", h.Preview.PostPreview)
}
