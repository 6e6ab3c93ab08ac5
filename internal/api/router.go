package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/edenniyi/shopstack-be/internal/api/handlers"
	"github.com/edenniyi/shopstack-be/internal/auth"
	"github.com/edenniyi/shopstack-be/internal/docs"
	"github.com/edenniyi/shopstack-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenService,
	userService services.UserServiceProvider,
	productService services.ProductServiceProvider,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	userHandler := handlers.NewUserHandler(userService, tokens)
	productHandler := handlers.NewProductHandler(productService)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Hello world"))
	})

	// Machine-readable API description for discovery
	r.Get("/api-docs", docs.Handler)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Post("/login", userHandler.Login)
		r.Get("/logout", userHandler.Logout)
		r.With(tokens.Middleware()).Get("/me", userHandler.GetMe)
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(tokens.Middleware())
		r.Post("/", productHandler.Create)
		r.Get("/", productHandler.List)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	return r
}
