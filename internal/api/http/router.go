package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/http/handlers"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Ratings        *handlers.RatingsHandler
	Stores         *handlers.StoresHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. This is the one place allowed-role sets
// are declared; handlers never check roles themselves.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/users/password", cfg.Auth.ChangePassword)

	ratings := protected.Group("/ratings", auth.RequireRoles(domain.RoleUser))
	ratings.Post("/", cfg.Ratings.Submit)
	ratings.Get("/", cfg.Ratings.StoreRating)

	stores := protected.Group("/stores")
	stores.Get("/", auth.RequireRoles(domain.RoleUser), cfg.Stores.List)
	stores.Get("/owner-dashboard", auth.RequireRoles(domain.RoleStoreOwner), cfg.Stores.OwnerDashboard)

	admin := protected.Group("/admin", auth.RequireRoles(domain.RoleAdmin))
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Post("/stores", cfg.Admin.CreateStore)
	admin.Get("/stores", cfg.Admin.ListStores)
	admin.Get("/dashboard", cfg.Admin.Stats)
}
