package routes

import (
	"github.com/gofiber/fiber/v2"

	"filmfest/internal/handlers"
	"filmfest/internal/middleware"
	"filmfest/pkg/auth"
)

func RegisterAuthRoutes(api fiber.Router, h *handlers.AuthHandler) {
	grp := api.Group("/auth")
	grp.Post("/register", h.Register)
	grp.Post("/login", h.Login)
	grp.Post("/refresh", h.Refresh)
	grp.Post("/logout", h.Logout)
}

func RegisterUserRoutes(api fiber.Router, h *handlers.UserHandler, tm auth.TokenManager) {
	grp := api.Group("/users", middleware.RequireAuth(tm))
	grp.Get("/me", h.GetMe)
	grp.Put("/me", h.UpdateMe)
}
