package routes

import (
	"github.com/gofiber/fiber/v2"

	"filmfest/internal/handlers"
	"filmfest/internal/middleware"
	"filmfest/models"
	"filmfest/pkg/auth"
)

// RegisterReferenceRoutes mounts one reference-data CRUD under path.
// Reads are public; mutations are admin only.
func RegisterReferenceRoutes(api fiber.Router, path string, h *handlers.ReferenceHandler, tm auth.TokenManager) {
	requireAdmin := []fiber.Handler{middleware.RequireAuth(tm), middleware.RequireRole(models.RoleAdmin)}

	grp := api.Group(path)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", append(requireAdmin, h.Create)...)
	grp.Put("/:id", append(requireAdmin, h.Update)...)
	grp.Delete("/:id", append(requireAdmin, h.Delete)...)
}

func RegisterCrewMemberRoutes(api fiber.Router, h *handlers.CrewMemberHandler, tm auth.TokenManager) {
	requireAdmin := []fiber.Handler{middleware.RequireAuth(tm), middleware.RequireRole(models.RoleAdmin)}

	grp := api.Group("/crew-members")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", append(requireAdmin, h.Create)...)
	grp.Put("/:id", append(requireAdmin, h.Update)...)
	grp.Delete("/:id", append(requireAdmin, h.Delete)...)
}

// RegisterFilmEnquiryRoutes: the create form is public, everything
// else is back-office.
func RegisterFilmEnquiryRoutes(api fiber.Router, h *handlers.FilmEnquiryHandler, tm auth.TokenManager) {
	requireStaff := []fiber.Handler{middleware.RequireAuth(tm), middleware.RequireRole(models.RoleAdmin, models.RoleStaff)}

	grp := api.Group("/film-enquiries")
	grp.Post("/", h.Create)
	grp.Get("/", append(requireStaff, h.List)...)
	grp.Get("/:id", append(requireStaff, h.Get)...)
	grp.Put("/:id", append(requireStaff, h.Update)...)
	grp.Delete("/:id", append(requireStaff, h.Delete)...)
}
