package routes

import (
	"github.com/gofiber/fiber/v2"

	"filmfest/internal/handlers"
	"filmfest/internal/middleware"
	"filmfest/models"
	"filmfest/pkg/auth"
)

// RegisterSubmissionRoutes wires the submission lifecycle. Fixed paths
// go before the /:id wildcards.
func RegisterSubmissionRoutes(api fiber.Router, h *handlers.SubmissionHandler, tm auth.TokenManager) {
	requireAuth := middleware.RequireAuth(tm)
	requireStaff := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	grp := api.Group("/submissions")
	grp.Post("/public", h.CreatePublic)
	grp.Post("/", requireAuth, requireStaff, h.Create)
	grp.Get("/", requireAuth, requireStaff, h.AdminList)
	grp.Get("/my/list", requireAuth, h.MyList)
	grp.Get("/:id/overview", h.Overview)
	grp.Patch("/:id/approve", requireAuth, requireStaff, h.Approve)
	grp.Patch("/:id/reject", requireAuth, requireStaff, h.Reject)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", requireAuth, h.Update)
	grp.Delete("/:id", requireAuth, requireStaff, h.Delete)
}

func RegisterCrewAssignmentRoutes(api fiber.Router, h *handlers.CrewAssignmentHandler, tm auth.TokenManager) {
	requireAuth := middleware.RequireAuth(tm)

	grp := api.Group("/crew-assignments")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", requireAuth, h.Create)
	grp.Put("/:id", requireAuth, h.Update)
	grp.Delete("/:id", requireAuth, h.Delete)
}

func RegisterNominationRoutes(api fiber.Router, h *handlers.NominationHandler, tm auth.TokenManager) {
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	requireAuth := middleware.RequireAuth(tm)

	grp := api.Group("/nominations")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", requireAuth, requireAdmin, h.Create)
	grp.Put("/:id", requireAuth, requireAdmin, h.Update)
	grp.Delete("/:id", requireAuth, requireAdmin, h.Delete)
}
