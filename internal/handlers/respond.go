package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"filmfest/dto"
)

func ok(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.Response{Success: true, Message: message, Data: data})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Message: message, Data: data})
}

func paged(c *fiber.Ctx, message string, data any, meta dto.Meta) error {
	return c.Status(fiber.StatusOK).JSON(dto.Response{Success: true, Message: message, Data: data, Meta: &meta})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}

// internalError hides the cause from the client and logs it in full.
func internalError(c *fiber.Ctx, err error) error {
	slog.Error("unexpected error",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}
