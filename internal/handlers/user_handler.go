package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/dto"
	"filmfest/internal/middleware"
	"filmfest/models"
)

type UserHandler struct {
	users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func profileResponse(u *models.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             u.ID.Hex(),
		Email:          u.Email,
		Name:           u.FullName,
		Role:           u.Role,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		PhoneNumber:    u.PhoneNumber,
	}
}

func clamp(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	userID, okID := parseID(claims.Subject)
	if !okID {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := h.users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Profile fetched successfully", profileResponse(user))
}

// UpdateMe applies the profile fields present in the body.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	userID, okID := parseID(claims.Subject)
	if !okID {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	set := bson.M{}
	if req.FullName != nil {
		set["fullName"] = clamp(strings.TrimSpace(*req.FullName), 100)
	}
	if req.Bio != nil {
		set["bio"] = clamp(strings.TrimSpace(*req.Bio), 200)
	}
	if req.ProfilePicture != nil {
		set["profilePicture"] = strings.TrimSpace(*req.ProfilePicture)
	}
	if req.PhoneNumber != nil {
		set["phoneNumber"] = clamp(strings.TrimSpace(*req.PhoneNumber), 15)
	}

	updated, err := h.users.UpdateByID(c.Context(), userID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Profile updated successfully", profileResponse(updated))
}
