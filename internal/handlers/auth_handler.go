package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/dto"
	"filmfest/models"
	"filmfest/pkg/auth"
)

const refreshCookieName = "refreshToken"

// UserStore is the persistence surface the auth and profile handlers
// need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
}

type AuthHandler struct {
	users         UserStore
	tokens        auth.TokenManager
	validate      *validator.Validate
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(users UserStore, tokens auth.TokenManager, validate *validator.Validate, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		validate:      validate,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func authUser(u *models.User) dto.AuthUser {
	return dto.AuthUser{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName,
	}
}

// Register creates a user with role "user" and issues the first token
// pair.
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Registration"
// @Success      201   {object}  dto.Response
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	if _, err := h.users.FindByEmail(c.Context(), req.Email); err == nil {
		return fail(c, fiber.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return internalError(c, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return internalError(c, err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		FullName:     req.FullName,
	}
	if _, err := h.users.Insert(c.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fail(c, fiber.StatusBadRequest, "User already exists")
		}
		return internalError(c, err)
	}

	pair, err := h.tokens.GeneratePair(user.ID.Hex(), user.Role)
	if err != nil {
		return internalError(c, err)
	}
	h.setRefreshCookie(c, pair.RefreshToken)

	return created(c, "User registered successfully", dto.AuthResponse{
		User:        authUser(user),
		AccessToken: pair.AccessToken,
	})
}

// Login verifies credentials and issues a fresh token pair. Unknown
// email and wrong password are indistinguishable to the caller.
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Response
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	user, err := h.users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return internalError(c, err)
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	pair, err := h.tokens.GeneratePair(user.ID.Hex(), user.Role)
	if err != nil {
		return internalError(c, err)
	}
	h.setRefreshCookie(c, pair.RefreshToken)

	return ok(c, "User signed in successfully", dto.AuthResponse{
		User:        authUser(user),
		AccessToken: pair.AccessToken,
	})
}

// Refresh rotates the token pair from the httpOnly refresh cookie.
// The user is re-resolved so role changes and deletions take effect.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	tokenStr := c.Cookies(refreshCookieName)
	if tokenStr == "" {
		return fail(c, fiber.StatusUnauthorized, "Missing refresh token")
	}
	claims, err := h.tokens.VerifyRefresh(tokenStr)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid/Expired refresh token")
	}
	userID, ok2 := parseID(claims.Subject)
	if !ok2 {
		return fail(c, fiber.StatusUnauthorized, "Invalid/Expired refresh token")
	}

	user, err := h.users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusUnauthorized, "Invalid/Expired refresh token")
		}
		return internalError(c, err)
	}

	pair, err := h.tokens.GeneratePair(user.ID.Hex(), user.Role)
	if err != nil {
		return internalError(c, err)
	}
	h.setRefreshCookie(c, pair.RefreshToken)

	return ok(c, "Token refreshed successfully", dto.AuthResponse{
		User:        authUser(user),
		AccessToken: pair.AccessToken,
	})
}

// Logout clears the refresh cookie. The access token keeps its natural
// expiry; there is no server-side revocation list.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return ok(c, "Logged out successfully", nil)
}
