package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"filmfest/dto"
	"filmfest/internal/repository"
	"filmfest/models"
)

type FilmEnquiryStore interface {
	List(ctx context.Context) ([]repository.FilmEnquiryView, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*repository.FilmEnquiryView, error)
	Insert(ctx context.Context, e *models.FilmEnquiry) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.FilmEnquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type FilmEnquiryHandler struct {
	enquiries FilmEnquiryStore
}

func NewFilmEnquiryHandler(enquiries FilmEnquiryStore) *FilmEnquiryHandler {
	return &FilmEnquiryHandler{enquiries: enquiries}
}

// Create accepts the public enquiry form. Everything except
// distributor is required.
func (h *FilmEnquiryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFilmEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	required := []string{req.Name, req.Email, req.Role, req.Title, req.Synopsis, req.ProductionHouse, req.TrailerURL}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return fail(c, fiber.StatusBadRequest, "Missing required fields")
		}
	}

	releaseDate, okDate := dto.ParseDate(req.ReleaseDate)
	if !okDate {
		return fail(c, fiber.StatusBadRequest, "Invalid releaseDate")
	}
	contentTypeID, okType := parseID(req.ContentTypeID)
	countryID, okCountry := parseID(req.CountryID)
	languageID, okLang := parseID(req.LanguageID)
	if !okType || !okCountry || !okLang {
		return fail(c, fiber.StatusBadRequest, "Invalid contentTypeId, countryId or languageId")
	}
	genreIDs, okIDs := parseIDList(req.GenreIDs)
	if !okIDs {
		return fail(c, fiber.StatusBadRequest, "Invalid genre id")
	}
	if len(genreIDs) == 0 {
		return fail(c, fiber.StatusBadRequest, "At least one genre (genreIds[]) is required")
	}

	enquiry := &models.FilmEnquiry{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(strings.ToLower(req.Email)),
		Role:            strings.TrimSpace(req.Role),
		Title:           strings.TrimSpace(req.Title),
		Synopsis:        req.Synopsis,
		ProductionHouse: strings.TrimSpace(req.ProductionHouse),
		Distributor:     strings.TrimSpace(req.Distributor),
		ReleaseDate:     releaseDate,
		ContentTypeID:   contentTypeID,
		GenreIDs:        genreIDs,
		CountryID:       countryID,
		LanguageID:      languageID,
		TrailerURL:      strings.TrimSpace(req.TrailerURL),
	}
	if _, err := h.enquiries.Insert(c.Context(), enquiry); err != nil {
		return internalError(c, err)
	}
	return created(c, "Film enquiry created successfully", enquiry)
}

func (h *FilmEnquiryHandler) List(c *fiber.Ctx) error {
	items, err := h.enquiries.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, "Film enquiries fetched successfully", items)
}

func (h *FilmEnquiryHandler) Get(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Film enquiry not found")
	}
	item, err := h.enquiries.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Film enquiry not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Film enquiry fetched successfully", item)
}

func (h *FilmEnquiryHandler) Update(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Film enquiry not found")
	}

	var req dto.UpdateFilmEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		set["email"] = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.Role != nil {
		set["role"] = strings.TrimSpace(*req.Role)
	}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Synopsis != nil {
		set["synopsis"] = *req.Synopsis
	}
	if req.ProductionHouse != nil {
		set["productionHouse"] = strings.TrimSpace(*req.ProductionHouse)
	}
	if req.Distributor != nil {
		set["distributor"] = strings.TrimSpace(*req.Distributor)
	}
	if req.ReleaseDate != nil {
		releaseDate, okDate := dto.ParseDate(*req.ReleaseDate)
		if !okDate {
			return fail(c, fiber.StatusBadRequest, "Invalid releaseDate")
		}
		set["releaseDate"] = releaseDate
	}
	if req.TrailerURL != nil {
		set["trailerUrl"] = strings.TrimSpace(*req.TrailerURL)
	}
	if req.ContentTypeID != nil {
		contentTypeID, okRef := parseID(*req.ContentTypeID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid contentTypeId")
		}
		set["contentTypeId"] = contentTypeID
	}
	if req.CountryID != nil {
		countryID, okRef := parseID(*req.CountryID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid countryId")
		}
		set["countryId"] = countryID
	}
	if req.LanguageID != nil {
		languageID, okRef := parseID(*req.LanguageID)
		if !okRef {
			return fail(c, fiber.StatusBadRequest, "Invalid languageId")
		}
		set["languageId"] = languageID
	}
	if req.GenreIDs != nil {
		genreIDs, okIDs := parseIDList(req.GenreIDs)
		if !okIDs {
			return fail(c, fiber.StatusBadRequest, "Invalid genre id")
		}
		if len(genreIDs) == 0 {
			return fail(c, fiber.StatusBadRequest, "At least one genre (genreIds[]) is required")
		}
		set["genreIds"] = genreIDs
	}
	if len(set) == 0 {
		return fail(c, fiber.StatusBadRequest, "No fields to update")
	}

	updated, err := h.enquiries.UpdateByID(c.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Film enquiry not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Film enquiry updated successfully", updated)
}

func (h *FilmEnquiryHandler) Delete(c *fiber.Ctx) error {
	id, okID := parseID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "Film enquiry not found")
	}
	if err := h.enquiries.Delete(c.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail(c, fiber.StatusNotFound, "Film enquiry not found")
		}
		return internalError(c, err)
	}
	return ok(c, "Film enquiry deleted successfully", nil)
}
