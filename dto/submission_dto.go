package dto

import (
	"strings"
	"time"

	"filmfest/models"
)

const maxCrewGroupSize = 200

// CreateSubmissionRequest covers both the authenticated and the public
// create form. Crew and ContactEmail are only honored on the public
// route.
type CreateSubmissionRequest struct {
	Title             string       `json:"title"`
	Synopsis          string       `json:"synopsis"`
	ReleaseDate       string       `json:"releaseDate"`
	PotraitImageURL   string       `json:"potraitImageUrl"`
	LandscapeImageURL string       `json:"landscapeImageUrl"`
	ImdbURL           string       `json:"imdbUrl"`
	TrailerURL        string       `json:"trailerUrl"`
	LanguageID        string       `json:"languageId"`
	CountryID         string       `json:"countryId"`
	ContentTypeID     string       `json:"contentTypeId"`
	GenreIDs          []string     `json:"genreIds"`
	ProductionHouse   string       `json:"productionHouse"`
	Distributor       string       `json:"distributor"`
	Crew              *CrewPayload `json:"crew"`
	ContactEmail      string       `json:"contactEmail"`
}

// UpdateSubmissionRequest applies only the fields present in the body.
type UpdateSubmissionRequest struct {
	Title             *string  `json:"title"`
	Synopsis          *string  `json:"synopsis"`
	ReleaseDate       *string  `json:"releaseDate"`
	PotraitImageURL   *string  `json:"potraitImageUrl"`
	LandscapeImageURL *string  `json:"landscapeImageUrl"`
	ImdbURL           *string  `json:"imdbUrl"`
	TrailerURL        *string  `json:"trailerUrl"`
	LanguageID        *string  `json:"languageId"`
	CountryID         *string  `json:"countryId"`
	ContentTypeID     *string  `json:"contentTypeId"`
	IsFeatured        *bool    `json:"isFeatured"`
	GenreIDs          []string `json:"genreIds"`
	ProductionHouse   *string  `json:"productionHouse"`
	Distributor       *string  `json:"distributor"`
}

// CrewPayload mirrors the four named groups of the public form.
type CrewPayload struct {
	Actors    []CrewEntryPayload `json:"actors"`
	Directors []CrewEntryPayload `json:"directors"`
	Producers []CrewEntryPayload `json:"producers"`
	Other     []CrewEntryPayload `json:"other"`
}

type CrewEntryPayload struct {
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
	ImageURL     string `json:"imageUrl"`
	InstagramURL string `json:"instagramUrl"`
	Biography    string `json:"biography"`
	Order        int    `json:"order"`
}

func normalizeGroup(entries []CrewEntryPayload) []models.CrewEntry {
	if len(entries) > maxCrewGroupSize {
		entries = entries[:maxCrewGroupSize]
	}
	out := make([]models.CrewEntry, 0, len(entries))
	for _, e := range entries {
		fullName := strings.TrimSpace(e.FullName)
		if fullName == "" {
			continue
		}
		out = append(out, models.CrewEntry{
			FullName:     fullName,
			Role:         strings.TrimSpace(e.Role),
			ImageURL:     strings.TrimSpace(e.ImageURL),
			InstagramURL: strings.TrimSpace(e.InstagramURL),
			Biography:    strings.TrimSpace(e.Biography),
			Order:        e.Order,
		})
	}
	return out
}

// Normalize caps each group at 200 entries and drops entries without a
// full name. A nil payload yields four empty groups.
func (p *CrewPayload) Normalize() models.CrewGroups {
	if p == nil {
		return models.CrewGroups{
			Actors:    []models.CrewEntry{},
			Directors: []models.CrewEntry{},
			Producers: []models.CrewEntry{},
			Other:     []models.CrewEntry{},
		}
	}
	return models.CrewGroups{
		Actors:    normalizeGroup(p.Actors),
		Directors: normalizeGroup(p.Directors),
		Producers: normalizeGroup(p.Producers),
		Other:     normalizeGroup(p.Other),
	}
}

// ParseDate accepts the date formats the forms send: RFC3339 or a bare
// yyyy-mm-dd.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
