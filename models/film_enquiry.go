package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilmEnquiry is a pre-submission lead captured from the public
// enquiry form. It is not linked to any Submission; approved enquirers
// are invited to the submission flow separately.
type FilmEnquiry struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string               `bson:"name" json:"name"`
	Email           string               `bson:"email" json:"email"`
	Role            string               `bson:"role" json:"role"`
	Title           string               `bson:"title" json:"title"`
	Synopsis        string               `bson:"synopsis" json:"synopsis"`
	ProductionHouse string               `bson:"productionHouse" json:"productionHouse"`
	Distributor     string               `bson:"distributor,omitempty" json:"distributor,omitempty"`
	ReleaseDate     time.Time            `bson:"releaseDate" json:"releaseDate"`
	ContentTypeID   primitive.ObjectID   `bson:"contentTypeId" json:"contentTypeId"`
	GenreIDs        []primitive.ObjectID `bson:"genreIds" json:"genreIds"`
	CountryID       primitive.ObjectID   `bson:"countryId" json:"countryId"`
	LanguageID      primitive.ObjectID   `bson:"languageId" json:"languageId"`
	TrailerURL      string               `bson:"trailerUrl" json:"trailerUrl"`
	CreatedAt       time.Time            `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt       time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
