package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

// CrewEntry is one person in the embedded crew payload of a public
// submission.
type CrewEntry struct {
	FullName     string `bson:"fullName" json:"fullName"`
	Role         string `bson:"role,omitempty" json:"role,omitempty"`
	ImageURL     string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	InstagramURL string `bson:"instagramUrl,omitempty" json:"instagramUrl,omitempty"`
	Biography    string `bson:"biography,omitempty" json:"biography,omitempty"`
	Order        int    `bson:"order" json:"order"`
}

// CrewGroups is the proposed-crew payload submitted through the public
// form, before any curated crew assignments exist.
type CrewGroups struct {
	Actors    []CrewEntry `bson:"actors" json:"actors"`
	Directors []CrewEntry `bson:"directors" json:"directors"`
	Producers []CrewEntry `bson:"producers" json:"producers"`
	Other     []CrewEntry `bson:"other" json:"other"`
}

// Submission is the aggregate root: one film entry moving through
// SUBMITTED -> APPROVED/REJECTED. Genres are kept both as the genreIds
// array and as submission_genres join rows; the join table drives the
// aggregation reads.
type Submission struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	CreatorID         primitive.ObjectID   `bson:"creatorId" json:"creatorId"`
	Title             string               `bson:"title" json:"title"`
	Synopsis          string               `bson:"synopsis,omitempty" json:"synopsis,omitempty"`
	ReleaseDate       time.Time            `bson:"releaseDate" json:"releaseDate"`
	PotraitImageURL   string               `bson:"potraitImageUrl,omitempty" json:"potraitImageUrl,omitempty"`
	LandscapeImageURL string               `bson:"landscapeImageUrl,omitempty" json:"landscapeImageUrl,omitempty"`
	ImdbURL           string               `bson:"imdbUrl,omitempty" json:"imdbUrl,omitempty"`
	TrailerURL        string               `bson:"trailerUrl,omitempty" json:"trailerUrl,omitempty"`
	ProductionHouse   string               `bson:"productionHouse,omitempty" json:"productionHouse,omitempty"`
	Distributor       string               `bson:"distributor,omitempty" json:"distributor,omitempty"`
	Status            string               `bson:"status" json:"status"`
	IsFeatured        bool                 `bson:"isFeatured" json:"isFeatured"`
	ContentTypeID     primitive.ObjectID   `bson:"contentTypeId" json:"contentTypeId"`
	LanguageID        primitive.ObjectID   `bson:"languageId" json:"languageId"`
	CountryID         primitive.ObjectID   `bson:"countryId" json:"countryId"`
	GenreIDs          []primitive.ObjectID `bson:"genreIds" json:"genreIds"`
	Crew              *CrewGroups          `bson:"crew,omitempty" json:"crew,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt         time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SubmissionGenre is one (submission, genre) join row in
// "submission_genres".
type SubmissionGenre struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SubmissionID primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	GenreID      primitive.ObjectID `bson:"genreId" json:"genreId"`
}

// CrewAssignment links a curated crew member to a submission in one
// role. The (submissionId, crewMemberId, crewRoleId) triple is unique.
type CrewAssignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SubmissionID primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	CrewMemberID primitive.ObjectID `bson:"crewMemberId" json:"crewMemberId"`
	CrewRoleID   primitive.ObjectID `bson:"crewRoleId" json:"crewRoleId"`
}

// Nomination associates a submission (optionally a crew member, e.g.
// Best Actor) with an award category and year. A nil CrewMemberID means
// the whole production is nominated.
type Nomination struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	SubmissionID    primitive.ObjectID  `bson:"submissionId" json:"submissionId"`
	AwardCategoryID primitive.ObjectID  `bson:"awardCategoryId" json:"awardCategoryId"`
	Year            int                 `bson:"year" json:"year"`
	IsWinner        bool                `bson:"isWinner" json:"isWinner"`
	CrewMemberID    *primitive.ObjectID `bson:"crewMemberId" json:"crewMemberId"`
}
