package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RefEntity is the shared shape of the flat reference collections:
// genres, countries, languages, content_types, crew_roles and
// award_categories.
type RefEntity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// CrewMember is a curated person record referenced by crew assignments
// and nominations.
type CrewMember struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Biography      string             `bson:"biography,omitempty" json:"biography,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
}
