package dto

type CreateRefEntityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateRefEntityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateCrewMemberRequest struct {
	Name           string `json:"name"`
	Biography      string `json:"biography"`
	ProfilePicture string `json:"profilePicture"`
	Description    string `json:"description"`
}

type UpdateCrewMemberRequest struct {
	Name           *string `json:"name"`
	Biography      *string `json:"biography"`
	ProfilePicture *string `json:"profilePicture"`
	Description    *string `json:"description"`
}
