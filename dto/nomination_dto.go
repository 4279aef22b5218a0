package dto

type CreateNominationRequest struct {
	SubmissionID    string `json:"submissionId"`
	AwardCategoryID string `json:"awardCategoryId"`
	Year            int    `json:"year"`
	IsWinner        bool   `json:"isWinner"`
	CrewMemberID    string `json:"crewMemberId"`
}

type UpdateNominationRequest struct {
	SubmissionID    *string `json:"submissionId"`
	AwardCategoryID *string `json:"awardCategoryId"`
	Year            *int    `json:"year"`
	IsWinner        *bool   `json:"isWinner"`
	CrewMemberID    *string `json:"crewMemberId"`
}
