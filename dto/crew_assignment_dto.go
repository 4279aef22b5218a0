package dto

type CreateCrewAssignmentRequest struct {
	SubmissionID string `json:"submissionId"`
	CrewMemberID string `json:"crewMemberId"`
	CrewRoleID   string `json:"crewRoleId"`
}

// SubmissionID is deliberately absent: reassigning a row to a different
// submission would bypass the ownership check done at create time.
type UpdateCrewAssignmentRequest struct {
	CrewMemberID *string `json:"crewMemberId"`
	CrewRoleID   *string `json:"crewRoleId"`
}
