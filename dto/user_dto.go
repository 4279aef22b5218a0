package dto

// Self-service profile view for /users/me.
type ProfileResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
	PhoneNumber    string `json:"phoneNumber"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"fullName"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	PhoneNumber    *string `json:"phoneNumber"`
}
