package dto

// Request payload for register
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// Request payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthUser is the public view of a user returned by the auth endpoints.
type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"fullName,omitempty"`
}

// AuthResponse pairs the user with a fresh access token. The refresh
// token travels in the httpOnly cookie, never in the body.
type AuthResponse struct {
	User        AuthUser `json:"user"`
	AccessToken string   `json:"accessToken"`
}
