package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// CreateUserRequest adds a shop login
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"omitempty,max=255"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// SetUserActiveRequest enables or disables a login
type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
