package dto

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo is the public view of an account.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse carries the access token after register/login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
