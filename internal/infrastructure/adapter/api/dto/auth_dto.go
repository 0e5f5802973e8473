package dto

import (
	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// RegisterRequest represents the API request for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
}

// LoginRequest represents the API request for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public representation of an account
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Balance  string `json:"balance"`
	Admin    bool   `json:"admin,omitempty"`
}

// SessionResponse carries a fresh session token plus the account
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse maps a user entity onto its API shape
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Balance:  user.FormattedBalance(),
		Admin:    user.Admin,
	}
}
