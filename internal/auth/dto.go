package auth

import "github.com/frahmantamala/hr-management/internal"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserResponse(u *internal.User) UserResponse {
	return UserResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}
