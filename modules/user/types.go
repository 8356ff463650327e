package user

import (
	"context"
	"time"
)

// CreateUserRequest is the request for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents a user in responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GetUserRequest is the request for getting a user.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// ListUsersRequest is the request for listing users.
type ListUsersRequest struct{}

// ListUsersResponse is the response containing a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// ValidateUserRequest is the request for validating a user.
type ValidateUserRequest struct {
	UserID string `json:"user_id"`
}

// ValidateUserResponse is the response for validating a user.
type ValidateUserResponse struct {
	Valid bool `json:"valid"`
}

// DeleteUserRequest is the request for deleting a user.
type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

// DeleteUserResponse is the response after deleting a user.
type DeleteUserResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// UserPort defines the interface for user operations (hexagonal port).
type UserPort interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	GetUser(ctx context.Context, userID string) (*UserResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	ValidateUser(ctx context.Context, userID string) (bool, error)
	DeleteUser(ctx context.Context, userID string) error
}
