package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	domain "github.com/example/taskmanager/domain/user"
	"github.com/example/taskmanager/pkg/apperr"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createUser handles the create-user service request.
func (m *UserModule) createUser(_ context.Context, req CreateUserRequest, _ *mono.Msg) (UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return UserResponse{}, apperr.Validation("name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return UserResponse{}, apperr.Validation("invalid email address %q", req.Email)
	}

	exists, err := m.repo.EmailExists(req.Email)
	if err != nil {
		return UserResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return UserResponse{}, apperr.Validation("user with email %q already exists", req.Email)
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.Create(user); err != nil {
		return UserResponse{}, fmt.Errorf("failed to save user: %w", err)
	}

	return toUserResponse(user), nil
}

// getUser handles the get-user service request.
func (m *UserModule) getUser(_ context.Context, req GetUserRequest, _ *mono.Msg) (UserResponse, error) {
	user, err := m.repo.FindByID(req.UserID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// listUsers handles the list-users service request.
func (m *UserModule) listUsers(_ context.Context, _ ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	users, err := m.repo.FindAll()
	if err != nil {
		return ListUsersResponse{}, err
	}

	response := ListUsersResponse{
		Users: make([]UserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, user := range users {
		response.Users = append(response.Users, toUserResponse(user))
	}
	return response, nil
}

// validateUser handles the validate-user service request.
func (m *UserModule) validateUser(_ context.Context, req ValidateUserRequest, _ *mono.Msg) (ValidateUserResponse, error) {
	exists, err := m.repo.Exists(req.UserID)
	if err != nil {
		return ValidateUserResponse{}, err
	}
	return ValidateUserResponse{Valid: exists}, nil
}

// deleteUser handles the delete-user service request. Owned tasks are removed
// by the database cascade.
func (m *UserModule) deleteUser(_ context.Context, req DeleteUserRequest, _ *mono.Msg) (DeleteUserResponse, error) {
	if err := m.repo.Delete(req.UserID); err != nil {
		return DeleteUserResponse{Deleted: false, ID: req.UserID}, err
	}
	return DeleteUserResponse{Deleted: true, ID: req.UserID}, nil
}

// toUserResponse converts a User entity to a UserResponse.
func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
