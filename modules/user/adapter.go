package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// userAdapter wraps ServiceContainer for type-safe cross-module communication.
type userAdapter struct {
	container mono.ServiceContainer
}

// NewUserAdapter creates a new adapter for user services.
// container is the ServiceContainer from the user module received via
// SetDependencyServiceContainer.
func NewUserAdapter(container mono.ServiceContainer) UserPort {
	if container == nil {
		panic("user adapter requires non-nil ServiceContainer")
	}
	return &userAdapter{container: container}
}

// CreateUser creates a user via the create-user service.
func (a *userAdapter) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create-user", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create-user service call failed: %w", err)
	}
	return &resp, nil
}

// GetUser retrieves a user by ID via the get-user service.
func (a *userAdapter) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	req := GetUserRequest{UserID: userID}
	var resp UserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user service call failed: %w", err)
	}
	return &resp, nil
}

// ListUsers lists all users via the list-users service.
func (a *userAdapter) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	req := ListUsersRequest{}
	var resp ListUsersResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-users", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-users service call failed: %w", err)
	}
	return &resp, nil
}

// ValidateUser checks if a user exists via the validate-user service.
func (a *userAdapter) ValidateUser(ctx context.Context, userID string) (bool, error) {
	req := ValidateUserRequest{UserID: userID}
	var resp ValidateUserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-user", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return false, fmt.Errorf("validate-user service call failed: %w", err)
	}
	return resp.Valid, nil
}

// DeleteUser deletes a user via the delete-user service.
func (a *userAdapter) DeleteUser(ctx context.Context, userID string) error {
	req := DeleteUserRequest{UserID: userID}
	var resp DeleteUserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete-user", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("delete-user service call failed: %w", err)
	}
	return nil
}
