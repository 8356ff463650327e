package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// RecentActivityRequest is the request for the activity feed.
type RecentActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RecentActivityResponse is the response containing feed entries, newest
// first.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// ActivityPort defines the interface for activity feed reads (hexagonal
// port).
type ActivityPort interface {
	RecentActivity(ctx context.Context, limit int) (*RecentActivityResponse, error)
}

// activityAdapter wraps ServiceContainer for type-safe cross-module
// communication.
type activityAdapter struct {
	container mono.ServiceContainer
}

// NewActivityAdapter creates a new adapter for activity services.
func NewActivityAdapter(container mono.ServiceContainer) ActivityPort {
	if container == nil {
		panic("activity adapter requires non-nil ServiceContainer")
	}
	return &activityAdapter{container: container}
}

// RecentActivity retrieves the activity feed via the recent-activity service.
func (a *activityAdapter) RecentActivity(ctx context.Context, limit int) (*RecentActivityResponse, error) {
	req := RecentActivityRequest{Limit: limit}
	var resp RecentActivityResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "recent-activity", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("recent-activity service call failed: %w", err)
	}
	return &resp, nil
}
