package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// analyticsAdapter wraps ServiceContainer for type-safe cross-module
// communication.
type analyticsAdapter struct {
	container mono.ServiceContainer
}

// NewAnalyticsAdapter creates a new adapter for analytics services.
// container is the ServiceContainer from the analytics module received via
// SetDependencyServiceContainer.
func NewAnalyticsAdapter(container mono.ServiceContainer) AnalyticsPort {
	if container == nil {
		panic("analytics adapter requires non-nil ServiceContainer")
	}
	return &analyticsAdapter{container: container}
}

// Summarize computes the aggregate summary via the summarize service.
func (a *analyticsAdapter) Summarize(ctx context.Context, ownerID string) (*SummaryResponse, error) {
	req := SummarizeRequest{OwnerID: ownerID}
	var resp SummaryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "summarize", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("summarize service call failed: %w", err)
	}
	return &resp, nil
}
