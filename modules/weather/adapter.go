package weather

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/taskmanager/domain/weather"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// weatherAdapter wraps ServiceContainer for type-safe cross-module
// communication.
type weatherAdapter struct {
	container mono.ServiceContainer
}

// NewWeatherAdapter creates a new adapter for weather services.
// container is the ServiceContainer from the weather module received via
// SetDependencyServiceContainer.
func NewWeatherAdapter(container mono.ServiceContainer) WeatherPort {
	if container == nil {
		panic("weather adapter requires non-nil ServiceContainer")
	}
	return &weatherAdapter{container: container}
}

// Lookup performs a live weather lookup via the lookup-weather service.
func (a *weatherAdapter) Lookup(ctx context.Context, city string) (*domain.Report, error) {
	req := LookupWeatherRequest{City: city}
	var resp LookupWeatherResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "lookup-weather", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("lookup-weather service call failed: %w", err)
	}
	return &resp.Report, nil
}

// RecentLogs retrieves recent lookup history via the recent-logs service.
func (a *weatherAdapter) RecentLogs(ctx context.Context, limit int) (*RecentLogsResponse, error) {
	req := RecentLogsRequest{Limit: limit}
	var resp RecentLogsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "recent-logs", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("recent-logs service call failed: %w", err)
	}
	return &resp, nil
}
