package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/taskmanager/domain/weather"
	"github.com/example/taskmanager/pkg/apperr"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// lookupWeather handles the lookup-weather service request: one live provider
// call, one log row on success, nothing written on failure.
func (m *WeatherModule) lookupWeather(ctx context.Context, req LookupWeatherRequest, _ *mono.Msg) (LookupWeatherResponse, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return LookupWeatherResponse{}, apperr.Validation("city is required")
	}

	conditions, err := m.client.Current(ctx, city)
	if err != nil {
		return LookupWeatherResponse{}, err
	}

	entry := &domain.Log{
		ID:          uuid.New().String(),
		City:        conditions.Name,
		Temperature: conditions.Main.Temp,
		Description: conditions.Weather[0].Description,
		Humidity:    conditions.Main.Humidity,
		Timestamp:   time.Now(),
	}
	if err := m.repo.Create(entry); err != nil {
		return LookupWeatherResponse{}, fmt.Errorf("failed to store weather log: %w", err)
	}

	return LookupWeatherResponse{
		Report: domain.Report{
			City:        entry.City,
			Temperature: entry.Temperature,
			Description: entry.Description,
			Humidity:    entry.Humidity,
			FeelsLike:   conditions.Main.FeelsLike,
			Pressure:    conditions.Main.Pressure,
			WindSpeed:   conditions.Wind.Speed,
			Country:     conditions.Sys.Country,
			LoggedAt:    entry.Timestamp,
		},
	}, nil
}

// recentLogs handles the recent-logs service request.
func (m *WeatherModule) recentLogs(_ context.Context, req RecentLogsRequest, _ *mono.Msg) (RecentLogsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	logs, err := m.repo.FindRecent(limit)
	if err != nil {
		return RecentLogsResponse{}, err
	}

	response := RecentLogsResponse{
		Logs:  make([]domain.Log, 0, len(logs)),
		Total: len(logs),
	}
	for _, entry := range logs {
		response.Logs = append(response.Logs, *entry)
	}
	return response, nil
}
