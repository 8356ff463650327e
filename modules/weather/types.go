package weather

import (
	"context"

	domain "github.com/example/taskmanager/domain/weather"
)

// LookupWeatherRequest is the request for a live weather lookup.
type LookupWeatherRequest struct {
	City string `json:"city"`
}

// LookupWeatherResponse is the normalized weather payload.
type LookupWeatherResponse struct {
	Report domain.Report `json:"report"`
}

// RecentLogsRequest is the request for recent lookup history.
type RecentLogsRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RecentLogsResponse is the response containing recent weather logs.
type RecentLogsResponse struct {
	Logs  []domain.Log `json:"logs"`
	Total int          `json:"total"`
}

// WeatherPort defines the interface for weather operations (hexagonal port).
type WeatherPort interface {
	Lookup(ctx context.Context, city string) (*domain.Report, error)
	RecentLogs(ctx context.Context, limit int) (*RecentLogsResponse, error)
}
