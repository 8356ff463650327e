package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/example/taskmanager/pkg/apperr"
)

// upstreamTimeout bounds how long one lookup may hold its request open.
const upstreamTimeout = 10 * time.Second

// DefaultBaseURL is the OpenWeatherMap endpoint used when WEATHER_BASE_URL is
// not set.
const DefaultBaseURL = "http://api.openweathermap.org"

// currentConditions is the subset of the OpenWeatherMap current-weather
// response this service consumes.
type currentConditions struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// providerError is the error body OpenWeatherMap returns on non-200 responses.
type providerError struct {
	Message string `json:"message"`
}

// Client calls the weather provider. Every call is a live upstream request:
// no retry, no cache.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a provider client with an explicit upstream timeout.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: upstreamTimeout},
	}
}

// Current fetches current conditions for a city in metric units. Provider
// failures of any shape come back as upstream errors carrying the provider
// status; a missing API key is a configuration error, not an upstream one.
func (c *Client) Current(ctx context.Context, city string) (*currentConditions, error) {
	if c.apiKey == "" {
		return nil, apperr.Internal("weather API key not configured")
	}

	endpoint := fmt.Sprintf("%s/data/2.5/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Upstream(0, "weather provider unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var perr providerError
		message := resp.Status
		if decodeErr := json.NewDecoder(resp.Body).Decode(&perr); decodeErr == nil && perr.Message != "" {
			message = perr.Message
		}
		return nil, apperr.Upstream(resp.StatusCode, "%s", message)
	}

	var conditions currentConditions
	if err := json.NewDecoder(resp.Body).Decode(&conditions); err != nil {
		return nil, apperr.Upstream(resp.StatusCode, "malformed provider response: %v", err)
	}
	if len(conditions.Weather) == 0 {
		return nil, apperr.Upstream(resp.StatusCode, "provider response missing weather conditions")
	}

	return &conditions, nil
}
