package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/taskmanager/domain/weather"
	"github.com/example/taskmanager/pkg/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// WeatherModule provides the weather provider passthrough and its append-only
// lookup log.
type WeatherModule struct {
	db      *gorm.DB
	repo    *Repository
	client  *Client
	dbPath  string
	debug   bool
	baseURL string
	apiKey  string
}

// Compile-time interface checks.
var _ mono.Module = (*WeatherModule)(nil)
var _ mono.ServiceProviderModule = (*WeatherModule)(nil)
var _ mono.HealthCheckableModule = (*WeatherModule)(nil)

// NewModule creates a new WeatherModule from environment configuration.
func NewModule() *WeatherModule {
	baseURL := os.Getenv("WEATHER_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &WeatherModule{
		dbPath:  storage.PathFromEnv(),
		debug:   storage.DebugFromEnv(),
		baseURL: baseURL,
		apiKey:  os.Getenv("WEATHER_API_KEY"),
	}
}

// Name returns the module name.
func (m *WeatherModule) Name() string {
	return "weather"
}

// RegisterServices registers request-reply services in the service container.
func (m *WeatherModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "lookup-weather", json.Unmarshal, json.Marshal, m.lookupWeather,
	); err != nil {
		return fmt.Errorf("failed to register lookup-weather service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-logs", json.Unmarshal, json.Marshal, m.recentLogs,
	); err != nil {
		return fmt.Errorf("failed to register recent-logs service: %w", err)
	}

	log.Printf("[weather] Registered services: lookup-weather, recent-logs")
	return nil
}

// Start initializes the database connection and the provider client.
func (m *WeatherModule) Start(_ context.Context) error {
	db, err := storage.Open(m.dbPath, m.debug)
	if err != nil {
		return err
	}
	m.db = db

	if err := m.db.AutoMigrate(&domain.Log{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	m.repo = NewRepository(m.db)
	m.client = NewClient(m.baseURL, m.apiKey)

	if m.apiKey == "" {
		log.Println("[weather] Warning: WEATHER_API_KEY not set, lookups will fail")
	}

	log.Printf("[weather] Module started (provider: %s)", m.baseURL)
	return nil
}

// Stop gracefully closes the database connection.
func (m *WeatherModule) Stop(_ context.Context) error {
	if err := storage.Close(m.db); err != nil {
		return err
	}
	log.Println("[weather] Module stopped")
	return nil
}

// Health performs a health check on the weather module.
func (m *WeatherModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"provider":       m.baseURL,
			"api_key_loaded": m.apiKey != "",
		},
	}
}
