package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/example/taskmanager/modules/activity"
	"github.com/example/taskmanager/modules/analytics"
	"github.com/example/taskmanager/modules/task"
	"github.com/example/taskmanager/modules/user"
	"github.com/example/taskmanager/modules/weather"
	"github.com/example/taskmanager/pkg/storage"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const defaultPort = 3000

// APIModule is the driving adapter that exposes REST endpoints. It calls into
// the domain modules through their port interfaces.
type APIModule struct {
	app       *fiber.App
	tasks     task.TaskPort
	users     user.UserPort
	weather   weather.WeatherPort
	analytics analytics.AnalyticsPort
	activity  activity.ActivityPort
	port      int
	debug     bool
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule from environment configuration.
func NewModule() *APIModule {
	port := defaultPort
	if raw := os.Getenv("PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}
	return &APIModule{
		port:  port,
		debug: storage.DebugFromEnv(),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"task", "user", "weather", "analytics", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.tasks = task.NewTaskAdapter(container)
	case "user":
		m.users = user.NewUserAdapter(container)
	case "weather":
		m.weather = weather.NewWeatherAdapter(container)
	case "analytics":
		m.analytics = analytics.NewAnalyticsAdapter(container)
	case "activity":
		m.activity = activity.NewActivityAdapter(container)
	}
}

// initApp builds the fiber application and routes. Split from Start so
// handler tests can exercise the app without binding a port.
func (m *APIModule) initApp() {
	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrorHandler,
	})

	m.app.Use(recover.New())
	if m.debug {
		m.app.Use(fiberlogger.New())
	}

	m.setupRoutes()
}

// Start initializes the fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.tasks == nil || m.users == nil || m.weather == nil || m.analytics == nil || m.activity == nil {
		return fmt.Errorf("api module dependencies not fully set")
	}

	m.initApp()

	// Server availability is verified via the Health method.
	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// fiberErrorHandler handles errors escaping route handlers.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
