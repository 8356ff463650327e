package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/taskmanager/modules/activity"
	"github.com/example/taskmanager/modules/analytics"
	"github.com/example/taskmanager/modules/api"
	"github.com/example/taskmanager/modules/task"
	"github.com/example/taskmanager/modules/user"
	"github.com/example/taskmanager/modules/weather"
	"github.com/example/taskmanager/pkg/storage"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager ===")

	logLevel := mono.LogLevelInfo
	if storage.DebugFromEnv() {
		logLevel = mono.LogLevelDebug
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies.
	app.Register(user.NewModule())      // owner entity, no dependencies
	app.Register(activity.NewModule())  // event consumer (subscribes to task events)
	app.Register(task.NewModule())      // core domain (depends on user, emits events)
	app.Register(weather.NewModule())   // provider passthrough + lookup log
	app.Register(analytics.NewModule()) // read-side summary (depends on task)
	app.Register(api.NewModule())       // driving adapter (fiber HTTP server)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (default http://localhost:3000):")
	log.Println("  POST   /api/v1/tasks              - Create a task")
	log.Println("  GET    /api/v1/tasks              - List tasks (?status=&priority=&owner_id=)")
	log.Println("  GET    /api/v1/tasks/:id          - Get a task by ID")
	log.Println("  PUT    /api/v1/tasks/:id          - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id          - Delete a task")
	log.Println("  POST   /api/v1/tasks/:id/complete - Complete a task")
	log.Println("  GET    /api/v1/weather/:city      - Live weather lookup (logged)")
	log.Println("  GET    /api/v1/weather/logs       - Recent lookup history")
	log.Println("  GET    /api/v1/analytics          - Task summary + charts")
	log.Println("  GET    /api/v1/activity           - Task activity feed")
	log.Println("  POST   /api/v1/users              - Create a user")
	log.Println("  GET    /api/v1/users              - List users")
	log.Println("  GET    /health                    - Health check")
	log.Println("")
	log.Println("Configuration (environment):")
	log.Println("  DB_PATH          - SQLite file (default taskmanager.db)")
	log.Println("  WEATHER_API_KEY  - OpenWeatherMap API key")
	log.Println("  WEATHER_BASE_URL - provider override (default api.openweathermap.org)")
	log.Println("  PORT             - HTTP port (default 3000)")
	log.Println("  DEBUG            - 'true' enables query/request logging")
	log.Println("")
	log.Println("Demo Users Available:")
	log.Println("  - user-1: Alice Johnson (alice@example.com)")
	log.Println("  - user-2: Bob Smith (bob@example.com)")
	log.Println("  - user-3: Charlie Brown (charlie@example.com)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
