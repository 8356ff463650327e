package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	domain "github.com/example/taskmanager/domain/user"
	"github.com/example/taskmanager/pkg/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// UserModule provides task-owner management services.
type UserModule struct {
	db     *gorm.DB
	repo   *Repository
	dbPath string
	debug  bool
}

// Compile-time interface checks.
var _ mono.Module = (*UserModule)(nil)
var _ mono.ServiceProviderModule = (*UserModule)(nil)
var _ mono.HealthCheckableModule = (*UserModule)(nil)

// NewModule creates a new UserModule.
func NewModule() *UserModule {
	return &UserModule{
		dbPath: storage.PathFromEnv(),
		debug:  storage.DebugFromEnv(),
	}
}

// Name returns the module name.
func (m *UserModule) Name() string {
	return "user"
}

// RegisterServices registers request-reply services in the service container.
func (m *UserModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-user", json.Unmarshal, json.Marshal, m.createUser,
	); err != nil {
		return fmt.Errorf("failed to register create-user service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.getUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-users", json.Unmarshal, json.Marshal, m.listUsers,
	); err != nil {
		return fmt.Errorf("failed to register list-users service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-user", json.Unmarshal, json.Marshal, m.validateUser,
	); err != nil {
		return fmt.Errorf("failed to register validate-user service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-user", json.Unmarshal, json.Marshal, m.deleteUser,
	); err != nil {
		return fmt.Errorf("failed to register delete-user service: %w", err)
	}

	log.Printf("[user] Registered services: create-user, get-user, list-users, validate-user, delete-user")
	return nil
}

// Start initializes the database connection and runs migrations.
func (m *UserModule) Start(_ context.Context) error {
	db, err := storage.Open(m.dbPath, m.debug)
	if err != nil {
		return err
	}
	m.db = db

	if err := m.db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	m.repo = NewRepository(m.db)

	if err := m.seedDemoUsers(); err != nil {
		return err
	}

	log.Printf("[user] Module started (database: %s)", m.dbPath)
	return nil
}

// seedDemoUsers inserts demo owners the first time the app runs, so the task
// API is usable immediately.
func (m *UserModule) seedDemoUsers() error {
	count, err := m.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	demo := []*domain.User{
		{ID: "user-1", Name: "Alice Johnson", Email: "alice@example.com", CreatedAt: now, UpdatedAt: now},
		{ID: "user-2", Name: "Bob Smith", Email: "bob@example.com", CreatedAt: now, UpdatedAt: now},
		{ID: "user-3", Name: "Charlie Brown", Email: "charlie@example.com", CreatedAt: now, UpdatedAt: now},
	}
	for _, user := range demo {
		if err := m.repo.Create(user); err != nil {
			return fmt.Errorf("failed to seed demo user %s: %w", user.ID, err)
		}
	}

	log.Printf("[user] Seeded %d demo users", len(demo))
	return nil
}

// Stop gracefully closes the database connection.
func (m *UserModule) Stop(_ context.Context) error {
	if err := storage.Close(m.db); err != nil {
		return err
	}
	log.Println("[user] Module stopped")
	return nil
}

// Health performs a health check on the user module.
func (m *UserModule) Health(ctx context.Context) mono.HealthStatus {
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
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}
