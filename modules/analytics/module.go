package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/taskmanager/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AnalyticsModule computes read-side task statistics and chart artifacts. It
// holds no state of its own: everything is derived from the task module on
// demand.
type AnalyticsModule struct {
	taskPort task.TaskPort
}

// Compile-time interface checks.
var _ mono.Module = (*AnalyticsModule)(nil)
var _ mono.ServiceProviderModule = (*AnalyticsModule)(nil)
var _ mono.DependentModule = (*AnalyticsModule)(nil)

// NewModule creates a new AnalyticsModule.
func NewModule() *AnalyticsModule {
	return &AnalyticsModule{}
}

// Name returns the module name.
func (m *AnalyticsModule) Name() string {
	return "analytics"
}

// Dependencies returns the list of module dependencies.
func (m *AnalyticsModule) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *AnalyticsModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.taskPort = task.NewTaskAdapter(container)
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AnalyticsModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "summarize", json.Unmarshal, json.Marshal, m.summarize,
	); err != nil {
		return fmt.Errorf("failed to register summarize service: %w", err)
	}

	log.Printf("[analytics] Registered services: summarize")
	return nil
}

// Start verifies dependencies are wired.
func (m *AnalyticsModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}
	log.Println("[analytics] Module started (depends on: task)")
	return nil
}

// Stop shuts down the module.
func (m *AnalyticsModule) Stop(_ context.Context) error {
	log.Println("[analytics] Module stopped")
	return nil
}
