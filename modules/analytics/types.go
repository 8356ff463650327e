package analytics

import (
	"context"
	"time"

	"github.com/example/taskmanager/modules/task"
)

// SummarizeRequest is the request for an analytics summary. OwnerID narrows
// the summary to one owner; empty means global.
type SummarizeRequest struct {
	OwnerID string `json:"owner_id,omitempty"`
}

// SummaryResponse is the derived, non-persisted analytics payload.
type SummaryResponse struct {
	Total          int                 `json:"total"`
	ByStatus       map[string]int      `json:"by_status"`
	ByPriority     map[string]int      `json:"by_priority"`
	CompletionRate float64             `json:"completion_rate"`
	RecentTasks    []task.TaskResponse `json:"recent_tasks"`
	// Base64-encoded PNGs; empty when there are no tasks to chart.
	ChartStatus   string    `json:"chart_status,omitempty"`
	ChartPriority string    `json:"chart_priority,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// AnalyticsPort defines the interface for analytics operations (hexagonal
// port).
type AnalyticsPort interface {
	Summarize(ctx context.Context, ownerID string) (*SummaryResponse, error)
}
