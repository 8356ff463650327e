package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/example/taskmanager/domain/task"
	"github.com/example/taskmanager/modules/task"
	"github.com/go-monolith/mono"
)

const recentTaskCount = 5

// summarize handles the summarize service request. It is a pure read over the
// task collection: counts, completion rate, the most recent tasks and two
// chart artifacts.
func (m *AnalyticsModule) summarize(ctx context.Context, req SummarizeRequest, _ *mono.Msg) (SummaryResponse, error) {
	listing, err := m.taskPort.ListTasks(ctx, &task.ListTasksRequest{OwnerID: req.OwnerID})
	if err != nil {
		return SummaryResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	byStatus := map[string]int{}
	byPriority := map[string]int{}
	for _, t := range listing.Tasks {
		byStatus[t.Status]++
		byPriority[t.Priority]++
	}

	total := listing.Total
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(byStatus[string(domain.StatusCompleted)]) / float64(total)
	}

	// Listing is newest-first, so the recent slice is a prefix.
	recent := listing.Tasks
	if len(recent) > recentTaskCount {
		recent = recent[:recentTaskCount]
	}

	response := SummaryResponse{
		Total:          total,
		ByStatus:       byStatus,
		ByPriority:     byPriority,
		CompletionRate: completionRate,
		RecentTasks:    recent,
		GeneratedAt:    time.Now(),
	}

	// Chart failures degrade the summary instead of failing it, matching the
	// read-only nature of the endpoint.
	if response.ChartStatus, err = renderStatusPie(byStatus); err != nil {
		log.Printf("[analytics] Warning: status chart failed: %v", err)
		response.ChartStatus = ""
	}
	if response.ChartPriority, err = renderPriorityBar(byPriority); err != nil {
		log.Printf("[analytics] Warning: priority chart failed: %v", err)
		response.ChartPriority = ""
	}

	return response, nil
}
