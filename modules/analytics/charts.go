package analytics

import (
	"bytes"
	"encoding/base64"
	"fmt"

	domain "github.com/example/taskmanager/domain/task"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart rendering is pure: counts in, encoded PNG out. No rendering state is
// shared between calls, so concurrent summaries are safe.

const chartSize = 512

var statusColors = map[domain.Status]drawing.Color{
	domain.StatusCompleted:  drawing.ColorFromHex("4caf50"),
	domain.StatusPending:    drawing.ColorFromHex("ff9800"),
	domain.StatusInProgress: drawing.ColorFromHex("2196f3"),
}

var priorityColors = map[domain.Priority]drawing.Color{
	domain.PriorityLow:    drawing.ColorFromHex("4caf50"),
	domain.PriorityMedium: drawing.ColorFromHex("ff9800"),
	domain.PriorityHigh:   drawing.ColorFromHex("f44336"),
}

// renderStatusPie renders the status distribution as a pie chart. Zero-count
// statuses are omitted; with no tasks at all it returns an empty string.
func renderStatusPie(byStatus map[string]int) (string, error) {
	values := make([]chart.Value, 0, 3)
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted} {
		count := byStatus[string(status)]
		if count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: string(status),
			Value: float64(count),
			Style: chart.Style{FillColor: statusColors[status]},
		})
	}
	if len(values) == 0 {
		return "", nil
	}

	pie := chart.PieChart{
		Title:  "Task Status Distribution",
		Width:  chartSize,
		Height: chartSize,
		Values: values,
	}
	return encodePNG(func(buf *bytes.Buffer) error { return pie.Render(chart.PNG, buf) })
}

// renderPriorityBar renders the priority distribution as a bar chart, one bar
// per priority including zero-count ones. Empty string when no tasks exist.
func renderPriorityBar(byPriority map[string]int) (string, error) {
	total := 0
	maxCount := 0
	bars := make([]chart.Value, 0, 3)
	for _, priority := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh} {
		count := byPriority[string(priority)]
		total += count
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Label: string(priority),
			Value: float64(count),
			Style: chart.Style{FillColor: priorityColors[priority]},
		})
	}
	if total == 0 {
		return "", nil
	}

	bar := chart.BarChart{
		Title:    "Task Priority Distribution",
		Width:    chartSize,
		Height:   chartSize,
		BarWidth: 80,
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) + 1},
		},
	}
	return encodePNG(func(buf *bytes.Buffer) error { return bar.Render(chart.PNG, buf) })
}

func encodePNG(render func(*bytes.Buffer) error) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
