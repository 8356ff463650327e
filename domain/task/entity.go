package task

import (
	"time"

	"github.com/example/taskmanager/domain/user"
	"github.com/example/taskmanager/pkg/apperr"
)

// Status represents the state of a task. It is a closed enumeration: values
// only enter the system through ParseStatus.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus validates a raw status value at the domain boundary.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", apperr.Validation("invalid status %q (must be pending, in_progress or completed)", s)
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a raw priority value at the domain boundary.
func ParsePriority(p string) (Priority, error) {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(p), nil
	}
	return "", apperr.Validation("invalid priority %q (must be low, medium or high)", p)
}

// Task is the core domain entity: a user-owned unit of work.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Priority    Priority   `gorm:"size:10;not null;default:medium" json:"priority"`
	Status      Status     `gorm:"size:15;not null;default:pending" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     string     `gorm:"size:36;not null;index" json:"owner_id"`
	Owner       *user.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
