package task

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/taskmanager/domain/task"
	"github.com/example/taskmanager/events"
	"github.com/example/taskmanager/pkg/apperr"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

const maxTitleLength = 200

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, apperr.Validation("title is required")
	}
	if len(title) > maxTitleLength {
		return TaskResponse{}, apperr.Validation("title exceeds %d characters", maxTitleLength)
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		parsed, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return TaskResponse{}, err
		}
		priority = parsed
	}

	status := domain.StatusPending
	if req.Status != "" {
		parsed, err := domain.ParseStatus(req.Status)
		if err != nil {
			return TaskResponse{}, err
		}
		status = parsed
	}

	if req.OwnerID == "" {
		return TaskResponse{}, apperr.Validation("owner_id is required")
	}
	valid, err := m.userPort.ValidateUser(ctx, req.OwnerID)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("failed to validate owner: %w", err)
	}
	if !valid {
		return TaskResponse{}, apperr.Validation("unknown owner: %s", req.OwnerID)
	}

	now := time.Now()
	newTask := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     req.DueDate,
		OwnerID:     req.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.repo.Create(newTask); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	m.publishCreated(newTask)
	return toTaskResponse(newTask), nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	filter := Filter{OwnerID: req.OwnerID}
	if req.Status != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			return ListTasksResponse{}, err
		}
		filter.Status = &status
	}
	if req.Priority != "" {
		priority, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return ListTasksResponse{}, err
		}
		filter.Priority = &priority
	}

	tasks, err := m.repo.Find(filter)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response, nil
}

// updateTask handles the update-task service request. All requested fields
// are validated before any of them is applied, so an invalid enum value
// leaves the stored record untouched.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return TaskResponse{}, apperr.Validation("title cannot be empty")
		}
		if len(title) > maxTitleLength {
			return TaskResponse{}, apperr.Validation("title exceeds %d characters", maxTitleLength)
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		priority, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return TaskResponse{}, err
		}
		task.Priority = priority
	}
	justCompleted := false
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return TaskResponse{}, err
		}
		if status == domain.StatusCompleted && task.Status != domain.StatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
			justCompleted = true
		}
		task.Status = status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	task.UpdatedAt = time.Now()
	if err := m.repo.Save(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	if justCompleted {
		m.publishCompleted(task)
	}
	return toTaskResponse(task), nil
}

// deleteTask handles the delete-task service request. Deleting an unknown id
// is an error, never a silent success.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.TaskID}, err
	}
	if err := m.repo.Delete(task.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.TaskID}, err
	}

	m.publishDeleted(task)
	return DeleteTaskResponse{Deleted: true, ID: req.TaskID}, nil
}

// completeTask handles the complete-task service request.
func (m *TaskModule) completeTask(_ context.Context, req CompleteTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	now := time.Now()
	task.Status = domain.StatusCompleted
	task.CompletedAt = &now
	task.UpdatedAt = now
	if err := m.repo.Save(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to complete task: %w", err)
	}

	m.publishCompleted(task)
	return toTaskResponse(task), nil
}

// Event publishing is best-effort: failures are logged, never surfaced.

func (m *TaskModule) publishCreated(task *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		Priority:  string(task.Priority),
		Status:    string(task.Status),
		OwnerID:   task.OwnerID,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
	}
}

func (m *TaskModule) publishCompleted(task *domain.Task) {
	if m.eventBus == nil || task.CompletedAt == nil {
		return
	}
	event := events.TaskCompletedEvent{
		TaskID:      task.ID,
		Title:       task.Title,
		OwnerID:     task.OwnerID,
		CompletedAt: *task.CompletedAt,
	}
	if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", task.ID, err)
	}
}

func (m *TaskModule) publishDeleted(task *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		OwnerID:   task.OwnerID,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", task.ID, err)
	}
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}
}
