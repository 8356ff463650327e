package task

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/taskmanager/domain/task"
	"github.com/example/taskmanager/modules/user"
	"github.com/example/taskmanager/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserPort implements user.UserPort with a fixed validation answer.
type stubUserPort struct {
	valid bool
}

func (s *stubUserPort) CreateUser(context.Context, *user.CreateUserRequest) (*user.UserResponse, error) {
	return nil, nil
}
func (s *stubUserPort) GetUser(context.Context, string) (*user.UserResponse, error) {
	return nil, nil
}
func (s *stubUserPort) ListUsers(context.Context) (*user.ListUsersResponse, error) {
	return nil, nil
}
func (s *stubUserPort) ValidateUser(context.Context, string) (bool, error) {
	return s.valid, nil
}
func (s *stubUserPort) DeleteUser(context.Context, string) error {
	return nil
}

// newTestModule builds a TaskModule against an in-memory database. The event
// bus stays nil, so publishing is skipped.
func newTestModule(t *testing.T) (*TaskModule, string) {
	t.Helper()
	db, owner := setupTestDB(t)
	module := &TaskModule{
		repo:     NewRepository(db),
		userPort: &stubUserPort{valid: true},
	}
	return module, owner.ID
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	module, ownerID := newTestModule(t)

	t.Run("valid input", func(t *testing.T) {
		resp, err := module.createTask(ctx, CreateTaskRequest{
			Title:   "Write spec",
			OwnerID: ownerID,
		}, nil)
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "medium", resp.Priority)
		assert.True(t, resp.CreatedAt.Equal(resp.UpdatedAt), "created_at and updated_at must match at creation")
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := module.createTask(ctx, CreateTaskRequest{Title: "  ", OwnerID: ownerID}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("invalid priority", func(t *testing.T) {
		_, err := module.createTask(ctx, CreateTaskRequest{
			Title:    "x",
			Priority: "urgent",
			OwnerID:  ownerID,
		}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := module.createTask(ctx, CreateTaskRequest{
			Title:   "x",
			Status:  "done",
			OwnerID: ownerID,
		}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unknown owner", func(t *testing.T) {
		module.userPort = &stubUserPort{valid: false}
		defer func() { module.userPort = &stubUserPort{valid: true} }()

		_, err := module.createTask(ctx, CreateTaskRequest{Title: "x", OwnerID: "ghost"}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := module.createTask(ctx, CreateTaskRequest{Title: "x"}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	module, ownerID := newTestModule(t)

	created, err := module.createTask(ctx, CreateTaskRequest{Title: "Original", OwnerID: ownerID}, nil)
	require.NoError(t, err)

	t.Run("invalid status leaves record unchanged", func(t *testing.T) {
		bad := "done"
		_, err := module.updateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Status: &bad}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))

		stored, err := module.getTask(ctx, GetTaskRequest{TaskID: created.ID}, nil)
		require.NoError(t, err)
		assert.Equal(t, "pending", stored.Status)
		assert.True(t, stored.UpdatedAt.Equal(created.UpdatedAt), "updated_at must not move on a rejected update")
	})

	t.Run("invalid enum after valid field still rejects atomically", func(t *testing.T) {
		title := "Should not stick"
		bad := "urgent"
		_, err := module.updateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Title: &title, Priority: &bad}, nil)
		require.Error(t, err)

		stored, err := module.getTask(ctx, GetTaskRequest{TaskID: created.ID}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Original", stored.Title)
	})

	t.Run("partial update refreshes updated_at", func(t *testing.T) {
		status := "in_progress"
		updated, err := module.updateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Status: &status}, nil)
		require.NoError(t, err)

		assert.Equal(t, "in_progress", updated.Status)
		assert.Equal(t, "Original", updated.Title, "unset fields stay unchanged")
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		status := "pending"
		_, err := module.updateTask(ctx, UpdateTaskRequest{TaskID: "missing", Status: &status}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	module, ownerID := newTestModule(t)

	created, err := module.createTask(ctx, CreateTaskRequest{Title: "Delete me", OwnerID: ownerID}, nil)
	require.NoError(t, err)

	resp, err := module.deleteTask(ctx, DeleteTaskRequest{TaskID: created.ID}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	_, err = module.getTask(ctx, GetTaskRequest{TaskID: created.ID}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = module.deleteTask(ctx, DeleteTaskRequest{TaskID: created.ID}, nil)
	require.Error(t, err, "deleting an already-deleted id must not silently succeed")
	assert.True(t, apperr.IsNotFound(err))
}

func TestCompleteTask(t *testing.T) {
	ctx := context.Background()
	module, ownerID := newTestModule(t)

	created, err := module.createTask(ctx, CreateTaskRequest{Title: "Finish me", OwnerID: ownerID}, nil)
	require.NoError(t, err)

	completed, err := module.completeTask(ctx, CompleteTaskRequest{TaskID: created.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)

	_, err = module.completeTask(ctx, CompleteTaskRequest{TaskID: "missing"}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	module, ownerID := newTestModule(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := module.createTask(ctx, CreateTaskRequest{Title: title, OwnerID: ownerID}, nil)
		require.NoError(t, err)
	}
	completed, err := module.createTask(ctx, CreateTaskRequest{Title: "d", Status: "completed", OwnerID: ownerID}, nil)
	require.NoError(t, err)

	t.Run("filter by status", func(t *testing.T) {
		resp, err := module.listTasks(ctx, ListTasksRequest{Status: "completed"}, nil)
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, completed.ID, resp.Tasks[0].ID)
	})

	t.Run("invalid filter value", func(t *testing.T) {
		_, err := module.listTasks(ctx, ListTasksRequest{Status: "finished"}, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("all tasks", func(t *testing.T) {
		resp, err := module.listTasks(ctx, ListTasksRequest{}, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Total)
	})
}

// TestTaskLifecycleScenario walks the full create → complete → delete flow.
func TestTaskLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	module, ownerID := newTestModule(t)

	created, err := module.createTask(ctx, CreateTaskRequest{
		Title:    "Write spec",
		Priority: "high",
		Status:   "pending",
		OwnerID:  ownerID,
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "pending", created.Status)

	// Let the clock move so updated_at measurably advances.
	time.Sleep(5 * time.Millisecond)

	status := "completed"
	updated, err := module.updateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Status: &status}, nil)
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt))

	fetched, err := module.getTask(ctx, GetTaskRequest{TaskID: created.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "completed", fetched.Status)

	_, err = module.deleteTask(ctx, DeleteTaskRequest{TaskID: created.ID}, nil)
	require.NoError(t, err)

	_, err = module.getTask(ctx, GetTaskRequest{TaskID: created.ID}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
