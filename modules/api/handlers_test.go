package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	weatherdomain "github.com/example/taskmanager/domain/weather"
	"github.com/example/taskmanager/modules/activity"
	"github.com/example/taskmanager/modules/analytics"
	"github.com/example/taskmanager/modules/task"
	"github.com/example/taskmanager/modules/user"
	"github.com/example/taskmanager/modules/weather"
	"github.com/example/taskmanager/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Port stubs. Each test points the relevant function at its scenario; the
// zero value returns not-found or empty results.

type stubTasks struct {
	createFn func(*task.CreateTaskRequest) (*task.TaskResponse, error)
	getFn    func(string) (*task.TaskResponse, error)
	listFn   func(*task.ListTasksRequest) (*task.ListTasksResponse, error)
	deleteFn func(string) error
}

func (s *stubTasks) CreateTask(_ context.Context, req *task.CreateTaskRequest) (*task.TaskResponse, error) {
	return s.createFn(req)
}
func (s *stubTasks) GetTask(_ context.Context, id string) (*task.TaskResponse, error) {
	if s.getFn == nil {
		return nil, apperr.NotFound("task not found")
	}
	return s.getFn(id)
}
func (s *stubTasks) ListTasks(_ context.Context, req *task.ListTasksRequest) (*task.ListTasksResponse, error) {
	if s.listFn == nil {
		return &task.ListTasksResponse{Tasks: []task.TaskResponse{}}, nil
	}
	return s.listFn(req)
}
func (s *stubTasks) UpdateTask(_ context.Context, req *task.UpdateTaskRequest) (*task.TaskResponse, error) {
	if req.Status != nil {
		if _, err := parseStatusForTest(*req.Status); err != nil {
			return nil, err
		}
	}
	return &task.TaskResponse{ID: req.TaskID, Status: "in_progress"}, nil
}
func (s *stubTasks) DeleteTask(_ context.Context, id string) error {
	if s.deleteFn == nil {
		return apperr.NotFound("task not found")
	}
	return s.deleteFn(id)
}
func (s *stubTasks) CompleteTask(_ context.Context, id string) (*task.TaskResponse, error) {
	now := time.Now()
	return &task.TaskResponse{ID: id, Status: "completed", CompletedAt: &now}, nil
}

func parseStatusForTest(value string) (string, error) {
	switch value {
	case "pending", "in_progress", "completed":
		return value, nil
	}
	return "", apperr.Validation("invalid status %q", value)
}

type stubUsers struct{}

func (s *stubUsers) CreateUser(_ context.Context, req *user.CreateUserRequest) (*user.UserResponse, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	return &user.UserResponse{ID: "u1", Name: req.Name, Email: req.Email, CreatedAt: time.Now()}, nil
}
func (s *stubUsers) GetUser(_ context.Context, id string) (*user.UserResponse, error) {
	return nil, apperr.NotFound("user not found")
}
func (s *stubUsers) ListUsers(context.Context) (*user.ListUsersResponse, error) {
	return &user.ListUsersResponse{Users: []user.UserResponse{}}, nil
}
func (s *stubUsers) ValidateUser(context.Context, string) (bool, error) {
	return true, nil
}
func (s *stubUsers) DeleteUser(context.Context, string) error {
	return apperr.NotFound("user not found")
}

type stubWeather struct {
	lookupFn func(string) (*weatherdomain.Report, error)
}

func (s *stubWeather) Lookup(_ context.Context, city string) (*weatherdomain.Report, error) {
	return s.lookupFn(city)
}
func (s *stubWeather) RecentLogs(context.Context, int) (*weather.RecentLogsResponse, error) {
	return &weather.RecentLogsResponse{Logs: []weatherdomain.Log{}}, nil
}

type stubAnalytics struct{}

func (s *stubAnalytics) Summarize(context.Context, string) (*analytics.SummaryResponse, error) {
	return &analytics.SummaryResponse{
		Total:       1,
		ByStatus:    map[string]int{"pending": 1},
		ByPriority:  map[string]int{"medium": 1},
		GeneratedAt: time.Now(),
	}, nil
}

type stubActivity struct{}

func (s *stubActivity) RecentActivity(context.Context, int) (*activity.RecentActivityResponse, error) {
	return &activity.RecentActivityResponse{Entries: []activity.Entry{}}, nil
}

// newTestAPI wires an APIModule with stub ports and an initialized fiber app.
func newTestAPI(t *testing.T, tasks task.TaskPort, wp weather.WeatherPort) *APIModule {
	t.Helper()
	if tasks == nil {
		tasks = &stubTasks{}
	}
	if wp == nil {
		wp = &stubWeather{lookupFn: func(string) (*weatherdomain.Report, error) {
			return &weatherdomain.Report{City: "London"}, nil
		}}
	}
	m := &APIModule{
		tasks:     tasks,
		users:     &stubUsers{},
		weather:   wp,
		analytics: &stubAnalytics{},
		activity:  &stubActivity{},
		port:      defaultPort,
	}
	m.initApp()
	return m
}

func doJSON(t *testing.T, m *APIModule, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.app.Test(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, payload
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Run("valid request returns 201", func(t *testing.T) {
		m := newTestAPI(t, &stubTasks{
			createFn: func(req *task.CreateTaskRequest) (*task.TaskResponse, error) {
				now := time.Now()
				return &task.TaskResponse{
					ID:        "t1",
					Title:     req.Title,
					Priority:  "medium",
					Status:    "pending",
					OwnerID:   req.OwnerID,
					CreatedAt: now,
					UpdatedAt: now,
				}, nil
			},
		}, nil)

		resp, payload := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title": "Write report", "owner_id": "user-1",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created task.TaskResponse
		require.NoError(t, json.Unmarshal(payload, &created))
		assert.Equal(t, "t1", created.ID)
		assert.Equal(t, "pending", created.Status)
	})

	t.Run("validation failure returns 400", func(t *testing.T) {
		m := newTestAPI(t, &stubTasks{
			createFn: func(*task.CreateTaskRequest) (*task.TaskResponse, error) {
				return nil, apperr.Validation("invalid priority")
			},
		}, nil)

		resp, payload := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title": "x", "priority": "urgent", "owner_id": "user-1",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(payload, &body))
		assert.Equal(t, "validation_error", body.Error)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		m := newTestAPI(t, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := m.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetTaskEndpoint(t *testing.T) {
	m := newTestAPI(t, nil, nil)

	resp, payload := doJSON(t, m, http.MethodGet, "/api/v1/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "not_found", body.Error)
}

func TestUpdateTaskEndpoint(t *testing.T) {
	m := newTestAPI(t, &stubTasks{}, nil)

	resp, payload := doJSON(t, m, http.MethodPut, "/api/v1/tasks/t1", map[string]any{
		"status": "done",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "validation_error", body.Error)
	assert.Contains(t, body.Message, "invalid status")
}

func TestDeleteTaskEndpoint(t *testing.T) {
	t.Run("existing task returns 204", func(t *testing.T) {
		m := newTestAPI(t, &stubTasks{
			deleteFn: func(string) error { return nil },
		}, nil)

		resp, _ := doJSON(t, m, http.MethodDelete, "/api/v1/tasks/t1", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		m := newTestAPI(t, nil, nil)

		resp, _ := doJSON(t, m, http.MethodDelete, "/api/v1/tasks/missing", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestWeatherEndpoint(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		m := newTestAPI(t, nil, &stubWeather{
			lookupFn: func(city string) (*weatherdomain.Report, error) {
				return &weatherdomain.Report{
					City:        city,
					Temperature: 18.3,
					Description: "scattered clouds",
					Humidity:    60,
					LoggedAt:    time.Now(),
				}, nil
			},
		})

		resp, payload := doJSON(t, m, http.MethodGet, "/api/v1/weather/London", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var report weatherdomain.Report
		require.NoError(t, json.Unmarshal(payload, &report))
		assert.Equal(t, "London", report.City)
		assert.Equal(t, 18.3, report.Temperature)
	})

	t.Run("provider failure returns 502 with upstream status", func(t *testing.T) {
		m := newTestAPI(t, nil, &stubWeather{
			lookupFn: func(string) (*weatherdomain.Report, error) {
				return nil, apperr.Upstream(http.StatusNotFound, "city not found")
			},
		})

		resp, payload := doJSON(t, m, http.MethodGet, "/api/v1/weather/Nowhereville", nil)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(payload, &body))
		assert.Equal(t, "upstream_error", body.Error)
		assert.Equal(t, http.StatusNotFound, body.UpstreamStatus)
		assert.Contains(t, body.Message, "city not found")
	})

	t.Run("logs route is not shadowed by the city parameter", func(t *testing.T) {
		m := newTestAPI(t, nil, &stubWeather{
			lookupFn: func(string) (*weatherdomain.Report, error) {
				t.Error("lookup must not handle the /weather/logs path")
				return nil, nil
			},
		})

		resp, payload := doJSON(t, m, http.MethodGet, "/api/v1/weather/logs", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body weather.RecentLogsResponse
		require.NoError(t, json.Unmarshal(payload, &body))
		assert.Equal(t, 0, body.Total)
	})
}

func TestAnalyticsEndpoint(t *testing.T) {
	m := newTestAPI(t, nil, nil)

	resp, payload := doJSON(t, m, http.MethodGet, "/api/v1/analytics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body analytics.SummaryResponse
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.ByStatus["pending"])
}

func TestUserEndpoints(t *testing.T) {
	m := newTestAPI(t, nil, nil)

	t.Run("create user returns 201", func(t *testing.T) {
		resp, payload := doJSON(t, m, http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Dana", "email": "dana@example.com",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created user.UserResponse
		require.NoError(t, json.Unmarshal(payload, &created))
		assert.Equal(t, "Dana", created.Name)
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		resp, _ := doJSON(t, m, http.MethodPost, "/api/v1/users", map[string]any{
			"email": "dana@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		resp, _ := doJSON(t, m, http.MethodGet, "/api/v1/users/missing", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthEndpoint(t *testing.T) {
	m := newTestAPI(t, nil, nil)

	resp, payload := doJSON(t, m, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "healthy", body.Status)
}
