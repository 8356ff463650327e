package api

import (
	"github.com/example/taskmanager/modules/task"
	"github.com/example/taskmanager/modules/user"
	"github.com/example/taskmanager/pkg/apperr"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
	tasks.Post("/:id/complete", m.completeTask)

	users := api.Group("/users")
	users.Post("/", m.createUser)
	users.Get("/", m.listUsers)
	users.Get("/:id", m.getUser)
	users.Delete("/:id", m.deleteUser)

	// /weather/logs must be registered before the :city parameter route.
	api.Get("/weather/logs", m.weatherLogs)
	api.Get("/weather/:city", m.lookupWeather)

	api.Get("/analytics", m.getAnalytics)
	api.Get("/activity", m.getActivity)
}

// errorJSON maps a classified error onto the HTTP taxonomy: validation 400,
// not-found 404, upstream 502, everything else 500.
func errorJSON(c *fiber.Ctx, err error) error {
	decoded := apperr.Decode(err)

	status := fiber.StatusInternalServerError
	code := "internal_error"
	switch decoded.Kind {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
		code = "validation_error"
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
		code = "not_found"
	case apperr.KindUpstream:
		status = fiber.StatusBadGateway
		code = "upstream_error"
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:          code,
		Message:        decoded.Message,
		UpstreamStatus: decoded.UpstreamStatus,
	})
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// createTask handles POST /api/v1/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, apperr.Validation("invalid request body"))
	}

	resp, err := m.tasks.CreateTask(c.Context(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// getTask handles GET /api/v1/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	resp, err := m.tasks.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// listTasks handles GET /api/v1/tasks with optional status/priority/owner_id
// filters.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	resp, err := m.tasks.ListTasks(c.Context(), &task.ListTasksRequest{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		OwnerID:  c.Query("owner_id"),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// updateTask handles PUT /api/v1/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, apperr.Validation("invalid request body"))
	}

	resp, err := m.tasks.UpdateTask(c.Context(), &task.UpdateTaskRequest{
		TaskID:      c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// deleteTask handles DELETE /api/v1/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	if err := m.tasks.DeleteTask(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// completeTask handles POST /api/v1/tasks/:id/complete.
func (m *APIModule) completeTask(c *fiber.Ctx) error {
	resp, err := m.tasks.CompleteTask(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// createUser handles POST /api/v1/users.
func (m *APIModule) createUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, apperr.Validation("invalid request body"))
	}

	resp, err := m.users.CreateUser(c.Context(), &user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// listUsers handles GET /api/v1/users.
func (m *APIModule) listUsers(c *fiber.Ctx) error {
	resp, err := m.users.ListUsers(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// getUser handles GET /api/v1/users/:id.
func (m *APIModule) getUser(c *fiber.Ctx) error {
	resp, err := m.users.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// deleteUser handles DELETE /api/v1/users/:id. Owned tasks are removed by the
// database cascade.
func (m *APIModule) deleteUser(c *fiber.Ctx) error {
	if err := m.users.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// lookupWeather handles GET /api/v1/weather/:city.
func (m *APIModule) lookupWeather(c *fiber.Ctx) error {
	resp, err := m.weather.Lookup(c.Context(), c.Params("city"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// weatherLogs handles GET /api/v1/weather/logs.
func (m *APIModule) weatherLogs(c *fiber.Ctx) error {
	resp, err := m.weather.RecentLogs(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// getAnalytics handles GET /api/v1/analytics with an optional owner_id scope.
func (m *APIModule) getAnalytics(c *fiber.Ctx) error {
	resp, err := m.analytics.Summarize(c.Context(), c.Query("owner_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// getActivity handles GET /api/v1/activity.
func (m *APIModule) getActivity(c *fiber.Ctx) error {
	resp, err := m.activity.RecentActivity(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
