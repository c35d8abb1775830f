package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"focusdo/internal/auth"
	"focusdo/internal/dates"
	"focusdo/internal/model"
	"focusdo/internal/repository"
	"focusdo/internal/service"
)

// TodoHandler handles todo, step and export endpoints.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// OptionalDate distinguishes an absent JSON field from one explicitly sent.
// null clears the date, a recognized date string sets it, and anything
// unparseable is skipped per the lenient date policy.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		o.Set, o.Value = true, nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if t := dates.ParseAny(s); t != nil {
		o.Set, o.Value = true, t
	}
	return nil
}

// CreateTodoRequest represents a new todo.
type CreateTodoRequest struct {
	Title           string   `json:"title" validate:"required"`
	Notes           string   `json:"notes"`
	Priority        int      `json:"priority" validate:"omitempty,gte=1,lte=3"`
	DueDate         string   `json:"due_date"`
	PlanAt          string   `json:"plan_at"`
	EstimateMinutes int      `json:"estimate_minutes" validate:"omitempty,gte=5,lte=600"`
	Tags            []string `json:"tags"`
}

// UpdateTodoRequest is a sparse update; absent fields leave stored values
// untouched.
type UpdateTodoRequest struct {
	Title           *string      `json:"title"`
	Notes           *string      `json:"notes"`
	Completed       *bool        `json:"completed"`
	Priority        *int         `json:"priority" validate:"omitempty,gte=1,lte=3"`
	DueDate         OptionalDate `json:"due_date"`
	PlanAt          OptionalDate `json:"plan_at"`
	EstimateMinutes *int         `json:"estimate_minutes" validate:"omitempty,gte=5,lte=600"`
	Tags            *[]string    `json:"tags"`
}

// CreateStepRequest represents a new checklist step.
type CreateStepRequest struct {
	Text  string `json:"text" validate:"required"`
	Order int    `json:"order"`
}

// UpdateStepRequest is a sparse step update.
type UpdateStepRequest struct {
	Text  *string `json:"text"`
	Done  *bool   `json:"done"`
	Order *int    `json:"order"`
}

// DeleteResponse reports the outcome of an idempotent delete.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
	ID      uint `json:"id"`
}

// List godoc
// @Summary List the caller's todos
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param filter query string false "all | done | pending | urgent"
// @Success 200 {array} model.Todo
// @Failure 401 {object} errors.ErrorResponse
// @Router /todos/ [get]
func (h *TodoHandler) List(c echo.Context) error {
	user := auth.MustUser(c)
	filter := repository.ParseTodoFilter(c.QueryParam("filter"))

	todos, err := h.todoService.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, todos)
}

// Create godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTodoRequest true "Todo data"
// @Success 201 {object} model.Todo
// @Failure 400 {object} errors.ErrorResponse
// @Router /todos/ [post]
func (h *TodoHandler) Create(c echo.Context) error {
	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Priority == 0 {
		req.Priority = model.PriorityDefault
	}
	if req.EstimateMinutes == 0 {
		req.EstimateMinutes = model.DefaultEstimateMinutes
	}

	user := auth.MustUser(c)
	todo, err := h.todoService.Create(c.Request().Context(), user.ID, service.TodoCreate{
		Title:           req.Title,
		Notes:           req.Notes,
		Priority:        req.Priority,
		DueDate:         dates.ParseAny(req.DueDate),
		PlanAt:          dates.ParseAny(req.PlanAt),
		EstimateMinutes: req.EstimateMinutes,
		Tags:            req.Tags,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, todo)
}

// Update godoc
// @Summary Update a todo (sparse)
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Param request body UpdateTodoRequest true "Fields to change"
// @Success 200 {object} model.Todo
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := auth.MustUser(c)
	todo, err := h.todoService.Update(c.Request().Context(), user.ID, id, service.TodoPatch{
		Title:           req.Title,
		Notes:           req.Notes,
		Completed:       req.Completed,
		Priority:        req.Priority,
		DueDate:         service.DateField{Set: req.DueDate.Set, Value: req.DueDate.Value},
		PlanAt:          service.DateField{Set: req.PlanAt.Set, Value: req.PlanAt.Value},
		EstimateMinutes: req.EstimateMinutes,
		Tags:            req.Tags,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete godoc
// @Summary Delete a todo (idempotent)
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {object} DeleteResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user := auth.MustUser(c)
	deleted, err := h.todoService.Delete(c.Request().Context(), user.ID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted, ID: id})
}

// AddStep godoc
// @Summary Add a checklist step to a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Param request body CreateStepRequest true "Step data"
// @Success 201 {object} model.Step
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id}/steps [post]
func (h *TodoHandler) AddStep(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req CreateStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := auth.MustUser(c)
	step, err := h.todoService.AddStep(c.Request().Context(), user.ID, id, req.Text, req.Order)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, step)
}

// UpdateStep godoc
// @Summary Update a checklist step (sparse)
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param step_id path int true "Step ID"
// @Param request body UpdateStepRequest true "Fields to change"
// @Success 200 {object} model.Step
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/steps/{step_id} [put]
func (h *TodoHandler) UpdateStep(c echo.Context) error {
	stepID, err := parseID(c, "step_id")
	if err != nil {
		return err
	}
	var req UpdateStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user := auth.MustUser(c)
	step, err := h.todoService.UpdateStep(c.Request().Context(), user.ID, stepID, service.StepPatch{
		Text:  req.Text,
		Done:  req.Done,
		Order: req.Order,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, step)
}

// DeleteStep godoc
// @Summary Delete a checklist step (idempotent)
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param step_id path int true "Step ID"
// @Success 200 {object} DeleteResponse
// @Router /todos/steps/{step_id} [delete]
func (h *TodoHandler) DeleteStep(c echo.Context) error {
	stepID, err := parseID(c, "step_id")
	if err != nil {
		return err
	}

	user := auth.MustUser(c)
	deleted, err := h.todoService.DeleteStep(c.Request().Context(), user.ID, stepID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted, ID: stepID})
}

// ExportICS godoc
// @Summary Export due-dated todos as an iCalendar feed
// @Tags todos
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string
// @Router /todos/calendar.ics [get]
func (h *TodoHandler) ExportICS(c echo.Context) error {
	user := auth.MustUser(c)
	ics, err := h.todoService.ExportICS(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, "text/calendar", []byte(ics))
}

// ExportCSV godoc
// @Summary Export all todos as a CSV attachment
// @Tags todos
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string
// @Router /todos/export.csv [get]
func (h *TodoHandler) ExportCSV(c echo.Context) error {
	user := auth.MustUser(c)
	data, err := h.todoService.ExportCSV(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=todos.csv`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
