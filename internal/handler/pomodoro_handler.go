package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"focusdo/internal/auth"
	"focusdo/internal/model"
	"focusdo/internal/service"
)

// Summary window bounds in days.
const (
	minSummaryDays     = 1
	maxSummaryDays     = 90
	defaultSummaryDays = 7
)

// PomodoroHandler handles focus-session endpoints.
type PomodoroHandler struct {
	pomodoroService service.PomodoroService
}

// NewPomodoroHandler creates a new pomodoro handler.
func NewPomodoroHandler(pomodoroService service.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{pomodoroService: pomodoroService}
}

// StartPomodoroRequest represents a session start.
type StartPomodoroRequest struct {
	TodoID          *uint  `json:"todo_id"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=5,lte=120"`
	Note            string `json:"note"`
}

// StopPomodoroRequest represents a session stop.
type StopPomodoroRequest struct {
	PomodoroID uint `json:"pomodoro_id" validate:"required"`
}

// Start godoc
// @Summary Start a focus session
// @Tags pomodoro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartPomodoroRequest true "Session data"
// @Success 200 {object} model.Pomodoro
// @Failure 404 {object} errors.ErrorResponse
// @Router /pomodoro/start [post]
func (h *PomodoroHandler) Start(c echo.Context) error {
	var req StartPomodoroRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = model.DefaultPomodoroMinutes
	}

	user := auth.MustUser(c)
	pomodoro, err := h.pomodoroService.Start(c.Request().Context(), user.ID, req.TodoID, req.DurationMinutes, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pomodoro)
}

// Stop godoc
// @Summary Stop a focus session (idempotent)
// @Tags pomodoro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StopPomodoroRequest true "Session to stop"
// @Success 200 {object} model.Pomodoro
// @Failure 404 {object} errors.ErrorResponse
// @Router /pomodoro/stop [post]
func (h *PomodoroHandler) Stop(c echo.Context) error {
	var req StopPomodoroRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := auth.MustUser(c)
	pomodoro, err := h.pomodoroService.Stop(c.Request().Context(), user.ID, req.PomodoroID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pomodoro)
}

// Summary godoc
// @Summary Aggregate sessions over a trailing window
// @Tags pomodoro
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (1-90, default 7)"
// @Success 200 {object} service.Summary
// @Failure 400 {object} errors.ErrorResponse
// @Router /pomodoro/summary [get]
func (h *PomodoroHandler) Summary(c echo.Context) error {
	days := defaultSummaryDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minSummaryDays || parsed > maxSummaryDays {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be between 1 and 90")
		}
		days = parsed
	}

	user := auth.MustUser(c)
	summary, err := h.pomodoroService.Summarize(c.Request().Context(), user.ID, days)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
