package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
	"focusdo/internal/service"
)

// MockPomodoroService is a mock implementation of service.PomodoroService.
type MockPomodoroService struct {
	mock.Mock
}

func (m *MockPomodoroService) Start(ctx context.Context, ownerID uint, todoID *uint, durationMinutes int, note string) (*model.Pomodoro, error) {
	args := m.Called(ctx, ownerID, todoID, durationMinutes, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pomodoro), args.Error(1)
}

func (m *MockPomodoroService) Stop(ctx context.Context, ownerID, pomodoroID uint) (*model.Pomodoro, error) {
	args := m.Called(ctx, ownerID, pomodoroID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pomodoro), args.Error(1)
}

func (m *MockPomodoroService) Summarize(ctx context.Context, ownerID uint, days int) (*service.Summary, error) {
	args := m.Called(ctx, ownerID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}

func TestPomodoroHandler_Start_DefaultsDuration(t *testing.T) {
	mockService := new(MockPomodoroService)
	mockService.On("Start", mock.Anything, uint(42), (*uint)(nil), model.DefaultPomodoroMinutes, "").
		Return(&model.Pomodoro{ID: 1, DurationMinutes: model.DefaultPomodoroMinutes}, nil)

	h := NewPomodoroHandler(mockService)
	c, rec := newTestContext(t, http.MethodPost, "/pomodoro/start", `{}`)

	require.NoError(t, h.Start(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestPomodoroHandler_Start_RejectsDurationOutOfBounds(t *testing.T) {
	h := NewPomodoroHandler(new(MockPomodoroService))
	for _, body := range []string{
		`{"duration_minutes":4}`,
		`{"duration_minutes":121}`,
	} {
		c, _ := newTestContext(t, http.MethodPost, "/pomodoro/start", body)

		err := h.Start(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
}

func TestPomodoroHandler_Summary_DaysValidation(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedDays int
		wantBadReq   bool
	}{
		{name: "default window", query: "", expectedDays: 7},
		{name: "explicit window", query: "days=30", expectedDays: 30},
		{name: "zero rejected", query: "days=0", wantBadReq: true},
		{name: "too large rejected", query: "days=91", wantBadReq: true},
		{name: "garbage rejected", query: "days=week", wantBadReq: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPomodoroService)
			if !tt.wantBadReq {
				mockService.On("Summarize", mock.Anything, uint(42), tt.expectedDays).
					Return(&service.Summary{ByTodo: map[string]int{}}, nil)
			}

			h := NewPomodoroHandler(mockService)
			path := "/pomodoro/summary"
			if tt.query != "" {
				path += "?" + tt.query
			}
			c, rec := newTestContext(t, http.MethodGet, path, "")

			err := h.Summary(c)
			if tt.wantBadReq {
				require.Error(t, err)
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, http.StatusBadRequest, httpErr.Code)
				mockService.AssertNotCalled(t, "Summarize")
			} else {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				mockService.AssertExpectations(t)
			}
		})
	}
}
