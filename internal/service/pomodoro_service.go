package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "focusdo/internal/errors"
	"focusdo/internal/model"
	"focusdo/internal/repository"
)

// Summary aggregates a user's sessions over a trailing window.
type Summary struct {
	Sessions     int            `json:"sessions"`
	TotalMinutes int            `json:"total_minutes"`
	ByTodo       map[string]int `json:"by_todo"`
}

// PomodoroService implements the focus-session lifecycle.
type PomodoroService interface {
	Start(ctx context.Context, ownerID uint, todoID *uint, durationMinutes int, note string) (*model.Pomodoro, error)
	Stop(ctx context.Context, ownerID, pomodoroID uint) (*model.Pomodoro, error)
	Summarize(ctx context.Context, ownerID uint, days int) (*Summary, error)
}

type pomodoroService struct {
	pomodoros repository.PomodoroRepository
	todos     repository.TodoRepository
}

// NewPomodoroService builds a PomodoroService. The todo repository is used
// to verify ownership of a linked todo on start.
func NewPomodoroService(pomodoros repository.PomodoroRepository, todos repository.TodoRepository) PomodoroService {
	return &pomodoroService{pomodoros: pomodoros, todos: todos}
}

func (s *pomodoroService) Start(ctx context.Context, ownerID uint, todoID *uint, durationMinutes int, note string) (*model.Pomodoro, error) {
	if todoID != nil {
		if _, err := s.todos.FindByID(ctx, ownerID, *todoID); err != nil {
			return nil, notFoundOr(err, apperrors.ErrTodoNotFound)
		}
	}

	pomodoro := &model.Pomodoro{
		OwnerID:         ownerID,
		TodoID:          todoID,
		StartedAt:       time.Now().UTC(),
		DurationMinutes: durationMinutes,
		Note:            note,
	}
	if err := s.pomodoros.Create(ctx, pomodoro); err != nil {
		return nil, fmt.Errorf("create pomodoro: %w", err)
	}
	return pomodoro, nil
}

// Stop ends a running session and records the elapsed whole minutes.
// Stopping an already-ended session is a no-op returning the stored record.
func (s *pomodoroService) Stop(ctx context.Context, ownerID, pomodoroID uint) (*model.Pomodoro, error) {
	pomodoro, err := s.pomodoros.FindByID(ctx, ownerID, pomodoroID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrPomodoroNotFound)
	}
	if pomodoro.Ended() {
		return pomodoro, nil
	}

	now := time.Now().UTC()
	pomodoro.EndedAt = &now
	pomodoro.ActualMinutes = actualMinutes(pomodoro.StartedAt, now)
	if err := s.pomodoros.Save(ctx, pomodoro); err != nil {
		return nil, fmt.Errorf("save pomodoro: %w", err)
	}
	return pomodoro, nil
}

func (s *pomodoroService) Summarize(ctx context.Context, ownerID uint, days int) (*Summary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	sessions, err := s.pomodoros.ListStartedSince(ctx, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summary := &Summary{
		Sessions: len(sessions),
		ByTodo:   map[string]int{},
	}
	for _, session := range sessions {
		summary.TotalMinutes += session.ActualMinutes
		if session.TodoID != nil {
			key := strconv.FormatUint(uint64(*session.TodoID), 10)
			summary.ByTodo[key] += session.ActualMinutes
		}
	}
	return summary, nil
}

// actualMinutes floors the elapsed time to whole minutes.
func actualMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}
