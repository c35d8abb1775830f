package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "focusdo/internal/errors"
	"focusdo/internal/export"
	"focusdo/internal/model"
	"focusdo/internal/repository"
)

// TodoCreate carries the fields for a new todo. Dates arrive already
// normalized; defaults are applied at the request boundary.
type TodoCreate struct {
	Title           string
	Notes           string
	Priority        int
	DueDate         *time.Time
	PlanAt          *time.Time
	EstimateMinutes int
	Tags            []string
}

// DateField distinguishes "leave unchanged" (Set false) from "set to this
// value or to null" (Set true) for the nullable date columns.
type DateField struct {
	Set   bool
	Value *time.Time
}

// TodoPatch is a sparse update: nil pointer fields are left untouched.
type TodoPatch struct {
	Title           *string
	Notes           *string
	Completed       *bool
	Priority        *int
	DueDate         DateField
	PlanAt          DateField
	EstimateMinutes *int
	Tags            *[]string
}

// StepPatch is a sparse update for a checklist step.
type StepPatch struct {
	Text  *string
	Done  *bool
	Order *int
}

// TodoService implements todo and checklist operations plus the exports.
type TodoService interface {
	List(ctx context.Context, ownerID uint, filter repository.TodoFilter) ([]model.Todo, error)
	Create(ctx context.Context, ownerID uint, input TodoCreate) (*model.Todo, error)
	Update(ctx context.Context, ownerID, id uint, patch TodoPatch) (*model.Todo, error)
	Delete(ctx context.Context, ownerID, id uint) (bool, error)

	AddStep(ctx context.Context, ownerID, todoID uint, text string, order int) (*model.Step, error)
	UpdateStep(ctx context.Context, ownerID, stepID uint, patch StepPatch) (*model.Step, error)
	DeleteStep(ctx context.Context, ownerID, stepID uint) (bool, error)

	ExportICS(ctx context.Context, ownerID uint) (string, error)
	ExportCSV(ctx context.Context, ownerID uint) ([]byte, error)
}

type todoService struct {
	todos repository.TodoRepository
}

// NewTodoService builds a TodoService over the repository.
func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) List(ctx context.Context, ownerID uint, filter repository.TodoFilter) ([]model.Todo, error) {
	return s.todos.List(ctx, ownerID, filter)
}

func (s *todoService) Create(ctx context.Context, ownerID uint, input TodoCreate) (*model.Todo, error) {
	todo := &model.Todo{
		OwnerID:         ownerID,
		Title:           input.Title,
		Notes:           input.Notes,
		Completed:       false,
		Priority:        input.Priority,
		DueDate:         input.DueDate,
		PlanAt:          input.PlanAt,
		EstimateMinutes: input.EstimateMinutes,
		Steps:           []model.Step{},
		Tags:            []model.Tag{},
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	if len(input.Tags) > 0 {
		if err := s.applyTags(ctx, todo, input.Tags); err != nil {
			return nil, err
		}
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, ownerID, id uint, patch TodoPatch) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrTodoNotFound)
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Notes != nil {
		todo.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		todo.Priority = *patch.Priority
	}
	if patch.DueDate.Set {
		todo.DueDate = patch.DueDate.Value
	}
	if patch.PlanAt.Set {
		todo.PlanAt = patch.PlanAt.Value
	}
	if patch.EstimateMinutes != nil {
		todo.EstimateMinutes = *patch.EstimateMinutes
	}

	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("save todo: %w", err)
	}
	if patch.Tags != nil {
		if err := s.applyTags(ctx, todo, *patch.Tags); err != nil {
			return nil, err
		}
	}
	return todo, nil
}

// Delete is idempotent: a missing or non-owned id reports deleted=false
// without error.
func (s *todoService) Delete(ctx context.Context, ownerID, id uint) (bool, error) {
	return s.todos.Delete(ctx, ownerID, id)
}

func (s *todoService) AddStep(ctx context.Context, ownerID, todoID uint, text string, order int) (*model.Step, error) {
	todo, err := s.todos.FindByID(ctx, ownerID, todoID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrTodoNotFound)
	}

	step := &model.Step{
		TodoID: todo.ID,
		Text:   text,
		Done:   false,
		Order:  order,
	}
	if err := s.todos.CreateStep(ctx, step); err != nil {
		return nil, fmt.Errorf("create step: %w", err)
	}
	return step, nil
}

func (s *todoService) UpdateStep(ctx context.Context, ownerID, stepID uint, patch StepPatch) (*model.Step, error) {
	step, err := s.todos.FindStep(ctx, ownerID, stepID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrStepNotFound)
	}

	if patch.Text != nil {
		step.Text = *patch.Text
	}
	if patch.Done != nil {
		step.Done = *patch.Done
	}
	if patch.Order != nil {
		step.Order = *patch.Order
	}

	if err := s.todos.SaveStep(ctx, step); err != nil {
		return nil, fmt.Errorf("save step: %w", err)
	}
	return step, nil
}

func (s *todoService) DeleteStep(ctx context.Context, ownerID, stepID uint) (bool, error) {
	return s.todos.DeleteStep(ctx, ownerID, stepID)
}

func (s *todoService) ExportICS(ctx context.Context, ownerID uint) (string, error) {
	todos, err := s.todos.ListWithDueDate(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("list todos: %w", err)
	}
	return export.TodosToICS(todos), nil
}

func (s *todoService) ExportCSV(ctx context.Context, ownerID uint) ([]byte, error) {
	todos, err := s.todos.List(ctx, ownerID, repository.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return export.TodosToCSV(todos)
}

func (s *todoService) applyTags(ctx context.Context, todo *model.Todo, names []string) error {
	tags, err := s.todos.FindOrCreateTags(ctx, names)
	if err != nil {
		return fmt.Errorf("resolve tags: %w", err)
	}
	if err := s.todos.ReplaceTags(ctx, todo, tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	todo.Tags = tags
	return nil
}

func notFoundOr(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
