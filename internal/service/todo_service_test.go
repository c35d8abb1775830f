package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "focusdo/internal/errors"
	"focusdo/internal/model"
	"focusdo/internal/repository"
)

// MockTodoRepository is a mock implementation of repository.TodoRepository.
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, ownerID, id uint) (*model.Todo, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) List(ctx context.Context, ownerID uint, filter repository.TodoFilter) ([]model.Todo, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListWithDueDate(ctx context.Context, ownerID uint) ([]model.Todo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) Save(ctx context.Context, todo *model.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, ownerID, id uint) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTodoRepository) CreateStep(ctx context.Context, step *model.Step) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockTodoRepository) FindStep(ctx context.Context, ownerID, stepID uint) (*model.Step, error) {
	args := m.Called(ctx, ownerID, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Step), args.Error(1)
}

func (m *MockTodoRepository) SaveStep(ctx context.Context, step *model.Step) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockTodoRepository) DeleteStep(ctx context.Context, ownerID, stepID uint) (bool, error) {
	args := m.Called(ctx, ownerID, stepID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTodoRepository) FindOrCreateTags(ctx context.Context, names []string) ([]model.Tag, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTodoRepository) ReplaceTags(ctx context.Context, todo *model.Todo, tags []model.Tag) error {
	args := m.Called(ctx, todo, tags)
	return args.Error(0)
}

func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestTodoService_Create_AppliesTags(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Todo")).Return(nil)
	mockRepo.On("FindOrCreateTags", mock.Anything, []string{"work", "deep"}).
		Return([]model.Tag{{ID: 1, Name: "work"}, {ID: 2, Name: "deep"}}, nil)
	mockRepo.On("ReplaceTags", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := NewTodoService(mockRepo)
	todo, err := service.Create(context.Background(), 42, TodoCreate{
		Title:           "write report",
		Priority:        model.PriorityDefault,
		EstimateMinutes: model.DefaultEstimateMinutes,
		Tags:            []string{"work", "deep"},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), todo.OwnerID)
	assert.False(t, todo.Completed)
	assert.Len(t, todo.Tags, 2)
	assert.Empty(t, todo.Steps)
	mockRepo.AssertExpectations(t)
}

func TestTodoService_Update_SparseFieldsOnly(t *testing.T) {
	due := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	existing := &model.Todo{
		ID: 7, OwnerID: 42, Title: "original", Notes: "keep me",
		Priority: model.PriorityLow, DueDate: timePtr(due), EstimateMinutes: 45,
	}

	mockRepo := new(MockTodoRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42), uint(7)).Return(existing, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Todo")).Return(nil)

	service := NewTodoService(mockRepo)
	updated, err := service.Update(context.Background(), 42, 7, TodoPatch{
		Completed: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, updated.Completed)
	// every other field is untouched
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "keep me", updated.Notes)
	assert.Equal(t, model.PriorityLow, updated.Priority)
	assert.Equal(t, 45, updated.EstimateMinutes)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))
	mockRepo.AssertExpectations(t)
}

func TestTodoService_Update_DateSetAndCleared(t *testing.T) {
	existing := &model.Todo{ID: 7, OwnerID: 42, Title: "t", DueDate: timePtr(time.Now())}
	newPlan := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockTodoRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42), uint(7)).Return(existing, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Todo")).Return(nil)

	service := NewTodoService(mockRepo)
	updated, err := service.Update(context.Background(), 42, 7, TodoPatch{
		DueDate: DateField{Set: true, Value: nil},
		PlanAt:  DateField{Set: true, Value: timePtr(newPlan)},
	})

	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
	require.NotNil(t, updated.PlanAt)
	assert.True(t, newPlan.Equal(*updated.PlanAt))
}

func TestTodoService_Update_NotOwnedIsNotFound(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42), uint(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTodoService(mockRepo)
	_, err := service.Update(context.Background(), 42, 9, TodoPatch{Title: strPtr("x")})

	assert.ErrorIs(t, err, apperrors.ErrTodoNotFound)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestTodoService_Delete_IdempotentOnMissing(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	mockRepo.On("Delete", mock.Anything, uint(42), uint(9)).Return(false, nil)

	service := NewTodoService(mockRepo)
	deleted, err := service.Delete(context.Background(), 42, 9)

	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTodoService_AddStep_RequiresOwnedTodo(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42), uint(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTodoService(mockRepo)
	_, err := service.AddStep(context.Background(), 42, 9, "first step", 0)

	assert.ErrorIs(t, err, apperrors.ErrTodoNotFound)
	mockRepo.AssertNotCalled(t, "CreateStep")
}

func TestTodoService_UpdateStep_Sparse(t *testing.T) {
	existing := &model.Step{ID: 3, TodoID: 7, Text: "original", Done: false, Order: 2}

	mockRepo := new(MockTodoRepository)
	mockRepo.On("FindStep", mock.Anything, uint(42), uint(3)).Return(existing, nil)
	mockRepo.On("SaveStep", mock.Anything, mock.AnythingOfType("*model.Step")).Return(nil)

	service := NewTodoService(mockRepo)
	updated, err := service.UpdateStep(context.Background(), 42, 3, StepPatch{Done: boolPtr(true)})

	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, "original", updated.Text)
	assert.Equal(t, 2, updated.Order)
}

func TestTodoService_UpdateStep_NotFound(t *testing.T) {
	mockRepo := new(MockTodoRepository)
	mockRepo.On("FindStep", mock.Anything, uint(42), uint(3)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTodoService(mockRepo)
	_, err := service.UpdateStep(context.Background(), 42, 3, StepPatch{Text: strPtr("x")})

	assert.ErrorIs(t, err, apperrors.ErrStepNotFound)
}

func TestTodoService_ExportICS_UsesDueDatedTodos(t *testing.T) {
	due := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	mockRepo := new(MockTodoRepository)
	mockRepo.On("ListWithDueDate", mock.Anything, uint(42)).Return([]model.Todo{
		{ID: 1, Title: "ship it", DueDate: timePtr(due), CreatedAt: due.AddDate(0, 0, -3)},
	}, nil)

	service := NewTodoService(mockRepo)
	ics, err := service.ExportICS(context.Background(), 42)

	require.NoError(t, err)
	assert.Contains(t, ics, "UID:todo-1@focusdo")
	assert.Contains(t, ics, "SUMMARY:ship it")
}
