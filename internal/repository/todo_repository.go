package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focusdo/internal/model"
)

// TodoFilter selects a subset of a user's todos.
type TodoFilter string

// Supported list filters.
const (
	FilterAll     TodoFilter = "all"
	FilterDone    TodoFilter = "done"
	FilterPending TodoFilter = "pending"
	FilterUrgent  TodoFilter = "urgent"
)

// ParseTodoFilter maps a query value to a filter, defaulting to all.
func ParseTodoFilter(s string) TodoFilter {
	switch TodoFilter(s) {
	case FilterDone, FilterPending, FilterUrgent:
		return TodoFilter(s)
	default:
		return FilterAll
	}
}

// TodoRepository defines persistence operations for todos, their steps and
// tags. Every lookup takes the owner's id; an unscoped path does not exist.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	FindByID(ctx context.Context, ownerID, id uint) (*model.Todo, error)
	List(ctx context.Context, ownerID uint, filter TodoFilter) ([]model.Todo, error)
	ListWithDueDate(ctx context.Context, ownerID uint) ([]model.Todo, error)
	Save(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, ownerID, id uint) (bool, error)

	CreateStep(ctx context.Context, step *model.Step) error
	FindStep(ctx context.Context, ownerID, stepID uint) (*model.Step, error)
	SaveStep(ctx context.Context, step *model.Step) error
	DeleteStep(ctx context.Context, ownerID, stepID uint) (bool, error)

	FindOrCreateTags(ctx context.Context, names []string) ([]model.Tag, error)
	ReplaceTags(ctx context.Context, todo *model.Todo, tags []model.Tag) error
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository builds a GORM-backed repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

// Create inserts the todo row alone; associations are managed explicitly
// through ReplaceTags and the step operations.
func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(todo).Error
}

func (r *todoRepository) FindByID(ctx context.Context, ownerID, id uint) (*model.Todo, error) {
	var todo model.Todo
	err := r.preloaded(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todo).Error
	if err != nil {
		return nil, err
	}
	normalizeTodo(&todo)
	return &todo, nil
}

func (r *todoRepository) List(ctx context.Context, ownerID uint, filter TodoFilter) ([]model.Todo, error) {
	q := r.preloaded(ctx).Where("owner_id = ?", ownerID)
	switch filter {
	case FilterDone:
		q = q.Where("completed = ?", true)
	case FilterPending:
		q = q.Where("completed = ?", false)
	case FilterUrgent:
		q = q.Where("priority = ?", model.PriorityUrgent)
	}

	var todos []model.Todo
	if err := q.Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	for i := range todos {
		normalizeTodo(&todos[i])
	}
	return todos, nil
}

func (r *todoRepository) ListWithDueDate(ctx context.Context, ownerID uint) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND due_date IS NOT NULL", ownerID).
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) Save(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(todo).Error
}

// Delete removes an owned todo together with its steps and tag links inside
// one transaction. Historical pomodoros survive with todo_id nulled out.
// Returns false without error when nothing matched.
func (r *todoRepository) Delete(ctx context.Context, ownerID, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todo model.Todo
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&todo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Model(&todo).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", todo.ID).Delete(&model.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Pomodoro{}).Where("todo_id = ?", todo.ID).Update("todo_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&todo).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *todoRepository) CreateStep(ctx context.Context, step *model.Step) error {
	return r.db.WithContext(ctx).Create(step).Error
}

// FindStep resolves a step through its parent todo so ownership is checked
// in the same query.
func (r *todoRepository) FindStep(ctx context.Context, ownerID, stepID uint) (*model.Step, error) {
	var step model.Step
	err := r.db.WithContext(ctx).
		Joins("JOIN todos ON todos.id = steps.todo_id").
		Where("steps.id = ? AND todos.owner_id = ?", stepID, ownerID).
		First(&step).Error
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *todoRepository) SaveStep(ctx context.Context, step *model.Step) error {
	return r.db.WithContext(ctx).Save(step).Error
}

func (r *todoRepository) DeleteStep(ctx context.Context, ownerID, stepID uint) (bool, error) {
	owned := r.db.WithContext(ctx).Model(&model.Todo{}).Select("id").Where("owner_id = ?", ownerID)
	res := r.db.WithContext(ctx).
		Where("id = ? AND todo_id IN (?)", stepID, owned).
		Delete(&model.Step{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindOrCreateTags resolves tag names to rows, creating missing ones.
// Names are trimmed and blanks dropped.
func (r *todoRepository) FindOrCreateTags(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag model.Tag
		if err := r.db.WithContext(ctx).Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *todoRepository) ReplaceTags(ctx context.Context, todo *model.Todo, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(todo).Association("Tags").Replace(&tags)
}

func (r *todoRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Tags")
}

// normalizeTodo keeps empty relations as [] instead of null in JSON.
func normalizeTodo(t *model.Todo) {
	if t.Steps == nil {
		t.Steps = []model.Step{}
	}
	if t.Tags == nil {
		t.Tags = []model.Tag{}
	}
}
