package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"focusdo/internal/model"
)

// PomodoroRepository defines persistence operations for focus sessions.
// All lookups are scoped to the owning user.
type PomodoroRepository interface {
	Create(ctx context.Context, pomodoro *model.Pomodoro) error
	FindByID(ctx context.Context, ownerID, id uint) (*model.Pomodoro, error)
	Save(ctx context.Context, pomodoro *model.Pomodoro) error
	ListStartedSince(ctx context.Context, ownerID uint, since time.Time) ([]model.Pomodoro, error)
}

type pomodoroRepository struct {
	db *gorm.DB
}

// NewPomodoroRepository builds a GORM-backed repository.
func NewPomodoroRepository(db *gorm.DB) PomodoroRepository {
	return &pomodoroRepository{db: db}
}

func (r *pomodoroRepository) Create(ctx context.Context, pomodoro *model.Pomodoro) error {
	return r.db.WithContext(ctx).Create(pomodoro).Error
}

func (r *pomodoroRepository) FindByID(ctx context.Context, ownerID, id uint) (*model.Pomodoro, error) {
	var pomodoro model.Pomodoro
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&pomodoro).Error
	if err != nil {
		return nil, err
	}
	return &pomodoro, nil
}

func (r *pomodoroRepository) Save(ctx context.Context, pomodoro *model.Pomodoro) error {
	return r.db.WithContext(ctx).Save(pomodoro).Error
}

func (r *pomodoroRepository) ListStartedSince(ctx context.Context, ownerID uint, since time.Time) ([]model.Pomodoro, error) {
	var sessions []model.Pomodoro
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND started_at >= ?", ownerID, since).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
