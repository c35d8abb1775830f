package model

import "time"

// Todo priorities range from 1 (urgent) to 3 (low).
const (
	PriorityUrgent  = 1
	PriorityDefault = 2
	PriorityLow     = 3
)

// DefaultEstimateMinutes is the assumed effort for a new todo.
const DefaultEstimateMinutes = 25

// Todo is a user-owned task with optional scheduling metadata,
// checklist steps and tags.
type Todo struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	OwnerID         uint       `json:"-" gorm:"not null;index"`
	Title           string     `json:"title" gorm:"size:255;not null"`
	Notes           string     `json:"notes" gorm:"type:text"`
	Completed       bool       `json:"completed" gorm:"default:false;index"`
	Priority        int        `json:"priority" gorm:"default:2;index"`
	DueDate         *time.Time `json:"due_date"`
	PlanAt          *time.Time `json:"plan_at"`
	EstimateMinutes int        `json:"estimate_minutes" gorm:"default:25"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations. Steps die with their todo; tags have their own lifecycle
	// and are only detached; pomodoros outlive the todo with todo_id nulled.
	Steps     []Step     `json:"steps" gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE"`
	Tags      []Tag      `json:"tags" gorm:"many2many:todo_tags"`
	Pomodoros []Pomodoro `json:"-" gorm:"foreignKey:TodoID;constraint:OnDelete:SET NULL"`
}
