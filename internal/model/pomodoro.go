package model

import "time"

// Pomodoro duration bounds in minutes.
const (
	MinPomodoroMinutes     = 5
	MaxPomodoroMinutes     = 120
	DefaultPomodoroMinutes = 25
)

// Pomodoro is one timed focus session, optionally linked to a todo.
// ActualMinutes stays 0 until EndedAt is set; once ended the record is
// immutable.
type Pomodoro struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	OwnerID         uint       `json:"-" gorm:"not null;index"`
	TodoID          *uint      `json:"todo_id"`
	StartedAt       time.Time  `json:"started_at" gorm:"index"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes int        `json:"duration_minutes" gorm:"default:25"`
	ActualMinutes   int        `json:"actual_minutes" gorm:"default:0"`
	Note            string     `json:"note" gorm:"size:500"`
}

// Ended reports whether the session has been stopped.
func (p *Pomodoro) Ended() bool {
	return p.EndedAt != nil
}
