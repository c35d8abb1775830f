package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Todos     []Todo     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Pomodoros []Pomodoro `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
