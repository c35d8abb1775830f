package model

// Tag is a global label shared across todos. Deleting a todo detaches
// its tags but never deletes them.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`

	Todos []Todo `json:"-" gorm:"many2many:todo_tags"`
}
