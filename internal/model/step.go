package model

// Step is one checklist line inside a todo. Order is a display hint,
// not unique.
type Step struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	TodoID uint   `json:"-" gorm:"not null;index"`
	Text   string `json:"text" gorm:"size:255;not null"`
	Done   bool   `json:"done" gorm:"default:false"`
	Order  int    `json:"order" gorm:"column:sort_order;default:0"`
}
