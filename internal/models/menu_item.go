package models

import "golang.org/x/text/cases"

// MenuItem is a single orderable product.
type MenuItem struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(64)" validate:"required,max=64"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description string  `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       float64 `json:"price" gorm:"not null" validate:"gte=0"`
	CategoryID  string  `json:"category_id" gorm:"type:varchar(64);index;not null" validate:"required,max=64"`
	Available   bool    `json:"available" gorm:"not null"`
	ImageID     string  `json:"image_id" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	// SearchName is Name case-folded, kept in sync by the repositories.
	SearchName string `json:"-" gorm:"type:varchar(200);index;not null;default:''"`
}

// TableName pins the collection name.
func (MenuItem) TableName() string { return "menu_items" }

// FoldName case-folds s for case-insensitive name matching.
func FoldName(s string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(s)
}
