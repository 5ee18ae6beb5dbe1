package models

// Category groups menu items on the kiosk home screen.
type Category struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(64)" validate:"required,max=64"`
	Name    string `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	ImageID string `json:"image_id" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
}

// TableName pins the collection name.
func (Category) TableName() string { return "categories" }

// MenuCounts is the summary returned by the menu root endpoint.
type MenuCounts struct {
	Items      int64 `json:"menu_items"`
	Categories int64 `json:"categories"`
}
