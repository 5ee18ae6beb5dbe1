package repositories

import (
	"context"

	"kiosk/internal/models"
)

// CategoryRepository defines the data access for the categories collection.
type CategoryRepository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context, page models.Page) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	DeleteAll(ctx context.Context) error
}

// MenuItemRepository defines the data access for the menu_items collection.
type MenuItemRepository interface {
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, filter models.ItemFilter) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	DeleteAll(ctx context.Context) error
}

// OrderRepository defines the data access for the orders collection.
// Orders are immutable, so there is no update path.
type OrderRepository interface {
	GetAll(ctx context.Context, page models.Page) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
}
