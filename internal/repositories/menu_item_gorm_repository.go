package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/apperr"
	"kiosk/internal/models"

	"gorm.io/gorm"
)

// GORMMenuItemRepository is a GORM implementation of MenuItemRepository.
type GORMMenuItemRepository struct {
	db *gorm.DB
}

// NewGORMMenuItemRepository creates a new instance of GORMMenuItemRepository.
func NewGORMMenuItemRepository(db *gorm.DB) *GORMMenuItemRepository {
	return &GORMMenuItemRepository{db: db}
}

// Count returns the number of stored menu items.
func (r *GORMMenuItemRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return 0, apperr.FromStore("count menu items", err)
	}
	return n, nil
}

// Search translates filter into a WHERE clause. Every criterion that is set
// is ANDed; results are ordered by ID so paging is stable.
func (r *GORMMenuItemRepository) Search(ctx context.Context, filter models.ItemFilter) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).Model(&models.MenuItem{})

	if filter.Name != "" {
		q = q.Where(`search_name LIKE ? ESCAPE '\'`, containsPattern(filter.Name))
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Available != nil {
		q = q.Where("available = ?", *filter.Available)
	}

	items := []models.MenuItem{}
	if err := paginate(q.Order("id ASC"), filter.Page).Find(&items).Error; err != nil {
		return nil, apperr.FromStore("search menu items", err)
	}
	return items, nil
}

// GetByID retrieves a single menu item.
func (r *GORMMenuItemRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, lookupErr("get menu item", "menu item", id, err)
	}
	return &item, nil
}

// Create inserts a new menu item.
func (r *GORMMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	item.SearchName = models.FoldName(item.Name)
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return apperr.FromStore(fmt.Sprintf("create menu item %s", item.ID), err)
	}
	return nil
}

// DeleteAll removes every menu item.
func (r *GORMMenuItemRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.MenuItem{}).Error
	if err != nil {
		return apperr.FromStore("delete menu items", err)
	}
	return nil
}
