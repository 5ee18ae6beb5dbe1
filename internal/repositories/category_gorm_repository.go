package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/apperr"
	"kiosk/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// Count returns the number of stored categories.
func (r *GORMCategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return 0, apperr.FromStore("count categories", err)
	}
	return n, nil
}

// GetAll retrieves categories ordered by ID.
func (r *GORMCategoryRepository) GetAll(ctx context.Context, page models.Page) ([]models.Category, error) {
	categories := []models.Category{}
	q := paginate(r.db.WithContext(ctx).Order("id ASC"), page)
	if err := q.Find(&categories).Error; err != nil {
		return nil, apperr.FromStore("list categories", err)
	}
	return categories, nil
}

// GetByID retrieves a single category.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, lookupErr("get category", "category", id, err)
	}
	return &category, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return apperr.FromStore(fmt.Sprintf("create category %s", category.ID), err)
	}
	return nil
}

// DeleteAll removes every category.
func (r *GORMCategoryRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Category{}).Error
	if err != nil {
		return apperr.FromStore("delete categories", err)
	}
	return nil
}
