package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/apperr"
	"kiosk/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves orders, oldest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context, page models.Page) ([]models.Order, error) {
	orders := []models.Order{}
	q := paginate(r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC"), page)
	if err := q.Find(&orders).Error; err != nil {
		return nil, apperr.FromStore("list orders", err)
	}
	return orders, nil
}

// GetByID retrieves a single order.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, lookupErr("get order", "order", id, err)
	}
	return &order, nil
}

// Create inserts a new order. The order and its lines are one row.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return apperr.FromStore(fmt.Sprintf("create order %s", order.ID), err)
	}
	return nil
}
