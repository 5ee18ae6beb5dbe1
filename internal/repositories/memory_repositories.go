package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"kiosk/internal/apperr"
	"kiosk/internal/models"
)

// window returns the part of a sorted slice selected by page.
func window[T any](all []T, page models.Page) []T {
	if page.Offset >= len(all) {
		return []T{}
	}
	all = all[page.Offset:]
	if page.Limit > 0 && page.Limit < len(all) {
		all = all[:page.Limit]
	}
	return all
}

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	categories map[string]models.Category
	mu         sync.RWMutex
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[string]models.Category),
	}
}

// Count returns the number of categories.
func (r *MemoryCategoryRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperr.FromStore("count categories", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.categories)), nil
}

// GetAll returns categories ordered by ID.
func (r *MemoryCategoryRepository) GetAll(ctx context.Context, page models.Page) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("list categories", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return window(list, page), nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("get category", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category with ID %s not found", id)
	}
	return &category, nil
}

// Create adds a new category. IDs are unique.
func (r *MemoryCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := ctx.Err(); err != nil {
		return apperr.FromStore("create category", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.ID]; exists {
		return fmt.Errorf("category with ID %s already exists", category.ID)
	}
	r.categories[category.ID] = *category
	return nil
}

// DeleteAll removes every category.
func (r *MemoryCategoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = make(map[string]models.Category)
	return nil
}

// MemoryMenuItemRepository is an in-memory implementation of MenuItemRepository.
type MemoryMenuItemRepository struct {
	items map[string]models.MenuItem
	mu    sync.RWMutex
}

// NewMemoryMenuItemRepository creates a new instance of MemoryMenuItemRepository.
func NewMemoryMenuItemRepository() *MemoryMenuItemRepository {
	return &MemoryMenuItemRepository{
		items: make(map[string]models.MenuItem),
	}
}

// Count returns the number of menu items.
func (r *MemoryMenuItemRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperr.FromStore("count menu items", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// Search returns the items matching filter ordered by ID.
func (r *MemoryMenuItemRepository) Search(ctx context.Context, filter models.ItemFilter) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("search menu items", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		if filter.Matches(item) {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return window(list, filter.Page), nil
}

// GetByID returns a menu item by its ID.
func (r *MemoryMenuItemRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("get menu item", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("menu item with ID %s not found", id)
	}
	return &item, nil
}

// Create adds a new menu item. IDs are unique.
func (r *MemoryMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return apperr.FromStore("create menu item", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("menu item with ID %s already exists", item.ID)
	}
	item.SearchName = models.FoldName(item.Name)
	r.items[item.ID] = *item
	return nil
}

// DeleteAll removes every menu item.
func (r *MemoryMenuItemRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]models.MenuItem)
	return nil
}

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns orders, oldest first.
func (r *MemoryOrderRepository) GetAll(ctx context.Context, page models.Page) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("list orders", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, cloneOrder(o))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return window(list, page), nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("get order", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order with ID %s not found", id)
	}
	order = cloneOrder(order)
	return &order, nil
}

// Create stores a copy of order.
func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return apperr.FromStore("create order", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order with ID %s already exists", order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

// cloneOrder copies the slices and pointers of o so stored orders cannot be
// mutated through a returned value.
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderLine(nil), o.Items...)
	if o.Payment != nil {
		p := *o.Payment
		o.Payment = &p
	}
	return o
}
