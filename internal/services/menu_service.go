package services

import (
	"context"
	"fmt"
	"strings"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
)

// MenuService answers the read-only menu queries.
type MenuService struct {
	categories repositories.CategoryRepository
	items      repositories.MenuItemRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(categories repositories.CategoryRepository, items repositories.MenuItemRepository) *MenuService {
	return &MenuService{
		categories: categories,
		items:      items,
	}
}

// CountAll returns the number of items and categories on the menu.
func (s *MenuService) CountAll(ctx context.Context) (*models.MenuCounts, error) {
	items, err := s.items.Count(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &models.MenuCounts{Items: items, Categories: categories}, nil
}

// ListCategories returns categories ordered by ID.
func (s *MenuService) ListCategories(ctx context.Context, page models.Page) ([]models.Category, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.categories.GetAll(ctx, page)
}

// ListItemsByCategory returns the items of an existing category ordered by
// ID. An unknown category is ErrNotFound, not an empty list.
func (s *MenuService) ListItemsByCategory(ctx context.Context, categoryID string, page models.Page) ([]models.MenuItem, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	items, err := s.items.Search(ctx, models.ItemFilter{CategoryID: categoryID, Page: page})
	if err != nil {
		return nil, fmt.Errorf("failed to list items of category %s: %w", categoryID, err)
	}
	return items, nil
}

// SearchItems returns the items matching every criterion set on filter.
// No match is an empty slice, not an error.
func (s *MenuService) SearchItems(ctx context.Context, filter models.ItemFilter) ([]models.MenuItem, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.items.Search(ctx, filter)
}

// GetItem retrieves a single menu item.
func (s *MenuService) GetItem(ctx context.Context, itemID string) (*models.MenuItem, error) {
	return s.items.GetByID(ctx, itemID)
}
