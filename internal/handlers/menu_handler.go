package handlers

import (
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for the menu.
type MenuHandler struct {
	service *services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service: service,
	}
}

// RegisterRoutes registers the menu routes with the Fiber app.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleGetMenu)
	menuRoutes.Get("/categories", h.HandleGetCategories)
	menuRoutes.Get("/categories/:category_id", h.HandleGetCategoryItems)
	menuRoutes.Get("/item", h.HandleSearchItems)
	menuRoutes.Get("/item/:item_id", h.HandleGetItem)
}

// HandleGetMenu returns the number of items and categories.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	counts, err := h.service.CountAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(counts)
}

// HandleGetCategories lists the categories.
func (h *MenuHandler) HandleGetCategories(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	categories, err := h.service.ListCategories(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categories})
}

// HandleGetCategoryItems lists the items of one category.
func (h *MenuHandler) HandleGetCategoryItems(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	categoryID, err := pathParam(c, "category_id")
	if err != nil {
		return err
	}
	items, err := h.service.ListItemsByCategory(c.UserContext(), categoryID, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// HandleSearchItems filters items by the query string criteria.
func (h *MenuHandler) HandleSearchItems(c *fiber.Ctx) error {
	filter, err := parseItemFilter(c)
	if err != nil {
		return err
	}
	items, err := h.service.SearchItems(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// HandleGetItem retrieves a single item by its ID.
func (h *MenuHandler) HandleGetItem(c *fiber.Ctx) error {
	itemID, err := pathParam(c, "item_id")
	if err != nil {
		return err
	}
	item, err := h.service.GetItem(c.UserContext(), itemID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": item})
}
