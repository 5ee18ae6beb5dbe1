package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"kiosk/internal/apperr"
	"kiosk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// queryValue returns the first non-empty query parameter among names.
func queryValue(c *fiber.Ctx, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			return v
		}
	}
	return ""
}

func queryFloat(c *fiber.Ctx, names ...string) (*float64, error) {
	raw := queryValue(c, names...)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Invalid("%s must be a number, got %q", names[0], raw)
	}
	return &v, nil
}

func queryBool(c *fiber.Ctx, names ...string) (*bool, error) {
	raw := queryValue(c, names...)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Invalid("%s must be true or false, got %q", names[0], raw)
	}
	return &v, nil
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := queryValue(c, name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// parsePage reads offset and limit. Range checks belong to the services.
func parsePage(c *fiber.Ctx) (models.Page, error) {
	offset, err := queryInt(c, "offset")
	if err != nil {
		return models.Page{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Offset: offset, Limit: limit}, nil
}

// parseItemFilter reads the search criteria. Both snake_case and camelCase
// parameter names are accepted.
func parseItemFilter(c *fiber.Ctx) (models.ItemFilter, error) {
	var (
		filter models.ItemFilter
		err    error
	)
	filter.Name = queryValue(c, "name")
	filter.CategoryID = queryValue(c, "category_id", "categoryId")
	if filter.MinPrice, err = queryFloat(c, "min_price", "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryFloat(c, "max_price", "maxPrice"); err != nil {
		return filter, err
	}
	if filter.Available, err = queryBool(c, "available"); err != nil {
		return filter, err
	}
	if filter.Page, err = parsePage(c); err != nil {
		return filter, err
	}
	return filter, nil
}

// pathParam returns the URL-decoded route parameter.
func pathParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", apperr.Invalid("%s is not a valid path segment", name)
	}
	return v, nil
}
