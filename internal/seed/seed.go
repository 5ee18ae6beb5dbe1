// Package seed loads the initial menu from a JSON file into the store.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID accepts both JSON strings and numbers.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("numeric id must be an integer, got %s", n)
	}
	*id = ID(n.String())
	return nil
}

// CategoryRecord is a category entry of the seed file.
type CategoryRecord struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	ImageID string `json:"image_id"`
}

// ItemRecord is a menu item entry of the seed file.
type ItemRecord struct {
	ID          ID      `json:"id"`
	CategoryID  ID      `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
	ImageID     string  `json:"image_id"`
}

// Data is the content of a seed file.
type Data struct {
	Categories []CategoryRecord `json:"categories"`
	Items      []ItemRecord     `json:"items"`
}

// Menu is validated seed data ready to be written.
type Menu struct {
	Categories []models.Category
	Items      []models.MenuItem
}

// Result reports what Apply wrote.
type Result struct {
	Categories int
	Items      int
	Skipped    int
}

// LoadFile reads and validates a seed file.
func LoadFile(path string) (*Menu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates seed data. Names are trimmed and title-cased
// and items default to available. Every record needs an image, prices must
// be positive and every item must reference a category in the same file.
func Parse(raw []byte) (*Menu, error) {
	var data Data
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}

	title := cases.Title(language.Und)
	menu := &Menu{}
	seen := make(map[string]bool, len(data.Categories))

	for i, rec := range data.Categories {
		c := models.Category{
			ID:      strings.TrimSpace(string(rec.ID)),
			Name:    title.String(strings.TrimSpace(rec.Name)),
			ImageID: strings.TrimSpace(rec.ImageID),
		}
		if err := models.Validate(c); err != nil {
			return nil, fmt.Errorf("categories[%d]: %w", i, err)
		}
		if c.ImageID == "" {
			return nil, fmt.Errorf("categories[%d]: image_id is required", i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("categories[%d]: duplicate id %s", i, c.ID)
		}
		seen[c.ID] = true
		menu.Categories = append(menu.Categories, c)
	}

	items := make(map[string]bool, len(data.Items))
	for i, rec := range data.Items {
		available := true
		if rec.Available != nil {
			available = *rec.Available
		}
		it := models.MenuItem{
			ID:          strings.TrimSpace(string(rec.ID)),
			Name:        title.String(strings.TrimSpace(rec.Name)),
			Description: strings.TrimSpace(rec.Description),
			Price:       rec.Price,
			CategoryID:  strings.TrimSpace(string(rec.CategoryID)),
			Available:   available,
			ImageID:     strings.TrimSpace(rec.ImageID),
		}
		if err := models.Validate(it); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if it.ImageID == "" {
			return nil, fmt.Errorf("items[%d]: image_id is required", i)
		}
		if it.Price <= 0 {
			return nil, fmt.Errorf("items[%d]: price must be greater than 0", i)
		}
		if !seen[it.CategoryID] {
			return nil, fmt.Errorf("items[%d]: category %s does not exist", i, it.CategoryID)
		}
		if items[it.ID] {
			return nil, fmt.Errorf("items[%d]: duplicate id %s", i, it.ID)
		}
		items[it.ID] = true
		menu.Items = append(menu.Items, it)
	}
	return menu, nil
}

// Seeder writes a validated menu to the store.
type Seeder struct {
	categories repositories.CategoryRepository
	items      repositories.MenuItemRepository
	log        logrus.FieldLogger
}

// NewSeeder creates a new Seeder.
func NewSeeder(categories repositories.CategoryRepository, items repositories.MenuItemRepository, log logrus.FieldLogger) *Seeder {
	return &Seeder{categories: categories, items: items, log: log}
}

// Apply writes menu. With drop set the existing menu is removed first;
// otherwise a non-empty menu is left untouched and everything is reported
// as skipped.
func (s *Seeder) Apply(ctx context.Context, menu *Menu, drop bool) (*Result, error) {
	if drop {
		if err := s.items.DeleteAll(ctx); err != nil {
			return nil, err
		}
		if err := s.categories.DeleteAll(ctx); err != nil {
			return nil, err
		}
		s.log.Info("dropped existing menu")
	} else {
		n, err := s.categories.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			s.log.WithField("categories", n).Warn("menu already populated, use --drop to replace it")
			return &Result{Skipped: len(menu.Categories) + len(menu.Items)}, nil
		}
	}

	res := &Result{}
	for i := range menu.Categories {
		if err := s.categories.Create(ctx, &menu.Categories[i]); err != nil {
			return res, err
		}
		res.Categories++
	}
	for i := range menu.Items {
		if err := s.items.Create(ctx, &menu.Items[i]); err != nil {
			return res, err
		}
		res.Items++
	}
	s.log.WithFields(logrus.Fields{"categories": res.Categories, "items": res.Items}).Info("menu seeded")
	return res, nil
}
