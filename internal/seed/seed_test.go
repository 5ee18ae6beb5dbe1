package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/seed"
	"kiosk/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "categories": [
    {"id": 1, "name": "  burgers ", "image_id": "burgers.jpg"},
    {"id": "drinks", "name": "drinks", "image_id": "drinks.jpg"}
  ],
  "items": [
    {"id": 10, "category_id": 1, "name": "cheese burger", "price": 5.5, "image_id": "cheese.jpg"},
    {"id": "cola", "category_id": "drinks", "name": "cola", "price": 3.5, "available": false, "image_id": "cola.jpg"}
  ]
}`

func TestParse(t *testing.T) {
	menu, err := seed.Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, menu.Categories, 2)
	assert.Equal(t, models.Category{ID: "1", Name: "Burgers", ImageID: "burgers.jpg"}, menu.Categories[0])

	require.Len(t, menu.Items, 2)
	assert.Equal(t, "10", menu.Items[0].ID)
	assert.Equal(t, "1", menu.Items[0].CategoryID)
	assert.Equal(t, "Cheese Burger", menu.Items[0].Name)
	assert.True(t, menu.Items[0].Available)
	assert.False(t, menu.Items[1].Available)
}

func TestParse_Rejects(t *testing.T) {
	const cat = `{"id":1,"name":"a","image_id":"a.jpg"}`
	tests := map[string]string{
		"unknown category":   `{"categories":[` + cat + `],"items":[{"id":1,"category_id":2,"name":"x","price":1,"image_id":"x.jpg"}]}`,
		"negative price":     `{"categories":[` + cat + `],"items":[{"id":1,"category_id":1,"name":"x","price":-1,"image_id":"x.jpg"}]}`,
		"zero price":         `{"categories":[` + cat + `],"items":[{"id":1,"category_id":1,"name":"x","price":0,"image_id":"x.jpg"}]}`,
		"missing item image": `{"categories":[` + cat + `],"items":[{"id":1,"category_id":1,"name":"x","price":1}]}`,
		"missing cat image":  `{"categories":[{"id":1,"name":"a"}]}`,
		"empty name":         `{"categories":[{"id":1,"name":"   ","image_id":"a.jpg"}]}`,
		"duplicate item":     `{"categories":[` + cat + `],"items":[{"id":1,"category_id":1,"name":"x","price":1,"image_id":"x.jpg"},{"id":1,"category_id":1,"name":"y","price":1,"image_id":"y.jpg"}]}`,
		"fractional id":      `{"categories":[{"id":1.5,"name":"a","image_id":"a.jpg"}]}`,
		"unknown field":      `{"categories":[],"items":[],"extra":true}`,
		"duplicate category": `{"categories":[` + cat + `,{"id":"1","name":"b","image_id":"b.jpg"}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := seed.Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init-data.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	menu, err := seed.LoadFile(path)
	require.NoError(t, err)

	ctx := context.Background()
	cats := repositories.NewMemoryCategoryRepository()
	items := repositories.NewMemoryMenuItemRepository()
	seeder := seed.NewSeeder(cats, items, logger.Discard())

	res, err := seeder.Apply(ctx, menu, false)
	require.NoError(t, err)
	assert.Equal(t, &seed.Result{Categories: 2, Items: 2}, res)

	res, err = seeder.Apply(ctx, menu, false)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Skipped)

	res, err = seeder.Apply(ctx, menu, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Items)

	n, err := items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := seed.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadFile_BundledData(t *testing.T) {
	menu, err := seed.LoadFile(filepath.Join("..", "..", "resources", "database", "init-data.json"))
	require.NoError(t, err)
	assert.Len(t, menu.Categories, 3)
	assert.Len(t, menu.Items, 5)
	for _, it := range menu.Items {
		assert.NotEmpty(t, it.CategoryID)
	}
}
