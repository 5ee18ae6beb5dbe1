package repositories_test

import (
	"context"
	"testing"
	"time"

	"kiosk/internal/apperr"
	"kiosk/internal/config"
	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSet struct {
	categories repositories.CategoryRepository
	items      repositories.MenuItemRepository
	orders     repositories.OrderRepository
}

// backends returns a fresh repository set per implementation.
func backends(t *testing.T) map[string]func(t *testing.T) repoSet {
	return map[string]func(t *testing.T) repoSet{
		"gorm": func(t *testing.T) repoSet {
			db, err := store.Open(context.Background(), config.StoreConfig{
				Driver:     config.DriverSQLite,
				SQLitePath: ":memory:",
				Timeout:    time.Second,
			}, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close(db) })
			return repoSet{
				categories: repositories.NewGORMCategoryRepository(db),
				items:      repositories.NewGORMMenuItemRepository(db),
				orders:     repositories.NewGORMOrderRepository(db),
			}
		},
		"memory": func(t *testing.T) repoSet {
			return repoSet{
				categories: repositories.NewMemoryCategoryRepository(),
				items:      repositories.NewMemoryMenuItemRepository(),
				orders:     repositories.NewMemoryOrderRepository(),
			}
		},
	}
}

func ptr[T any](v T) *T { return &v }

func seedMenu(t *testing.T, r repoSet) {
	ctx := context.Background()
	for _, c := range []models.Category{
		{ID: "drinks", Name: "Drinks"},
		{ID: "burgers", Name: "Burgers", ImageID: "burgers.jpg"},
	} {
		c := c
		require.NoError(t, r.categories.Create(ctx, &c))
	}
	for _, it := range []models.MenuItem{
		{ID: "i3", Name: "Cola", Price: 3.5, CategoryID: "drinks", Available: true},
		{ID: "i1", Name: "Cheese Burger", Price: 5, CategoryID: "burgers", Available: true},
		{ID: "i2", Name: "Double Burger", Price: 8, CategoryID: "burgers", Available: false},
		{ID: "i4", Name: "100% Juice", Price: 4, CategoryID: "drinks", Available: true},
		{ID: "i5", Name: "Água Mineral", Price: 2, CategoryID: "drinks", Available: true},
	} {
		it := it
		require.NoError(t, r.items.Create(ctx, &it))
	}
}

func ids(items []models.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestCategoryRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			seedMenu(t, r)
			ctx := context.Background()

			n, err := r.categories.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			all, err := r.categories.GetAll(ctx, models.Page{})
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "burgers", all[0].ID)
			assert.Equal(t, "drinks", all[1].ID)

			paged, err := r.categories.GetAll(ctx, models.Page{Offset: 1, Limit: 1})
			require.NoError(t, err)
			require.Len(t, paged, 1)
			assert.Equal(t, "drinks", paged[0].ID)

			c, err := r.categories.GetByID(ctx, "burgers")
			require.NoError(t, err)
			assert.Equal(t, "burgers.jpg", c.ImageID)

			_, err = r.categories.GetByID(ctx, "pizza")
			assert.ErrorIs(t, err, apperr.ErrNotFound)

			require.NoError(t, r.categories.DeleteAll(ctx))
			n, err = r.categories.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestMenuItemRepository_Search(t *testing.T) {
	tests := []struct {
		name   string
		filter models.ItemFilter
		want   []string
	}{
		{"no filter returns everything by id", models.ItemFilter{}, []string{"i1", "i2", "i3", "i4", "i5"}},
		{"name substring ignores case", models.ItemFilter{Name: "BURGER"}, []string{"i1", "i2"}},
		{"accented name ignores case", models.ItemFilter{Name: "água"}, []string{"i5"}},
		{"accented query ignores case", models.ItemFilter{Name: "ÁGUA MIN"}, []string{"i5"}},
		{"percent is literal", models.ItemFilter{Name: "100%"}, []string{"i4"}},
		{"underscore is literal", models.ItemFilter{Name: "_"}, []string{}},
		{"inclusive single price", models.ItemFilter{MinPrice: ptr(5.0), MaxPrice: ptr(5.0)}, []string{"i1"}},
		{"price range", models.ItemFilter{MinPrice: ptr(3.5), MaxPrice: ptr(5.0)}, []string{"i1", "i3", "i4"}},
		{"category", models.ItemFilter{CategoryID: "drinks"}, []string{"i3", "i4", "i5"}},
		{"available false", models.ItemFilter{Available: ptr(false)}, []string{"i2"}},
		{"conjunction", models.ItemFilter{Name: "burger", Available: ptr(true), MaxPrice: ptr(6.0)}, []string{"i1"}},
		{"nothing matches", models.ItemFilter{CategoryID: "desserts"}, []string{}},
		{"paging", models.ItemFilter{Page: models.Page{Offset: 1, Limit: 2}}, []string{"i2", "i3"}},
		{"offset past end", models.ItemFilter{Page: models.Page{Offset: 10}}, []string{}},
	}

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			seedMenu(t, r)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					items, err := r.items.Search(context.Background(), tt.filter)
					require.NoError(t, err)
					assert.NotNil(t, items)
					assert.Equal(t, tt.want, ids(items))
					for _, it := range items {
						assert.True(t, tt.filter.Matches(it), it.ID)
					}
				})
			}
		})
	}
}

func TestMenuItemRepository_GetByIDAndCount(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			seedMenu(t, r)
			ctx := context.Background()

			n, err := r.items.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(5), n)

			first, err := r.items.GetByID(ctx, "i2")
			require.NoError(t, err)
			second, err := r.items.GetByID(ctx, "i2")
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.False(t, first.Available)

			_, err = r.items.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, apperr.ErrNotFound)

			assert.Error(t, r.items.Create(ctx, &models.MenuItem{ID: "i1", Name: "Dup", CategoryID: "burgers"}))
		})
	}
}

func TestMenuItemRepository_IDsSortAsText(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			ctx := context.Background()
			for _, id := range []string{"2", "10", "9"} {
				require.NoError(t, r.items.Create(ctx, &models.MenuItem{ID: id, Name: "Item " + id, Price: 1, CategoryID: "c", Available: true}))
			}

			items, err := r.items.Search(ctx, models.ItemFilter{})
			require.NoError(t, err)
			assert.Equal(t, []string{"10", "2", "9"}, ids(items))
		})
	}
}

func TestOrderRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			ctx := context.Background()
			base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

			older := &models.Order{
				ID:        "b-order",
				Items:     []models.OrderLine{{ItemID: "i3", Name: "Cola", UnitPrice: 3.5, Quantity: 2}},
				Total:     7,
				Status:    models.OrderStatusPending,
				Payment:   &models.Payment{Method: models.PaymentPix},
				CreatedAt: base,
			}
			newer := &models.Order{
				ID:        "a-order",
				Items:     []models.OrderLine{{ItemID: "i1", Name: "Cheese Burger", UnitPrice: 5, Quantity: 1}},
				Total:     5,
				Status:    models.OrderStatusPending,
				CreatedAt: base.Add(time.Minute),
			}
			require.NoError(t, r.orders.Create(ctx, newer))
			require.NoError(t, r.orders.Create(ctx, older))

			got, err := r.orders.GetByID(ctx, "b-order")
			require.NoError(t, err)
			assert.Equal(t, older.Items, got.Items)
			assert.Equal(t, older.Total, got.Total)
			assert.Equal(t, older.Status, got.Status)
			require.NotNil(t, got.Payment)
			assert.Equal(t, models.PaymentPix, got.Payment.Method)
			assert.True(t, older.CreatedAt.Equal(got.CreatedAt))

			got, err = r.orders.GetByID(ctx, "a-order")
			require.NoError(t, err)
			assert.Nil(t, got.Payment)

			all, err := r.orders.GetAll(ctx, models.Page{})
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "b-order", all[0].ID)
			assert.Equal(t, "a-order", all[1].ID)

			_, err = r.orders.GetByID(ctx, "nope")
			assert.ErrorIs(t, err, apperr.ErrNotFound)
		})
	}
}

func TestMemoryRepositories_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repositories.NewMemoryMenuItemRepository().Search(ctx, models.ItemFilter{})
	assert.ErrorIs(t, err, apperr.ErrTimeout)
}
