package store_test

import (
	"context"
	"testing"
	"time"

	"kiosk/internal/config"
	"kiosk/internal/models"
	"kiosk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.StoreConfig {
	return config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:", Timeout: time.Second}
}

func TestOpen_SQLiteMigratesCollections(t *testing.T) {
	db, err := store.Open(context.Background(), memoryConfig(), nil)
	require.NoError(t, err)
	defer store.Close(db)

	for _, table := range []string{"categories", "menu_items", "orders"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.NoError(t, store.Ping(context.Background(), db, time.Second))

	require.NoError(t, db.Create(&models.Category{ID: "c1", Name: "Burgers"}).Error)
	var n int64
	require.NoError(t, db.Model(&models.Category{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := store.Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory}, nil)
	assert.Error(t, err)
}
