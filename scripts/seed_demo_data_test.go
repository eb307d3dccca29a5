package main

import (
	"context"
	"testing"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:demo-seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(db.Models()...))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSeedAllIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	host, err := media.NewLocalHost(t.TempDir(), "/static/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, seedAll(ctx, gdb, host, "leadersite", "admin", "admin123"))
	require.NoError(t, seedAll(ctx, gdb, host, "leadersite", "admin", "admin123"))

	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"users":   &db.User{},
		"gallery": &db.GalleryEntry{},
		"sahitya": &db.Sahitya{},
		"pages":   &db.PageContent{},
		"contact": &db.ContactPage{},
	} {
		var count int64
		require.NoError(t, gdb.Model(model).Count(&count).Error)
		counts[name] = count
	}
	assert.Equal(t, map[string]int64{"users": 1, "gallery": 2, "sahitya": 2, "pages": 4, "contact": 1}, counts)

	journey, err := service.NewPageService(gdb, host, "leadersite").Get(ctx, db.PageKeyJourney)
	require.NoError(t, err)
	assert.Len(t, journey.Items, 3)

	entries, err := service.NewGalleryService(gdb, host, "leadersite").List(ctx, db.GalleryCategoryVlog)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Contains(t, entry.YoutubeURL, "https://www.youtube.com/watch?v=")
	}
}
