package seed

import (
	"context"
	"log/slog"
	"testing"

	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func TestRun_SeedsCatalogs(t *testing.T) {
	db := newSeedTestDB(t)
	ctx := context.Background()
	progressionRepo := repository.NewGormProgressionRepository()
	badgeRepo := repository.NewGormBadgeRepository()

	require.NoError(t, Run(ctx, db, progressionRepo, badgeRepo, slog.Default()))

	steps, err := progressionRepo.FindSteps(ctx, db)
	require.NoError(t, err)
	assert.Len(t, steps, 24)

	badges, err := badgeRepo.FindBadges(ctx, db)
	require.NoError(t, err)
	assert.Len(t, badges, 10)

	// Catalog order is category then title.
	assert.Equal(t, model.Category2Way, steps[0].Category)
	assert.Equal(t, model.CategorySafety, steps[len(steps)-1].Category)
}

func TestRun_Idempotent(t *testing.T) {
	db := newSeedTestDB(t)
	ctx := context.Background()
	progressionRepo := repository.NewGormProgressionRepository()
	badgeRepo := repository.NewGormBadgeRepository()

	require.NoError(t, Run(ctx, db, progressionRepo, badgeRepo, slog.Default()))
	require.NoError(t, Run(ctx, db, progressionRepo, badgeRepo, slog.Default()))

	steps, err := progressionRepo.FindSteps(ctx, db)
	require.NoError(t, err)
	assert.Len(t, steps, 24)

	badges, err := badgeRepo.FindBadges(ctx, db)
	require.NoError(t, err)
	assert.Len(t, badges, 10)
}
