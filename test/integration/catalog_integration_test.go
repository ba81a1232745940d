package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"usedmarket/internal/catalog"
	"usedmarket/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "categories.txt")
	require.NoError(t, os.WriteFile(path, []byte("# seed\nPhones\nFurniture\n\nPhones\nBooks\n"), 0o644))

	categories := repository.NewCategoryRepository(testDB.Store)
	importer := catalog.NewImporter(catalog.NewFileLoader(logger), categories, logger)

	t.Run("First import inserts every name", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		res, err := importer.Import(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, catalog.ImportResult{Inserted: 3}, res)

		names, err := categories.ListNames(ctx)
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})

	t.Run("Re-import is idempotent", func(t *testing.T) {
		SeedCategories(t, testDB.Store)

		res, err := importer.Import(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, catalog.ImportResult{Existing: 3}, res)

		names, err := categories.ListNames(ctx)
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})
}
