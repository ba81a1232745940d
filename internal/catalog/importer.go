package catalog

import (
	"context"
	"errors"
	"fmt"

	"usedmarket/internal/model"
	"usedmarket/internal/repository"

	"github.com/rs/zerolog"
)

// ImportResult summarises one import run.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Existing int `json:"existing"`
}

// Importer inserts category names that are not yet stored.
type Importer struct {
	loader     Loader
	categories repository.CategoryRepository
	logger     zerolog.Logger
}

// NewImporter creates an importer.
func NewImporter(loader Loader, categories repository.CategoryRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:     loader,
		categories: categories,
		logger:     logger.With().Str("component", "category-importer").Logger(),
	}
}

// Import loads path and inserts each missing name. Names already present are
// counted, not updated.
func (i *Importer) Import(ctx context.Context, path string) (ImportResult, error) {
	names, err := i.loader.Load(ctx, path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to load categories: %w", err)
	}

	var res ImportResult
	for _, name := range names {
		if _, err := i.categories.Create(ctx, name); err != nil {
			if errors.Is(err, model.ErrDuplicate) {
				res.Existing++
				continue
			}
			return res, fmt.Errorf("failed to insert category %q: %w", name, err)
		}
		res.Inserted++
	}

	i.logger.Info().
		Str("path", path).
		Int("inserted", res.Inserted).
		Int("existing", res.Existing).
		Msg("categories imported")

	return res, nil
}
