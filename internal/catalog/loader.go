package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader reads category files from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a local file system loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "category-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open category file")
		return nil, fmt.Errorf("failed to open category file %s: %w", path, err)
	}
	defer file.Close()

	names, err := readNames(ctx, file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read category file")
		return nil, err
	}

	l.logger.Info().Str("file", path).Int("categories", len(names)).Msg("category file loaded")
	return names, nil
}
