// Package catalog maintains the product category list out-of-band. The API
// only reads categories; this package loads newline-delimited name files
// (optionally gzipped) from disk or S3 and inserts the names that are missing.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"
)

// Loader reads a category file and returns its names in file order, without
// duplicates. Blank lines and lines starting with '#' are skipped.
type Loader interface {
	Load(ctx context.Context, path string) ([]string, error)
}

// readNames parses one category name per line. Files ending in .gz are
// decompressed first.
func readNames(ctx context.Context, r io.Reader, path string) ([]string, error) {
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var (
		names []string
		seen  = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(r)
	for lineNo := 0; scanner.Scan(); lineNo++ {
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading category file %s: %w", path, err)
	}
	return names, nil
}
