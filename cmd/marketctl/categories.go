package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"usedmarket/internal/catalog"
	"usedmarket/internal/repository"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage product categories",
	}

	cmd.AddCommand(importCategoriesCmd())
	cmd.AddCommand(sampleCategoriesCmd())

	return cmd
}

func importCategoriesCmd() *cobra.Command {
	var (
		bucket string
		region string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Insert the category names listed in a file",
		Long: `Insert every category name from a newline-delimited file. Names that
already exist are skipped. Files ending in .gz are decompressed.

With --s3-bucket the file is read from S3 first (key = prefix + path) and
from the local file system when that fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var remote catalog.Loader
			if bucket != "" {
				remote, err = catalog.NewS3Loader(ctx, bucket, region, s.logger)
				if err != nil {
					return err
				}
			}
			loader := catalog.NewFallbackLoader(remote, catalog.NewFileLoader(s.logger), prefix, s.logger)

			res, err := catalog.NewImporter(loader, repository.NewCategoryRepository(s.store), s.logger).Import(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, already present %d\n", res.Inserted, res.Existing)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "read the file from this S3 bucket")
	cmd.Flags().StringVar(&region, "s3-region", "us-east-1", "AWS region of the bucket")
	cmd.Flags().StringVar(&prefix, "s3-prefix", "categories/", "key prefix within the bucket")

	return cmd
}

var sampleCategories = []string{
	"Phones",
	"Laptops",
	"Furniture",
	"Books",
	"Bicycles",
	"Cameras",
}

func sampleCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [path]",
		Short: "Write a sample category file for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeCategoryFile(args[0], sampleCategories); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d categories\n", args[0], len(sampleCategories))
			return nil
		},
	}
}

// writeCategoryFile writes one name per line, gzipped when path ends in .gz.
func writeCategoryFile(path string, names []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s\n", name); err != nil {
			return fmt.Errorf("failed to write category: %w", err)
		}
	}

	return nil
}
