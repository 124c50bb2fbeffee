package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inwheel/accessibility-importer/internal/catalog"
	"github.com/inwheel/accessibility-importer/internal/domain"
)

// testLimit is the place limit applied by --test.
const testLimit = 100

// runFunc executes an import with the parsed parameters.
type runFunc func(ctx context.Context, params domain.RunParams) error

type options struct {
	regions   []string
	overwrite bool
	limit     int
	test      bool
	batchSize int
}

func (o options) params() domain.RunParams {
	limit := o.limit
	if o.test && limit == 0 {
		limit = testLimit
	}
	return domain.RunParams{
		Regions:   o.regions,
		Overwrite: o.overwrite,
		Limit:     limit,
		BatchSize: o.batchSize,
	}
}

func newRootCommand(run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "importer",
		Short: "Import wheelchair accessibility data from OpenStreetMap extracts",
		Long: `importer reads regional OpenStreetMap extracts, classifies the wheelchair
accessibility tags of places and writes them to PostgreSQL.

Facets edited by users are kept unless --overwrite is given.`,
		Example: `  importer                          # Import every catalog region
  importer --region switzerland     # Import one region
  importer --region finland --test  # Smoke test with 100 places
  importer --overwrite              # Replace user edits too`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.limit < 0 {
				return fmt.Errorf("--limit must be positive")
			}
			if opts.batchSize < 0 {
				return fmt.Errorf("--batch-size must be positive")
			}
			return run(cmd.Context(), opts.params())
		},
	}

	cmd.Flags().StringSliceVarP(&opts.regions, "region", "r", nil,
		"Region to import, repeatable (default: every catalog region)")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false,
		"Replace facets edited by users")
	cmd.Flags().IntVar(&opts.limit, "limit", 0,
		"Import at most this many places per region")
	cmd.Flags().BoolVar(&opts.test, "test", false,
		fmt.Sprintf("Smoke test, shorthand for --limit %d", testLimit))
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0,
		"Places per transaction (default: BATCH_SIZE)")

	cmd.AddCommand(newRegionsCommand())

	return cmd
}

func newRegionsCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Default()
			if file != "" {
				cat, err = catalog.Load(file)
			}
			if err != nil {
				return err
			}
			return printRegions(cmd.OutOrStdout(), cat.Regions())
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Region catalog file (default: embedded catalog)")

	return cmd
}

func printRegions(w io.Writer, regions []domain.Region) error {
	for _, r := range regions {
		if _, err := fmt.Fprintf(w, "%-20s %s\n", r.Name, r.URL); err != nil {
			return err
		}
	}
	return nil
}
