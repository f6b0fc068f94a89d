package main

import (
	"context"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/storefront/internal/catalog"
	"github.com/sells-group/storefront/internal/config"
)

var productOutput string

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("catalog"); err != nil {
			return err
		}
		if err := validateOutput(productOutput); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Errorf("invalid product id %q", args[0])
		}
		return showProduct(cmd.Context(), cfg, cmd.OutOrStdout(), id, productOutput)
	},
}

// showProduct fetches one product directly. It does not load the catalog, so
// there is no fallback here.
func showProduct(ctx context.Context, c *config.Config, out io.Writer, id int64, format string) error {
	client := catalog.NewClient(
		catalog.WithBaseURL(c.Catalog.BaseURL),
		catalog.WithTimeout(c.Catalog.Timeout()),
	)
	p, err := client.GetProduct(ctx, id)
	if err != nil {
		return eris.Wrapf(err, "product %d", id)
	}
	return writeProduct(out, *p, format)
}

func init() {
	productCmd.Flags().StringVarP(&productOutput, "output", "o", outputTable, "output format: table, json or yaml")
	rootCmd.AddCommand(productCmd)
}
