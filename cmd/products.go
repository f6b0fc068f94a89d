package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/storefront/internal/config"
	"github.com/sells-group/storefront/internal/storefront"
)

var (
	productsQuery  string
	productsOutput string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalog, optionally filtered by a search query",
	Example: `  storefront products
  storefront products --query watch --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("catalog"); err != nil {
			return err
		}
		if err := validateOutput(productsOutput); err != nil {
			return err
		}
		return listProducts(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), productsQuery, productsOutput)
	},
}

// listProducts loads the catalog once, applies query, and prints the visible
// products. Notices go to errOut so stdout stays machine readable.
func listProducts(ctx context.Context, c *config.Config, out, errOut io.Writer, query, format string) error {
	shop, err := newShop(c)
	if err != nil {
		return err
	}
	if err := shop.Start(ctx); err != nil {
		return err
	}

	v := shop.Search(query)
	printNotices(errOut, v)

	if v.Status == storefront.StatusFailed && !v.UsingFallback {
		return eris.Errorf("catalog unavailable: %s", v.ErrorDetail)
	}
	// An empty table prints nothing; json and yaml still emit an empty list.
	if v.NoResults && format == outputTable {
		return nil
	}
	return writeProducts(out, v.Items, format)
}

func printNotices(w io.Writer, v storefront.View) {
	if v.ErrorMessage != "" {
		fmt.Fprintf(w, "%s\n  %s\n", v.ErrorMessage, v.ErrorDetail)
	}
	if v.Notice != "" {
		fmt.Fprintln(w, v.Notice)
	}
}

func init() {
	productsCmd.Flags().StringVarP(&productsQuery, "query", "q", "", "search query matched against name and description")
	productsCmd.Flags().StringVarP(&productsOutput, "output", "o", outputTable, "output format: table, json or yaml")
	rootCmd.AddCommand(productsCmd)
}
