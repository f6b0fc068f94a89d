package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in an interactive terminal storefront",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("catalog"); err != nil {
			return err
		}
		shop, err := newShop(cfg)
		if err != nil {
			return err
		}
		// Log lines would draw over the alternate screen.
		restore := zap.ReplaceGlobals(zap.NewNop())
		defer restore()

		return ui.Run(cmd.Context(), shop)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
