package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/catalog"
	"github.com/sells-group/storefront/internal/config"
	"github.com/sells-group/storefront/internal/storefront"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Product catalog storefront",
	Long:  "Loads the product catalog from the storefront backend once per session and serves it with live search, a cart counter, and a demo fallback catalog when the backend is down.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

// newShop builds a storefront session against the configured backend.
func newShop(c *config.Config) (*storefront.Shop, error) {
	policy, err := storefront.ParseFallbackPolicy(c.Catalog.FallbackPolicy)
	if err != nil {
		return nil, err
	}

	client := catalog.NewClient(
		catalog.WithBaseURL(c.Catalog.BaseURL),
		catalog.WithTimeout(c.Catalog.Timeout()),
	)
	shop := storefront.NewShop(client, policy)

	zap.L().Debug("storefront session created",
		zap.String("session_id", shop.SessionID()),
		zap.String("base_url", c.Catalog.BaseURL),
		zap.String("policy", string(policy)),
	)
	return shop, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
