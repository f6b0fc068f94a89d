package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/storefront/internal/model"
	"github.com/sells-group/storefront/internal/ui"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return eris.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func writeProducts(w io.Writer, products []model.Product, format string) error {
	if products == nil {
		products = []model.Product{}
	}
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(products), "encode json")
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return eris.Wrap(enc.Encode(products), "encode yaml")
	default:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "NAME", "PRICE", "DESCRIPTION", "IMAGE")
		for _, p := range products {
			t.Row(
				strconv.FormatInt(p.ID, 10),
				ui.Truncate(ui.PlainText(p.Name), 32),
				p.DisplayPrice(),
				ui.Truncate(ui.PlainText(p.Description), 48),
				ui.Truncate(p.ImageOrPlaceholder(), 40),
			)
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	}
}

func writeProduct(w io.Writer, p model.Product, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(p), "encode json")
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return eris.Wrap(enc.Encode(p), "encode yaml")
	default:
		_, err := fmt.Fprintf(w, "#%d %s\n%s\n%s\nImage: %s\n",
			p.ID,
			ui.PlainText(p.Name),
			p.DisplayPrice(),
			ui.PlainText(p.Description),
			p.ImageOrPlaceholder(),
		)
		return err
	}
}
