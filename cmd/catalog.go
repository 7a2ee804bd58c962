package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bac-sim/bac-sim/sim/catalog"
	"github.com/bac-sim/bac-sim/sim/drinks"
)

var catalogFormat string // text, json or yaml

// writeCatalog lists the generic drink categories followed by the catalog
// entries grouped by category.
func writeCatalog(w io.Writer, cat *catalog.Catalog, format string) error {
	switch format {
	case "text":
		printer.Fprintf(w, "Generic drinks:\n")
		for _, c := range drinks.Categories() {
			printer.Fprintf(w, "  %-8s %s, %.1f oz, %.0f g\n", c.Key, c.Name, c.DefaultOz, c.GramsPerServing)
		}
		groups := cat.ByCategory()
		for _, category := range cat.Categories() {
			printer.Fprintf(w, "%s:\n", category)
			for _, e := range groups[category] {
				printer.Fprintf(w, "  %-24s %-28s %4.1f%% %5.1f oz %4d kcal %5.1f g\n",
					e.ID, e.Name, e.ABV*100, e.ServingOz, e.Calories, e.GramsPerServing())
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.Entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(cat)
	default:
		return fmt.Errorf("unknown format %q; valid: text, json, yaml", format)
	}
}

// catalogCmd lists the drinks that sessions can reference
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List generic drink categories and catalog entries",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(configPath, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		level, _ := logrus.ParseLevel(cfg.LogLevel)
		logrus.SetLevel(level)

		cat, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			logrus.Fatalf("Unable to load catalog: %v", err)
		}
		if err := writeCatalog(os.Stdout, cat, catalogFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "text", "Output format (text, json, yaml)")
}
