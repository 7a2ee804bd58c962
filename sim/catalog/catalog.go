// Package catalog resolves branded drinks to grams of ethanol and nutrition.
// The built-in catalog is embedded from catalog.yaml; hosts may load a
// replacement file with the same schema.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/drinks"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ErrUnknownEntry is returned by Lookup for IDs not present in the catalog.
var ErrUnknownEntry = errors.New("unknown catalog entry")

// Entry is one catalog drink. Nutrition values are per serving.
type Entry struct {
	ID        string  `yaml:"id" json:"id"`
	Name      string  `yaml:"name" json:"name"`
	Category  string  `yaml:"category" json:"category"`
	ABV       float64 `yaml:"abv" json:"abv"`
	ServingOz float64 `yaml:"serving_oz" json:"serving_oz"`
	Calories  int     `yaml:"calories" json:"calories"`
	CarbsG    float64 `yaml:"carbs_g" json:"carbs_g"`
	SugarG    float64 `yaml:"sugar_g" json:"sugar_g"`
	Brand     string  `yaml:"brand,omitempty" json:"brand,omitempty"`
}

// GramsPerServing returns grams of ethanol in one serving.
func (e Entry) GramsPerServing() float64 {
	return drinks.GramsFromVolumeABV(e.ServingOz, e.ABV)
}

// Catalog is an immutable, indexed set of entries.
type Catalog struct {
	Version string  `yaml:"version"`
	Entries []Entry `yaml:"entries"`

	byID map[string]int
}

var validCategories = map[string]bool{
	"beer": true, "seltzer": true, "wine": true, "liquor": true, "cocktail": true, "other": true,
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which is a build defect rather than a runtime condition.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded catalog.yaml is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %d catalog entries from %s", len(c.Entries), path)
	return c, nil
}

// Parse decodes catalog YAML. Uses strict parsing: unrecognized keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// Validate checks every entry and rejects duplicate IDs.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Entries))
	for i, e := range c.Entries {
		prefix := fmt.Sprintf("entries[%d]", i)
		if e.ID == "" {
			return fmt.Errorf("%s: id must not be empty", prefix)
		}
		if seen[e.ID] {
			return fmt.Errorf("%s: duplicate id %q", prefix, e.ID)
		}
		seen[e.ID] = true
		if !validCategories[e.Category] {
			return fmt.Errorf("%s: unknown category %q; valid: beer, seltzer, wine, liquor, cocktail, other", prefix, e.Category)
		}
		if math.IsNaN(e.ABV) || e.ABV < 0 || e.ABV > 1 {
			return fmt.Errorf("%s: abv must be a fraction in [0, 1], got %f", prefix, e.ABV)
		}
		if math.IsNaN(e.ServingOz) || math.IsInf(e.ServingOz, 0) || e.ServingOz <= 0 {
			return fmt.Errorf("%s: serving_oz must be a finite positive number, got %f", prefix, e.ServingOz)
		}
		if e.Calories < 0 || e.CarbsG < 0 || e.SugarG < 0 {
			return fmt.Errorf("%s: nutrition values must be non-negative", prefix)
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.byID = make(map[string]int, len(c.Entries))
	for i, e := range c.Entries {
		c.byID[e.ID] = i
	}
}

// Lookup returns the entry with the given ID.
func (c *Catalog) Lookup(id string) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownEntry, id)
	}
	return c.Entries[i], nil
}

// GramsAndNutrition returns grams of ethanol and total nutrition for count
// servings of id. Unknown IDs resolve to count standard drinks with no
// nutrition; found reports which case applied.
func (c *Catalog) GramsAndNutrition(id string, count float64) (grams float64, n sim.Nutrition, found bool) {
	e, err := c.Lookup(id)
	if err != nil {
		return count * drinks.StandardDrinkGrams, sim.Nutrition{}, false
	}
	grams = drinks.GramsFromVolumeABV(e.ServingOz*count, e.ABV)
	n = sim.Nutrition{
		Calories: int(float64(e.Calories) * count),
		CarbsG:   e.CarbsG * count,
		SugarG:   e.SugarG * count,
	}
	return grams, n, true
}

// ByCategory groups entries by category, preserving catalog order within a group.
func (c *Catalog) ByCategory() map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range c.Entries {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// Categories returns the categories present in the catalog, sorted.
func (c *Catalog) Categories() []string {
	groups := c.ByCategory()
	out := make([]string, 0, len(groups))
	for k := range groups {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
