package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bac-sim/bac-sim/sim/catalog"
	"github.com/bac-sim/bac-sim/sim/session"
)

// inputs is everything a subcommand needs to run the engine.
type inputs struct {
	cfg         *Config
	catalog     *catalog.Catalog
	session     *session.Session
	targetHours float64
}

// loadCatalog returns the catalog at path, or the embedded one when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// buildInputs resolves the catalog and the session. A session file supplies
// profile, drinks and (unless --target was given) the target; without one the
// demo session is used with the configured profile.
func buildInputs(cfg *Config, sessionPath string, targetSet bool) (*inputs, error) {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	in := &inputs{cfg: cfg, catalog: cat, targetHours: cfg.TargetHours}

	if sessionPath == "" {
		in.session = demoSession(cfg, cat)
		logrus.Info("no --session given; using demo session (2 beers an hour ago, 1 beer now)")
		return in, nil
	}

	spec, err := session.LoadSpec(sessionPath)
	if err != nil {
		return nil, err
	}
	s, err := spec.Build(cat)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionPath, err)
	}
	in.session = s
	if spec.TargetHours != nil && !targetSet {
		in.targetHours = *spec.TargetHours
	}
	logrus.Infof("loaded %d drinks from %s", s.Len(), sessionPath)
	return in, nil
}

func demoSession(cfg *Config, cat *catalog.Catalog) *session.Session {
	s := session.New(cfg.Profile(), session.WithCatalog(cat))
	s.AddDrinkAgo(1, "beer", 2)
	s.AddDrink(0, "beer", 1)
	return s
}
