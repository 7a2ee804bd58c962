// Package session keeps a drink log for one person and answers BAC questions
// about it through the sim engine.
//
// Time is in hours from "now" (0); negative means in the past. A Session is
// not safe for concurrent use; the engine calls it makes are.
package session

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/catalog"
	"github.com/bac-sim/bac-sim/sim/drinks"
	"github.com/bac-sim/bac-sim/sim/planner"
)

// Source describes how an event's grams were resolved.
type Source string

const (
	SourceCategory Source = "category"
	SourceCatalog  Source = "catalog"
	SourceGrams    Source = "grams"
)

// Event is one logged drink.
type Event struct {
	ID     uuid.UUID
	Dose   sim.Dose
	Source Source
	Ref    string  // category key or catalog ID; empty for SourceGrams
	Count  float64 // servings
}

// Option applies a configuration option to a Session.
type Option func(*Session)

// WithCatalog sets the catalog used by AddCatalogDrink.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = c
	}
}

// WithModel sets the concentration model.
func WithModel(m sim.Model) Option {
	return func(s *Session) {
		s.model = m
	}
}

// Session is a profile plus an ordered multiset of drink events.
type Session struct {
	profile sim.Profile
	events  []Event
	catalog *catalog.Catalog
	model   sim.Model
}

// New creates an empty session for profile.
func New(profile sim.Profile, opts ...Option) *Session {
	s := &Session{
		profile: profile,
		model:   sim.DefaultModel(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	return s
}

// Profile returns the session's profile.
func (s *Session) Profile() sim.Profile {
	return s.profile
}

func (s *Session) add(ev Event) Event {
	ev.ID = uuid.New()
	s.events = append(s.events, ev)
	logrus.Debugf("session: logged %s %q x%.2f at %+.2fh (%.1f g)", ev.Source, ev.Ref, ev.Count, ev.Dose.Time, ev.Dose.Grams)
	return ev
}

// AddDrink logs count servings of a drink category at hoursFromNow.
// Unknown categories count as standard drinks.
func (s *Session) AddDrink(hoursFromNow float64, key string, count float64) Event {
	g := drinks.GramsFromDrink(key, nil, count)
	return s.add(Event{Dose: sim.Dose{Time: hoursFromNow, Grams: g}, Source: SourceCategory, Ref: key, Count: count})
}

// AddDrinkVolume logs an explicit volume of a drink category at hoursFromNow.
func (s *Session) AddDrinkVolume(hoursFromNow float64, key string, volumeOz float64) Event {
	g := drinks.GramsFromDrink(key, &volumeOz, 1)
	return s.add(Event{Dose: sim.Dose{Time: hoursFromNow, Grams: g}, Source: SourceCategory, Ref: key, Count: 1})
}

// AddDrinkAgo logs count servings of a category hoursAgo hours before now.
func (s *Session) AddDrinkAgo(hoursAgo float64, key string, count float64) Event {
	return s.AddDrink(-hoursAgo, key, count)
}

// AddCatalogDrink logs count servings of a catalog entry hoursAgo hours before
// now as a single aggregated event. Unknown IDs count as standard drinks.
func (s *Session) AddCatalogDrink(hoursAgo float64, id string, count float64) Event {
	g, n, found := s.catalog.GramsAndNutrition(id, count)
	if !found {
		logrus.Warnf("session: catalog entry %q not found; counting %.2f standard drinks", id, count)
	}
	return s.add(Event{Dose: sim.Dose{Time: -hoursAgo, Grams: g, Nutrition: n}, Source: SourceCatalog, Ref: id, Count: count})
}

// AddGrams logs a raw dose of ethanol at hoursFromNow.
func (s *Session) AddGrams(hoursFromNow, grams float64, n sim.Nutrition) Event {
	return s.add(Event{Dose: sim.Dose{Time: hoursFromNow, Grams: grams, Nutrition: n}, Source: SourceGrams, Count: 1})
}

// Reset drops every event and keeps the profile.
func (s *Session) Reset() {
	s.events = nil
}

// Len returns the number of logged events.
func (s *Session) Len() int {
	return len(s.events)
}

// Events returns a copy of the log ordered by time.
func (s *Session) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Dose.Time < out[j].Dose.Time })
	return out
}

// Doses returns the engine input for the log, ordered by time.
func (s *Session) Doses() []sim.Dose {
	doses := make([]sim.Dose, len(s.events))
	for i, ev := range s.events {
		doses[i] = ev.Dose
	}
	return sim.SortDoses(doses)
}

// Nutrition returns the summed nutrition of every event.
func (s *Session) Nutrition() sim.Nutrition {
	var total sim.Nutrition
	for _, ev := range s.events {
		total = total.Add(ev.Dose.Nutrition)
	}
	return total
}

// TotalGrams returns the grams of ethanol across every event.
func (s *Session) TotalGrams() float64 {
	total := 0.0
	for _, ev := range s.events {
		total += ev.Dose.Grams
	}
	return total
}

// BACAt returns BAC at hour t.
func (s *Session) BACAt(t float64) float64 {
	return s.model.ConcentrationAt(t, s.Doses(), s.profile)
}

// BACNow returns BAC at the reference instant.
func (s *Session) BACNow() float64 {
	return s.BACAt(0)
}

// Curve samples the session's BAC curve.
func (s *Session) Curve(opts sim.CurveOptions) []sim.CurvePoint {
	return s.model.Curve(s.Doses(), s.profile, opts)
}

// HoursUntilSober returns hours from the first drink until sober.
func (s *Session) HoursUntilSober() float64 {
	return s.model.TimeToSoberFromFirstDose(s.Doses(), s.profile)
}

// HoursUntilSoberFromNow returns hours from now until sober.
func (s *Session) HoursUntilSoberFromNow() float64 {
	return s.model.HoursUntilSoberFromNow(s.Doses(), s.profile)
}

// Plan builds a hangover plan for a target hoursUntilTarget from now.
func (s *Session) Plan(hoursUntilTarget float64, opts ...planner.Option) planner.Plan {
	opts = append([]planner.Option{planner.WithModel(s.model)}, opts...)
	return planner.New(opts...).Plan(s.Doses(), s.profile, hoursUntilTarget)
}

// DisplayCurve returns the curve a UI would chart: from half an hour before the
// first drink (and no later than a quarter hour before now) until an hour past
// sober, sampled every quarter hour.
func (s *Session) DisplayCurve() []sim.CurvePoint {
	doses := s.Doses()
	start := -0.25
	if len(doses) > 0 {
		start = min(sim.FirstDoseTime(doses)-0.5, -0.25)
	}
	end := max(s.HoursUntilSoberFromNow()+1.0, 2)
	return s.model.Curve(doses, s.profile, sim.CurveOptions{Step: sim.DefaultStepHours, Start: &start, MaxHours: &end})
}
