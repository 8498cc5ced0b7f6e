package tz

import (
	"time"

	"github.com/flachnetz/timeutil/startup_base"
	"github.com/sirupsen/logrus"

	// the zone database for hosts without one, lookups never fail for a known id.
	_ "time/tzdata"
)

//go:generate go run genzones.go -output zones_gen.go

var log = logrus.WithField("prefix", "tz")

// Default contains every zone known to this host. Loading a zone is expensive,
// so all of them are loaded once when the program starts.
var Default = loadDefault()

var (
	EuropeBerlin = MustLoadLocation("Europe/Berlin")
	UTC          = MustLoadLocation("UTC")
)

func loadDefault() *Registry {
	names, err := ZoneNames(zoneSources()...)
	if err != nil {
		log.WithError(err).Debug("Some zone sources could not be read")
	}

	// the linked in database can load these even if the host has no zone files
	names = append(names, embeddedZones...)

	registry := NewRegistry(names)
	log.Debugf("Registered %d zones", registry.Len())

	return registry
}

// Location returns the zone with the given id. An empty id returns UTC.
// Returns nil if the id is not known.
func Location(id string) *time.Location {
	return Default.Location(id)
}

// ChronologyOf returns the chronology for the zone with the given id. An empty id
// returns the UTC chronology. Returns nil if the id is not known.
func ChronologyOf(id string) *Chronology {
	return Default.Chronology(id)
}

func Lookup(id string) (*time.Location, bool) {
	return Default.Lookup(id)
}

func LookupChronology(id string) (*Chronology, bool) {
	return Default.LookupChronology(id)
}

func IsKnown(id string) bool {
	return Default.Contains(id)
}

func IDs() []string {
	return Default.IDs()
}

func MustLoadLocation(name string) *time.Location {
	if loc, ok := Lookup(name); ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	startup_base.PanicOnError(err, "load timezone %q", name)

	return loc
}
