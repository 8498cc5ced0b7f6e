package tz

import (
	"slices"
	"time"
)

type entry struct {
	location   *time.Location
	chronology *Chronology
}

// Registry maps zone ids to their location and chronology. A Registry is
// never modified after NewRegistry returns, so it can be used from many
// goroutines without locking.
type Registry struct {
	entries map[string]entry
	ids     []string
}

// NewRegistry loads every zone in the given list of names and precomputes its
// chronology. Names that can not be loaded are skipped. UTC is always registered.
func NewRegistry(names []string) *Registry {
	entries := make(map[string]entry, len(names)+1)

	for _, name := range append([]string{"UTC"}, names...) {
		if _, ok := entries[name]; ok {
			continue
		}

		location, err := time.LoadLocation(name)
		if err != nil {
			log.Debugf("Skipping zone %q: %s", name, err)
			continue
		}

		entries[name] = entry{
			location:   location,
			chronology: newChronology(name, location),
		}
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return &Registry{entries: entries, ids: ids}
}

// Location returns the location registered for the given id. An empty
// id returns UTC, an unknown id returns nil.
func (r *Registry) Location(id string) *time.Location {
	if id == "" {
		return time.UTC
	}

	return r.entries[id].location
}

// Chronology returns the chronology registered for the given id. An empty
// id returns the chronology of UTC, an unknown id returns nil.
func (r *Registry) Chronology(id string) *Chronology {
	if id == "" {
		id = "UTC"
	}

	return r.entries[id].chronology
}

func (r *Registry) Lookup(id string) (*time.Location, bool) {
	location := r.Location(id)
	return location, location != nil
}

func (r *Registry) LookupChronology(id string) (*Chronology, bool) {
	chronology := r.Chronology(id)
	return chronology, chronology != nil
}

// Contains returns true if the id is registered. The empty id is not.
func (r *Registry) Contains(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// IDs returns all registered zone ids in sorted order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.ids)
}

func (r *Registry) Len() int {
	return len(r.ids)
}
