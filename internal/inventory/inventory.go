package inventory

import (
	"strings"

	"flightchat/internal/domain"
)

// Inventory holds the flight records in load order and answers route/date
// searches over them. It is read-only after construction: confirming a
// booking never removes or alters a record.
type Inventory struct {
	records      []domain.FlightRecord
	origins      map[string]struct{}
	destinations map[string]struct{}
}

// New builds an inventory from the loaded records. Origin and destination
// membership sets are case-normalized once here so city matching does not
// depend on the dataset's capitalization.
func New(records []domain.FlightRecord) *Inventory {
	inv := &Inventory{
		records:      records,
		origins:      make(map[string]struct{}),
		destinations: make(map[string]struct{}),
	}
	for _, r := range records {
		inv.origins[strings.ToLower(r.Origin)] = struct{}{}
		inv.destinations[strings.ToLower(r.Destination)] = struct{}{}
	}
	return inv
}

// Search returns the records on the given route departing on the exact
// date string, in load order.
func (inv *Inventory) Search(origin, destination, date string) []domain.FlightRecord {
	var out []domain.FlightRecord
	for _, r := range inv.records {
		if strings.EqualFold(r.Origin, origin) &&
			strings.EqualFold(r.Destination, destination) &&
			r.DepartureDate == date {
			out = append(out, r)
		}
	}
	return out
}

// SearchExcludingDate returns the records on the given route departing on
// any date other than the excluded one, in load order.
func (inv *Inventory) SearchExcludingDate(origin, destination, excluded string) []domain.FlightRecord {
	var out []domain.FlightRecord
	for _, r := range inv.records {
		if strings.EqualFold(r.Origin, origin) &&
			strings.EqualFold(r.Destination, destination) &&
			r.DepartureDate != excluded {
			out = append(out, r)
		}
	}
	return out
}

// HasOrigin reports whether any flight departs from the city.
func (inv *Inventory) HasOrigin(city string) bool {
	_, ok := inv.origins[strings.ToLower(city)]
	return ok
}

// HasDestination reports whether any flight arrives at the city.
func (inv *Inventory) HasDestination(city string) bool {
	_, ok := inv.destinations[strings.ToLower(city)]
	return ok
}

// Len returns the number of loaded records.
func (inv *Inventory) Len() int { return len(inv.records) }

var _ domain.Inventory = (*Inventory)(nil)
