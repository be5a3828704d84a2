// Package zones holds the closed set of selectable time zones and the
// active, append-only zone list built from it.
package zones

import (
	"fmt"
	"slices"
	"time"
	_ "time/tzdata" // the allow-list must resolve on hosts without a zoneinfo database
)

// Default is the zone every active list starts with.
const Default = "UTC"

// options is the fixed allow-list, in dropdown order.
var options = []string{
	"UTC",
	"America/New_York",
	"Europe/London",
	"Europe/Moscow",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// Options returns a copy of the fixed allow-list in dropdown order.
func Options() []string {
	return slices.Clone(options)
}

// Zone is an identifier from the allow-list paired with its rule set.
type Zone struct {
	Location *time.Location
	Name     string
}

// Provider supplies the selectable zone names and resolves them.
type Provider interface {
	Names() []string
	Lookup(name string) (Zone, bool)
}

// Catalog is a Provider over a fixed list of names, resolved once up front.
type Catalog struct {
	byName map[string]Zone
	names  []string
}

// NewCatalog resolves every name in names. It fails if any name is unknown
// to the zone database, so a successfully built Catalog never fails a Lookup
// for one of its own names.
func NewCatalog(names []string) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]Zone, len(names)),
		names:  make([]string, 0, len(names)),
	}
	for _, name := range names {
		if _, dup := c.byName[name]; dup {
			continue
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("loading zone %q: %w", name, err)
		}
		c.byName[name] = Zone{Name: name, Location: loc}
		c.names = append(c.names, name)
	}
	return c, nil
}

// DefaultCatalog returns the Catalog over Options.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(options)
}

// Names returns the catalog's names in the order given to NewCatalog.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Lookup resolves name. ok is false for names outside the catalog.
func (c *Catalog) Lookup(name string) (Zone, bool) {
	z, ok := c.byName[name]
	return z, ok
}

// Contains reports whether name is in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}
