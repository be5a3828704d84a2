package zones

import "slices"

// List is the active zone list: ordered, duplicate free, append-only.
type List struct {
	provider Provider
	names    []string
}

// NewList returns a list holding only Default.
func NewList(p Provider) *List {
	return &List{provider: p, names: []string{Default}}
}

// Add appends name unless it is empty, outside the provider's set or already
// present. It reports whether the list changed.
func (l *List) Add(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := l.provider.Lookup(name); !ok {
		return false
	}
	if slices.Contains(l.names, name) {
		return false
	}
	l.names = append(l.names, name)
	return true
}

// Names returns the active identifiers in insertion order.
func (l *List) Names() []string {
	return slices.Clone(l.names)
}

// Len returns the number of active zones.
func (l *List) Len() int {
	return len(l.names)
}

// Zones resolves the active identifiers, preserving order.
func (l *List) Zones() []Zone {
	out := make([]Zone, 0, len(l.names))
	for _, name := range l.names {
		if z, ok := l.provider.Lookup(name); ok {
			out = append(out, z)
		}
	}
	return out
}
