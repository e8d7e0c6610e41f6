package column

import "sort"

// Registry is an immutable set of known column names.
type Registry struct {
	names map[string]struct{}
}

// New creates a registry from the given names.
// Duplicates collapse. An empty registry is legal; it rejects every column.
func New(names ...string) *Registry {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &Registry{names: set}
}

// Contains reports whether name was declared at construction time.
func (r *Registry) Contains(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[name]
	return ok
}

// Len returns the number of known columns.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the known columns in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
