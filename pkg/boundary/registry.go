package boundary

import (
	"fmt"
	"sort"
	"strings"
)

// Registry resolves free-form boundary-condition names to argument-free
// variants. Name lookup normalizes case, whitespace and underscores, so
// "Outdoors", "outdoors" and " OUT_DOORS " all resolve to the same variant.
// Variants requiring constructor arguments (Surface) are deliberately not
// resolvable by name.
type Registry struct {
	ctors map[string]func() Condition // normalized name -> constructor
	names map[string]string           // normalized name -> canonical name
}

// NewRegistry returns a registry with the core argument-free variants
// (Outdoors, Ground) registered.
func NewRegistry() *Registry {
	r := &Registry{
		ctors: make(map[string]func() Condition),
		names: make(map[string]string),
	}
	r.mustRegister("Outdoors", func() Condition { return NewOutdoors() })
	r.mustRegister("Ground", func() Condition { return NewGround() })
	return r
}

// Default is the process-wide registry used by package-level lookups.
var Default = NewRegistry()

// normalizeName strips whitespace and underscores and lowercases the name.
func normalizeName(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "_", "")
	return n
}

// Register adds a named, argument-free variant constructor. Registering a
// name that normalizes to an existing entry is an error.
func (r *Registry) Register(name string, ctor func() Condition) error {
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("boundary: cannot register an empty condition name")
	}
	if key == normalizeName("Surface") {
		return fmt.Errorf("boundary: Surface requires constructor arguments and cannot be registered by name")
	}
	if _, ok := r.ctors[key]; ok {
		return fmt.Errorf("boundary: condition name %q is already registered", name)
	}
	r.ctors[key] = ctor
	r.names[key] = name
	return nil
}

// RegisterGeneric registers an argument-free Generic variant under name.
func (r *Registry) RegisterGeneric(name string) error {
	return r.Register(name, func() Condition { return NewGeneric(name) })
}

func (r *Registry) mustRegister(name string, ctor func() Condition) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// ByName resolves a free-form name to a registered condition instance.
// Names resolving to Surface are rejected, since Surface requires adjacency
// identifiers at construction. Unknown names are rejected with the valid
// choices enumerated.
func (r *Registry) ByName(name string) (Condition, error) {
	key := normalizeName(name)
	if key == normalizeName("Surface") {
		return nil, fmt.Errorf(
			"boundary: %q requires constructor arguments and cannot be looked up by "+
				"name; use NewSurface or NewSurfaceFromObject", name)
	}
	return r.byNormalizedKey(name, key)
}

// byRegisteredName resolves an exact canonical name, used by dict dispatch.
func (r *Registry) byRegisteredName(name string) (Condition, error) {
	key := normalizeName(name)
	canonical, ok := r.names[key]
	if !ok || canonical != name {
		return nil, fmt.Errorf("boundary: unknown condition type %q", name)
	}
	return r.ctors[key](), nil
}

func (r *Registry) byNormalizedKey(input, key string) (Condition, error) {
	ctor, ok := r.ctors[key]
	if !ok {
		return nil, fmt.Errorf(
			"boundary: %q is not a valid boundary condition name; choose from: %s",
			input, strings.Join(r.Names(), ", "))
	}
	return ctor(), nil
}

// Names returns the canonical names of all registered variants, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ByName resolves a name against the default registry.
func ByName(name string) (Condition, error) {
	return Default.ByName(name)
}
