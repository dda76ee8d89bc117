package harvest

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maps resource kinds to their descriptors and records the
// parent/child hierarchy. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	kinds    map[string]*Descriptor
	order    []string
	aliases  map[string]string
	children map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds:    make(map[string]*Descriptor),
		aliases:  make(map[string]string),
		children: make(map[string][]string),
	}
}

// Register resolves spec and adds it to the registry. Every parent must
// already be registered. Registering an identical spec twice is a no-op;
// registering a different spec under a taken name or alias fails with
// ErrKindConflict.
func (r *Registry) Register(spec KindSpec) (*Descriptor, error) {
	desc, err := NewDescriptor(spec)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.kinds[desc.name]; ok {
		if existing.equal(desc) {
			return existing, nil
		}

		return nil, fmt.Errorf("%w: %s", ErrKindConflict, desc.name)
	}

	for _, parent := range desc.parents {
		if _, ok := r.kinds[parent]; !ok {
			return nil, fmt.Errorf("%w: %s (declared by %s)", ErrUnknownParent, parent, desc.name)
		}
	}

	aliases := aliasesOf(desc)
	for _, alias := range aliases {
		if owner, ok := r.aliases[alias]; ok && owner != desc.name {
			return nil, fmt.Errorf("%w: %s and %s both answer to %q", ErrKindConflict, owner, desc.name, alias)
		}
	}

	r.kinds[desc.name] = desc
	r.order = append(r.order, desc.name)

	for _, alias := range aliases {
		r.aliases[alias] = desc.name
	}

	for _, parent := range desc.parents {
		r.children[parent] = append(r.children[parent], desc.name)
	}

	return desc, nil
}

// MustRegister is Register that panics on error. It is meant for kind tables
// registered during package initialization.
func (r *Registry) MustRegister(spec KindSpec) *Descriptor {
	desc, err := r.Register(spec)
	if err != nil {
		panic(err)
	}

	return desc
}

// Lookup finds a kind by declared name, element name, plural name or
// accessor name, case-insensitively.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if desc, ok := r.kinds[name]; ok {
		return desc, true
	}

	owner, ok := r.aliases[strings.ToLower(name)]
	if !ok {
		return nil, false
	}

	return r.kinds[owner], true
}

// Resolve is Lookup returning ErrUnknownKind when nothing matches.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	desc, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}

	return desc, nil
}

// Kinds returns every descriptor in registration order.
func (r *Registry) Kinds() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		kinds = append(kinds, r.kinds[name])
	}

	return kinds
}

// Primaries returns the kinds reachable from the client root.
func (r *Registry) Primaries() []*Descriptor {
	var primaries []*Descriptor

	for _, desc := range r.Kinds() {
		if desc.primary {
			primaries = append(primaries, desc)
		}
	}

	return primaries
}

// Children returns the kinds nested under parent, in registration order.
func (r *Registry) Children(parent string) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.children[parent]
	children := make([]*Descriptor, 0, len(names))

	for _, name := range names {
		children = append(children, r.kinds[name])
	}

	return children
}

// ResolvePrimary returns the descriptor of a primary kind.
func (r *Registry) ResolvePrimary(kind string) (*Descriptor, error) {
	desc, err := r.Resolve(kind)
	if err != nil {
		return nil, err
	}

	if !desc.primary {
		return nil, fmt.Errorf("%w: %s", ErrNotPrimary, desc.name)
	}

	return desc, nil
}

// ResolveNested returns the descriptors of kind and parentKind, checking that
// kind is declared under parentKind.
func (r *Registry) ResolveNested(parentKind, kind string) (*Descriptor, *Descriptor, error) {
	parent, err := r.Resolve(parentKind)
	if err != nil {
		return nil, nil, err
	}

	desc, err := r.Resolve(kind)
	if err != nil {
		return nil, nil, err
	}

	if !desc.HasParent(parent.name) {
		return nil, nil, fmt.Errorf("%w: %s under %s", ErrNotNested, desc.name, parent.name)
	}

	return parent, desc, nil
}

func aliasesOf(desc *Descriptor) []string {
	candidates := []string{
		desc.name,
		desc.elementName,
		desc.pluralName,
		desc.ItemAccessor(),
		desc.CollectionAccessor(),
	}

	seen := make(map[string]bool, len(candidates))
	aliases := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		alias := strings.ToLower(candidate)
		if !seen[alias] {
			seen[alias] = true
			aliases = append(aliases, alias)
		}
	}

	return aliases
}
