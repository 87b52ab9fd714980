// ABOUTME: Explicit namespace-to-factory registry replacing runtime type discovery
// ABOUTME: Also decides which extension namespaces are present on a node and declares them on write

package extensions

import (
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

// Factory creates a fresh extension instance with an unset context
type Factory func() Extension

// Registration binds an extension kind to its descriptor and constructor
type Registration struct {
	Kind       Kind
	Descriptor Descriptor
	New        Factory
}

// Registry maps namespace URIs to extension constructors.
// Registration order is preserved and used as the default candidate order.
type Registry struct {
	entries     []Registration
	byNamespace map[string]int
	byKind      map[Kind]int
}

// NewRegistry creates a registry holding regs
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{
		byNamespace: make(map[string]int),
		byKind:      make(map[Kind]int),
	}
	for _, reg := range regs {
		if err := r.Register(reg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds reg. A namespace or kind may only be registered once.
func (r *Registry) Register(reg Registration) error {
	if reg.Kind == "" {
		return &coreerrors.InvalidArgumentError{Argument: "registration", Message: "kind cannot be empty"}
	}
	if reg.Descriptor.IsZero() {
		return &coreerrors.InvalidArgumentError{Argument: "registration", Message: "descriptor namespace cannot be empty"}
	}
	if reg.New == nil {
		return &coreerrors.InvalidArgumentError{Argument: "registration", Message: "factory cannot be nil"}
	}

	namespace := reg.Descriptor.Namespace()
	if _, exists := r.byNamespace[namespace]; exists {
		return &coreerrors.InvalidArgumentError{
			Argument: "registration",
			Message:  fmt.Sprintf("namespace %s is already registered", namespace),
		}
	}
	if _, exists := r.byKind[reg.Kind]; exists {
		return &coreerrors.InvalidArgumentError{
			Argument: "registration",
			Message:  fmt.Sprintf("kind %s is already registered", reg.Kind),
		}
	}

	r.entries = append(r.entries, reg)
	r.byNamespace[namespace] = len(r.entries) - 1
	r.byKind[reg.Kind] = len(r.entries) - 1
	return nil
}

// Lookup returns the registration for namespace
func (r *Registry) Lookup(namespace string) (Registration, bool) {
	idx, ok := r.byNamespace[namespace]
	if !ok {
		return Registration{}, false
	}
	return r.entries[idx], true
}

// LookupKind returns the registration for kind
func (r *Registry) LookupKind(kind Kind) (Registration, bool) {
	idx, ok := r.byKind[kind]
	if !ok {
		return Registration{}, false
	}
	return r.entries[idx], true
}

// New instantiates the extension registered for namespace
func (r *Registry) New(namespace string) (Extension, bool) {
	reg, ok := r.Lookup(namespace)
	if !ok {
		return nil, false
	}
	return reg.New(), true
}

// Descriptors returns every registered descriptor in registration order
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.entries))
	for _, reg := range r.entries {
		out = append(out, reg.Descriptor)
	}
	return out
}

// Registrations returns a snapshot of every registration
func (r *Registry) Registrations() []Registration {
	out := make([]Registration, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered kinds
func (r *Registry) Len() int {
	return len(r.entries)
}

// DescriptorSet is an ordered set of descriptors keyed by namespace
type DescriptorSet struct {
	items []Descriptor
	index map[string]int
}

// NewDescriptorSet creates a set holding descriptors, dropping repeated namespaces
func NewDescriptorSet(descriptors ...Descriptor) *DescriptorSet {
	s := &DescriptorSet{index: make(map[string]int)}
	for _, d := range descriptors {
		s.Add(d)
	}
	return s
}

// Add inserts d unless its namespace is already present, reporting whether it was added
func (s *DescriptorSet) Add(d Descriptor) bool {
	if d.IsZero() {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[d.Namespace()]; ok {
		return false
	}
	s.items = append(s.items, d)
	s.index[d.Namespace()] = len(s.items) - 1
	return true
}

// Contains reports whether namespace is in the set
func (s *DescriptorSet) Contains(namespace string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[namespace]
	return ok
}

// Len returns the number of descriptors
func (s *DescriptorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Descriptors returns the descriptors in insertion order
func (s *DescriptorSet) Descriptors() []Descriptor {
	if s == nil {
		return nil
	}
	out := make([]Descriptor, len(s.items))
	copy(out, s.items)
	return out
}

// SupportedNamespaces returns the candidates structurally present at node: the namespace
// must be declared (in scope at node, or locally on an element below it) and used by
// some element or attribute below it. A declaration inherited from an ancestor without
// any usage does not count.
func SupportedNamespaces(node *xmlquery.Node, candidates []Descriptor) []Descriptor {
	var matched []Descriptor
	if node == nil {
		return matched
	}

	declared := make(map[string]bool)
	for _, uri := range xmlnav.InScopeNamespaces(node) {
		declared[uri] = true
	}
	for uri := range xmlnav.SubtreeDeclarations(node) {
		declared[uri] = true
	}

	seen := make(map[string]bool)
	for _, candidate := range candidates {
		ns := candidate.Namespace()
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		if declared[ns] && xmlnav.UsesNamespace(node, ns) {
			matched = append(matched, candidate)
		}
	}
	return matched
}

// DeclareNamespaces writes one namespace declaration per distinct namespace among
// descriptors on the open start element, normally the document root.
// Descriptors without a prefix are left to be declared where they are written, since
// binding them at the root would replace the document's default namespace. The same
// holds for a descriptor whose prefix an earlier descriptor already bound.
func DeclareNamespaces(descriptors []Descriptor, w *xmlwriter.Writer) error {
	if w == nil {
		return coreerrors.NewInvalidArgument("writer")
	}

	seen := make(map[string]bool)
	for _, d := range descriptors {
		ns := d.Namespace()
		if ns == "" || d.Prefix() == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		err := w.DeclareNamespace(d.Prefix(), ns)
		if errors.Is(err, xmlwriter.ErrPrefixConflict) {
			// declared locally by the writer where its elements appear
			continue
		}
		if err != nil {
			return coreerrors.WrapError(err, "declare namespace "+ns)
		}
	}
	return nil
}
