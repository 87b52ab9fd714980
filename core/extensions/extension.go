// ABOUTME: Extension couples a Descriptor with a typed Context and is the unit attached to host entities
// ABOUTME: Base carries the shared load/write pipeline so each kind only supplies its Context

package extensions

import (
	"strings"

	"github.com/antchfx/xmlquery"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

// Kind is the closed type tag of a concrete extension implementation
type Kind string

// Context is the typed payload of one extension instance.
//
// Load reads every recognized field from node, skipping values that fail to parse,
// and reports whether at least one field was loaded. WriteTo writes only the fields
// that are not at their unset sentinel.
type Context interface {
	Load(node *xmlquery.Node, resolver *xmlnav.Resolver) bool
	WriteTo(w *xmlwriter.Writer, namespace string) error
}

// Extension is a namespace-scoped chunk of XML attached to a host entity
type Extension interface {
	// Kind returns the type tag used for type matching
	Kind() Kind

	// Descriptor returns the identity of the extension kind
	Descriptor() Descriptor

	// Load populates the context from the host element node.
	// It returns an InvalidArgumentError when node is nil.
	Load(node *xmlquery.Node) (bool, error)

	// WriteTo serializes the context as children of the current element
	WriteTo(w *xmlwriter.Writer) error

	// Compare returns zero when both extensions are of the same kind with equal
	// descriptors and field values
	Compare(other Extension) int

	// OnLoaded registers fn to be called after every Load
	OnLoaded(fn LoadedFunc)
}

// LoadedFunc observes a completed Load
type LoadedFunc func(ext Extension)

// Predicate selects extensions in FindExtension
type Predicate func(ext Extension) bool

// Base implements the parts of Extension shared by every kind
type Base struct {
	kind       Kind
	descriptor Descriptor
	observers  []LoadedFunc
}

// NewBase creates the shared part of an extension
func NewBase(kind Kind, descriptor Descriptor) Base {
	return Base{kind: kind, descriptor: descriptor}
}

// Kind returns the type tag
func (b *Base) Kind() Kind { return b.kind }

// Descriptor returns the extension identity
func (b *Base) Descriptor() Descriptor { return b.descriptor }

// OnLoaded registers a loaded observer
func (b *Base) OnLoaded(fn LoadedFunc) {
	if fn != nil {
		b.observers = append(b.observers, fn)
	}
}

// LoadContext runs ctx.Load with a resolver bound to this extension's namespace and
// notifies observers with self once loading finishes
func (b *Base) LoadContext(self Extension, node *xmlquery.Node, ctx Context) (bool, error) {
	if node == nil {
		return false, coreerrors.NewInvalidArgument("node")
	}
	if ctx == nil {
		return false, coreerrors.NewInvalidArgument("context")
	}

	resolver := xmlnav.NewResolver(b.descriptor.Prefix(), b.descriptor.Namespace())
	loaded := ctx.Load(node, resolver)

	for _, fn := range b.observers {
		fn(self)
	}
	return loaded, nil
}

// WriteContext writes ctx under this extension's namespace
func (b *Base) WriteContext(w *xmlwriter.Writer, ctx Context) error {
	if w == nil {
		return coreerrors.NewInvalidArgument("writer")
	}
	if ctx == nil {
		return coreerrors.NewInvalidArgument("context")
	}
	return ctx.WriteTo(w, b.descriptor.Namespace())
}

// CompareBase compares kind and descriptor, the part of Compare every kind shares
func (b *Base) CompareBase(other Extension) int {
	if other == nil {
		return 1
	}
	result := strings.Compare(string(b.kind), string(other.Kind()))
	result |= CompareCommonAttributes(b.descriptor, other.Descriptor())
	return result
}

// MatchByType reports whether a and b are the same concrete kind.
// Field values are never consulted.
func MatchByType(a, b Extension) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind() == b.Kind()
}

// OfKind returns a predicate matching extensions of kind
func OfKind(kind Kind) Predicate {
	return func(ext Extension) bool {
		return ext != nil && ext.Kind() == kind
	}
}

// SameKindAs returns a predicate matching extensions of the same kind as exemplar
func SameKindAs(exemplar Extension) Predicate {
	return func(ext Extension) bool {
		return MatchByType(exemplar, ext)
	}
}

// Find returns the first extension attached to host whose concrete type is T
func Find[T Extension](host Host) (T, bool) {
	var zero T
	if host == nil {
		return zero, false
	}
	for _, ext := range host.Extensions() {
		if typed, ok := ext.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// EqualExtensions reports whether a and b compare equal
func EqualExtensions(a, b Extension) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Compare(b) == 0
}
