// ABOUTME: Feed paging and archiving extension (RFC 5005) marking complete and archive feeds
// ABOUTME: Both markers are empty elements whose presence is the value

package feedhistory

import (
	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the feed history namespace
	Namespace = "http://purl.org/syndication/history/1.0"

	// Prefix is the conventional prefix for Namespace
	Prefix = "fh"

	// Kind tags feed history extensions
	Kind extensions.Kind = "fh"
)

// Descriptor identifies the feed history extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "Feed Paging and Archiving",
	Description:   "Marks a feed as a complete feed or as an archive document.",
	Documentation: "https://www.rfc-editor.org/rfc/rfc5005",
})

// Context holds the presence markers
type Context struct {
	Complete bool
	Archive  bool
}

// NewContext returns a context with no markers
func NewContext() *Context {
	return &Context{}
}

// Load detects fh:complete and fh:archive
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false
	if r.Select(node, "complete") != nil {
		c.Complete = true
		loaded = true
	}
	if r.Select(node, "archive") != nil {
		c.Archive = true
		loaded = true
	}
	return loaded
}

// WriteTo writes an empty element per marker that is set
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if c.Complete {
		if err := w.ElementString(Prefix, "complete", namespace, ""); err != nil {
			return err
		}
	}
	if c.Archive {
		if err := w.ElementString(Prefix, "archive", namespace, ""); err != nil {
			return err
		}
	}
	return nil
}

// Extension attaches a Context to a host
type Extension struct {
	extensions.Base
	context *Context
}

// New returns a feed history extension with no markers
func New() *Extension {
	return &Extension{
		Base:    extensions.NewBase(Kind, Descriptor),
		context: NewContext(),
	}
}

// Context returns the mutable payload
func (e *Extension) Context() *Context {
	return e.context
}

// Load populates the context from node
func (e *Extension) Load(node *xmlquery.Node) (bool, error) {
	return e.LoadContext(e, node, e.context)
}

// WriteTo writes the context under the feed history namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor and markers
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= compareBool(e.context.Complete, o.context.Complete)
	result |= compareBool(e.context.Archive, o.context.Archive)
	return result
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// Registration binds the feed history kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
