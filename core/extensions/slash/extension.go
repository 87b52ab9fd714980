// ABOUTME: RSS 1.0 Slash module carrying Slashcode-style section, department and comment counts
// ABOUTME: Usually attached to items

package slash

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/utils/parse"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the Slash module namespace
	Namespace = "http://purl.org/rss/1.0/modules/slash/"

	// Prefix is the conventional prefix for Namespace
	Prefix = "slash"

	// Kind tags slash extensions
	Kind extensions.Kind = "slash"

	// NoComments marks an unset comment count
	NoComments = -1
)

// Descriptor identifies the slash extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "RDF Site Summary 1.0 Modules: Slash",
	Description:   "Section, department, comment count and hit parade of Slashcode sites.",
	Documentation: "http://web.resource.org/rss/1.0/modules/slash/",
})

// Context holds the slash fields
type Context struct {
	Section    string
	Department string
	Comments   int
	HitParade  []int
}

// NewContext returns a context with every field unset
func NewContext() *Context {
	return &Context{Comments: NoComments}
}

// Load reads slash:section, slash:department, slash:comments and slash:hit_parade
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false
	if v, ok := r.Value(node, "section"); ok && v != "" {
		c.Section = v
		loaded = true
	}
	if v, ok := r.Value(node, "department"); ok && v != "" {
		c.Department = v
		loaded = true
	}
	if raw, ok := r.Value(node, "comments"); ok {
		if n, ok := parse.NonNegativeInt(raw); ok {
			c.Comments = n
			loaded = true
		}
	}
	if raw, ok := r.Value(node, "hit_parade"); ok {
		if values, ok := parse.IntList(raw); ok {
			c.HitParade = values
			loaded = true
		}
	}
	return loaded
}

// WriteTo writes the fields that are set
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if c.Section != "" {
		if err := w.ElementString(Prefix, "section", namespace, c.Section); err != nil {
			return err
		}
	}
	if c.Department != "" {
		if err := w.ElementString(Prefix, "department", namespace, c.Department); err != nil {
			return err
		}
	}
	if c.Comments != NoComments {
		if err := w.ElementString(Prefix, "comments", namespace, strconv.Itoa(c.Comments)); err != nil {
			return err
		}
	}
	if len(c.HitParade) > 0 {
		if err := w.ElementString(Prefix, "hit_parade", namespace, parse.FormatIntList(c.HitParade)); err != nil {
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

// New returns a slash extension with an unset context
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

// WriteTo writes the context under the slash namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor and every slash field
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= cmp.Compare(e.context.Section, o.context.Section)
	result |= cmp.Compare(e.context.Department, o.context.Department)
	result |= cmp.Compare(e.context.Comments, o.context.Comments)
	result |= slices.Compare(e.context.HitParade, o.context.HitParade)
	return result
}

// Registration binds the slash kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
