// ABOUTME: Atom Threading Extensions (RFC 4685) linking entries to the resources they reply to
// ABOUTME: thr:in-reply-to references are attribute-only elements; thr:total counts the replies

package threading

import (
	"cmp"
	"strconv"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/utils/parse"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the Atom threading namespace
	Namespace = "http://purl.org/syndication/thread/1.0"

	// Prefix is the conventional prefix for Namespace
	Prefix = "thr"

	// Kind tags threading extensions
	Kind extensions.Kind = "thr"

	// NoTotal marks an unset reply count
	NoTotal = -1
)

// Descriptor identifies the threading extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "Atom Threading Extensions",
	Description:   "Reply relationships between entries and the number of replies.",
	Documentation: "https://www.rfc-editor.org/rfc/rfc4685",
})

// InReplyTo references the resource an entry responds to. Ref is required.
type InReplyTo struct {
	Ref    string
	Href   string
	Type   string
	Source string
}

func (r InReplyTo) compare(o InReplyTo) int {
	result := cmp.Compare(r.Ref, o.Ref)
	result |= cmp.Compare(r.Href, o.Href)
	result |= cmp.Compare(r.Type, o.Type)
	result |= cmp.Compare(r.Source, o.Source)
	return result
}

// Context holds the threading data
type Context struct {
	InReplyTo []InReplyTo
	Total     int
}

// NewContext returns a context with every field unset
func NewContext() *Context {
	return &Context{Total: NoTotal}
}

// Load reads thr:in-reply-to elements and thr:total
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false

	var replies []InReplyTo
	for _, child := range xmlnav.Children(node, r.Namespace(), "in-reply-to") {
		ref, ok := xmlnav.Attr(child, "", "ref")
		if !ok || ref == "" {
			continue
		}
		reply := InReplyTo{Ref: ref}
		reply.Href, _ = xmlnav.Attr(child, "", "href")
		reply.Type, _ = xmlnav.Attr(child, "", "type")
		reply.Source, _ = xmlnav.Attr(child, "", "source")
		replies = append(replies, reply)
	}
	if len(replies) > 0 {
		c.InReplyTo = replies
		loaded = true
	}

	if raw, ok := r.Value(node, "total"); ok {
		if n, ok := parse.NonNegativeInt(raw); ok {
			c.Total = n
			loaded = true
		}
	}
	return loaded
}

// WriteTo writes the replies and total that are set
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	for _, reply := range c.InReplyTo {
		if reply.Ref == "" {
			continue
		}
		if err := w.StartElement(Prefix, "in-reply-to", namespace); err != nil {
			return err
		}
		attrs := [][2]string{
			{"ref", reply.Ref},
			{"href", reply.Href},
			{"type", reply.Type},
			{"source", reply.Source},
		}
		for _, attr := range attrs {
			if attr[1] == "" {
				continue
			}
			if err := w.Attribute("", attr[0], "", attr[1]); err != nil {
				return err
			}
		}
		if err := w.EndElement(); err != nil {
			return err
		}
	}
	if c.Total != NoTotal {
		if err := w.ElementString(Prefix, "total", namespace, strconv.Itoa(c.Total)); err != nil {
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

// New returns a threading extension with an unset context
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

// WriteTo writes the context under the threading namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor, replies and total
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= cmp.Compare(len(e.context.InReplyTo), len(o.context.InReplyTo))
	if result == 0 {
		for i := range e.context.InReplyTo {
			result |= e.context.InReplyTo[i].compare(o.context.InReplyTo[i])
		}
	}
	result |= cmp.Compare(e.context.Total, o.context.Total)
	return result
}

// Registration binds the threading kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
