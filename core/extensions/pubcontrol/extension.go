// ABOUTME: Atom Publishing Protocol publishing-control extension (app:control, app:edited)
// ABOUTME: Marks entries as drafts and records when a member resource was last edited

package pubcontrol

import (
	"cmp"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	timeutil "syndication-kit/pkg/utils/time"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the Atom Publishing Protocol namespace
	Namespace = "http://www.w3.org/2007/app"

	// Prefix is the conventional prefix for Namespace
	Prefix = "app"

	// Kind tags publishing-control extensions
	Kind extensions.Kind = "app"
)

// Descriptor identifies the publishing-control extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "Atom Publishing Protocol Publishing Control",
	Description:   "Draft status and edit time of Atom member entries.",
	Documentation: "https://www.rfc-editor.org/rfc/rfc5023#section-13",
})

// Draft is the tri-state app:draft flag
type Draft int

const (
	// DraftUnset means no app:draft value is present
	DraftUnset Draft = iota
	// DraftYes marks the entry as not publicly visible
	DraftYes
	// DraftNo marks the entry as published
	DraftNo
)

// String returns the element value for d
func (d Draft) String() string {
	switch d {
	case DraftYes:
		return "yes"
	case DraftNo:
		return "no"
	default:
		return ""
	}
}

func parseDraft(s string) (Draft, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return DraftYes, true
	case "no":
		return DraftNo, true
	}
	return DraftUnset, false
}

// Context holds the publishing-control state
type Context struct {
	Draft  Draft
	Edited time.Time
}

// NewContext returns a context with every field unset
func NewContext() *Context {
	return &Context{}
}

// Load reads app:control/app:draft and app:edited
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false
	if control := r.Select(node, "control"); control != nil {
		if raw, ok := r.Value(control, "draft"); ok {
			if d, ok := parseDraft(raw); ok {
				c.Draft = d
				loaded = true
			}
		}
	}
	if raw, ok := r.Value(node, "edited"); ok {
		if t := timeutil.ParseFlexibleTime(raw); !t.IsZero() {
			c.Edited = t
			loaded = true
		}
	}
	return loaded
}

// WriteTo writes the fields that are set
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if c.Draft != DraftUnset {
		if err := w.StartElement(Prefix, "control", namespace); err != nil {
			return err
		}
		if err := w.ElementString(Prefix, "draft", namespace, c.Draft.String()); err != nil {
			return err
		}
		if err := w.EndElement(); err != nil {
			return err
		}
	}
	if !c.Edited.IsZero() {
		if err := w.ElementString(Prefix, "edited", namespace, timeutil.FormatW3C(c.Edited)); err != nil {
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

// New returns a publishing-control extension with an unset context
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

// WriteTo writes the context under the AtomPub namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor, draft flag and edit time
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= cmp.Compare(e.context.Draft, o.context.Draft)
	result |= e.context.Edited.Compare(o.context.Edited)
	return result
}

// Registration binds the publishing-control kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
