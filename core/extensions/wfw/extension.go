// ABOUTME: Well-Formed Web CommentAPI extension pointing items at their comment endpoints
// ABOUTME: wfw:comment is where comments are posted, wfw:commentRss is the per-item comment feed

package wfw

import (
	"cmp"
	"net/url"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the CommentAPI namespace
	Namespace = "http://wellformedweb.org/CommentAPI/"

	// Prefix is the conventional prefix for Namespace
	Prefix = "wfw"

	// Kind tags wfw extensions
	Kind extensions.Kind = "wfw"
)

// Descriptor identifies the wfw extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "Well-Formed Web CommentAPI",
	Description:   "Comment posting and comment feed endpoints of an item.",
	Documentation: "http://wellformedweb.org/story/9",
})

// Context holds the comment endpoints
type Context struct {
	Comment    *url.URL
	CommentRSS *url.URL
}

// NewContext returns a context with both endpoints unset
func NewContext() *Context {
	return &Context{}
}

// Load reads wfw:comment and wfw:commentRss
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false
	if u, ok := parseURL(r, node, "comment"); ok {
		c.Comment = u
		loaded = true
	}
	if u, ok := parseURL(r, node, "commentRss"); ok {
		c.CommentRSS = u
		loaded = true
	}
	return loaded
}

// WriteTo writes the endpoints that are set
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if c.Comment != nil {
		if err := w.ElementString(Prefix, "comment", namespace, c.Comment.String()); err != nil {
			return err
		}
	}
	if c.CommentRSS != nil {
		if err := w.ElementString(Prefix, "commentRss", namespace, c.CommentRSS.String()); err != nil {
			return err
		}
	}
	return nil
}

func parseURL(r *xmlnav.Resolver, node *xmlquery.Node, local string) (*url.URL, bool) {
	raw, ok := r.Value(node, local)
	if !ok || raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	return u, true
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// Extension attaches a Context to a host
type Extension struct {
	extensions.Base
	context *Context
}

// New returns a wfw extension with an unset context
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

// WriteTo writes the context under the wfw namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor and both endpoints
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= cmp.Compare(urlString(e.context.Comment), urlString(o.context.Comment))
	result |= cmp.Compare(urlString(e.context.CommentRSS), urlString(o.context.CommentRSS))
	return result
}

// Registration binds the wfw kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
