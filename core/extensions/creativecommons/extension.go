// ABOUTME: Creative Commons RSS module listing the licenses that apply to a channel or item
// ABOUTME: Each license is a URL; a host may carry several

package creativecommons

import (
	"net/url"
	"slices"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the Creative Commons RSS module namespace
	Namespace = "http://backend.userland.com/creativeCommonsRssModule"

	// Prefix is the conventional prefix for Namespace
	Prefix = "creativeCommons"

	// Kind tags creative commons extensions
	Kind extensions.Kind = "creativeCommons"
)

// Descriptor identifies the creative commons extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "Creative Commons RSS Module",
	Description:   "Licenses governing the content of a channel or item.",
	Documentation: "http://backend.userland.com/creativeCommonsRssModule",
})

// Context holds the license URLs in document order
type Context struct {
	Licenses []*url.URL
}

// NewContext returns a context with no licenses
func NewContext() *Context {
	return &Context{}
}

// Load reads every creativeCommons:license child
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	var licenses []*url.URL
	for _, child := range r.SelectAll(node, "license") {
		raw := xmlnav.Text(child)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		licenses = append(licenses, u)
	}
	if len(licenses) == 0 {
		return false
	}
	c.Licenses = licenses
	return true
}

// WriteTo writes one license element per URL
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	for _, license := range c.Licenses {
		if license == nil {
			continue
		}
		if err := w.ElementString(Prefix, "license", namespace, license.String()); err != nil {
			return err
		}
	}
	return nil
}

// AddLicense appends a license URL
func (c *Context) AddLicense(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	c.Licenses = append(c.Licenses, u)
	return nil
}

func (c *Context) licenseStrings() []string {
	out := make([]string, 0, len(c.Licenses))
	for _, u := range c.Licenses {
		if u != nil {
			out = append(out, u.String())
		}
	}
	return out
}

// Extension attaches a Context to a host
type Extension struct {
	extensions.Base
	context *Context
}

// New returns a creative commons extension with no licenses
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

// WriteTo writes the context under the creative commons namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor and the license list
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= slices.Compare(e.context.licenseStrings(), o.context.licenseStrings())
	return result
}

// Registration binds the creative commons kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
