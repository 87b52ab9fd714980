// ABOUTME: W3C Basic Geo (WGS84 lat/long) extension attaching a point location to feeds and entries
// ABOUTME: Coordinates are written with a fixed seven fraction digits

package geo

import (
	"cmp"
	"math"
	"strconv"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the W3C Basic Geo vocabulary namespace
	Namespace = "http://www.w3.org/2003/01/geo/wgs84_pos#"

	// Prefix is the conventional prefix for Namespace
	Prefix = "geo"

	// Kind tags geo extensions
	Kind extensions.Kind = "geo"

	// NoCoordinate marks a latitude or longitude that is not set
	NoCoordinate = math.MaxFloat64

	// MaxLatitude and MaxLongitude bound valid WGS84 coordinates
	MaxLatitude  = 90.0
	MaxLongitude = 180.0

	// precision is the number of fraction digits kept for coordinates
	precision = 7
)

// Descriptor identifies the geo extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "Basic Geo (WGS84 lat/long) Vocabulary",
	Description:   "Latitude and longitude of the resource described by a feed or entry.",
	Documentation: "http://www.w3.org/2003/01/geo/",
})

// Context holds a WGS84 point
type Context struct {
	Latitude  float64
	Longitude float64
}

// NewContext returns a context with both coordinates unset
func NewContext() *Context {
	return &Context{Latitude: NoCoordinate, Longitude: NoCoordinate}
}

// Load reads geo:lat and geo:long
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false
	if v, ok := parseCoordinate(r, node, "lat", MaxLatitude); ok {
		c.Latitude = v
		loaded = true
	}
	if v, ok := parseCoordinate(r, node, "long", MaxLongitude); ok {
		c.Longitude = v
		loaded = true
	}
	return loaded
}

// WriteTo writes the coordinates that are set. Coordinates outside the WGS84 range
// are omitted like unset ones.
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if inRange(c.Latitude, MaxLatitude) {
		if err := w.ElementString(Prefix, "lat", namespace, FormatCoordinate(c.Latitude)); err != nil {
			return err
		}
	}
	if inRange(c.Longitude, MaxLongitude) {
		if err := w.ElementString(Prefix, "long", namespace, FormatCoordinate(c.Longitude)); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns both coordinates to NoCoordinate
func (c *Context) Reset() {
	c.Latitude = NoCoordinate
	c.Longitude = NoCoordinate
}

// FormatCoordinate formats v with exactly seven fraction digits
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(roundCoordinate(v), 'f', precision, 64)
}

func parseCoordinate(r *xmlnav.Resolver, node *xmlquery.Node, local string, limit float64) (float64, bool) {
	raw, ok := r.Value(node, local)
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !inRange(v, limit) {
		return 0, false
	}
	return roundCoordinate(v), true
}

// inRange rejects NaN, infinities and NoCoordinate along with anything past limit
func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= limit
}

func roundCoordinate(v float64) float64 {
	scale := math.Pow10(precision)
	return math.Round(v*scale) / scale
}

// Extension attaches a Context to a host
type Extension struct {
	extensions.Base
	context *Context
}

// New returns a geo extension with an unset context
func New() *Extension {
	return &Extension{
		Base:    extensions.NewBase(Kind, Descriptor),
		context: NewContext(),
	}
}

// NewPoint returns a geo extension set to latitude and longitude. A coordinate
// outside the WGS84 range is left unset.
func NewPoint(latitude, longitude float64) *Extension {
	e := New()
	if inRange(latitude, MaxLatitude) {
		e.context.Latitude = roundCoordinate(latitude)
	}
	if inRange(longitude, MaxLongitude) {
		e.context.Longitude = roundCoordinate(longitude)
	}
	return e
}

// Context returns the mutable payload
func (e *Extension) Context() *Context {
	return e.context
}

// Load populates the context from node
func (e *Extension) Load(node *xmlquery.Node) (bool, error) {
	return e.LoadContext(e, node, e.context)
}

// WriteTo writes the context under the geo namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor and coordinates
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= cmp.Compare(e.context.Latitude, o.context.Latitude)
	result |= cmp.Compare(e.context.Longitude, o.context.Longitude)
	return result
}

// Registration binds the geo kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
