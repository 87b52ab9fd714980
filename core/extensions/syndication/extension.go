// ABOUTME: RSS 1.0 Syndication module (sy) describing how often a feed is updated
// ABOUTME: Carries update period, frequency within the period and the base date the schedule starts from

package syndication

import (
	"cmp"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/utils/parse"
	timeutil "syndication-kit/pkg/utils/time"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	// Namespace is the RSS 1.0 Syndication module namespace
	Namespace = "http://purl.org/rss/1.0/modules/syndication/"

	// Prefix is the conventional prefix for Namespace
	Prefix = "sy"

	// Kind tags syndication extensions
	Kind extensions.Kind = "sy"

	// NoFrequency marks an unset update frequency
	NoFrequency = -1
)

// Descriptor identifies the syndication extension
var Descriptor = extensions.MustDescriptor(extensions.DescriptorInfo{
	Prefix:        Prefix,
	Namespace:     Namespace,
	Version:       "1.0.0",
	Name:          "RDF Site Summary 1.0 Modules: Syndication",
	Description:   "Hints to aggregators about how often a feed is updated.",
	Documentation: "http://web.resource.org/rss/1.0/modules/syndication/",
})

// Period is the unit of the update schedule
type Period int

const (
	// PeriodNone means no period is set
	PeriodNone Period = iota
	Hourly
	Daily
	Weekly
	Monthly
	Yearly
)

var periodNames = map[Period]string{
	Hourly:  "hourly",
	Daily:   "daily",
	Weekly:  "weekly",
	Monthly: "monthly",
	Yearly:  "yearly",
}

// String returns the element value for p, or "" for PeriodNone
func (p Period) String() string {
	return periodNames[p]
}

// ParsePeriod parses an updatePeriod value case-insensitively
func ParsePeriod(s string) (Period, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range periodNames {
		if name == s {
			return p, true
		}
	}
	return PeriodNone, false
}

// Context holds the update schedule
type Context struct {
	Period    Period
	Frequency int
	Base      time.Time
}

// NewContext returns a context with every field unset
func NewContext() *Context {
	return &Context{Period: PeriodNone, Frequency: NoFrequency}
}

// Load reads sy:updatePeriod, sy:updateFrequency and sy:updateBase
func (c *Context) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	loaded := false
	if raw, ok := r.Value(node, "updatePeriod"); ok {
		if p, ok := ParsePeriod(raw); ok {
			c.Period = p
			loaded = true
		}
	}
	if raw, ok := r.Value(node, "updateFrequency"); ok {
		if f, ok := parse.Int(raw); ok && f > 0 {
			c.Frequency = f
			loaded = true
		}
	}
	if raw, ok := r.Value(node, "updateBase"); ok {
		if t := timeutil.ParseFlexibleTime(raw); !t.IsZero() {
			c.Base = t
			loaded = true
		}
	}
	return loaded
}

// WriteTo writes the fields that are set. A frequency below one is not a valid
// update count and is omitted like an unset one.
func (c *Context) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if c.Period != PeriodNone && c.Period.String() != "" {
		if err := w.ElementString(Prefix, "updatePeriod", namespace, c.Period.String()); err != nil {
			return err
		}
	}
	if c.Frequency > 0 {
		if err := w.ElementString(Prefix, "updateFrequency", namespace, strconv.Itoa(c.Frequency)); err != nil {
			return err
		}
	}
	if !c.Base.IsZero() {
		if err := w.ElementString(Prefix, "updateBase", namespace, timeutil.FormatW3C(c.Base)); err != nil {
			return err
		}
	}
	return nil
}

// Interval returns the time between updates, or zero when the schedule is incomplete.
// A missing or non-positive frequency counts as one update per period.
func (c *Context) Interval() time.Duration {
	var unit time.Duration
	switch c.Period {
	case Hourly:
		unit = time.Hour
	case Daily:
		unit = 24 * time.Hour
	case Weekly:
		unit = 7 * 24 * time.Hour
	case Monthly:
		unit = 30 * 24 * time.Hour
	case Yearly:
		unit = 365 * 24 * time.Hour
	default:
		return 0
	}
	frequency := c.Frequency
	if frequency <= 0 {
		frequency = 1
	}
	return unit / time.Duration(frequency)
}

// Extension attaches a Context to a host
type Extension struct {
	extensions.Base
	context *Context
}

// New returns a syndication extension with an unset context
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

// WriteTo writes the context under the syndication namespace
func (e *Extension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

// Compare compares descriptor and schedule
func (e *Extension) Compare(other extensions.Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*Extension)
	if !ok {
		return result | 1
	}
	result |= cmp.Compare(e.context.Period, o.context.Period)
	result |= cmp.Compare(e.context.Frequency, o.context.Frequency)
	result |= e.context.Base.Compare(o.context.Base)
	return result
}

// Registration binds the syndication kind for a registry
func Registration() extensions.Registration {
	return extensions.Registration{
		Kind:       Kind,
		Descriptor: Descriptor,
		New:        func() extensions.Extension { return New() },
	}
}
