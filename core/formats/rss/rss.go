// ABOUTME: Minimal RSS 2.0 channel and item hosts carrying namespace extensions
// ABOUTME: The rss element itself only wraps the channel, which is the extension root

package rss

import (
	"time"

	"github.com/antchfx/xmlquery"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/core/extensions"
	timeutil "syndication-kit/pkg/utils/time"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

// DefaultVersion is written when a feed has no version
const DefaultVersion = "2.0"

// Feed is an rss document
type Feed struct {
	Version string
	Channel *Channel
}

// Channel is the rss channel
type Channel struct {
	extensions.Holder

	Title       string
	Link        string
	Description string
	PubDate     time.Time
	Items       []*Item
}

// Item is an rss item
type Item struct {
	extensions.Holder

	Title       string
	Link        string
	Description string
	GUID        string
	PubDate     time.Time
}

// ExtensibleChildren returns the items
func (c *Channel) ExtensibleChildren() []extensions.Host {
	hosts := make([]extensions.Host, 0, len(c.Items))
	for _, item := range c.Items {
		hosts = append(hosts, item)
	}
	return hosts
}

// Root returns the channel, the outermost host of the document
func (f *Feed) Root() extensions.Host {
	return f.Channel
}

// Load reads an rss element with its channel, items and their extensions
func Load(node *xmlquery.Node, settings *extensions.Settings) (*Feed, error) {
	if node == nil {
		return nil, coreerrors.NewInvalidArgument("node")
	}
	if node.NamespaceURI != "" || node.Data != "rss" {
		return nil, &coreerrors.UnsupportedFormatError{Format: "element " + node.Data}
	}

	version, _ := xmlnav.Attr(node, "", "version")
	f := &Feed{Version: version}

	channelNode := xmlnav.Child(node, "", "channel")
	if channelNode == nil {
		return nil, &coreerrors.ValidationError{Field: "channel", Message: "rss element has no channel"}
	}

	channel := &Channel{
		Title:       xmlnav.ChildText(channelNode, "", "title"),
		Link:        xmlnav.ChildText(channelNode, "", "link"),
		Description: xmlnav.ChildText(channelNode, "", "description"),
		PubDate:     timeutil.ParseFlexibleTime(xmlnav.ChildText(channelNode, "", "pubDate")),
	}
	if err := fill(channelNode, settings, channel); err != nil {
		return nil, err
	}

	for _, itemNode := range xmlnav.Children(channelNode, "", "item") {
		item := &Item{
			Title:       xmlnav.ChildText(itemNode, "", "title"),
			Link:        xmlnav.ChildText(itemNode, "", "link"),
			Description: xmlnav.ChildText(itemNode, "", "description"),
			GUID:        xmlnav.ChildText(itemNode, "", "guid"),
			PubDate:     timeutil.ParseFlexibleTime(xmlnav.ChildText(itemNode, "", "pubDate")),
		}
		if err := fill(itemNode, settings, item); err != nil {
			return nil, err
		}
		channel.Items = append(channel.Items, item)
	}

	f.Channel = channel
	return f, nil
}

func fill(node *xmlquery.Node, settings *extensions.Settings, host extensions.Host) error {
	adapter, err := extensions.NewAdapter(node, settings)
	if err != nil {
		return err
	}
	return adapter.Fill(host)
}

// WriteTo writes the rss element as the document root
func (f *Feed) WriteTo(w *xmlwriter.Writer, settings *extensions.Settings) error {
	if w == nil {
		return coreerrors.NewInvalidArgument("writer")
	}
	if settings == nil {
		return coreerrors.NewInvalidArgument("settings")
	}
	if f.Channel == nil {
		return &coreerrors.ValidationError{Field: "channel", Message: "cannot be nil"}
	}

	if err := w.StartElement("", "rss", ""); err != nil {
		return err
	}
	version := f.Version
	if version == "" {
		version = DefaultVersion
	}
	if err := w.Attribute("", "version", "", version); err != nil {
		return err
	}
	declared, err := extensions.RootNamespaces(f.Channel, settings)
	if err != nil {
		return err
	}
	if err := extensions.DeclareNamespaces(declared, w); err != nil {
		return err
	}

	if err := f.Channel.WriteTo(w); err != nil {
		return err
	}
	return w.EndElement()
}

// WriteTo writes the channel and its items
func (c *Channel) WriteTo(w *xmlwriter.Writer) error {
	if err := w.StartElement("", "channel", ""); err != nil {
		return err
	}
	fields := [][2]string{
		{"title", c.Title},
		{"link", c.Link},
		{"description", c.Description},
		{"pubDate", formatDate(c.PubDate)},
	}
	if err := writeFields(w, fields); err != nil {
		return err
	}
	if err := extensions.WriteExtensionsTo(c.Extensions(), w); err != nil {
		return err
	}
	for _, item := range c.Items {
		if err := item.WriteTo(w); err != nil {
			return err
		}
	}
	return w.EndElement()
}

// WriteTo writes the item
func (i *Item) WriteTo(w *xmlwriter.Writer) error {
	if err := w.StartElement("", "item", ""); err != nil {
		return err
	}
	fields := [][2]string{
		{"title", i.Title},
		{"link", i.Link},
		{"description", i.Description},
		{"guid", i.GUID},
		{"pubDate", formatDate(i.PubDate)},
	}
	if err := writeFields(w, fields); err != nil {
		return err
	}
	if err := extensions.WriteExtensionsTo(i.Extensions(), w); err != nil {
		return err
	}
	return w.EndElement()
}

func writeFields(w *xmlwriter.Writer, fields [][2]string) error {
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		if err := w.ElementString("", field[0], "", field[1]); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timeutil.FormatRFC822(t)
}
