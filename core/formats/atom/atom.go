// ABOUTME: Minimal Atom 1.0 feed and entry hosts carrying namespace extensions
// ABOUTME: Core fields load first, then the extension adapter scans each element

package atom

import (
	"time"

	"github.com/antchfx/xmlquery"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/core/extensions"
	timeutil "syndication-kit/pkg/utils/time"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

// Namespace is the Atom 1.0 namespace
const Namespace = "http://www.w3.org/2005/Atom"

// Link is an atom:link
type Link struct {
	Href string
	Rel  string
	Type string
}

// Feed is an atom:feed document
type Feed struct {
	extensions.Holder

	ID      string
	Title   string
	Updated time.Time
	Links   []Link
	Entries []*Entry
}

// Entry is an atom:entry
type Entry struct {
	extensions.Holder

	ID      string
	Title   string
	Updated time.Time
	Links   []Link
	Summary string
}

// ExtensibleChildren returns the entries
func (f *Feed) ExtensibleChildren() []extensions.Host {
	hosts := make([]extensions.Host, 0, len(f.Entries))
	for _, entry := range f.Entries {
		hosts = append(hosts, entry)
	}
	return hosts
}

// Root returns the feed itself
func (f *Feed) Root() extensions.Host {
	return f
}

// Load reads an atom:feed element and the extensions on it and its entries
func Load(node *xmlquery.Node, settings *extensions.Settings) (*Feed, error) {
	if node == nil {
		return nil, coreerrors.NewInvalidArgument("node")
	}
	if node.NamespaceURI != Namespace || node.Data != "feed" {
		return nil, &coreerrors.UnsupportedFormatError{Format: "element " + node.Data}
	}

	f := &Feed{
		ID:      xmlnav.ChildText(node, Namespace, "id"),
		Title:   xmlnav.ChildText(node, Namespace, "title"),
		Updated: timeutil.ParseFlexibleTime(xmlnav.ChildText(node, Namespace, "updated")),
		Links:   loadLinks(node),
	}
	if err := fill(node, settings, f); err != nil {
		return nil, err
	}

	for _, child := range xmlnav.Children(node, Namespace, "entry") {
		entry, err := loadEntry(child, settings)
		if err != nil {
			return nil, err
		}
		f.Entries = append(f.Entries, entry)
	}
	return f, nil
}

func loadEntry(node *xmlquery.Node, settings *extensions.Settings) (*Entry, error) {
	e := &Entry{
		ID:      xmlnav.ChildText(node, Namespace, "id"),
		Title:   xmlnav.ChildText(node, Namespace, "title"),
		Updated: timeutil.ParseFlexibleTime(xmlnav.ChildText(node, Namespace, "updated")),
		Links:   loadLinks(node),
		Summary: xmlnav.ChildText(node, Namespace, "summary"),
	}
	if err := fill(node, settings, e); err != nil {
		return nil, err
	}
	return e, nil
}

func fill(node *xmlquery.Node, settings *extensions.Settings, host extensions.Host) error {
	adapter, err := extensions.NewAdapter(node, settings)
	if err != nil {
		return err
	}
	return adapter.Fill(host)
}

func loadLinks(node *xmlquery.Node) []Link {
	var links []Link
	for _, child := range xmlnav.Children(node, Namespace, "link") {
		href, ok := xmlnav.Attr(child, "", "href")
		if !ok {
			continue
		}
		link := Link{Href: href}
		link.Rel, _ = xmlnav.Attr(child, "", "rel")
		link.Type, _ = xmlnav.Attr(child, "", "type")
		links = append(links, link)
	}
	return links
}

// WriteTo writes the feed as the document root
func (f *Feed) WriteTo(w *xmlwriter.Writer, settings *extensions.Settings) error {
	if w == nil {
		return coreerrors.NewInvalidArgument("writer")
	}
	if settings == nil {
		return coreerrors.NewInvalidArgument("settings")
	}

	if err := w.StartElement("", "feed", Namespace); err != nil {
		return err
	}
	declared, err := extensions.RootNamespaces(f, settings)
	if err != nil {
		return err
	}
	if err := extensions.DeclareNamespaces(declared, w); err != nil {
		return err
	}

	if err := writeCommon(w, f.ID, f.Title, f.Updated, f.Links); err != nil {
		return err
	}
	if err := extensions.WriteExtensionsTo(f.Extensions(), w); err != nil {
		return err
	}
	for _, entry := range f.Entries {
		if err := entry.WriteTo(w); err != nil {
			return err
		}
	}
	return w.EndElement()
}

// WriteTo writes the entry inside the current element
func (e *Entry) WriteTo(w *xmlwriter.Writer) error {
	if err := w.StartElement("", "entry", Namespace); err != nil {
		return err
	}
	if err := writeCommon(w, e.ID, e.Title, e.Updated, e.Links); err != nil {
		return err
	}
	if e.Summary != "" {
		if err := w.ElementString("", "summary", Namespace, e.Summary); err != nil {
			return err
		}
	}
	if err := extensions.WriteExtensionsTo(e.Extensions(), w); err != nil {
		return err
	}
	return w.EndElement()
}

func writeCommon(w *xmlwriter.Writer, id, title string, updated time.Time, links []Link) error {
	if id != "" {
		if err := w.ElementString("", "id", Namespace, id); err != nil {
			return err
		}
	}
	if title != "" {
		if err := w.ElementString("", "title", Namespace, title); err != nil {
			return err
		}
	}
	if !updated.IsZero() {
		if err := w.ElementString("", "updated", Namespace, timeutil.FormatW3C(updated)); err != nil {
			return err
		}
	}
	for _, link := range links {
		if err := w.StartElement("", "link", Namespace); err != nil {
			return err
		}
		attrs := [][2]string{{"href", link.Href}, {"rel", link.Rel}, {"type", link.Type}}
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
	return nil
}
