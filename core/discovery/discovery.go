// ABOUTME: Finds syndication endpoints advertised in the head of an HTML page
// ABOUTME: Collects alternate feed links and RSD EditURI links, resolved to absolute URLs

package discovery

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	coreerrors "syndication-kit/core/errors"
)

// Kind classifies a discovered endpoint
type Kind string

const (
	KindFeed Kind = "feed"
	KindRSD  Kind = "rsd"
)

// Endpoint is one advertised link
type Endpoint struct {
	Kind  Kind
	Type  string
	Title string
	URL   string
}

// feedTypes are the media types accepted on rel="alternate" links
var feedTypes = map[string]bool{
	"application/rss+xml":  true,
	"application/atom+xml": true,
	"application/rdf+xml":  true,
	"text/x-opml":          true,
	"application/apml+xml": true,
}

const rsdType = "application/rsd+xml"

// Discover parses an HTML page and returns its advertised endpoints in document order.
// contentType is the page's Content-Type header and selects the character decoding;
// baseURL resolves relative links when the page has no <base href>.
func Discover(r io.Reader, contentType, baseURL string) ([]Endpoint, error) {
	if r == nil {
		return nil, coreerrors.NewInvalidArgument("reader")
	}

	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, coreerrors.WrapError(err, "decode page")
	}
	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, coreerrors.WrapError(err, "parse page")
	}

	base, err := resolveBase(doc, baseURL)
	if err != nil {
		return nil, err
	}

	var endpoints []Endpoint
	doc.Find("link[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		rels := relValues(s)
		mediaType := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))

		var kind Kind
		switch {
		case rels["alternate"] && feedTypes[mediaType]:
			kind = KindFeed
		case rels["edituri"] && mediaType == rsdType:
			kind = KindRSD
		default:
			return
		}

		resolved, ok := ensureAbsoluteURL(base, href)
		if !ok {
			return
		}
		endpoints = append(endpoints, Endpoint{
			Kind:  kind,
			Type:  mediaType,
			Title: strings.TrimSpace(s.AttrOr("title", "")),
			URL:   resolved,
		})
	})
	return endpoints, nil
}

// Feeds filters endpoints down to feed links
func Feeds(endpoints []Endpoint) []Endpoint {
	var feeds []Endpoint
	for _, e := range endpoints {
		if e.Kind == KindFeed {
			feeds = append(feeds, e)
		}
	}
	return feeds
}

func relValues(s *goquery.Selection) map[string]bool {
	rels := make(map[string]bool)
	for _, rel := range strings.Fields(s.AttrOr("rel", "")) {
		rels[strings.ToLower(rel)] = true
	}
	return rels
}

// resolveBase combines the page's <base href> with baseURL
func resolveBase(doc *goquery.Document, baseURL string) (*url.URL, error) {
	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, &coreerrors.InvalidArgumentError{Argument: "baseURL", Message: err.Error()}
		}
		base = u
	}

	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return base, nil
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base, nil
	}
	if base != nil {
		return base.ResolveReference(u), nil
	}
	return u, nil
}

// ensureAbsoluteURL converts relative URLs to absolute ones
func ensureAbsoluteURL(base *url.URL, href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if u.IsAbs() || base == nil {
		return u.String(), true
	}
	return base.ResolveReference(u).String(), true
}
