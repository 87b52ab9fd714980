// ABOUTME: Loads and saves whole syndication documents in either supported format
// ABOUTME: Sniffs the format, parses the XML tree and dispatches to the matching host loader

package syndication

import (
	"bytes"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/mmcdole/gofeed"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/core/extensions"
	"syndication-kit/core/formats/atom"
	"syndication-kit/core/formats/rss"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

// Format names a document format
type Format string

const (
	FormatAtom Format = "atom"
	FormatRSS  Format = "rss"
)

// Document is a loaded feed whose hosts carry extensions
type Document interface {
	// Root returns the outermost extensible host
	Root() extensions.Host

	// WriteTo writes the document element, declaring extension namespaces on it
	WriteTo(w *xmlwriter.Writer, settings *extensions.Settings) error
}

// FormatOf reports the format of a document returned by Load
func FormatOf(doc Document) Format {
	switch doc.(type) {
	case *atom.Feed:
		return FormatAtom
	case *rss.Feed:
		return FormatRSS
	default:
		return ""
	}
}

// Detect sniffs the format of raw document bytes
func Detect(data []byte) (Format, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		return FormatAtom, nil
	case gofeed.FeedTypeRSS:
		return FormatRSS, nil
	case gofeed.FeedTypeJSON:
		return "", &coreerrors.UnsupportedFormatError{Format: "json"}
	default:
		return "", &coreerrors.UnsupportedFormatError{Format: "unknown"}
	}
}

// Load reads a complete document from r
func Load(r io.Reader, settings *extensions.Settings) (Document, error) {
	if r == nil {
		return nil, coreerrors.NewInvalidArgument("reader")
	}
	if settings == nil {
		return nil, coreerrors.NewInvalidArgument("settings")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, coreerrors.WrapError(err, "read document")
	}
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}

	parsed, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, coreerrors.WrapError(err, "parse document")
	}
	root := xmlnav.Root(parsed)

	switch format {
	case FormatAtom:
		f, err := atom.Load(root, settings)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		f, err := rss.Load(root, settings)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// Save writes doc to w with an XML declaration. Output is indented unless
// settings.MinimizeOutputSize is set.
func Save(doc Document, w io.Writer, settings *extensions.Settings) error {
	if doc == nil {
		return coreerrors.NewInvalidArgument("document")
	}
	if w == nil {
		return coreerrors.NewInvalidArgument("writer")
	}
	if settings == nil {
		return coreerrors.NewInvalidArgument("settings")
	}

	xw := xmlwriter.New(w, settings.MinimizeOutputSize)
	if err := xw.WriteDeclaration(); err != nil {
		return err
	}
	if err := doc.WriteTo(xw, settings); err != nil {
		return err
	}
	return xw.Flush()
}

// Marshal returns the saved form of doc
func Marshal(doc Document, settings *extensions.Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(doc, &buf, settings); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
