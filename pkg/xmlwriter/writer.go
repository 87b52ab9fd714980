// ABOUTME: Namespace-aware streaming XML writer built on encoding/xml tokens
// ABOUTME: Tracks prefix bindings per element so namespaces are declared once and reused by descendants

package xmlwriter

import (
	"encoding/xml"
	"errors"
	"io"
)

// ErrNoOpenElement is returned when an attribute or namespace declaration is written
// after the current start tag has already been flushed
var ErrNoOpenElement = errors.New("xmlwriter: no start element is open for attributes")

// ErrPrefixConflict is returned when a prefix is declared twice on one start element
// with different namespaces
var ErrPrefixConflict = errors.New("xmlwriter: prefix already bound to another namespace on this element")

// ErrUnbalanced is returned when EndElement is called with no open element
var ErrUnbalanced = errors.New("xmlwriter: end element without matching start element")

// frame is one open element together with the prefixes it binds
type frame struct {
	name     xml.Name
	prefixes map[string]string // prefix -> namespace URI
}

// Writer writes XML with explicit prefix management.
//
// Element and attribute names are emitted already qualified ("geo:lat"), which keeps
// encoding/xml from inventing its own prefixes. A namespace is declared on the element
// where it is first needed unless an ancestor already bound it.
type Writer struct {
	enc     *xml.Encoder
	stack   []*frame
	pending *xml.StartElement
}

// New creates a writer. When minimize is false the output is indented two spaces per level.
func New(w io.Writer, minimize bool) *Writer {
	enc := xml.NewEncoder(w)
	if !minimize {
		enc.Indent("", "  ")
	}
	return &Writer{enc: enc}
}

// WriteDeclaration writes the XML declaration. It must be the first call.
func (w *Writer) WriteDeclaration() error {
	return w.enc.EncodeToken(xml.ProcInst{
		Target: "xml",
		Inst:   []byte(`version="1.0" encoding="utf-8"`),
	})
}

// StartElement opens an element. When namespace is already bound in scope the existing
// prefix is reused, otherwise prefix is declared on this element.
func (w *Writer) StartElement(prefix, local, namespace string) error {
	if err := w.flushPending(); err != nil {
		return err
	}

	f := &frame{prefixes: make(map[string]string)}
	var attrs []xml.Attr

	qualified := local
	if namespace != "" {
		bound, ok := w.LookupPrefix(namespace)
		if !ok {
			bound = prefix
			f.prefixes[prefix] = namespace
			attrs = append(attrs, declaration(prefix, namespace))
		}
		if bound != "" {
			qualified = bound + ":" + local
		}
	} else if uri, ok := w.resolve(""); ok && uri != "" {
		// unqualified child inside a default namespace must undeclare it
		f.prefixes[""] = ""
		attrs = append(attrs, declaration("", ""))
	}

	f.name = xml.Name{Local: qualified}
	w.stack = append(w.stack, f)
	w.pending = &xml.StartElement{Name: f.name, Attr: attrs}
	return nil
}

// DeclareNamespace binds prefix to namespace on the open start element.
// Declaring a binding that is already in scope is a no-op; rebinding a prefix the
// open element already declared returns ErrPrefixConflict.
func (w *Writer) DeclareNamespace(prefix, namespace string) error {
	if w.pending == nil {
		return ErrNoOpenElement
	}
	if uri, ok := w.resolve(prefix); ok && uri == namespace {
		return nil
	}

	top := w.stack[len(w.stack)-1]
	if _, ok := top.prefixes[prefix]; ok {
		return ErrPrefixConflict
	}
	top.prefixes[prefix] = namespace
	w.pending.Attr = append(w.pending.Attr, declaration(prefix, namespace))
	return nil
}

// Attribute adds an attribute to the open start element. Namespaced attributes always
// carry a prefix because the default namespace never applies to attributes.
func (w *Writer) Attribute(prefix, local, namespace, value string) error {
	if w.pending == nil {
		return ErrNoOpenElement
	}

	qualified := local
	if namespace != "" {
		bound, ok := w.LookupPrefix(namespace)
		if !ok || bound == "" {
			bound = prefix
			if err := w.DeclareNamespace(bound, namespace); err != nil {
				return err
			}
		}
		qualified = bound + ":" + local
	}

	w.pending.Attr = append(w.pending.Attr, xml.Attr{Name: xml.Name{Local: qualified}, Value: value})
	return nil
}

// Text writes escaped character data inside the current element
func (w *Writer) Text(s string) error {
	if err := w.flushPending(); err != nil {
		return err
	}
	return w.enc.EncodeToken(xml.CharData(s))
}

// EndElement closes the innermost open element
func (w *Writer) EndElement() error {
	if len(w.stack) == 0 {
		return ErrUnbalanced
	}
	if err := w.flushPending(); err != nil {
		return err
	}

	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return w.enc.EncodeToken(xml.EndElement{Name: top.name})
}

// ElementString writes a complete element with text content
func (w *Writer) ElementString(prefix, local, namespace, value string) error {
	if err := w.StartElement(prefix, local, namespace); err != nil {
		return err
	}
	if value != "" {
		if err := w.Text(value); err != nil {
			return err
		}
	}
	return w.EndElement()
}

// LookupPrefix returns the prefix bound to namespace at the current position
func (w *Writer) LookupPrefix(namespace string) (string, bool) {
	shadowed := make(map[string]bool)
	for i := len(w.stack) - 1; i >= 0; i-- {
		for prefix, uri := range w.stack[i].prefixes {
			if shadowed[prefix] {
				continue
			}
			if uri == namespace {
				return prefix, true
			}
		}
		for prefix := range w.stack[i].prefixes {
			shadowed[prefix] = true
		}
	}
	return "", false
}

// Flush writes any buffered output to the underlying writer
func (w *Writer) Flush() error {
	if err := w.flushPending(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// resolve returns the namespace bound to prefix at the current position
func (w *Writer) resolve(prefix string) (string, bool) {
	for i := len(w.stack) - 1; i >= 0; i-- {
		if uri, ok := w.stack[i].prefixes[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

func (w *Writer) flushPending() error {
	if w.pending == nil {
		return nil
	}
	start := *w.pending
	w.pending = nil
	return w.enc.EncodeToken(start)
}

func declaration(prefix, namespace string) xml.Attr {
	if prefix == "" {
		return xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: namespace}
	}
	return xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: namespace}
}
