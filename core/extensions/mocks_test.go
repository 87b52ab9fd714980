package extensions

import (
	"cmp"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const (
	fakeNamespace  = "urn:test:fake"
	otherNamespace = "urn:test:other"
)

var (
	fakeDescriptor  = MustDescriptor(DescriptorInfo{Prefix: "f", Namespace: fakeNamespace, Version: "1.0.0", Name: "Fake"})
	otherDescriptor = MustDescriptor(DescriptorInfo{Prefix: "o", Namespace: otherNamespace, Version: "1.0.0", Name: "Other"})
)

// valueContext reads and writes a single <prefix:value> element
type valueContext struct {
	prefix string
	value  string
}

func (c *valueContext) Load(node *xmlquery.Node, r *xmlnav.Resolver) bool {
	v, ok := r.Value(node, "value")
	if !ok || v == "" {
		return false
	}
	c.value = v
	return true
}

func (c *valueContext) WriteTo(w *xmlwriter.Writer, namespace string) error {
	if c.value == "" {
		return nil
	}
	return w.ElementString(c.prefix, "value", namespace, c.value)
}

type valueExtension struct {
	Base
	context *valueContext
}

func newFake(value string) *valueExtension {
	return &valueExtension{
		Base:    NewBase("fake", fakeDescriptor),
		context: &valueContext{prefix: "f", value: value},
	}
}

func newOther(value string) *valueExtension {
	return &valueExtension{
		Base:    NewBase("other", otherDescriptor),
		context: &valueContext{prefix: "o", value: value},
	}
}

func (e *valueExtension) Load(node *xmlquery.Node) (bool, error) {
	return e.LoadContext(e, node, e.context)
}

func (e *valueExtension) WriteTo(w *xmlwriter.Writer) error {
	return e.WriteContext(w, e.context)
}

func (e *valueExtension) Compare(other Extension) int {
	result := e.CompareBase(other)
	o, ok := other.(*valueExtension)
	if !ok {
		return result | 1
	}
	return result | cmp.Compare(e.context.value, o.context.value)
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		Registration{Kind: "fake", Descriptor: fakeDescriptor, New: func() Extension { return newFake("") }},
		Registration{Kind: "other", Descriptor: otherDescriptor, New: func() Extension { return newOther("") }},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}

func parseRoot(t *testing.T, doc string) *xmlquery.Node {
	t.Helper()
	parsed, err := xmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("xmlquery.Parse() error = %v", err)
	}
	return xmlnav.Root(parsed)
}

// mockHost is a host that also exposes children
type mockHost struct {
	Holder
	children []Host
}

func (h *mockHost) ExtensibleChildren() []Host {
	return h.children
}

// mockLogger records debug messages
type mockLogger struct {
	debugs []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.debugs = append(m.debugs, msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
