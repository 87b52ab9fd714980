package creativecommons

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

func TestExtension_LoadKeepsOrder(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader(`<channel xmlns:creativeCommons="` + Namespace + `">` +
		`<creativeCommons:license>http://creativecommons.org/licenses/by/4.0/</creativeCommons:license>` +
		`<creativeCommons:license></creativeCommons:license>` +
		`<creativeCommons:license>http://creativecommons.org/licenses/by-sa/4.0/</creativeCommons:license>` +
		`</channel>`))
	if err != nil {
		t.Fatalf("xmlquery.Parse() error = %v", err)
	}

	ext := New()
	loaded, err := ext.Load(xmlnav.Root(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded {
		t.Fatal("Load() = false, want true")
	}

	got := ext.Context().licenseStrings()
	want := []string{
		"http://creativecommons.org/licenses/by/4.0/",
		"http://creativecommons.org/licenses/by-sa/4.0/",
	}
	if len(got) != len(want) {
		t.Fatalf("Licenses = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Licenses[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestContext_WriteTo(t *testing.T) {
	ctx := NewContext()
	if err := ctx.AddLicense("http://creativecommons.org/licenses/by/4.0/"); err != nil {
		t.Fatalf("AddLicense() error = %v", err)
	}

	var buf bytes.Buffer
	w := xmlwriter.New(&buf, true)
	_ = w.StartElement("", "channel", "")
	_ = w.DeclareNamespace(Prefix, Namespace)
	if err := ctx.WriteTo(w, Namespace); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	_ = w.EndElement()
	_ = w.Flush()

	want := `<channel xmlns:creativeCommons="` + Namespace + `">` +
		`<creativeCommons:license>http://creativecommons.org/licenses/by/4.0/</creativeCommons:license></channel>`
	if buf.String() != want {
		t.Errorf("WriteTo() = %s, want %s", buf.String(), want)
	}
}

func TestExtension_Compare(t *testing.T) {
	a, b := New(), New()
	_ = a.Context().AddLicense("http://example.com/a")
	_ = b.Context().AddLicense("http://example.com/a")
	if a.Compare(b) != 0 {
		t.Errorf("Compare() = %d, want 0", a.Compare(b))
	}
	_ = b.Context().AddLicense("http://example.com/b")
	if a.Compare(b) == 0 {
		t.Error("Compare() = 0 for different license lists")
	}
}
