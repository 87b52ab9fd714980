package geo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"syndication-kit/core/extensions"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

func parseRoot(t *testing.T, doc string) *xmlquery.Node {
	t.Helper()
	parsed, err := xmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("xmlquery.Parse() error = %v", err)
	}
	root := xmlnav.Root(parsed)
	if root == nil {
		t.Fatal("document has no root element")
	}
	return root
}

func writeEntry(t *testing.T, ext *Extension, declare bool) string {
	t.Helper()
	var buf bytes.Buffer
	w := xmlwriter.New(&buf, true)
	if err := w.StartElement("", "entry", ""); err != nil {
		t.Fatalf("StartElement() error = %v", err)
	}
	if declare {
		if err := w.DeclareNamespace(Prefix, Namespace); err != nil {
			t.Fatalf("DeclareNamespace() error = %v", err)
		}
	}
	if err := ext.WriteTo(w); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if err := w.EndElement(); err != nil {
		t.Fatalf("EndElement() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	return buf.String()
}

func TestExtension_LoadEntryExample(t *testing.T) {
	root := parseRoot(t, `<entry xmlns="http://www.w3.org/2005/Atom" xmlns:geo="http://www.w3.org/2003/01/geo/wgs84_pos#">`+
		`<title>Portland</title><geo:lat>45.5</geo:lat><geo:long>-122.375</geo:long></entry>`)

	ext := New()
	loaded, err := ext.Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded {
		t.Fatal("Load() = false, want true")
	}
	if ext.Context().Latitude != 45.5 {
		t.Errorf("Latitude = %v, want 45.5", ext.Context().Latitude)
	}
	if ext.Context().Longitude != -122.375 {
		t.Errorf("Longitude = %v, want -122.375", ext.Context().Longitude)
	}

	got := writeEntry(t, ext, true)
	want := `<entry xmlns:geo="http://www.w3.org/2003/01/geo/wgs84_pos#"><geo:lat>45.5000000</geo:lat><geo:long>-122.3750000</geo:long></entry>`
	if got != want {
		t.Errorf("WriteTo() = %s, want %s", got, want)
	}

	ext.Context().Reset()
	got = writeEntry(t, ext, false)
	if got != "<entry></entry>" {
		t.Errorf("WriteTo() after Reset = %s, want empty entry", got)
	}
}

func TestExtension_LoadUsesNamespaceNotPrefix(t *testing.T) {
	root := parseRoot(t, `<item xmlns:w="http://www.w3.org/2003/01/geo/wgs84_pos#"><w:lat>10</w:lat></item>`)

	ext := New()
	loaded, err := ext.Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded {
		t.Fatal("Load() = false, want true")
	}
	if ext.Context().Latitude != 10 {
		t.Errorf("Latitude = %v, want 10", ext.Context().Latitude)
	}
	if ext.Context().Longitude != NoCoordinate {
		t.Errorf("Longitude = %v, want NoCoordinate", ext.Context().Longitude)
	}
}

func TestExtension_LoadSkipsUnparseableFields(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantLoaded bool
		wantLat    float64
		wantLong   float64
	}{
		{
			name:       "both malformed",
			body:       `<geo:lat>north</geo:lat><geo:long></geo:long>`,
			wantLoaded: false,
			wantLat:    NoCoordinate,
			wantLong:   NoCoordinate,
		},
		{
			name:       "one malformed",
			body:       `<geo:lat>abc</geo:lat><geo:long>12.25</geo:long>`,
			wantLoaded: true,
			wantLat:    NoCoordinate,
			wantLong:   12.25,
		},
		{
			name:       "rounded to seven digits",
			body:       `<geo:lat>1.123456789</geo:lat>`,
			wantLoaded: true,
			wantLat:    1.1234568,
			wantLong:   NoCoordinate,
		},
		{
			name:       "overflowing latitude",
			body:       `<geo:lat>1e305</geo:lat><geo:long>9999</geo:long>`,
			wantLoaded: false,
			wantLat:    NoCoordinate,
			wantLong:   NoCoordinate,
		},
		{
			name:       "range boundaries",
			body:       `<geo:lat>-90</geo:lat><geo:long>180</geo:long>`,
			wantLoaded: true,
			wantLat:    -90,
			wantLong:   180,
		},
		{
			name:       "infinity",
			body:       `<geo:lat>+Inf</geo:lat><geo:long>NaN</geo:long>`,
			wantLoaded: false,
			wantLat:    NoCoordinate,
			wantLong:   NoCoordinate,
		},
		{
			name:       "absent",
			body:       `<title>none</title>`,
			wantLoaded: false,
			wantLat:    NoCoordinate,
			wantLong:   NoCoordinate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseRoot(t, `<item xmlns:geo="`+Namespace+`">`+tt.body+`</item>`)
			ext := New()
			loaded, err := ext.Load(root)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if loaded != tt.wantLoaded {
				t.Errorf("Load() = %v, want %v", loaded, tt.wantLoaded)
			}
			if ext.Context().Latitude != tt.wantLat {
				t.Errorf("Latitude = %v, want %v", ext.Context().Latitude, tt.wantLat)
			}
			if ext.Context().Longitude != tt.wantLong {
				t.Errorf("Longitude = %v, want %v", ext.Context().Longitude, tt.wantLong)
			}
		})
	}
}

func TestExtension_WriteToOmitsOutOfRange(t *testing.T) {
	ext := New()
	ext.Context().Latitude = 1e305
	ext.Context().Longitude = -122.5

	got := writeEntry(t, ext, true)
	want := `<entry xmlns:geo="` + Namespace + `"><geo:long>-122.5000000</geo:long></entry>`
	if got != want {
		t.Errorf("WriteTo() = %s, want %s", got, want)
	}

	point := NewPoint(91, 181).Context()
	if point.Latitude != NoCoordinate || point.Longitude != NoCoordinate {
		t.Errorf("NewPoint(91, 181) = %+v, want both unset", point)
	}
}

func TestExtension_LoadNilNode(t *testing.T) {
	_, err := New().Load(nil)
	if err == nil {
		t.Fatal("Load(nil) error = nil, want InvalidArgumentError")
	}
}

func TestExtension_ObserversFireAfterLoad(t *testing.T) {
	root := parseRoot(t, `<item xmlns:geo="`+Namespace+`"><geo:lat>1</geo:lat></item>`)

	ext := New()
	var seen extensions.Extension
	calls := 0
	ext.OnLoaded(func(e extensions.Extension) {
		calls++
		seen = e
	})

	if _, err := ext.Load(root); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("observer calls = %d, want 1", calls)
	}
	if seen != ext {
		t.Error("observer received a different extension instance")
	}
}

func TestExtension_Compare(t *testing.T) {
	a := NewPoint(45.5, -122.375)
	b := NewPoint(45.5, -122.375)
	c := NewPoint(45.5, 0)

	if a.Compare(b) != 0 {
		t.Errorf("Compare() of equal points = %d, want 0", a.Compare(b))
	}
	if a.Compare(c) == 0 {
		t.Error("Compare() of different points = 0, want non-zero")
	}
	if a.Compare(nil) == 0 {
		t.Error("Compare(nil) = 0, want non-zero")
	}
	if !extensions.MatchByType(a, c) {
		t.Error("MatchByType() = false for two geo extensions with different values")
	}
}

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{45.5, "45.5000000"},
		{-122.375, "-122.3750000"},
		{0, "0.0000000"},
		{1.23456789, "1.2345679"},
	}
	for _, tt := range tests {
		if got := FormatCoordinate(tt.in); got != tt.want {
			t.Errorf("FormatCoordinate(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
