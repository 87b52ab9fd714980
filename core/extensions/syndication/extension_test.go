package syndication

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/antchfx/xmlquery"

	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

func loadChannel(t *testing.T, body string) (*Extension, bool) {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(`<channel xmlns:sy="` + Namespace + `">` + body + `</channel>`))
	if err != nil {
		t.Fatalf("xmlquery.Parse() error = %v", err)
	}
	ext := New()
	loaded, err := ext.Load(xmlnav.Root(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return ext, loaded
}

func TestExtension_Load(t *testing.T) {
	ext, loaded := loadChannel(t,
		`<sy:updatePeriod>Daily</sy:updatePeriod><sy:updateFrequency>2</sy:updateFrequency>`+
			`<sy:updateBase>2000-01-01T12:00+00:00</sy:updateBase>`)
	if !loaded {
		t.Fatal("Load() = false, want true")
	}

	ctx := ext.Context()
	if ctx.Period != Daily {
		t.Errorf("Period = %v, want %v", ctx.Period, Daily)
	}
	if ctx.Frequency != 2 {
		t.Errorf("Frequency = %d, want 2", ctx.Frequency)
	}
	want := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if !ctx.Base.Equal(want) {
		t.Errorf("Base = %v, want %v", ctx.Base, want)
	}
	if ctx.Interval() != 12*time.Hour {
		t.Errorf("Interval() = %v, want 12h", ctx.Interval())
	}
}

func TestExtension_LoadSkipsBadValues(t *testing.T) {
	ext, loaded := loadChannel(t,
		`<sy:updatePeriod>fortnightly</sy:updatePeriod><sy:updateFrequency>0</sy:updateFrequency>`+
			`<sy:updateBase>someday</sy:updateBase>`)
	if loaded {
		t.Error("Load() = true, want false")
	}
	ctx := ext.Context()
	if ctx.Period != PeriodNone || ctx.Frequency != NoFrequency || !ctx.Base.IsZero() {
		t.Errorf("context = %+v, want all fields unset", ctx)
	}
}

func TestContext_WriteTo(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{
			name: "all unset",
			ctx:  Context{Period: PeriodNone, Frequency: NoFrequency},
			want: `<channel xmlns:sy="` + Namespace + `"></channel>`,
		},
		{
			name: "period and frequency",
			ctx:  Context{Period: Hourly, Frequency: 4},
			want: `<channel xmlns:sy="` + Namespace + `"><sy:updatePeriod>hourly</sy:updatePeriod><sy:updateFrequency>4</sy:updateFrequency></channel>`,
		},
		{
			name: "zero frequency omitted",
			ctx:  Context{Period: Daily, Frequency: 0},
			want: `<channel xmlns:sy="` + Namespace + `"><sy:updatePeriod>daily</sy:updatePeriod></channel>`,
		},
		{
			name: "base only",
			ctx:  Context{Frequency: NoFrequency, Base: time.Date(2008, 7, 1, 0, 0, 0, 0, time.UTC)},
			want: `<channel xmlns:sy="` + Namespace + `"><sy:updateBase>2008-07-01T00:00:00Z</sy:updateBase></channel>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := xmlwriter.New(&buf, true)
			_ = w.StartElement("", "channel", "")
			_ = w.DeclareNamespace(Prefix, Namespace)
			if err := tt.ctx.WriteTo(w, Namespace); err != nil {
				t.Fatalf("WriteTo() error = %v", err)
			}
			_ = w.EndElement()
			_ = w.Flush()
			if buf.String() != tt.want {
				t.Errorf("WriteTo() = %s, want %s", buf.String(), tt.want)
			}
		})
	}
}

func TestContext_Interval(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want time.Duration
	}{
		{"no period", Context{Period: PeriodNone, Frequency: 2}, 0},
		{"unset frequency", Context{Period: Daily, Frequency: NoFrequency}, 24 * time.Hour},
		{"twice hourly", Context{Period: Hourly, Frequency: 2}, 30 * time.Minute},
		{"weekly", Context{Period: Weekly, Frequency: 7}, 24 * time.Hour},
		{"zero frequency", Context{Period: Daily, Frequency: 0}, 24 * time.Hour},
		{"negative frequency", Context{Period: Daily, Frequency: -5}, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.Interval(); got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtension_Compare(t *testing.T) {
	a := New()
	a.Context().Period = Weekly
	b := New()
	b.Context().Period = Weekly

	if a.Compare(b) != 0 {
		t.Errorf("Compare() = %d, want 0", a.Compare(b))
	}
	b.Context().Frequency = 3
	if a.Compare(b) == 0 {
		t.Error("Compare() = 0 for different frequencies")
	}
}

func TestParsePeriod(t *testing.T) {
	for _, name := range []string{"hourly", "daily", "weekly", "monthly", "yearly"} {
		p, ok := ParsePeriod(name)
		if !ok {
			t.Errorf("ParsePeriod(%q) ok = false", name)
			continue
		}
		if p.String() != name {
			t.Errorf("ParsePeriod(%q).String() = %q", name, p.String())
		}
	}
	if _, ok := ParsePeriod(""); ok {
		t.Error("ParsePeriod(\"\") ok = true, want false")
	}
}
