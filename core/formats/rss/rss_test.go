package rss

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	coreerrors "syndication-kit/core/errors"
	"syndication-kit/core/extensions"
	"syndication-kit/core/extensions/builtin"
	"syndication-kit/core/extensions/slash"
	"syndication-kit/core/extensions/syndication"
	"syndication-kit/core/extensions/wfw"
	"syndication-kit/pkg/xmlnav"
	"syndication-kit/pkg/xmlwriter"
)

const sampleRSS = `<?xml version="1.0"?>
<rss version="2.0"
     xmlns:sy="http://purl.org/rss/1.0/modules/syndication/"
     xmlns:slash="http://purl.org/rss/1.0/modules/slash/"
     xmlns:wfw="http://wellformedweb.org/CommentAPI/"
     xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Example</title>
    <link>http://example.com/</link>
    <description>Example channel</description>
    <pubDate>Tue, 01 Jul 2008 12:00:00 +0000</pubDate>
    <sy:updatePeriod>hourly</sy:updatePeriod>
    <sy:updateFrequency>2</sy:updateFrequency>
    <item>
      <title>First</title>
      <link>http://example.com/1</link>
      <guid>http://example.com/1</guid>
      <dc:creator>someone</dc:creator>
      <slash:comments>4</slash:comments>
      <wfw:commentRss>http://example.com/1/comments</wfw:commentRss>
    </item>
    <item>
      <title>Second</title>
    </item>
  </channel>
</rss>`

func parse(t *testing.T, doc string) *xmlquery.Node {
	t.Helper()
	parsed, err := xmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("xmlquery.Parse() error = %v", err)
	}
	return xmlnav.Root(parsed)
}

func TestLoad(t *testing.T) {
	f, err := Load(parse(t, sampleRSS), builtin.Settings())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if f.Version != "2.0" {
		t.Errorf("Version = %q", f.Version)
	}
	if f.Channel.Title != "Example" || len(f.Channel.Items) != 2 {
		t.Fatalf("Channel = %+v", f.Channel)
	}

	schedule, ok := extensions.Find[*syndication.Extension](f.Channel)
	if !ok {
		t.Fatal("channel has no syndication extension")
	}
	if schedule.Context().Period != syndication.Hourly || schedule.Context().Frequency != 2 {
		t.Errorf("schedule = %+v", schedule.Context())
	}

	first := f.Channel.Items[0]
	kinds := []extensions.Kind{}
	for _, ext := range first.Extensions() {
		kinds = append(kinds, ext.Kind())
	}
	if len(kinds) != 2 || kinds[0] != slash.Kind || kinds[1] != wfw.Kind {
		t.Errorf("first item kinds = %v, want [slash wfw]", kinds)
	}
	if f.Channel.Items[1].HasExtensions() {
		t.Error("second item should carry no extensions")
	}
}

func TestRoundTrip(t *testing.T) {
	settings := builtin.Settings()
	original, err := Load(parse(t, sampleRSS), settings)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var buf bytes.Buffer
	w := xmlwriter.New(&buf, false)
	if err := original.WriteTo(w, settings); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	_ = w.Flush()

	reloaded, err := Load(parse(t, buf.String()), settings)
	if err != nil {
		t.Fatalf("Load() of written feed error = %v\n%s", err, buf.String())
	}

	if !reloaded.Channel.PubDate.Equal(original.Channel.PubDate) {
		t.Errorf("PubDate = %v, want %v", reloaded.Channel.PubDate, original.Channel.PubDate)
	}

	hosts := [][2]extensions.Host{
		{original.Channel, reloaded.Channel},
		{original.Channel.Items[0], reloaded.Channel.Items[0]},
	}
	for _, pair := range hosts {
		want, got := pair[0].Extensions(), pair[1].Extensions()
		if len(got) != len(want) {
			t.Fatalf("reloaded %d extensions, want %d\n%s", len(got), len(want), buf.String())
		}
		for i := range want {
			if !extensions.EqualExtensions(got[i], want[i]) {
				t.Errorf("extension %s differs after round trip", want[i].Kind())
			}
		}
	}

	rootTag := buf.String()[:strings.Index(buf.String(), ">")+1]
	for _, prefix := range []string{"sy", "slash", "wfw"} {
		if !strings.Contains(rootTag, "xmlns:"+prefix+"=") {
			t.Errorf("root tag %s does not declare %s", rootTag, prefix)
		}
	}
	if strings.Contains(rootTag, "xmlns:dc") {
		t.Errorf("root tag %s declares an unsupported namespace", rootTag)
	}
}

func TestLoad_Errors(t *testing.T) {
	settings := builtin.Settings()
	if _, err := Load(parse(t, `<feed xmlns="http://www.w3.org/2005/Atom"/>`), settings); !coreerrors.IsUnsupportedFormat(err) {
		t.Errorf("Load(atom) error = %v, want UnsupportedFormatError", err)
	}
	if _, err := Load(parse(t, `<rss version="2.0"></rss>`), settings); !coreerrors.IsValidation(err) {
		t.Errorf("Load(no channel) error = %v, want ValidationError", err)
	}
}

func TestWriteTo_Errors(t *testing.T) {
	var buf bytes.Buffer
	w := xmlwriter.New(&buf, true)
	if err := (&Feed{}).WriteTo(w, builtin.Settings()); !coreerrors.IsValidation(err) {
		t.Errorf("WriteTo(no channel) error = %v, want ValidationError", err)
	}
	if err := (&Feed{Channel: &Channel{}}).WriteTo(nil, builtin.Settings()); !coreerrors.IsInvalidArgument(err) {
		t.Errorf("WriteTo(nil writer) error = %v, want InvalidArgumentError", err)
	}
}
