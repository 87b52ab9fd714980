package time

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "rfc3339",
			in:   "2008-07-01T12:30:00Z",
			want: time.Date(2008, 7, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "rfc1123z",
			in:   "Tue, 01 Jul 2008 12:30:00 +0000",
			want: time.Date(2008, 7, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "date only",
			in:   " 2008-07-01 ",
			want: time.Date(2008, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dateparse fallback",
			in:   "July 1, 2008",
			want: time.Date(2008, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "empty",
			in:   "",
			want: time.Time{},
		},
		{
			name: "garbage",
			in:   "not a date",
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleTime(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWithDefault(t *testing.T) {
	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ParseWithDefault("bogus", def); !got.Equal(def) {
		t.Errorf("ParseWithDefault() = %v, want %v", got, def)
	}
}

func TestFormat(t *testing.T) {
	ts := time.Date(2008, 7, 1, 12, 30, 0, 0, time.UTC)
	if got := FormatW3C(ts); got != "2008-07-01T12:30:00Z" {
		t.Errorf("FormatW3C() = %s", got)
	}
	if got := FormatRFC822(ts); got != "Tue, 01 Jul 2008 12:30:00 +0000" {
		t.Errorf("FormatRFC822() = %s", got)
	}
	if got := ParseFlexibleTime(FormatW3C(ts)); !got.Equal(ts) {
		t.Errorf("ParseFlexibleTime(FormatW3C()) = %v, want %v", got, ts)
	}
}

func TestFormatW3C_KeepsFractionalSeconds(t *testing.T) {
	ts := time.Date(2008, 7, 1, 12, 30, 0, 250000000, time.UTC)
	if got := FormatW3C(ts); got != "2008-07-01T12:30:00.25Z" {
		t.Errorf("FormatW3C() = %s, want 2008-07-01T12:30:00.25Z", got)
	}
	if got := ParseFlexibleTime(FormatW3C(ts)); !got.Equal(ts) {
		t.Errorf("ParseFlexibleTime(FormatW3C()) = %v, want %v", got, ts)
	}
}
