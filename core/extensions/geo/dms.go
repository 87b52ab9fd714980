// ABOUTME: Conversion between decimal degrees and degrees-minutes-seconds notation
// ABOUTME: Malformed input is reported as a FormatError to the caller

package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	coreerrors "syndication-kit/core/errors"
)

const (
	degreeMark = "°"
	minuteMark = "'"
	secondMark = `"`
)

// DecimalToDegreesMinutesSeconds formats v as 45°30'0.00", seconds rounded to two places
func DecimalToDegreesMinutesSeconds(v float64) string {
	negative := v < 0
	abs := math.Abs(v)

	degrees := math.Floor(abs)
	minutesFull := (abs - degrees) * 60
	minutes := math.Floor(minutesFull)
	seconds := math.Round((minutesFull-minutes)*60*100) / 100

	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		degrees++
	}

	sign := ""
	if negative && (degrees != 0 || minutes != 0 || seconds != 0) {
		sign = "-"
	}
	return fmt.Sprintf("%s%d%s%d%s%s%s",
		sign, int64(degrees), degreeMark, int64(minutes), minuteMark,
		strconv.FormatFloat(seconds, 'f', 2, 64), secondMark)
}

// DegreesMinutesSecondsToDecimal parses a D°M'S" string. The value may carry a leading
// sign or a trailing hemisphere letter (N, S, E or W), but not both.
func DegreesMinutesSecondsToDecimal(s string) (float64, error) {
	in := strings.TrimSpace(s)
	in = strings.NewReplacer("′", minuteMark, "″", secondMark).Replace(in)
	if in == "" {
		return 0, &coreerrors.FormatError{Value: s, Reason: "empty coordinate"}
	}

	sign := 1.0
	signed := false
	switch in[0] {
	case '-':
		sign, signed = -1, true
		in = in[1:]
	case '+':
		signed = true
		in = in[1:]
	}
	if in == "" {
		return 0, &coreerrors.FormatError{Value: s, Reason: "missing degree delimiter"}
	}

	if last := in[len(in)-1]; strings.ContainsRune("NSEWnsew", rune(last)) {
		if signed {
			return 0, &coreerrors.FormatError{Value: s, Reason: "both sign and hemisphere given"}
		}
		if last == 'S' || last == 's' || last == 'W' || last == 'w' {
			sign = -1
		}
		in = strings.TrimSpace(in[:len(in)-1])
	}

	degreesPart, rest, ok := strings.Cut(in, degreeMark)
	if !ok {
		return 0, &coreerrors.FormatError{Value: s, Reason: "missing degree delimiter"}
	}
	minutesPart, rest, ok := strings.Cut(rest, minuteMark)
	if !ok {
		return 0, &coreerrors.FormatError{Value: s, Reason: "missing minute delimiter"}
	}
	secondsPart, rest, ok := strings.Cut(rest, secondMark)
	if !ok {
		return 0, &coreerrors.FormatError{Value: s, Reason: "missing second delimiter"}
	}
	if strings.TrimSpace(rest) != "" {
		return 0, &coreerrors.FormatError{Value: s, Reason: "unexpected trailing content"}
	}

	degrees, err := parseComponent(s, degreesPart, math.Inf(1))
	if err != nil {
		return 0, err
	}
	minutes, err := parseComponent(s, minutesPart, 60)
	if err != nil {
		return 0, err
	}
	seconds, err := parseComponent(s, secondsPart, 60)
	if err != nil {
		return 0, err
	}

	return sign * (degrees + minutes/60 + seconds/3600), nil
}

func parseComponent(original, part string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
	if err != nil {
		return 0, &coreerrors.FormatError{Value: original, Reason: fmt.Sprintf("invalid number %q", strings.TrimSpace(part))}
	}
	if v < 0 || v >= limit || math.IsNaN(v) {
		return 0, &coreerrors.FormatError{Value: original, Reason: fmt.Sprintf("component %q out of range", strings.TrimSpace(part))}
	}
	return v, nil
}
