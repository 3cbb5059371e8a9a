package services

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// SubMarkerPrefix is the glyph prepended to renumbered sub-item markers so
// they read distinctly from the main sequence.
const SubMarkerPrefix = "⠠"

// isMainMarker reports whether a marker value converts to a whole number.
func isMainMarker(m string) bool {
	v, err := strconv.ParseFloat(m, 64)
	return err == nil && v == math.Trunc(v)
}

// isAnchorMarker reports whether a marker is a named anchor, recognized by
// an uppercase leading letter. Anchors keep their value verbatim.
func isAnchorMarker(m string) bool {
	for _, r := range m {
		return unicode.IsUpper(r)
	}
	return false
}

// AssignNumbering rewrites the serial of every row in the section. Main
// markers are renumbered start, start+step, ... per the section's scheme;
// anchors pass through untouched; remaining non-empty markers become
// sub-items counted 1..N under the most recent main marker. A sub-marker
// with no preceding main marker cannot be placed and is left unnumbered.
func AssignNumbering(s *Section) {
	start, step := s.NumberingScheme.StartStep()
	next := start
	sub := 0
	seenMain := false
	for i := range s.Rows {
		r := &s.Rows[i]
		m := strings.TrimSpace(r.Marker)
		switch {
		case m == "":
			r.Derived.Serial = ""
		case isMainMarker(m):
			r.Derived.Serial = strconv.Itoa(next)
			next += step
			sub = 0
			seenMain = true
		case isAnchorMarker(m):
			r.Derived.Serial = m
		case seenMain:
			sub++
			r.Derived.Serial = SubMarkerPrefix + strconv.Itoa(sub)
		default:
			r.Derived.Serial = ""
		}
	}
}
