package services

import (
	"fmt"
	"strings"
)

// FormatINR formats a float64 amount into Indian Rupee notation.
// It uses the Indian numbering system where, after the rightmost 3 digits,
// digits are grouped in pairs (e.g., ₹1,23,45,678.90).
// The result always includes exactly 2 decimal places.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	// Format with 2 decimal places.
	raw := fmt.Sprintf("%.2f", amount)

	// Split into integer and decimal parts.
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	// Apply Indian grouping to the integer part.
	formatted := applyIndianGrouping(intPart)

	result := "₹" + formatted + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	// The last 3 digits stay together.
	result := s[n-3:]
	remaining := s[:n-3]

	// Group remaining digits in pairs from the right.
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// CleanText normalizes free-text cells the way the proposal sheets expect:
// trimmed, internal whitespace collapsed, exactly one space after a comma
// and none before it.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, ",", ", ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDimensions spaces out the multiplication sign in dimension
// strings, so "200x300" and "200 X300" both read "200 x 300".
func NormalizeDimensions(s string) string {
	out := make([]rune, 0, len(s))
	runes := []rune(s)
	for i, r := range runes {
		if (r == 'x' || r == 'X') && i > 0 && i < len(runes)-1 &&
			adjacentDigit(runes, i-1, -1) && adjacentDigit(runes, i+1, 1) {
			out = append(out, ' ', 'x', ' ')
			continue
		}
		out = append(out, r)
	}
	return strings.Join(strings.Fields(string(out)), " ")
}

func adjacentDigit(runes []rune, i, dir int) bool {
	for ; i >= 0 && i < len(runes); i += dir {
		if runes[i] == ' ' {
			continue
		}
		return runes[i] >= '0' && runes[i] <= '9'
	}
	return false
}

// NormalizeUnit maps the unit spellings that show up in imported sheets
// onto the canonical dropdown values. Unknown units pass through trimmed
// and lowercased.
func NormalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	switch u {
	case "lot", "lots", "ls", "lumpsum":
		return LotUnit
	case "no", "no.", "nos", "nos.", "number", "numbers", "pcs", "pc":
		return "nos"
	case "mtr", "mtrs", "meter", "meters", "metre", "m":
		return "m"
	case "set", "sets":
		return "set"
	}
	return u
}

// NormalizeScope maps a raw scope cell onto the recognized scope tags,
// accepting the spellings that show up in imported sheets. Anything
// unrecognized is treated as normal scope rather than rejected.
func NormalizeScope(s string) Scope {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ScopeOption), "OPTIONAL", "OPT":
		return ScopeOption
	case string(ScopeIncluded), "INCL", "INCLUDE":
		return ScopeIncluded
	case string(ScopeWaived), "WAIVE", "FOC":
		return ScopeWaived
	}
	return ScopeNormal
}
