package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
)

// fmtMoney renders a cell as grouped money text, or an empty string when the
// cell is empty.
func fmtMoney(c services.Cell) string {
	if !c.Valid {
		return ""
	}
	return services.FormatINR(c.Value)
}

// fmtPct renders a fraction cell as a percentage with one decimal.
func fmtPct(c services.Cell) string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("%.1f%%", c.Value*100)
}

// fmtNum renders a cell as a plain number for form inputs.
func fmtNum(c services.Cell) string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseCell turns a form value into a cell. Blank input is the empty cell;
// anything else must parse as a number.
func parseCell(s string) (services.Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return services.Empty(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return services.Empty(), err
	}
	return services.Num(v), nil
}

// parseFraction parses a 0..1 fraction, with blank meaning zero.
func parseFraction(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("fraction %v out of range", v)
	}
	return v, nil
}

// setCellField writes a cell to a record field, nil when empty so the stored
// value stays distinguishable from zero.
func setCellField(rec *core.Record, field string, c services.Cell) {
	if c.Valid {
		rec.Set(field, c.Value)
	} else {
		rec.Set(field, nil)
	}
}
