package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// indianMoneyFmt groups digits the Indian way so exported amounts read
// like the sheets the team is used to.
const indianMoneyFmt = "#,##,##0.00"

// GenerateExcel creates a proposal workbook: one sheet per section with
// the customer-facing columns, then a Summary sheet. Totals are written as
// live SUM/SUMIF formulas so the workbook stays consistent when a reviewer
// tweaks an amount by hand.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExportStyles(f)
	if err != nil {
		return nil, err
	}

	for i := range data.Sections {
		if err := writeSectionSheet(f, styles, &data.Sections[i], i == 0); err != nil {
			return nil, err
		}
	}
	if err := writeSummarySheet(f, styles, data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type exportStyles struct {
	title   int
	header  int
	titleRow int
	body    int
	money   int
	moneyBold int
	label   int
}

func newExportStyles(f *excelize.File) (exportStyles, error) {
	var s exportStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.titleRow, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create title row style: %w", err)
	}

	s.body, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create body style: %w", err)
	}

	s.money, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: ptr(indianMoneyFmt),
	})
	if err != nil {
		return s, fmt.Errorf("create money style: %w", err)
	}

	s.moneyBold, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: ptr(indianMoneyFmt),
	})
	if err != nil {
		return s, fmt.Errorf("create money total style: %w", err)
	}

	s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("create label style: %w", err)
	}

	return s, nil
}

func ptr[T any](v T) *T { return &v }

// sheetName trims a name to Excel's 31-character sheet limit.
func sheetName(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func writeSectionSheet(f *excelize.File, styles exportStyles, s *Section, first bool) error {
	name := sheetName(s.Name, "Section")
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("set sheet name: %w", err)
		}
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %q: %w", name, err)
		}
	}

	widths := []float64{8, 14, 48, 8, 8, 16, 18, 12}
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i, col := range columns {
		if err := f.SetColWidth(name, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headers := []string{"#", "Item", "Description", "Qty", "Unit", "Unit Price", "Amount", "Remarks"}
	for i, h := range headers {
		f.SetCellValue(name, fmt.Sprintf("%s1", columns[i]), h)
	}
	f.SetCellStyle(name, "A1", "H1", styles.header)

	row := 2
	firstDataRow := row
	for i := range s.Rows {
		r := &s.Rows[i]
		d := r.Derived
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(name, "A"+rowStr, d.Serial)
		f.SetCellValue(name, "B"+rowStr, sanitizeExcelCell(r.Item))
		f.SetCellValue(name, "C"+rowStr, sanitizeExcelCell(r.Description))
		if r.Qty.Valid {
			f.SetCellValue(name, "D"+rowStr, r.Qty.Value)
		}
		f.SetCellValue(name, "E"+rowStr, sanitizeExcelCell(r.Unit))
		if d.DisplayUnitPrice.Valid {
			f.SetCellValue(name, "F"+rowStr, d.DisplayUnitPrice.Value)
		}
		if d.DisplaySubtotal.Valid {
			// Live formula where both operands are on the sheet, so the
			// amount follows a hand edit of qty or unit price.
			if r.Qty.Valid && d.DisplayUnitPrice.Valid && d.Role == RoleLineitem {
				f.SetCellFormula(name, "G"+rowStr, fmt.Sprintf("D%d*F%d", row, row))
			} else {
				f.SetCellValue(name, "G"+rowStr, d.DisplaySubtotal.Value)
			}
		}
		f.SetCellValue(name, "H"+rowStr, sanitizeExcelCell(string(r.Scope)))

		style := styles.body
		if d.Role == RoleTitle {
			style = styles.titleRow
		}
		f.SetCellStyle(name, "A"+rowStr, "E"+rowStr, style)
		f.SetCellStyle(name, "F"+rowStr, "G"+rowStr, styles.money)
		f.SetCellStyle(name, "H"+rowStr, "H"+rowStr, style)
		row++
	}

	// Total row: live SUM over the title amounts only would double count
	// lumpsum children, but absorbed children have no amount at all, so a
	// plain SUM of the column matches the engine's selling total.
	row++
	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(name, "F"+totalRow, "Total:")
	f.SetCellStyle(name, "F"+totalRow, "F"+totalRow, styles.label)
	f.SetCellFormula(name, "G"+totalRow, fmt.Sprintf("SUM(G%d:G%d)", firstDataRow, row-2))
	f.SetCellStyle(name, "G"+totalRow, "G"+totalRow, styles.moneyBold)

	return nil
}

func writeSummarySheet(f *excelize.File, styles exportStyles, data ExportData) error {
	const name = "Summary"
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new summary sheet: %w", err)
	}

	widths := []float64{6, 28, 16, 16, 16, 14, 10, 12}
	for i, col := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		if err := f.SetColWidth(name, col, col, widths[i]); err != nil {
			return fmt.Errorf("set summary col width: %w", err)
		}
	}

	f.MergeCell(name, "A1", "H1")
	f.SetCellValue(name, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(name, "A1", "H1", styles.title)
	f.MergeCell(name, "A2", "H2")
	ref := data.Reference
	if data.Revision != "" {
		ref += " " + data.Revision
	}
	f.SetCellValue(name, "A2", "Ref: "+sanitizeExcelCell(ref))
	f.MergeCell(name, "A3", "H3")
	f.SetCellValue(name, "A3", "Date: "+data.CreatedDate)

	headers := []string{"#", "Section", "Selling", "Material", "Base", "Risk", "Margin", "Remarks"}
	for i, h := range headers {
		f.SetCellValue(name, fmt.Sprintf("%c5", 'A'+i), h)
	}
	f.SetCellStyle(name, "A5", "H5", styles.header)

	row := 6
	firstEntryRow := row
	for _, e := range data.Summary.Entries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(name, "A"+rowStr, e.Index)
		f.SetCellValue(name, "B"+rowStr, sanitizeExcelCell(e.SectionName))
		for col, c := range map[string]Cell{
			"C": e.Selling, "D": e.Material, "E": e.Base, "F": e.Risk, "G": e.MarginPct,
		} {
			if c.Valid {
				f.SetCellValue(name, col+rowStr, c.Value)
			}
		}
		f.SetCellValue(name, "H"+rowStr, sanitizeExcelCell(e.ScopeRemark))
		f.SetCellStyle(name, "A"+rowStr, "B"+rowStr, styles.body)
		f.SetCellStyle(name, "C"+rowStr, "G"+rowStr, styles.money)
		f.SetCellStyle(name, "H"+rowStr, "H"+rowStr, styles.body)
		row++
	}
	lastEntryRow := row - 1

	// Project total excludes OPTION sections, as a live SUMIF on the
	// remark column.
	row++
	totalRow := row
	f.SetCellValue(name, "B"+fmt.Sprint(totalRow), "Project Total:")
	f.SetCellStyle(name, "B"+fmt.Sprint(totalRow), "B"+fmt.Sprint(totalRow), styles.label)
	if len(data.Summary.Entries) > 0 {
		f.SetCellFormula(name, "C"+fmt.Sprint(totalRow), fmt.Sprintf(
			`SUMIF(H%d:H%d,"<>OPTION",C%d:C%d)`,
			firstEntryRow, lastEntryRow, firstEntryRow, lastEntryRow))
	} else {
		f.SetCellValue(name, "C"+fmt.Sprint(totalRow), 0)
	}
	f.SetCellStyle(name, "C"+fmt.Sprint(totalRow), "C"+fmt.Sprint(totalRow), styles.moneyBold)
	row++

	if data.Summary.DiscountAmount.Valid {
		f.SetCellValue(name, "B"+fmt.Sprint(row), "Discount:")
		f.SetCellStyle(name, "B"+fmt.Sprint(row), "B"+fmt.Sprint(row), styles.label)
		f.SetCellValue(name, "C"+fmt.Sprint(row), data.Summary.DiscountAmount.Value)
		f.SetCellStyle(name, "C"+fmt.Sprint(row), "C"+fmt.Sprint(row), styles.moneyBold)
		row++
		f.SetCellValue(name, "B"+fmt.Sprint(row), "Discounted Total:")
		f.SetCellStyle(name, "B"+fmt.Sprint(row), "B"+fmt.Sprint(row), styles.label)
		f.SetCellFormula(name, "C"+fmt.Sprint(row), fmt.Sprintf("C%d-C%d", totalRow, row-1))
		f.SetCellStyle(name, "C"+fmt.Sprint(row), "C"+fmt.Sprint(row), styles.moneyBold)
		row++
	}

	if len(data.Summary.Trials) > 0 {
		row++
		trialHeaders := []string{"Disc %", "Price", "Discount", "Discounted", "Cost", "Profit", "Margin"}
		for i, h := range trialHeaders {
			f.SetCellValue(name, fmt.Sprintf("%c%d", 'B'+i, row), h)
		}
		f.SetCellStyle(name, fmt.Sprintf("B%d", row), fmt.Sprintf("H%d", row), styles.header)
		row++
		for _, trial := range data.Summary.Trials {
			f.SetCellValue(name, fmt.Sprintf("B%d", row), trial.LevelPct)
			f.SetCellValue(name, fmt.Sprintf("C%d", row), trial.Price)
			f.SetCellValue(name, fmt.Sprintf("D%d", row), trial.Discount)
			f.SetCellFormula(name, fmt.Sprintf("E%d", row), fmt.Sprintf("C%d-D%d", row, row))
			f.SetCellValue(name, fmt.Sprintf("F%d", row), trial.Cost)
			f.SetCellFormula(name, fmt.Sprintf("G%d", row), fmt.Sprintf("E%d-F%d", row, row))
			if trial.MarginPct.Valid {
				f.SetCellValue(name, fmt.Sprintf("H%d", row), trial.MarginPct.Value)
			}
			f.SetCellStyle(name, fmt.Sprintf("B%d", row), fmt.Sprintf("H%d", row), styles.money)
			row++
		}
	}

	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
