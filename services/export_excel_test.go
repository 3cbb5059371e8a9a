package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func exportFixture(t *testing.T) ExportData {
	t.Helper()
	p := testProject()
	p.Reference = "FSS-QTN-ACME-25-26-001"
	p.Revision = "R1"
	sum := Recompute(p)
	return BuildExportData(p, sum, "2026-09-01")
}

func TestGenerateExcel_SectionSheet(t *testing.T) {
	data := exportFixture(t)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Automation" || sheets[1] != "Summary" {
		t.Fatalf("sheets = %v, want [Automation Summary]", sheets)
	}

	// Title row: serial and lumpsum amount.
	serial, _ := f.GetCellValue("Automation", "A2")
	if serial != "1" {
		t.Errorf("title serial = %q, want %q", serial, "1")
	}
	amount, _ := f.GetCellValue("Automation", "G2")
	if !strings.HasPrefix(amount, "465") {
		t.Errorf("title amount = %q, want 465", amount)
	}

	// Absorbed child shows no amount of its own.
	childAmount, _ := f.GetCellValue("Automation", "G3")
	if childAmount != "" {
		t.Errorf("absorbed child amount = %q, want empty", childAmount)
	}

	// OPTION scope lands in the remarks column.
	remark, _ := f.GetCellValue("Automation", "H5")
	if remark != "OPTION" {
		t.Errorf("remark = %q, want OPTION", remark)
	}
}

func TestGenerateExcel_SummarySheetFormulas(t *testing.T) {
	data := exportFixture(t)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	name, _ := f.GetCellValue("Summary", "B6")
	if name != "Automation" {
		t.Errorf("summary section name = %q, want Automation", name)
	}

	// Project total is a live SUMIF excluding OPTION remarks.
	formula, err := f.GetCellFormula("Summary", "C8")
	if err != nil {
		t.Fatalf("GetCellFormula() error = %v", err)
	}
	if !strings.Contains(formula, "SUMIF") || !strings.Contains(formula, "OPTION") {
		t.Errorf("project total formula = %q, want SUMIF excluding OPTION", formula)
	}
}

func TestGenerateExcel_NoSections(t *testing.T) {
	data := ExportData{Title: "Empty proposal", CreatedDate: "2026-09-01"}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_LongSectionName(t *testing.T) {
	p := testProject()
	p.Sections[0].Name = "This section name is far longer than Excel allows for a sheet"
	sum := Recompute(p)
	data := BuildExportData(p, sum, "2026-09-01")

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); len(got) > 31 {
		t.Errorf("sheet name %q exceeds 31 characters", got)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1234", "'+1234"},
		{"-text", "'-text"},
		{"@cmd", "'@cmd"},
		{"normal", "normal"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
