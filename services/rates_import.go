package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RateImportResult is returned after parsing and validating an uploaded
// currency rate file.
type RateImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Rates     RateTable         `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	dataRows := allRows[1:]
	return headers, dataRows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]
	return headers, dataRows, nil
}

// rateColumns locates the code and rate columns by header label. Either
// column may appear anywhere; extra columns are ignored.
func rateColumns(headers []string) (codeCol, rateCol int, err error) {
	codeCol, rateCol = -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code", "currency", "currency code":
			codeCol = i
		case "rate", "exchange rate", "value":
			rateCol = i
		}
	}
	if codeCol < 0 {
		return 0, 0, fmt.Errorf("missing currency code column")
	}
	if rateCol < 0 {
		return 0, 0, fmt.Errorf("missing rate column")
	}
	return codeCol, rateCol, nil
}

// ValidateRateFile parses an uploaded rate file (CSV or xlsx by file name)
// and validates every row. Rows that fail validation are reported but do
// not abort the rest of the file.
func ValidateRateFile(file io.Reader, fileName string) (*RateImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	if strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		headers, dataRows, err = parseCSV(file)
	}
	if err != nil {
		return nil, err
	}

	codeCol, rateCol, err := rateColumns(headers)
	if err != nil {
		return nil, err
	}

	result := &RateImportResult{
		TotalRows: len(dataRows),
		Rates:     make(RateTable),
	}
	for i, cells := range dataRows {
		rowNum := i + 2 // 1-based, after the header row

		var code, rateStr string
		if codeCol < len(cells) {
			code = strings.ToUpper(strings.TrimSpace(cells[codeCol]))
		}
		if rateCol < len(cells) {
			rateStr = strings.TrimSpace(cells[rateCol])
		}

		rowErrs := 0
		if code == "" {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Field: "code", Message: "currency code is required",
			})
			rowErrs++
		}
		rate, convErr := strconv.ParseFloat(rateStr, 64)
		if convErr != nil {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Field: "rate", Message: fmt.Sprintf("invalid rate %q", rateStr),
			})
			rowErrs++
		} else if rate <= 0 {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Field: "rate", Message: "rate must be positive",
			})
			rowErrs++
		}
		if _, dup := result.Rates[code]; dup && rowErrs == 0 {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Field: "code", Message: fmt.Sprintf("duplicate code %q", code),
			})
			rowErrs++
		}

		if rowErrs > 0 {
			result.ErrorRows++
			continue
		}
		result.ValidRows++
		result.Rates[code] = rate
	}

	return result, nil
}

// CommitRateImport upserts validated rates into the currency_rates
// collection: existing codes are updated in place, new codes created.
func CommitRateImport(app *pocketbase.PocketBase, rates RateTable) error {
	col, err := app.FindCollectionByNameOrId("currency_rates")
	if err != nil {
		return fmt.Errorf("currency_rates collection: %w", err)
	}

	for code, rate := range rates {
		records, err := app.FindRecordsByFilter(
			"currency_rates", "code = {:code}", "", 1, 0,
			map[string]any{"code": code},
		)
		if err != nil {
			return fmt.Errorf("looking up rate %s: %w", code, err)
		}

		if len(records) > 0 {
			records[0].Set("rate", rate)
			if err := app.Save(records[0]); err != nil {
				return fmt.Errorf("updating rate %s: %w", code, err)
			}
			continue
		}

		created := core.NewRecord(col)
		created.Set("code", code)
		created.Set("rate", rate)
		if err := app.Save(created); err != nil {
			return fmt.Errorf("creating rate %s: %w", code, err)
		}
	}
	return nil
}
