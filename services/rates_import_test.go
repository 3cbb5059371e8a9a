package services_test

import (
	"math"
	"strings"
	"testing"

	"proposalengine/services"
	"proposalengine/testhelpers"
)

func TestValidateRateFile_CSV(t *testing.T) {
	csvData := "Code,Rate\nEUR,90.5\nusd,83\n"

	result, err := services.ValidateRateFile(strings.NewReader(csvData), "rates.csv")
	if err != nil {
		t.Fatalf("ValidateRateFile() error: %v", err)
	}
	if result.TotalRows != 2 || result.ValidRows != 2 || result.ErrorRows != 0 {
		t.Errorf("rows = %d/%d/%d, want 2 total, 2 valid, 0 errors",
			result.TotalRows, result.ValidRows, result.ErrorRows)
	}
	if math.Abs(result.Rates["EUR"]-90.5) > 0.001 {
		t.Errorf("EUR rate = %v, want 90.5", result.Rates["EUR"])
	}
	// Codes are uppercased on the way in.
	if _, ok := result.Rates["USD"]; !ok {
		t.Error("usd should import as USD")
	}
}

func TestValidateRateFile_RowErrors(t *testing.T) {
	csvData := "Code,Rate\n,90\nEUR,abc\nGBP,-5\nEUR,91\nEUR,92\n"

	result, err := services.ValidateRateFile(strings.NewReader(csvData), "rates.csv")
	if err != nil {
		t.Fatalf("ValidateRateFile() error: %v", err)
	}
	// Row 2: missing code. Row 3: bad number. Row 4: negative.
	// Row 5: first valid EUR. Row 6: duplicate.
	if result.ValidRows != 1 {
		t.Errorf("valid rows = %d, want 1", result.ValidRows)
	}
	if result.ErrorRows != 4 {
		t.Errorf("error rows = %d, want 4", result.ErrorRows)
	}
	if math.Abs(result.Rates["EUR"]-91) > 0.001 {
		t.Errorf("EUR rate = %v, want 91 from the first valid row", result.Rates["EUR"])
	}

	fields := make(map[string]int)
	for _, e := range result.Errors {
		fields[e.Field]++
	}
	if fields["code"] != 2 || fields["rate"] != 2 {
		t.Errorf("error fields = %v, want 2 code and 2 rate", fields)
	}
}

func TestValidateRateFile_MissingColumns(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no code column", "Rate\n90\n"},
		{"no rate column", "Code\nEUR\n"},
		{"header only", "Code,Rate\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := services.ValidateRateFile(strings.NewReader(tt.data), "rates.csv"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateRateFile_HeaderAliases(t *testing.T) {
	csvData := "Currency,Exchange Rate\nEUR,90\n"

	result, err := services.ValidateRateFile(strings.NewReader(csvData), "rates.csv")
	if err != nil {
		t.Fatalf("ValidateRateFile() error: %v", err)
	}
	if result.ValidRows != 1 {
		t.Errorf("valid rows = %d, want 1", result.ValidRows)
	}
}

func TestCommitRateImport_Upsert(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestRate(t, app, "EUR", 88.0)

	err := services.CommitRateImport(app, services.RateTable{"EUR": 90.0, "USD": 83.0})
	if err != nil {
		t.Fatalf("CommitRateImport() error: %v", err)
	}

	rates, err := services.LoadRates(app)
	if err != nil {
		t.Fatalf("LoadRates() error: %v", err)
	}
	if len(rates) != 2 {
		t.Errorf("rates = %d, want 2", len(rates))
	}
	if math.Abs(rates["EUR"]-90.0) > 0.001 {
		t.Errorf("EUR = %v, want updated to 90", rates["EUR"])
	}
	if math.Abs(rates["USD"]-83.0) > 0.001 {
		t.Errorf("USD = %v, want 83", rates["USD"])
	}
}
