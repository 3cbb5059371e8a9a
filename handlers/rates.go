package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

// buildRatesData loads every stored currency rate in code order.
func buildRatesData(app *pocketbase.PocketBase) (templates.RatesData, error) {
	records, err := app.FindRecordsByFilter("currency_rates", "id != ''", "code", 0, 0)
	if err != nil {
		return templates.RatesData{}, fmt.Errorf("loading rates: %w", err)
	}

	var data templates.RatesData
	for _, rec := range records {
		updated := ""
		if dt := rec.GetDateTime("updated"); !dt.IsZero() {
			updated = dt.Time().Format("02 Jan 2006")
		}
		data.Items = append(data.Items, templates.RateListItem{
			ID:      rec.Id,
			Code:    rec.GetString("code"),
			RateFmt: strconv.FormatFloat(rec.GetFloat("rate"), 'f', -1, 64),
			Updated: updated,
		})
	}
	return data, nil
}

func renderRates(app *pocketbase.PocketBase, e *core.RequestEvent, data templates.RatesData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.RatesContent(data)
	} else {
		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component = templates.RatesPage(data, headerData, sidebarData)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleRatesList shows the currency rate table and the import form.
func HandleRatesList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildRatesData(app)
		if err != nil {
			log.Printf("rates: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return renderRates(app, e, data)
	}
}

// HandleRateSave updates one rate in place.
func HandleRateSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rateID := e.Request.PathValue("rateId")

		rec, err := app.FindRecordById("currency_rates", rateID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Rate not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(e.Request.FormValue("rate")), 64)
		if err != nil || rate <= 0 {
			return ErrorToast(e, http.StatusBadRequest, "Rate must be a positive number")
		}

		rec.Set("rate", rate)
		if err := app.Save(rec); err != nil {
			log.Printf("rates: could not save rate %s: %v", rateID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", rec.GetString("code")+" updated")

		data, err := buildRatesData(app)
		if err != nil {
			log.Printf("rates: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return renderRates(app, e, data)
	}
}

// HandleRateImport receives a CSV or XLSX upload, validates it row by row
// and shows the report. Valid rows are applied only when the commit box was
// ticked; row errors never abort the valid part of the file.
func HandleRateImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Max 10MB
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateRateFile(file, header.Filename)
		if err != nil {
			log.Printf("rate_import: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		commit := e.Request.FormValue("commit") == "true"
		commitNote := ""
		if commit && result.ValidRows > 0 {
			if err := services.CommitRateImport(app, result.Rates); err != nil {
				log.Printf("rate_import: commit failed: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Could not apply the imported rates")
			}
			commitNote = fmt.Sprintf("%d rates applied.", len(result.Rates))
			SetToast(e, "success", commitNote)
		}

		data, err := buildRatesData(app)
		if err != nil {
			log.Printf("rate_import: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data.Imported = true
		data.TotalRows = result.TotalRows
		data.ValidRows = result.ValidRows
		data.ErrorRows = result.ErrorRows
		data.Committed = commit
		data.CommitNote = commitNote
		for _, ve := range result.Errors {
			data.Errors = append(data.Errors, templates.RateImportError{
				Row:     ve.Row,
				Field:   ve.Field,
				Message: ve.Message,
			})
		}

		return renderRates(app, e, data)
	}
}
