package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

// nextRowSortOrder returns the sort_order after the last row of the section.
func nextRowSortOrder(app *pocketbase.PocketBase, sectionID string) int {
	existing, err := app.FindRecordsByFilter(
		"rows",
		"section = {:section}",
		"-sort_order",
		1, 0,
		map[string]any{"section": sectionID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}

// applyRowForm copies authored fields from the form onto the record. Text
// goes through the cleanup helpers; scope through the alias normalizer.
// Returns field errors keyed by form name.
func applyRowForm(e *core.RequestEvent, rec *core.Record) map[string]string {
	errors := make(map[string]string)

	rec.Set("marker", strings.TrimSpace(e.Request.FormValue("marker")))
	rec.Set("item", strings.TrimSpace(e.Request.FormValue("item")))

	desc := services.CleanText(e.Request.FormValue("description"))
	desc = services.NormalizeDimensions(desc)
	rec.Set("description", desc)

	rec.Set("unit", services.NormalizeUnit(e.Request.FormValue("unit")))
	rec.Set("currency", strings.ToUpper(strings.TrimSpace(e.Request.FormValue("currency"))))
	rec.Set("scope", string(services.NormalizeScope(e.Request.FormValue("scope"))))

	qty, err := parseCell(e.Request.FormValue("qty"))
	if err != nil {
		errors["qty"] = "Quantity must be a number or blank"
	}
	setCellField(rec, "qty", qty)

	unitCost, err := parseCell(e.Request.FormValue("unit_cost"))
	if err != nil {
		errors["unit_cost"] = "Unit cost must be a number or blank"
	}
	setCellField(rec, "unit_cost", unitCost)

	override, err := parseCell(e.Request.FormValue("price_override"))
	if err != nil {
		errors["price_override"] = "Price override must be a number or blank"
	}
	setCellField(rec, "price_override", override)

	discount, err := parseFraction(e.Request.FormValue("discount"))
	if err != nil {
		errors["discount"] = "Discount must be a fraction between 0 and 1"
	}
	rec.Set("discount", discount)

	return errors
}

// renderSectionEditor re-renders the full section editor after a row change.
func renderSectionEditor(app *pocketbase.PocketBase, e *core.RequestEvent, proposalID, sectionID string, errors map[string]string) error {
	data, err := buildSectionEditData(app, proposalID, sectionID)
	if err != nil {
		log.Printf("rows: could not rebuild section editor: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	if len(errors) > 0 {
		data.Errors = errors
	}
	return templates.SectionEditContent(data).Render(e.Request.Context(), e.Response)
}

// HandleRowAdd handles POST /proposals/{id}/sections/{sectionId}/rows.
func HandleRowAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")

		section, err := app.FindRecordById("sections", sectionID)
		if err != nil || section.GetString("proposal") != proposalID {
			return ErrorToast(e, http.StatusNotFound, "Section not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		col, err := app.FindCollectionByNameOrId("rows")
		if err != nil {
			log.Printf("rows: could not find rows collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("section", sectionID)
		record.Set("sort_order", nextRowSortOrder(app, sectionID))

		errors := applyRowForm(e, record)
		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			return renderSectionEditor(app, e, proposalID, sectionID, errors)
		}

		if err := app.Save(record); err != nil {
			log.Printf("rows: could not save row: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Row added")
		return renderSectionEditor(app, e, proposalID, sectionID, nil)
	}
}

// HandleRowPatch handles PATCH /proposals/{id}/sections/{sectionId}/rows/{rowId}.
func HandleRowPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		rowID := e.Request.PathValue("rowId")

		record, err := app.FindRecordById("rows", rowID)
		if err != nil || record.GetString("section") != sectionID {
			return ErrorToast(e, http.StatusNotFound, "Row not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		errors := applyRowForm(e, record)
		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			return renderSectionEditor(app, e, proposalID, sectionID, errors)
		}

		if err := app.Save(record); err != nil {
			log.Printf("rows: could not save row %s: %v", rowID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Row updated")
		return renderSectionEditor(app, e, proposalID, sectionID, nil)
	}
}

// HandleRowDelete handles DELETE /proposals/{id}/sections/{sectionId}/rows/{rowId}.
func HandleRowDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")
		rowID := e.Request.PathValue("rowId")

		record, err := app.FindRecordById("rows", rowID)
		if err != nil || record.GetString("section") != sectionID {
			return ErrorToast(e, http.StatusNotFound, "Row not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("rows: could not delete row %s: %v", rowID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete row")
		}

		SetToast(e, "success", "Row deleted")
		return renderSectionEditor(app, e, proposalID, sectionID, nil)
	}
}
