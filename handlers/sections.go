package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// nextSectionSortOrder returns the sort_order after the last section of the
// proposal.
func nextSectionSortOrder(app *pocketbase.PocketBase, proposalID string) int {
	existing, err := app.FindRecordsByFilter(
		"sections",
		"proposal = {:proposal}",
		"-sort_order",
		1, 0,
		map[string]any{"proposal": proposalID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}

// HandleSectionCreate handles POST /proposals/{id}/sections.
func HandleSectionCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("proposals", proposalID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Section name is required")
		}

		margin, err := parseFraction(e.Request.FormValue("margin"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Margin must be a fraction between 0 and 1")
		}

		escalations := map[string]float64{}
		for _, field := range []string{
			"escalation_default", "escalation_warranty",
			"escalation_freight", "escalation_special",
		} {
			v, err := parseFraction(e.Request.FormValue(field))
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Escalations must be fractions between 0 and 1")
			}
			escalations[field] = v
		}

		col, err := app.FindCollectionByNameOrId("sections")
		if err != nil {
			log.Printf("sections: could not find sections collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("proposal", proposalID)
		record.Set("sort_order", nextSectionSortOrder(app, proposalID))
		record.Set("name", name)
		record.Set("margin", margin)
		record.Set("quote_currency", strings.TrimSpace(e.Request.FormValue("quote_currency")))
		record.Set("numbering_scheme", strings.TrimSpace(e.Request.FormValue("numbering_scheme")))
		record.Set("scope_remark", strings.TrimSpace(e.Request.FormValue("scope_remark")))
		for field, v := range escalations {
			record.Set(field, v)
		}

		if err := app.Save(record); err != nil {
			log.Printf("sections: could not save section: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Section added")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/proposals/"+proposalID)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/proposals/"+proposalID)
	}
}

// HandleSectionDelete handles DELETE /proposals/{id}/sections/{sectionId}.
// Rows cascade with the section.
func HandleSectionDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")

		rec, err := app.FindRecordById("sections", sectionID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Section not found")
		}
		if rec.GetString("proposal") != proposalID {
			return ErrorToast(e, http.StatusNotFound, "Section not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("sections: failed to delete section %s: %v", sectionID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete section")
		}

		SetToast(e, "success", "Section deleted")
		e.Response.Header().Set("HX-Redirect", "/proposals/"+proposalID)
		return e.String(http.StatusOK, "")
	}
}
