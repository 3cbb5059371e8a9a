package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

func HandleProposalEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("proposals", proposalID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}

		data := templates.ProposalFormData{
			ID:          rec.Id,
			Name:        rec.GetString("name"),
			CustomerRef: rec.GetString("customer_ref"),
			Reference:   rec.GetString("reference"),
			Revision:    rec.GetString("revision"),
			Errors:      make(map[string]string),
		}
		if v := rec.GetFloat("discount_fraction"); v != 0 {
			data.DiscountFraction = fmtFloat(v)
		}
		if v := rec.GetFloat("simulation_levels"); v != 0 {
			data.SimulationLevels = strconv.Itoa(int(v))
		}

		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component := templates.ProposalEditPage(data, headerData, sidebarData)
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProposalUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("proposals", proposalID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		customerRef := strings.TrimSpace(e.Request.FormValue("customer_ref"))
		revision := strings.TrimSpace(e.Request.FormValue("revision"))
		discountStr := strings.TrimSpace(e.Request.FormValue("discount_fraction"))
		levelsStr := strings.TrimSpace(e.Request.FormValue("simulation_levels"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Proposal name is required"
		}

		discount, err := parseFraction(discountStr)
		if err != nil {
			errors["discount_fraction"] = "Discount must be a fraction between 0 and 1"
		}

		levels := 0
		if levelsStr != "" {
			levels, err = strconv.Atoi(levelsStr)
			if err != nil || levels < 0 {
				errors["simulation_levels"] = "Simulation levels must be a whole number"
				levels = 0
			}
		}

		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			data := templates.ProposalFormData{
				ID:               proposalID,
				Name:             name,
				CustomerRef:      customerRef,
				Reference:        rec.GetString("reference"),
				Revision:         revision,
				DiscountFraction: discountStr,
				SimulationLevels: levelsStr,
				Errors:           errors,
			}
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component := templates.ProposalEditPage(data, headerData, sidebarData)
			return component.Render(e.Request.Context(), e.Response)
		}

		rec.Set("name", name)
		rec.Set("customer_ref", customerRef)
		rec.Set("revision", revision)
		rec.Set("discount_fraction", discount)
		rec.Set("simulation_levels", levels)

		if err := app.Save(rec); err != nil {
			log.Printf("proposal_edit: could not save proposal %s: %v", proposalID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Proposal updated")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/proposals/"+proposalID)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/proposals/"+proposalID)
	}
}

// HandleProposalRevise bumps the revision marker, R0 to R1 and so on.
func HandleProposalRevise(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("proposals", proposalID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}

		next := services.NextRevision(rec.GetString("revision"))
		rec.Set("revision", next)
		if err := app.Save(rec); err != nil {
			log.Printf("proposal_edit: could not bump revision of %s: %v", proposalID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Revision is now "+next)
		e.Response.Header().Set("HX-Redirect", "/proposals/"+proposalID)
		return e.String(http.StatusOK, "")
	}
}
