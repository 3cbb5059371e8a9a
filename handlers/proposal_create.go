package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

func HandleProposalCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProposalFormData{
			Revision: "R0",
			Errors:   make(map[string]string),
		}
		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component := templates.ProposalCreatePage(data, headerData, sidebarData)
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProposalSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
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
		if customerRef == "" {
			errors["customer_ref"] = "Customer ref is required for the reference number"
		}
		if revision == "" {
			revision = "R0"
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

		if name != "" {
			existing, _ := app.FindRecordsByFilter(
				"proposals",
				"name = {:name}",
				"", 1, 0,
				map[string]any{"name": name},
			)
			if len(existing) > 0 {
				errors["name"] = "A proposal with this name already exists"
			}
		}

		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			data := templates.ProposalFormData{
				Name:             name,
				CustomerRef:      customerRef,
				Revision:         revision,
				DiscountFraction: discountStr,
				SimulationLevels: levelsStr,
				Errors:           errors,
			}
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component := templates.ProposalCreatePage(data, headerData, sidebarData)
			return component.Render(e.Request.Context(), e.Response)
		}

		reference, err := services.GenerateProposalRef(app, customerRef, time.Now())
		if err != nil {
			log.Printf("proposal_create: could not generate reference: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		proposalsCol, err := app.FindCollectionByNameOrId("proposals")
		if err != nil {
			log.Printf("proposal_create: could not find proposals collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(proposalsCol)
		record.Set("name", name)
		record.Set("customer_ref", customerRef)
		record.Set("reference", reference)
		record.Set("revision", revision)
		record.Set("discount_fraction", discount)
		record.Set("simulation_levels", levels)

		if err := app.Save(record); err != nil {
			log.Printf("proposal_create: could not save proposal: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Proposal created")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/proposals/"+record.Id)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/proposals/"+record.Id)
	}
}
