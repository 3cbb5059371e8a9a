package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

// buildProposalExportData recomputes the proposal in memory and assembles
// the export payload. Exports always reflect the current authored data.
func buildProposalExportData(app *pocketbase.PocketBase, proposalID string) (services.ExportData, error) {
	p, _, err := services.LoadProject(app, proposalID)
	if err != nil {
		return services.ExportData{}, err
	}
	sum := services.Recompute(p)

	createdDate := "—"
	if rec, err := app.FindRecordById("proposals", proposalID); err == nil {
		if dt := rec.GetDateTime("created"); !dt.IsZero() {
			createdDate = dt.Time().Format("02 Jan 2006")
		}
	}

	return services.BuildExportData(p, sum, createdDate), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleProposalExportExcel generates and downloads the priced workbook.
func HandleProposalExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if proposalID == "" {
			return e.String(http.StatusBadRequest, "Missing proposal ID")
		}

		data, err := buildProposalExportData(app, proposalID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Proposal not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Proposal_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleProposalExportPDF generates and downloads the quotation PDF.
func HandleProposalExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if proposalID == "" {
			return e.String(http.StatusBadRequest, "Missing proposal ID")
		}

		data, err := buildProposalExportData(app, proposalID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Proposal not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Proposal_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleChecklistList shows the checklist catalog.
func HandleChecklistList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var data templates.ChecklistListData
		for _, c := range services.Checklists() {
			data.Items = append(data.Items, templates.ChecklistListItem{
				Slug:      c.Slug,
				Title:     c.Title,
				ItemCount: len(c.Items),
			})
		}

		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component := templates.ChecklistListPage(data, headerData, sidebarData)
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleChecklistPDF generates and downloads one checklist form.
func HandleChecklistPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		slug := e.Request.PathValue("slug")

		checklist, ok := services.ChecklistBySlug(slug)
		if !ok {
			return e.String(http.StatusNotFound, "Checklist not found")
		}

		pdfBytes, err := services.GenerateChecklistPDF(checklist)
		if err != nil {
			log.Printf("export_checklist: failed to generate %s: %v", slug, err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(checklist.Title))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
