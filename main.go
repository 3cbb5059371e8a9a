package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/collections"
	"proposalengine/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyRows(app); err != nil {
			log.Printf("Warning: legacy row migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Apply active proposal middleware globally
		se.Router.BindFunc(handlers.ActiveProposalMiddleware(app))

		// ── Proposal activation ──────────────────────────────────
		se.Router.POST("/proposals/{id}/activate", handlers.HandleProposalActivate(app))
		se.Router.POST("/proposals/deactivate", handlers.HandleProposalDeactivate(app))

		// ── Proposal CRUD ────────────────────────────────────────
		se.Router.GET("/proposals", handlers.HandleProposalList(app))
		se.Router.GET("/proposals/create", handlers.HandleProposalCreate(app))
		se.Router.POST("/proposals", handlers.HandleProposalSave(app))
		se.Router.GET("/proposals/{id}/edit", handlers.HandleProposalEdit(app))
		se.Router.POST("/proposals/{id}/save", handlers.HandleProposalUpdate(app))
		se.Router.POST("/proposals/{id}/revise", handlers.HandleProposalRevise(app))
		se.Router.DELETE("/proposals/{id}", handlers.HandleProposalDelete(app))
		se.Router.GET("/proposals/{id}", handlers.HandleProposalView(app))

		// ── Sections and rows ────────────────────────────────────
		se.Router.POST("/proposals/{id}/sections", handlers.HandleSectionCreate(app))
		se.Router.GET("/proposals/{id}/sections/{sectionId}", handlers.HandleSectionView(app))
		se.Router.DELETE("/proposals/{id}/sections/{sectionId}", handlers.HandleSectionDelete(app))
		se.Router.POST("/proposals/{id}/sections/{sectionId}/rows", handlers.HandleRowAdd(app))
		se.Router.PATCH("/proposals/{id}/sections/{sectionId}/rows/{rowId}", handlers.HandleRowPatch(app))
		se.Router.DELETE("/proposals/{id}/sections/{sectionId}/rows/{rowId}", handlers.HandleRowDelete(app))

		// ── Engine ───────────────────────────────────────────────
		se.Router.POST("/proposals/{id}/recompute", handlers.HandleRecompute(app))
		se.Router.GET("/proposals/{id}/summary", handlers.HandleSummary(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/proposals/{id}/export/excel", handlers.HandleProposalExportExcel(app))
		se.Router.GET("/proposals/{id}/export/pdf", handlers.HandleProposalExportPDF(app))

		// ── Currency rates ───────────────────────────────────────
		se.Router.GET("/rates", handlers.HandleRatesList(app))
		se.Router.POST("/rates/{rateId}", handlers.HandleRateSave(app))
		se.Router.POST("/rates/import", handlers.HandleRateImport(app))

		// ── Checklists ───────────────────────────────────────────
		se.Router.GET("/checklists", handlers.HandleChecklistList(app))
		se.Router.GET("/checklists/{slug}/pdf", handlers.HandleChecklistPDF(app))

		// Redirect root to the proposal list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/proposals")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
