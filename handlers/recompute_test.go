package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"proposalengine/testhelpers"
)

func TestHandleRecompute_PersistsDerivedFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, section := seedProposal(t, app)

	handler := HandleRecompute(app)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/recompute", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	rows, err := app.FindRecordsByFilter(
		"rows", "section = {:s} && item = 'A-100'", "", 1, 0,
		map[string]any{"s": section.Id},
	)
	if err != nil || len(rows) != 1 {
		t.Fatalf("fixture row missing: %v", err)
	}
	r := rows[0]
	if got := r.GetString("role"); got != "Lineitem" {
		t.Errorf("role = %q, want Lineitem", got)
	}
	if got := r.GetFloat("effective_unit_price"); got != 127 {
		t.Errorf("effective_unit_price = %v, want 127", got)
	}
	if got := r.GetFloat("subtotal_price"); got != 254 {
		t.Errorf("subtotal_price = %v, want 254", got)
	}

	loaded, err := app.FindRecordById("proposals", proposal.Id)
	if err != nil {
		t.Fatalf("reload proposal: %v", err)
	}
	if got := loaded.GetFloat("project_total"); got != 465 {
		t.Errorf("project_total = %v, want 465", got)
	}

	entries, _ := app.FindRecordsByFilter(
		"summary_entries", "proposal = {:p}", "", 0, 0,
		map[string]any{"p": proposal.Id},
	)
	if len(entries) != 1 {
		t.Errorf("summary entries = %d, want 1", len(entries))
	}
}

func TestHandleRecompute_RebuildsSummaryEntries(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, _ := seedProposal(t, app)

	handler := HandleRecompute(app)

	// Run twice. Entries are cleared and rebuilt, not duplicated.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/recompute", nil)
		req.SetPathValue("id", proposal.Id)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)
		if err := handler(e); err != nil {
			t.Fatalf("handler error on run %d: %v", i+1, err)
		}
	}

	entries, _ := app.FindRecordsByFilter(
		"summary_entries", "proposal = {:p}", "", 0, 0,
		map[string]any{"p": proposal.Id},
	)
	if len(entries) != 1 {
		t.Errorf("summary entries after two runs = %d, want 1", len(entries))
	}
}

func TestHandleRecompute_HTMXRedirectsToSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, _ := seedProposal(t, app)

	handler := HandleRecompute(app)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/recompute", nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+proposal.Id+"/summary")
}
