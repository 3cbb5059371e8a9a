package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"proposalengine/testhelpers"
)

func TestHandleSectionCreate_SavesWithDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Sectioned Proposal")

	handler := HandleSectionCreate(app)

	form := url.Values{
		"name":               {"Instrumentation"},
		"margin":             {"0.3"},
		"quote_currency":     {"INR"},
		"numbering_scheme":   {"double"},
		"escalation_default": {"0.05"},
	}
	req := postForm(t, "/proposals/"+proposal.Id+"/sections", form)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	sections, err := app.FindRecordsByFilter(
		"sections", "proposal = {:p}", "", 0, 0,
		map[string]any{"p": proposal.Id},
	)
	if err != nil || len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d (err %v)", len(sections), err)
	}
	s := sections[0]
	if s.GetString("name") != "Instrumentation" {
		t.Errorf("name = %q", s.GetString("name"))
	}
	if s.GetFloat("margin") != 0.3 {
		t.Errorf("margin = %v", s.GetFloat("margin"))
	}
	if s.GetString("numbering_scheme") != "double" {
		t.Errorf("scheme = %q", s.GetString("numbering_scheme"))
	}
	if s.GetInt("sort_order") != 1 {
		t.Errorf("sort_order = %d, want 1", s.GetInt("sort_order"))
	}
}

func TestHandleSectionCreate_SortOrderIncrements(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Ordered Proposal")
	testhelpers.CreateTestSection(t, app, proposal.Id, "First", 1)

	handler := HandleSectionCreate(app)

	form := url.Values{"name": {"Second"}, "margin": {"0.2"}}
	req := postForm(t, "/proposals/"+proposal.Id+"/sections", form)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	sections, _ := app.FindRecordsByFilter(
		"sections", "proposal = {:p} && name = 'Second'", "", 1, 0,
		map[string]any{"p": proposal.Id},
	)
	if len(sections) != 1 {
		t.Fatalf("second section not saved")
	}
	if got := sections[0].GetInt("sort_order"); got != 2 {
		t.Errorf("sort_order = %d, want 2", got)
	}
}

func TestHandleSectionCreate_RejectsBadMargin(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Margin Proposal")

	handler := HandleSectionCreate(app)

	form := url.Values{"name": {"Bad"}, "margin": {"1.2"}}
	req := postForm(t, "/proposals/"+proposal.Id+"/sections", form)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	sections, _ := app.FindRecordsByFilter(
		"sections", "proposal = {:p}", "", 0, 0,
		map[string]any{"p": proposal.Id},
	)
	if len(sections) != 0 {
		t.Errorf("expected no section saved, got %d", len(sections))
	}
}

func TestHandleSectionDelete_ChecksOwnership(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, section := seedProposal(t, app)
	other := testhelpers.CreateTestProposal(t, app, "Other Proposal")

	handler := HandleSectionDelete(app)

	// Deleting through the wrong proposal must fail.
	req := httptest.NewRequest(http.MethodDelete, "/proposals/"+other.Id+"/sections/"+section.Id, nil)
	req.SetPathValue("id", other.Id)
	req.SetPathValue("sectionId", section.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for wrong proposal, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("sections", section.Id); err != nil {
		t.Error("section should still exist")
	}

	// The owning proposal can delete it.
	req = httptest.NewRequest(http.MethodDelete, "/proposals/"+proposal.Id+"/sections/"+section.Id, nil)
	req.SetPathValue("id", proposal.Id)
	req.SetPathValue("sectionId", section.Id)
	rec = httptest.NewRecorder()
	e = newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if _, err := app.FindRecordById("sections", section.Id); err == nil {
		t.Error("expected section to be deleted")
	}
}

func TestHandleSectionView_ShowsRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, section := seedProposal(t, app)

	handler := HandleSectionView(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+proposal.Id+"/sections/"+section.Id, nil)
	req.SetPathValue("id", proposal.Id)
	req.SetPathValue("sectionId", section.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	// Authored cells plus live computed prices.
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Control system", "Controller", "127.00", "211.00")
}
