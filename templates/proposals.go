package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type ProposalListItem struct {
	ID           string
	Name         string
	CustomerRef  string
	Reference    string
	Revision     string
	SectionCount int
	TotalDisplay string
	IsActive     bool
	CreatedDate  string
}

type ProposalListData struct {
	Items      []ProposalListItem
	TotalCount int
}

func ProposalListPage(data ProposalListData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Proposals", header, sidebar, ProposalListContent(data))
}

func ProposalListContent(data ProposalListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="flex justify-between items-center mb-4">
<h1 class="text-2xl font-bold">Proposals <span class="badge">%d</span></h1>
<a href="/proposals/create" class="btn btn-primary btn-sm">New Proposal</a>
</div>`, data.TotalCount); err != nil {
			return err
		}

		if len(data.Items) == 0 {
			_, err := io.WriteString(w, `<div class="card bg-base-100 p-8 text-center opacity-70">No proposals yet. Create one to get started.</div>`)
			return err
		}

		if _, err := io.WriteString(w, `<div class="overflow-x-auto card bg-base-100"><table class="table">
<thead><tr><th>Name</th><th>Customer Ref</th><th>Reference</th><th>Rev</th><th>Sections</th><th class="text-right">Total</th><th>Created</th><th></th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, item := range data.Items {
			activeBadge := ""
			if item.IsActive {
				activeBadge = ` <span class="badge badge-primary badge-sm">active</span>`
			}
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/proposals/%s" class="link link-hover font-medium">%s</a>%s</td>
<td>%s</td><td>%s</td><td>%s</td><td>%d</td>
<td class="text-right font-mono">%s</td><td>%s</td>
<td class="text-right">
<button class="btn btn-ghost btn-xs" hx-post="/proposals/%s/activate">Activate</button>
<a href="/proposals/%s/edit" class="btn btn-ghost btn-xs">Edit</a>
<button class="btn btn-ghost btn-xs text-error" hx-delete="/proposals/%s" hx-confirm="Delete this proposal and all its sections?">Delete</button>
</td></tr>`,
				esc(item.ID), esc(item.Name), activeBadge,
				esc(item.CustomerRef), esc(item.Reference), esc(item.Revision), item.SectionCount,
				esc(item.TotalDisplay), esc(item.CreatedDate),
				esc(item.ID), esc(item.ID), esc(item.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></div>`)
		return err
	})
}

type ProposalFormData struct {
	ID               string
	Name             string
	CustomerRef      string
	Reference        string
	Revision         string
	DiscountFraction string
	SimulationLevels string
	Errors           map[string]string
}

func ProposalCreatePage(data ProposalFormData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("New Proposal", header, sidebar, proposalForm("New Proposal", "/proposals", data))
}

func ProposalEditPage(data ProposalFormData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Edit Proposal", header, sidebar, proposalForm("Edit Proposal", "/proposals/"+data.ID+"/save", data))
}

func proposalForm(title, action string, data ProposalFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1 class="text-2xl font-bold mb-4">%s</h1>
<form method="post" action="%s" class="card bg-base-100 p-6 max-w-xl space-y-3">`,
			esc(title), action); err != nil {
			return err
		}
		if err := formField(w, "Name", "name", "text", data.Name, data.Errors["name"]); err != nil {
			return err
		}
		if err := formField(w, "Customer Ref", "customer_ref", "text", data.CustomerRef, data.Errors["customer_ref"]); err != nil {
			return err
		}
		if err := formField(w, "Revision", "revision", "text", data.Revision, data.Errors["revision"]); err != nil {
			return err
		}
		if err := formField(w, "Discount Fraction (0 to 1)", "discount_fraction", "text", data.DiscountFraction, data.Errors["discount_fraction"]); err != nil {
			return err
		}
		if err := formField(w, "Simulation Levels", "simulation_levels", "text", data.SimulationLevels, data.Errors["simulation_levels"]); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<div class="flex gap-2 pt-2">
<button type="submit" class="btn btn-primary">Save</button>
<a href="/proposals" class="btn btn-ghost">Cancel</a>
</div></form>`)
		return err
	})
}

// ProposalSectionItem is one section row on the proposal view page.
type ProposalSectionItem struct {
	ID              string
	Name            string
	RowCount        int
	QuoteCurrency   string
	MarginDisplay   string
	ScopeRemark     string
	SellingDisplay  string
	NumberingScheme string
}

type ProposalViewData struct {
	ID           string
	Name         string
	Reference    string
	Revision     string
	Sections     []ProposalSectionItem
	TotalDisplay string
	SectionForm  SectionFormData
}

func ProposalViewPage(data ProposalViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return page(data.Name, header, sidebar, ProposalViewContent(data))
}

func ProposalViewContent(data ProposalViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="flex justify-between items-center mb-4">
<div><h1 class="text-2xl font-bold">%s</h1>
<p class="text-sm opacity-70">%s %s</p></div>
<div class="flex gap-2">
<button class="btn btn-primary btn-sm" hx-post="/proposals/%s/recompute">Recompute</button>
<a href="/proposals/%s/summary" class="btn btn-sm">Summary</a>
<a href="/proposals/%s/export/excel" class="btn btn-sm">Excel</a>
<a href="/proposals/%s/export/pdf" class="btn btn-sm">PDF</a>
</div></div>`,
			esc(data.Name), esc(data.Reference), esc(data.Revision),
			esc(data.ID), esc(data.ID), esc(data.ID), esc(data.ID)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div class="overflow-x-auto card bg-base-100 mb-6"><table class="table">
<thead><tr><th>Section</th><th>Rows</th><th>Currency</th><th>Margin</th><th>Scheme</th><th>Remark</th><th class="text-right">Selling</th><th></th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, s := range data.Sections {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/proposals/%s/sections/%s" class="link link-hover font-medium">%s</a></td>
<td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>
<td class="text-right font-mono">%s</td>
<td class="text-right">
<button class="btn btn-ghost btn-xs text-error" hx-delete="/proposals/%s/sections/%s" hx-confirm="Delete this section and all its rows?">Delete</button>
</td></tr>`,
				esc(data.ID), esc(s.ID), esc(s.Name),
				s.RowCount, esc(s.QuoteCurrency), esc(s.MarginDisplay), esc(s.NumberingScheme), esc(s.ScopeRemark),
				esc(s.SellingDisplay),
				esc(data.ID), esc(s.ID)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr><th colspan="6" class="text-right">Project Total</th><th class="text-right font-mono">%s</th><th></th></tr></tfoot>
</table></div>`, esc(data.TotalDisplay)); err != nil {
			return err
		}

		return sectionForm(w, data.ID, data.SectionForm)
	})
}
