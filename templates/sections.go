package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SectionFormData carries the new/edit section form and its dropdowns.
type SectionFormData struct {
	Name            string
	Margin          string
	QuoteCurrency   string
	NumberingScheme string
	ScopeRemark     string
	EscalationDefault  string
	EscalationWarranty string
	EscalationFreight  string
	EscalationSpecial  string
	CurrencyOptions []string
	SchemeOptions   []string
	ScopeOptions    []string
	Errors          map[string]string
}

func sectionForm(w io.Writer, proposalID string, data SectionFormData) error {
	if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 p-6 max-w-2xl">
<h2 class="text-lg font-bold mb-2">Add Section</h2>
<form method="post" action="/proposals/%s/sections" class="grid grid-cols-2 gap-3">`,
		esc(proposalID)); err != nil {
		return err
	}
	if err := formField(w, "Name", "name", "text", data.Name, data.Errors["name"]); err != nil {
		return err
	}
	if err := formField(w, "Margin (0 to 1)", "margin", "text", data.Margin, data.Errors["margin"]); err != nil {
		return err
	}
	if err := selectField(w, "Quote Currency", "quote_currency", data.QuoteCurrency, data.CurrencyOptions); err != nil {
		return err
	}
	if err := selectField(w, "Numbering Scheme", "numbering_scheme", data.NumberingScheme, data.SchemeOptions); err != nil {
		return err
	}
	if err := selectField(w, "Scope Remark", "scope_remark", data.ScopeRemark, data.ScopeOptions); err != nil {
		return err
	}
	escalations := []struct {
		name, label, value string
	}{
		{"escalation_default", "Escalation", data.EscalationDefault},
		{"escalation_warranty", "Warranty", data.EscalationWarranty},
		{"escalation_freight", "Freight", data.EscalationFreight},
		{"escalation_special", "Special", data.EscalationSpecial},
	}
	for _, f := range escalations {
		if err := formField(w, f.label, f.name, "text", f.value, data.Errors[f.name]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `<div class="col-span-2"><button type="submit" class="btn btn-primary btn-sm">Add Section</button></div>
</form></div>`)
	return err
}

// SectionRowItem is one row of the section editor table: the authored cells
// as editable strings plus the derived columns the engine wrote back.
type SectionRowItem struct {
	ID          string
	Marker      string
	Item        string
	Description string
	Qty         string
	Unit        string
	UnitCost    string
	Currency    string
	Discount    string
	Override    string
	Scope       string

	Role            string
	Serial          string
	EffectiveFmt    string
	SubtotalFmt     string
	DisplayPriceFmt string
	DisplaySubFmt   string
	ProfitFmt       string
	MarginPctFmt    string
}

type SectionEditData struct {
	ProposalID      string
	SectionID       string
	SectionName     string
	QuoteCurrency   string
	MarginDisplay   string
	Rows            []SectionRowItem
	SellingFmt      string
	QuoteTotalFmt   string
	ProfitFmt       string
	CurrencyOptions []string
	ScopeOptions    []string
	UnitOptions     []string
	Errors          map[string]string
}

func SectionEditPage(data SectionEditData, header HeaderData, sidebar SidebarData) templ.Component {
	return page(data.SectionName, header, sidebar, SectionEditContent(data))
}

func SectionEditContent(data SectionEditData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="section-editor">
<div class="flex justify-between items-center mb-4">
<div><h1 class="text-2xl font-bold">%s</h1>
<p class="text-sm opacity-70">Quote currency %s, margin %s</p></div>
<div class="flex gap-2">
<button class="btn btn-primary btn-sm" hx-post="/proposals/%s/recompute" hx-target="#section-editor" hx-swap="outerHTML">Recompute</button>
<a href="/proposals/%s" class="btn btn-sm">Back</a>
</div></div>`,
			esc(data.SectionName), esc(data.QuoteCurrency), esc(data.MarginDisplay),
			esc(data.ProposalID), esc(data.ProposalID)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div class="overflow-x-auto card bg-base-100 mb-4"><table class="table table-xs">
<thead><tr>
<th>#</th><th>Marker</th><th>Item</th><th class="min-w-64">Description</th><th>Qty</th><th>Unit</th>
<th>Unit Cost</th><th>Cur</th><th>Disc</th><th>Override</th><th>Scope</th>
<th>Role</th><th class="text-right">Unit Price</th><th class="text-right">Subtotal</th>
<th class="text-right">Profit</th><th class="text-right">Margin</th><th></th>
</tr></thead><tbody>`); err != nil {
			return err
		}

		for _, r := range data.Rows {
			if err := sectionRowForm(w, data, r); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr>
<th colspan="13" class="text-right">Section Total</th>
<th class="text-right font-mono">%s</th>
<th class="text-right font-mono">%s</th><th></th><th></th>
</tr></tfoot></table></div>`,
			esc(data.SellingFmt), esc(data.ProfitFmt)); err != nil {
			return err
		}

		if err := addRowForm(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// sectionRowForm renders one editable row. Authored cells post back as an
// HTMX patch; derived cells are display only.
func sectionRowForm(w io.Writer, data SectionEditData, r SectionRowItem) error {
	patchURL := fmt.Sprintf("/proposals/%s/sections/%s/rows/%s",
		esc(data.ProposalID), esc(data.SectionID), esc(r.ID))

	if _, err := fmt.Fprintf(w, `<tr>
<td class="font-mono">%s</td>
<td><input form="row-%s" name="marker" value="%s" class="input input-xs input-bordered w-14"/></td>
<td><input form="row-%s" name="item" value="%s" class="input input-xs input-bordered w-14"/></td>
<td><input form="row-%s" name="description" value="%s" class="input input-xs input-bordered w-full"/></td>
<td><input form="row-%s" name="qty" value="%s" class="input input-xs input-bordered w-14"/></td>
<td><input form="row-%s" name="unit" value="%s" class="input input-xs input-bordered w-14"/></td>
<td><input form="row-%s" name="unit_cost" value="%s" class="input input-xs input-bordered w-20"/></td>
<td><input form="row-%s" name="currency" value="%s" class="input input-xs input-bordered w-12"/></td>
<td><input form="row-%s" name="discount" value="%s" class="input input-xs input-bordered w-14"/></td>
<td><input form="row-%s" name="price_override" value="%s" class="input input-xs input-bordered w-20"/></td>
<td><input form="row-%s" name="scope" value="%s" class="input input-xs input-bordered w-20"/></td>
<td><span class="badge badge-ghost badge-sm">%s</span></td>
<td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td>
<td class="whitespace-nowrap">
<form id="row-%s" hx-patch="%s" hx-target="#section-editor" hx-swap="outerHTML" class="inline">
<button type="submit" class="btn btn-ghost btn-xs">Save</button>
</form>
<button class="btn btn-ghost btn-xs text-error" hx-delete="%s" hx-target="#section-editor" hx-swap="outerHTML" hx-confirm="Delete this row?">Del</button>
</td></tr>`,
		esc(r.Serial),
		esc(r.ID), esc(r.Marker),
		esc(r.ID), esc(r.Item),
		esc(r.ID), esc(r.Description),
		esc(r.ID), esc(r.Qty),
		esc(r.ID), esc(r.Unit),
		esc(r.ID), esc(r.UnitCost),
		esc(r.ID), esc(r.Currency),
		esc(r.ID), esc(r.Discount),
		esc(r.ID), esc(r.Override),
		esc(r.ID), esc(r.Scope),
		esc(r.Role),
		esc(r.EffectiveFmt), esc(r.DisplaySubFmt), esc(r.ProfitFmt), esc(r.MarginPctFmt),
		esc(r.ID), patchURL, patchURL); err != nil {
		return err
	}
	return nil
}

func addRowForm(w io.Writer, data SectionEditData) error {
	if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 p-4">
<h2 class="text-lg font-bold mb-2">Add Row</h2>
<form hx-post="/proposals/%s/sections/%s/rows" hx-target="#section-editor" hx-swap="outerHTML" class="grid grid-cols-4 gap-3">`,
		esc(data.ProposalID), esc(data.SectionID)); err != nil {
		return err
	}
	if err := formField(w, "Marker", "marker", "text", "", data.Errors["marker"]); err != nil {
		return err
	}
	if err := formField(w, "Item", "item", "text", "", data.Errors["item"]); err != nil {
		return err
	}
	if err := formField(w, "Description", "description", "text", "", data.Errors["description"]); err != nil {
		return err
	}
	if err := formField(w, "Qty", "qty", "text", "", data.Errors["qty"]); err != nil {
		return err
	}
	if err := selectField(w, "Unit", "unit", "", data.UnitOptions); err != nil {
		return err
	}
	if err := formField(w, "Unit Cost", "unit_cost", "text", "", data.Errors["unit_cost"]); err != nil {
		return err
	}
	if err := selectField(w, "Currency", "currency", "", data.CurrencyOptions); err != nil {
		return err
	}
	if err := formField(w, "Discount (0 to 1)", "discount", "text", "", data.Errors["discount"]); err != nil {
		return err
	}
	if err := selectField(w, "Scope", "scope", "", data.ScopeOptions); err != nil {
		return err
	}
	_, err := io.WriteString(w, `<div class="col-span-4"><button type="submit" class="btn btn-primary btn-sm">Add Row</button></div>
</form></div>`)
	return err
}
