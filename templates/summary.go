package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SummaryRowItem is one section line on the project summary page.
type SummaryRowItem struct {
	Index       int
	SectionName string
	SellingFmt  string
	QuoteFmt    string
	BaseFmt     string
	ProfitFmt   string
	MarginFmt   string
	ScopeRemark string
}

// SummaryTrialItem is one discount-simulation line.
type SummaryTrialItem struct {
	Level         int
	PriceFmt      string
	DiscountFmt   string
	DiscountedFmt string
	ProfitFmt     string
	MarginFmt     string
}

type SummaryData struct {
	ProposalID    string
	ProposalName  string
	Reference     string
	Revision      string
	Rows          []SummaryRowItem
	ProjectFmt    string
	DiscountFmt   string
	DiscountedFmt string
	DiscountPct   string
	Trials        []SummaryTrialItem
}

func SummaryPage(data SummaryData, header HeaderData, sidebar SidebarData) templ.Component {
	return page(data.ProposalName+" Summary", header, sidebar, SummaryContent(data))
}

func SummaryContent(data SummaryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="flex justify-between items-center mb-4">
<div><h1 class="text-2xl font-bold">%s</h1>
<p class="text-sm opacity-70">%s %s</p></div>
<a href="/proposals/%s" class="btn btn-sm">Back</a>
</div>`,
			esc(data.ProposalName), esc(data.Reference), esc(data.Revision),
			esc(data.ProposalID)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div class="overflow-x-auto card bg-base-100 mb-6"><table class="table">
<thead><tr><th>#</th><th>Section</th><th class="text-right">Selling</th><th class="text-right">Quote</th><th class="text-right">Base</th><th class="text-right">Profit</th><th class="text-right">Margin</th><th>Remark</th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, r := range data.Rows {
			remarkBadge := esc(r.ScopeRemark)
			if r.ScopeRemark == "OPTION" {
				remarkBadge = `<span class="badge badge-warning badge-sm">OPTION</span>`
			}
			if _, err := fmt.Fprintf(w, `<tr>
<td>%d</td><td>%s</td>
<td class="text-right font-mono">%s</td><td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td><td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td><td>%s</td></tr>`,
				r.Index, esc(r.SectionName),
				esc(r.SellingFmt), esc(r.QuoteFmt),
				esc(r.BaseFmt), esc(r.ProfitFmt),
				esc(r.MarginFmt), remarkBadge); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</tbody>
<tfoot><tr><th colspan="2" class="text-right">Project Total</th><th class="text-right font-mono">%s</th><th colspan="5"></th></tr></tfoot>
</table></div>`, esc(data.ProjectFmt)); err != nil {
			return err
		}

		if data.DiscountFmt != "" {
			if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 p-4 mb-6 max-w-md">
<h2 class="text-lg font-bold mb-2">Discount</h2>
<div class="grid grid-cols-2 gap-1 text-sm">
<span>Discount</span><span class="text-right font-mono">%s</span>
<span>Discounted Total</span><span class="text-right font-mono">%s</span>
<span>Effective Discount</span><span class="text-right font-mono">%s</span>
</div></div>`,
				esc(data.DiscountFmt), esc(data.DiscountedFmt), esc(data.DiscountPct)); err != nil {
				return err
			}
		}

		if len(data.Trials) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<div class="overflow-x-auto card bg-base-100"><table class="table table-sm">
<caption class="text-left text-lg font-bold p-4">Discount Simulation</caption>
<thead><tr><th>Level</th><th class="text-right">Price</th><th class="text-right">Discount</th><th class="text-right">Discounted</th><th class="text-right">Profit</th><th class="text-right">Margin</th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, t := range data.Trials {
			if _, err := fmt.Fprintf(w, `<tr><td>%d%%</td>
<td class="text-right font-mono">%s</td><td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td><td class="text-right font-mono">%s</td>
<td class="text-right font-mono">%s</td></tr>`,
				t.Level,
				esc(t.PriceFmt), esc(t.DiscountFmt),
				esc(t.DiscountedFmt), esc(t.ProfitFmt),
				esc(t.MarginFmt)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></div>`)
		return err
	})
}
