package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type ChecklistListItem struct {
	Slug      string
	Title     string
	ItemCount int
}

type ChecklistListData struct {
	Items []ChecklistListItem
}

func ChecklistListPage(data ChecklistListData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Checklists", header, sidebar, ChecklistListContent(data))
}

func ChecklistListContent(data ChecklistListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="text-2xl font-bold mb-4">Checklists</h1>
<div class="grid grid-cols-3 gap-4">`); err != nil {
			return err
		}
		for _, c := range data.Items {
			if _, err := fmt.Fprintf(w, `<div class="card bg-base-100 p-4">
<h2 class="font-bold">%s</h2>
<p class="text-sm opacity-70 mb-2">%d items</p>
<a href="/checklists/%s/pdf" class="btn btn-sm btn-primary w-fit">Download PDF</a>
</div>`, esc(c.Title), c.ItemCount, esc(c.Slug)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
