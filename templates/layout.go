package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ActiveProposal is the proposal the user is currently working in,
// carried through the request context by the middleware.
type ActiveProposal struct {
	ID        string
	Name      string
	Reference string
}

// ProposalSelectorItem is one entry in the header proposal switcher.
type ProposalSelectorItem struct {
	ID       string
	Name     string
	Customer string
	IsActive bool
}

// HeaderData feeds the top bar: the active proposal and the switcher list.
type HeaderData struct {
	ActiveProposal *ActiveProposal
	Proposals      []ProposalSelectorItem
}

// SidebarData feeds the left navigation.
type SidebarData struct {
	ActiveProposal *ActiveProposal
	ActivePath     string
	SectionCount   int
	RateCount      int
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// page wraps a content component in the full HTML shell: head, header bar,
// sidebar and the toast listener script.
func page(title string, header HeaderData, sidebar SidebarData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en" data-theme="corporate">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
<link href="https://cdn.jsdelivr.net/npm/daisyui@4/dist/full.min.css" rel="stylesheet" type="text/css"/>
<script src="https://cdn.tailwindcss.com"></script>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="stylesheet" href="/static/app.css"/>
</head>
<body class="min-h-screen bg-base-200">
`, esc(title)); err != nil {
			return err
		}
		if err := renderHeader(w, header); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="flex">`); err != nil {
			return err
		}
		if err := renderSidebar(w, sidebar); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="main-content" class="flex-1 p-6">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></div>
<div id="toast-container" class="toast toast-end"></div>
<script src="/static/toast.js"></script>
</body>
</html>`)
		return err
	})
}

func renderHeader(w io.Writer, h HeaderData) error {
	if _, err := io.WriteString(w, `<header class="navbar bg-base-100 shadow-sm">
<div class="flex-1"><a href="/proposals" class="btn btn-ghost text-lg font-bold">Proposal Engine</a></div>
<div class="flex-none">`); err != nil {
		return err
	}

	if h.ActiveProposal != nil {
		if _, err := fmt.Fprintf(w,
			`<span class="badge badge-primary mr-2">%s</span>`,
			esc(h.ActiveProposal.Name)); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, `<div class="dropdown dropdown-end">
<label tabindex="0" class="btn btn-sm btn-outline">Switch Proposal</label>
<ul tabindex="0" class="dropdown-content menu bg-base-100 rounded-box z-10 w-64 p-2 shadow">`); err != nil {
		return err
	}
	for _, p := range h.Proposals {
		activeClass := ""
		if p.IsActive {
			activeClass = ` class="active"`
		}
		if _, err := fmt.Fprintf(w,
			`<li><button hx-post="/proposals/%s/activate"%s>%s <span class="text-xs opacity-60">%s</span></button></li>`,
			esc(p.ID), activeClass, esc(p.Name), esc(p.Customer)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></div></div></header>`)
	return err
}

func renderSidebar(w io.Writer, s SidebarData) error {
	if _, err := io.WriteString(w, `<aside class="w-56 bg-base-100 min-h-screen p-4">
<ul class="menu">`); err != nil {
		return err
	}

	links := []struct {
		href  string
		label string
	}{
		{"/proposals", "Proposals"},
		{"/rates", "Currency Rates"},
		{"/checklists", "Checklists"},
	}
	for _, l := range links {
		cls := ""
		if s.ActivePath == l.href {
			cls = ` class="active"`
		}
		if _, err := fmt.Fprintf(w, `<li><a href="%s"%s>%s</a></li>`, l.href, cls, esc(l.label)); err != nil {
			return err
		}
	}

	if s.ActiveProposal != nil {
		if _, err := fmt.Fprintf(w, `<li class="menu-title mt-4">%s</li>
<li><a href="/proposals/%s">Sections <span class="badge badge-sm">%d</span></a></li>
<li><a href="/proposals/%s/summary">Summary</a></li>`,
			esc(s.ActiveProposal.Name),
			esc(s.ActiveProposal.ID), s.SectionCount,
			esc(s.ActiveProposal.ID)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</ul></aside>`)
	return err
}

// formField renders a labelled input with an optional validation error.
func formField(w io.Writer, label, name, inputType, value, errMsg string) error {
	errHTML := ""
	inputClass := "input input-bordered w-full"
	if errMsg != "" {
		inputClass += " input-error"
		errHTML = fmt.Sprintf(`<span class="label-text-alt text-error">%s</span>`, esc(errMsg))
	}
	_, err := fmt.Fprintf(w, `<label class="form-control w-full">
<div class="label"><span class="label-text">%s</span>%s</div>
<input type="%s" name="%s" value="%s" class="%s"/>
</label>`, esc(label), errHTML, inputType, name, esc(value), inputClass)
	return err
}

// selectField renders a labelled select. The current value is marked selected;
// option values and labels are the same string.
func selectField(w io.Writer, label, name, value string, options []string) error {
	if _, err := fmt.Fprintf(w, `<label class="form-control w-full">
<div class="label"><span class="label-text">%s</span></div>
<select name="%s" class="select select-bordered w-full">`, esc(label), name); err != nil {
		return err
	}
	for _, o := range options {
		sel := ""
		if o == value {
			sel = " selected"
		}
		display := o
		if display == "" {
			display = "—"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(o), sel, esc(display)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select></label>`)
	return err
}
