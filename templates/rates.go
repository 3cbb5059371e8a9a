package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type RateListItem struct {
	ID      string
	Code    string
	RateFmt string
	Updated string
}

// RateImportError is one row-level problem from a rate file upload.
type RateImportError struct {
	Row     int
	Field   string
	Message string
}

type RatesData struct {
	Items []RateListItem

	// Import report, present after an upload.
	Imported   bool
	TotalRows  int
	ValidRows  int
	ErrorRows  int
	Errors     []RateImportError
	Committed  bool
	CommitNote string
}

func RatesPage(data RatesData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Currency Rates", header, sidebar, RatesContent(data))
}

func RatesContent(data RatesData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="rates-content">
<h1 class="text-2xl font-bold mb-4">Currency Rates</h1>
<div class="grid grid-cols-2 gap-6">
<div class="overflow-x-auto card bg-base-100"><table class="table">
<thead><tr><th>Code</th><th class="text-right">Rate (INR)</th><th>Updated</th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, r := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td class="font-mono">%s</td>
<td><form hx-post="/rates/%s" hx-target="#rates-content" hx-swap="outerHTML" class="flex justify-end gap-1">
<input name="rate" value="%s" class="input input-xs input-bordered w-24 text-right font-mono"/>
<button type="submit" class="btn btn-ghost btn-xs">Save</button>
</form></td>
<td class="text-sm opacity-70">%s</td></tr>`,
				esc(r.Code), esc(r.ID), esc(r.RateFmt), esc(r.Updated)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table></div>
<div class="card bg-base-100 p-4">
<h2 class="text-lg font-bold mb-2">Import Rates</h2>
<p class="text-sm opacity-70 mb-2">Upload a CSV or XLSX with code and rate columns.</p>
<form method="post" action="/rates/import" enctype="multipart/form-data" class="space-y-2">
<input type="file" name="file" accept=".csv,.xlsx" class="file-input file-input-bordered w-full"/>
<label class="label cursor-pointer justify-start gap-2">
<input type="checkbox" name="commit" value="true" class="checkbox checkbox-sm"/>
<span class="label-text">Apply valid rows</span>
</label>
<button type="submit" class="btn btn-primary btn-sm">Upload</button>
</form>`); err != nil {
			return err
		}

		if data.Imported {
			if err := renderImportReport(w, data); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div></div></div>`)
		return err
	})
}

func renderImportReport(w io.Writer, data RatesData) error {
	alertClass := "alert-success"
	if data.ErrorRows > 0 {
		alertClass = "alert-warning"
	}
	if _, err := fmt.Fprintf(w, `<div class="alert %s mt-4 text-sm">
%d rows read, %d valid, %d with errors. %s</div>`,
		alertClass, data.TotalRows, data.ValidRows, data.ErrorRows, esc(data.CommitNote)); err != nil {
		return err
	}
	if len(data.Errors) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, `<table class="table table-xs mt-2">
<thead><tr><th>Row</th><th>Field</th><th>Problem</th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, e := range data.Errors {
		if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
			e.Row, esc(e.Field), esc(e.Message)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}
