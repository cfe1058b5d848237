package webapp

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// EditPage is the page served at the root path
type EditPage struct {
	app.Compo
	Embedded bool // rendered inside the Shell
}

// OnNav is called when the router lands on this page
func (e *EditPage) OnNav(ctx app.Context) {
	ctx.Page().SetTitle("Edit | " + AppName)
}

// Render renders the edit page
func (e *EditPage) Render() app.UI {
	return pageRoot(e.Embedded, "edit-page",
		app.H2().Text("Edit"),
		app.Div().Class("page-body").ID("edit-body"),
		app.Div().Class("page-actions no-print").Body(
			app.A().
				Href(PrintPath).
				Class("btn").
				Body(app.Text("Print view")),
		),
	)
}

// PrintPage is the printable view served at /print
type PrintPage struct {
	app.Compo
	Embedded bool
}

// OnNav is called when the router lands on this page
func (p *PrintPage) OnNav(ctx app.Context) {
	ctx.Page().SetTitle("Print | " + AppName)
}

// Render renders the print page
func (p *PrintPage) Render() app.UI {
	return pageRoot(p.Embedded, "print-page",
		app.H2().Class("no-print").Text("Print"),
		app.Div().Class("page-body").ID("print-body"),
		app.Div().Class("page-actions no-print").Body(
			app.Button().
				Class("btn").
				OnClick(p.onPrintClick).
				Body(app.Text("Print")),
			app.A().
				Href(EditPath).
				Class("btn").
				Body(app.Text("Back to edit")),
		),
	)
}

// onPrintClick opens the browser print dialog
func (p *PrintPage) onPrintClick(ctx app.Context, e app.Event) {
	app.Window().Call("print")
}
