package webapp

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// NavBar is the navigation bar component
type NavBar struct {
	app.Compo
}

// Render renders the navigation bar
func (n *NavBar) Render() app.UI {
	return app.Nav().
		Class("navbar").
		Body(
			app.Div().Class("navbar-brand").Body(
				app.H1().Text(AppName),
			),
			app.Div().Class("navbar-menu").Body(
				app.A().
					Href(EditPath).
					Class("navbar-item").
					Body(app.Text("Edit")),
				app.A().
					Href(PrintPath).
					Class("navbar-item").
					Body(app.Text("Print")),
			),
		)
}
