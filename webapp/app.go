package webapp

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// MountID is the id of the DOM element the application renders into
const MountID = "app"

// Shell is the optional root component wrapping every routed page
type Shell struct {
	app.Compo
	Page app.Composer
}

// Render renders the shell around the current page
func (s *Shell) Render() app.UI {
	return app.Div().
		ID(MountID).
		Class("app-container shell").
		Body(
			app.Header().Class("no-print").Body(
				&NavBar{},
			),
			app.Main().Body(
				app.Div().Class("content").Body(
					s.renderPage(),
				),
			),
		)
}

func (s *Shell) renderPage() app.UI {
	if s.Page == nil {
		return &EditPage{Embedded: true}
	}
	return s.Page
}

// pageRoot renders the outer element of a page, taking the mount id when
// no shell owns it
func pageRoot(embedded bool, class string, body ...app.UI) app.UI {
	root := app.Div().Class(class)
	if !embedded {
		root = root.ID(MountID)
	}
	return root.Body(body...)
}
