package webapp

import (
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/drummonds/printdesk/routes"
)

const (
	// AppName is shown in the navbar and page titles
	AppName = "printdesk"
	// EditPath serves the edit page
	EditPath = "/"
	// PrintPath serves the print page
	PrintPath = "/print"
	// ShellEnv carries the shell flag from the server to the wasm client
	ShellEnv = "PRINTDESK_SHELL"
)

// Options configures the go-app handler
type Options struct {
	Name        string
	Title       string
	Description string
	Shell       bool // wrap pages in the Shell root component
	Version     string
}

// Routes builds the route table, wrapping each page in the Shell when shell is set
func Routes(shell bool) routes.Table {
	return routes.NewTable(
		routes.Route{Path: EditPath, Name: "edit", New: page(shell, func(embedded bool) app.Composer {
			return &EditPage{Embedded: embedded}
		})},
		routes.Route{Path: PrintPath, Name: "print", New: page(shell, func(embedded bool) app.Composer {
			return &PrintPage{Embedded: embedded}
		})},
	)
}

func page(shell bool, newPage func(embedded bool) app.Composer) func() app.Composer {
	if !shell {
		return func() app.Composer { return newPage(false) }
	}
	return func() app.Composer { return &Shell{Page: newPage(true)} }
}

// ShellEnabled reports whether the server asked the client for the Shell
func ShellEnabled() bool {
	enabled, err := strconv.ParseBool(app.Getenv(ShellEnv))
	return err == nil && enabled
}

// Handler registers the routes and returns an HTTP handler for the web app.
// go-app keeps one router per process, so every handler prerenders the table
// from the most recent call; build one handler per process outside tests
func Handler(opts Options) (*app.Handler, error) {
	table := Routes(opts.Shell)
	if err := table.Register(app.Route); err != nil {
		return nil, err
	}
	app.RunWhenOnBrowser()

	name := opts.Name
	if name == "" {
		name = AppName
	}
	// app.wasm is served from /web/app.wasm, wasm_exec.js and app.js by the handler itself
	return &app.Handler{
		Name:        name,
		ShortName:   name,
		Title:       opts.Title,
		Description: opts.Description,
		Version:     opts.Version,
		Styles: []string{
			"/webapp/webapp.css",
		},
		RawHeaders: []string{
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
		},
		Env: map[string]string{
			ShellEnv: strconv.FormatBool(opts.Shell),
		},
	}, nil
}
