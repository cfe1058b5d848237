//go:build js && wasm
// +build js,wasm

package main

import (
	"github.com/drummonds/printdesk/webapp"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func main() {
	// The server passes the shell flag through the app environment so both
	// sides register the same table
	table := webapp.Routes(webapp.ShellEnabled())
	if err := table.Register(app.Route); err != nil {
		app.Log(err)
		return
	}

	// This main function is for the WASM build only
	// It initializes the go-app when running in the browser
	app.RunWhenOnBrowser()
}
