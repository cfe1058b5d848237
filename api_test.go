package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	config "github.com/drummonds/printdesk/config"
	engine "github.com/drummonds/printdesk/engine"
)

// setupTestServer creates a test server with all routes configured
func setupTestServer(t *testing.T, shell bool) *httptest.Server {
	t.Helper()
	serverConfig, logger, err := config.SetupServer("")
	require.NoError(t, err)
	injectGlobals(logger)
	serverConfig.Shell = shell

	serverHandler, err := engine.NewServerHandler(serverConfig)
	require.NoError(t, err)

	ts := httptest.NewServer(serverHandler.Echo)
	t.Cleanup(ts.Close)
	return ts
}

func getDocument(t *testing.T, url string) *goquery.Document {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestRouteTableResolvesPages(t *testing.T) {
	ts := setupTestServer(t, false)

	t.Run("root serves the edit page", func(t *testing.T) {
		doc := getDocument(t, ts.URL+"/")
		require.Equal(t, 1, doc.Find("#app.edit-page").Length())
	})

	t.Run("print path serves the print page", func(t *testing.T) {
		doc := getDocument(t, ts.URL+"/print")
		require.Equal(t, 1, doc.Find("#app.print-page").Length())
	})
}

func TestShellVariantMountsPagesInsideShell(t *testing.T) {
	ts := setupTestServer(t, true)

	doc := getDocument(t, ts.URL+"/")
	require.Equal(t, 1, doc.Find("#app").Length())
	require.Equal(t, 1, doc.Find("#app .edit-page").Length())
	require.Equal(t, 2, doc.Find("#app .navbar-item").Length())
}

func TestRoutesAPI(t *testing.T) {
	ts := setupTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/routes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	require.Equal(t, "/", got[0]["path"])
	require.Equal(t, "/print", got[1]["path"])
}

func TestRoutesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"PATH", "NAME", "COMPONENT"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"/", "edit", "*webapp.EditPage"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"/print", "print", "*webapp.PrintPage"}, strings.Fields(lines[2]))
}

func TestRoutesCommandShellFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes", "--shell"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"/", "edit", "*webapp.Shell"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"/print", "print", "*webapp.Shell"}, strings.Fields(lines[2]))
}

func TestRoutesCommandBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[serverConfig"), 0o644))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"routes", "--config", path})
	require.Error(t, cmd.Execute())
}
