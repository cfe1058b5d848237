package webapp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/stretchr/testify/require"
)

func TestRoutesResolvePages(t *testing.T) {
	table := Routes(false)
	require.NoError(t, table.Validate())
	require.Equal(t, []string{"/", "/print"}, table.Paths())

	edit, ok := table.Lookup("/")
	require.True(t, ok)
	require.IsType(t, &EditPage{}, edit.New())

	printRoute, ok := table.Lookup("/print")
	require.True(t, ok)
	require.IsType(t, &PrintPage{}, printRoute.New())
}

func TestRoutesWithShellWrapPages(t *testing.T) {
	table := Routes(true)
	require.NoError(t, table.Validate())

	for _, path := range []string{EditPath, PrintPath} {
		route, ok := table.Lookup(path)
		require.True(t, ok, path)
		shell, ok := route.New().(*Shell)
		require.True(t, ok, "%s should be wrapped in the shell", path)
		require.NotNil(t, shell.Page)
	}

	route, _ := table.Lookup(PrintPath)
	shell := route.New().(*Shell)
	require.Equal(t, &PrintPage{Embedded: true}, shell.Page)
}

func TestRoutesBuildFreshComponents(t *testing.T) {
	route, _ := Routes(false).Lookup(EditPath)
	require.NotSame(t, route.New(), route.New())
}

func serve(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return rec, doc
}

func TestHandlerPrerendersPages(t *testing.T) {
	h, err := Handler(Options{Title: "printdesk test", Description: "test"})
	require.NoError(t, err)

	rec, doc := serve(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, doc.Find("#"+MountID).Length(), "mount point should be rendered once")
	require.Equal(t, 1, doc.Find(".edit-page").Length())
	require.Zero(t, doc.Find(".print-page").Length())

	rec, doc = serve(t, h, "/print")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, doc.Find(".print-page").Length())
	require.Zero(t, doc.Find(".shell").Length())
}

func TestHandlerPrerendersShell(t *testing.T) {
	h, err := Handler(Options{Shell: true})
	require.NoError(t, err)
	require.Equal(t, AppName, h.Name)
	require.Equal(t, "true", h.Env[ShellEnv])

	rec, doc := serve(t, h, "/print")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, doc.Find("#"+MountID).Length(), "only the shell owns the mount point")
	require.Equal(t, 1, doc.Find(".shell .navbar").Length())
	require.Equal(t, 1, doc.Find(".shell .print-page").Length())
}

func TestShellDefaultsToEditPage(t *testing.T) {
	s := &Shell{}
	require.IsType(t, &EditPage{}, s.renderPage())
	require.Equal(t, app.UI(&EditPage{Embedded: true}), s.renderPage())
}

func TestHandlerRegistrationIsProcessWide(t *testing.T) {
	plain, err := Handler(Options{})
	require.NoError(t, err)
	_, err = Handler(Options{Shell: true})
	require.NoError(t, err)

	// the earlier handler now renders the table registered last
	_, doc := serve(t, plain, "/")
	require.Equal(t, 1, doc.Find(".shell .edit-page").Length())
	require.Equal(t, "false", plain.Env[ShellEnv])
}
