package routes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var (
	// ErrInvalidRoute is returned when a route entry cannot be registered
	ErrInvalidRoute = errors.New("invalid route")
	// ErrDuplicatePath is returned when two entries share a path
	ErrDuplicatePath = errors.New("duplicate route path")
)

// Route maps a URL path to the page component rendered for it
type Route struct {
	Path string
	Name string
	New  func() app.Composer
}

// Table is the ordered route table, built once at startup
type Table struct {
	entries []Route
}

// Registrar receives every validated route, app.Route in production
type Registrar func(path string, newComponent func() app.Composer)

// NewTable copies the given entries into a table
func NewTable(entries ...Route) Table {
	copied := make([]Route, len(entries))
	copy(copied, entries)
	return Table{entries: copied}
}

// Len returns the number of entries
func (t Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in declaration order
func (t Table) Entries() []Route {
	copied := make([]Route, len(t.entries))
	copy(copied, t.entries)
	return copied
}

// Paths returns the paths in declaration order
func (t Table) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for _, route := range t.entries {
		paths = append(paths, route.Path)
	}
	return paths
}

// Validate checks every entry and that no path is declared twice
func (t Table) Validate() error {
	seen := make(map[string]string, len(t.entries))
	for i, route := range t.entries {
		if err := validatePath(route.Path); err != nil {
			return fmt.Errorf("route %d (%s): %w", i, route.Name, err)
		}
		if route.New == nil {
			return fmt.Errorf("route %q: %w: no component factory", route.Path, ErrInvalidRoute)
		}
		if route.New() == nil {
			return fmt.Errorf("route %q: %w: component factory returned nil", route.Path, ErrInvalidRoute)
		}
		key := normalize(route.Path)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("route %q (%s) clashes with %q: %w", route.Path, route.Name, other, ErrDuplicatePath)
		}
		seen[key] = route.Path
	}
	return nil
}

// Lookup resolves a request path to its entry, ignoring a trailing slash
func (t Table) Lookup(path string) (Route, bool) {
	key := normalize(path)
	for _, route := range t.entries {
		if normalize(route.Path) == key {
			return route, true
		}
	}
	return Route{}, false
}

// Register validates the table then hands every entry to register. Entries
// other than the root are registered with and without a trailing slash, the
// same way Lookup matches them
func (t Table) Register(register Registrar) error {
	if err := t.Validate(); err != nil {
		return err
	}
	for _, route := range t.entries {
		for _, path := range aliases(route.Path) {
			register(path, route.New)
		}
	}
	return nil
}

func aliases(path string) []string {
	key := normalize(path)
	if key == "/" {
		return []string{key}
	}
	return []string{key, key + "/"}
}

func validatePath(path string) error {
	switch {
	case path == "":
		return fmt.Errorf("%w: empty path", ErrInvalidRoute)
	case !strings.HasPrefix(path, "/"):
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, path)
	case strings.ContainsAny(path, " \t\n?#"):
		return fmt.Errorf("%w: path %q contains whitespace, query or fragment", ErrInvalidRoute, path)
	case strings.Contains(path, "//"):
		return fmt.Errorf("%w: path %q has an empty segment", ErrInvalidRoute, path)
	}
	return nil
}

func normalize(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}
	return path
}
