// Package navigation resolves URL paths to page views.
// A Table is an immutable, ordered set of exact-match routes built once at
// startup. A Manager layers history traversal on top of a Table the way a
// browser history router does, without reloading the page.
package navigation

// Route associates an exact URL path with a view identifier.
type Route struct {
	Path string `json:"path"`
	View string `json:"view"`
}

// Table is an ordered, immutable route table.
type Table struct {
	routes []Route
	index  map[string]int
}

// NewTable builds a Table from an ordered list of routes.
// When a path appears more than once, the last view registered for it wins
// and the entry keeps the position of its first occurrence.
func NewTable(routes []Route) *Table {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		index:  make(map[string]int, len(routes)),
	}

	for _, r := range routes {
		if i, ok := t.index[r.Path]; ok {
			t.routes[i].View = r.View
			continue
		}
		t.index[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}

	return t
}

// Resolve returns the route registered for path.
// Matching is exact: no parameters, wildcards, or slash folding.
func (t *Table) Resolve(path string) (Route, bool) {
	i, ok := t.index[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of distinct paths.
func (t *Table) Len() int {
	return len(t.routes)
}
