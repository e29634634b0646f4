// Package routes describes HTTP endpoints as prefixed groups and registers
// them on a standard library ServeMux.
package routes

import "net/http"

// Group is a set of routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Route is a single method and pattern bound to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Register mounts every group on mux beneath basePath.
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	for _, g := range groups {
		registerGroup(mux, basePath, g)
	}
}

// Patterns lists the "METHOD path" patterns a set of groups would register.
func Patterns(basePath string, groups ...Group) []string {
	var out []string
	var walk func(prefix string, g Group)
	walk = func(prefix string, g Group) {
		full := prefix + g.Prefix
		for _, r := range g.Routes {
			out = append(out, r.Method+" "+full+r.Pattern)
		}
		for _, child := range g.Children {
			walk(full, child)
		}
	}
	for _, g := range groups {
		walk(basePath, g)
	}
	return out
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}
