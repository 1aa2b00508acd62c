// Package router resolves application paths against a route table and runs
// navigation guards before a route is entered.
package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// LoginPath is where the auth guard sends unauthenticated navigation.
const LoginPath = "/login"

// maxHops bounds redirect and guard chains.
const maxHops = 10

var (
	// ErrNotFound is returned when no route matches a path.
	ErrNotFound = errors.New("route not found")
	// ErrRedirectLoop is returned when redirects or guards do not settle.
	ErrRedirectLoop = errors.New("too many redirects")
)

// Route is a single entry of the route table. Path segments starting with ':'
// capture parameters.
type Route struct {
	Path         string
	Name         string
	Redirect     string
	RequiresAuth bool
}

// Match is a resolved navigation target.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
	// RedirectedFrom is the originally requested path when a redirect or guard
	// changed the destination.
	RedirectedFrom string
}

// Guard inspects a navigation target and returns a path to redirect to, or
// "" to let navigation proceed.
type Guard func(to Match) string

// TokenProvider returns the current bearer token, or "" when none is available.
type TokenProvider interface {
	Token() string
}

// AuthGuard redirects routes that require authentication to the login page
// when tokens yields no token.
func AuthGuard(tokens TokenProvider) Guard {
	return func(to Match) string {
		if !to.Route.RequiresAuth {
			return ""
		}
		if tokens == nil || tokens.Token() == "" {
			return LoginPath
		}
		return ""
	}
}

type compiledRoute struct {
	route    Route
	segments []string
	literals int
}

// Router matches paths against a fixed route table.
type Router struct {
	routes []compiledRoute
	guards []Guard
}

// New compiles routes and installs guards, run in order on every navigation.
func New(routes []Route, guards ...Guard) (*Router, error) {
	if len(routes) == 0 {
		return nil, errors.New("router requires at least one route")
	}

	r := &Router{}
	seen := make(map[string]struct{}, len(routes))
	for i, route := range routes {
		path := cleanPath(route.Path)
		if !strings.HasPrefix(route.Path, "/") {
			return nil, fmt.Errorf("routes[%d]: path %q must start with /", i, route.Path)
		}
		if _, dup := seen[path]; dup {
			return nil, fmt.Errorf("duplicate route path %q", path)
		}
		seen[path] = struct{}{}

		route.Path = path
		segs := splitPath(path)
		literals := 0
		for _, s := range segs {
			if !strings.HasPrefix(s, ":") {
				literals++
			}
		}
		r.routes = append(r.routes, compiledRoute{route: route, segments: segs, literals: literals})
	}
	for _, g := range guards {
		if g != nil {
			r.guards = append(r.guards, g)
		}
	}
	return r, nil
}

// Resolve matches path, following route redirects. Guards are not run.
func (r *Router) Resolve(path string) (Match, error) {
	requested := cleanPath(path)
	current := requested
	for hop := 0; hop < maxHops; hop++ {
		m, err := r.match(current)
		if err != nil {
			return Match{}, err
		}
		if m.Route.Redirect == "" {
			if current != requested {
				m.RedirectedFrom = requested
			}
			return m, nil
		}
		current = cleanPath(m.Route.Redirect)
	}
	return Match{}, fmt.Errorf("resolve %s: %w", requested, ErrRedirectLoop)
}

// Navigate resolves path and runs the guards, following any redirect they
// request.
func (r *Router) Navigate(path string) (Match, error) {
	requested := cleanPath(path)
	current := requested
	for hop := 0; hop < maxHops; hop++ {
		m, err := r.Resolve(current)
		if err != nil {
			return Match{}, err
		}
		next := r.runGuards(m)
		if next == "" || cleanPath(next) == m.Path {
			if m.Path != requested {
				m.RedirectedFrom = requested
			} else {
				m.RedirectedFrom = ""
			}
			return m, nil
		}
		current = next
	}
	return Match{}, fmt.Errorf("navigate %s: %w", requested, ErrRedirectLoop)
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for _, c := range r.routes {
		out = append(out, c.route)
	}
	return out
}

func (r *Router) runGuards(m Match) string {
	for _, g := range r.guards {
		if next := g(m); next != "" {
			return next
		}
	}
	return ""
}

// match picks the route with the most literal segments among those matching
// path; earlier routes win ties.
func (r *Router) match(path string) (Match, error) {
	segs := splitPath(path)

	var best *compiledRoute
	var bestParams map[string]string
	for i := range r.routes {
		c := &r.routes[i]
		params, ok := c.matches(segs)
		if !ok {
			continue
		}
		if best == nil || c.literals > best.literals {
			best, bestParams = c, params
		}
	}
	if best == nil {
		return Match{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return Match{Route: best.route, Path: path, Params: bestParams}, nil
}

func (c *compiledRoute) matches(segs []string) (map[string]string, bool) {
	if len(segs) != len(c.segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, pattern := range c.segments {
		if name, ok := strings.CutPrefix(pattern, ":"); ok {
			val, err := url.PathUnescape(segs[i])
			if err != nil || val == "" {
				return nil, false
			}
			params[name] = val
			continue
		}
		if pattern != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// cleanPath drops query, fragment and trailing slashes.
func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	return path
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
