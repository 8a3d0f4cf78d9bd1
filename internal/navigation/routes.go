// Package navigation holds the client route table, the access guards applied to it
// and a history of visited locations.
package navigation

import (
	"net/url"
	"strings"
)

// Access controls who may visit a route.
type Access int

const (
	// Public routes render for everyone.
	Public Access = iota
	// PublicOnly routes send an authenticated visitor to [DashboardPath].
	PublicOnly
	// Protected routes send an unauthenticated visitor to [LoginPath].
	Protected
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case PublicOnly:
		return "public-only"
	case Protected:
		return "protected"
	default:
		return ""
	}
}

// RouteName identifies a screen.
type RouteName string

const (
	RouteLanding    RouteName = "landing"
	RouteLogin      RouteName = "login"
	RouteSignup     RouteName = "signup"
	RouteDashboard  RouteName = "dashboard"
	RouteNoteDetail RouteName = "note"
	RouteNotFound   RouteName = "not-found"
)

const (
	RootPath      = "/"
	LoginPath     = "/login"
	SignupPath    = "/signup"
	DashboardPath = "/dashboard"
)

// Route is one entry of the route table. Pattern segments starting with ':' capture a parameter.
type Route struct {
	Name    RouteName
	Pattern string
	Access  Access
}

// Routes is the client route table in match order.
var Routes = []Route{
	{Name: RouteLanding, Pattern: RootPath, Access: Public},
	{Name: RouteLogin, Pattern: LoginPath, Access: PublicOnly},
	{Name: RouteSignup, Pattern: SignupPath, Access: PublicOnly},
	{Name: RouteDashboard, Pattern: DashboardPath, Access: Protected},
	{Name: RouteNoteDetail, Pattern: "/notes/:id", Access: Protected},
}

// NotFound matches any path not in [Routes].
var NotFound = Route{Name: RouteNotFound, Pattern: "*", Access: Public}

// NotePath returns the detail route for a note id.
func NotePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// Clean strips the query, fragment and trailing slash from path.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// Match finds the route for path and its captured parameters.
func Match(path string) (Route, map[string]string) {
	segs := split(Clean(path))

	for _, r := range Routes {
		if params, ok := matchPattern(split(r.Pattern), segs); ok {
			return r, params
		}
	}
	return NotFound, nil
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func matchPattern(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}

	var params map[string]string
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			v, err := url.PathUnescape(segs[i])
			if err != nil || v == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = v
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// Decision is the outcome of resolving a path against the guards.
type Decision struct {
	Route  Route
	Params map[string]string
	// Redirect is set when the guard sends the visitor elsewhere. The move replaces the
	// current history entry.
	Redirect string
}

// Resolve applies the access guards for path.
func Resolve(path string, authenticated bool) Decision {
	route, params := Match(path)

	switch {
	case route.Access == Protected && !authenticated:
		return Decision{Route: route, Params: params, Redirect: LoginPath}
	case route.Access == PublicOnly && authenticated:
		return Decision{Route: route, Params: params, Redirect: DashboardPath}
	}
	return Decision{Route: route, Params: params}
}
