// Package guard implements the client-side navigation guard: a route table
// with per-route auth requirements and a fixed-priority decision machine that
// either allows a navigation or redirects it. Decisions consult only the
// durable session store, never the network.
package guard

import (
	"fmt"
	"strings"

	"github.com/musegate-dev/musegate/internal/session"
)

// AuthType names the login surface a route belongs to.
type AuthType string

const (
	AuthTypeUser  AuthType = "user"
	AuthTypeAdmin AuthType = "admin"
)

// Well-known paths referenced by the guard rules.
const (
	LoginUserPath  = "/login/user"
	LoginAdminPath = "/login/admin"
	RegisterPath   = "/register"
	HomePath       = "/home"
	AdminHomePath  = "/admin"
)

// Route declares one navigable path. Path segments starting with ':' match
// any single segment.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
	AuthType     AuthType
	Redirect     string // static redirect target, mutually exclusive with the rest
}

// Routes returns the application route table.
func Routes() []Route {
	return []Route{
		{Path: LoginUserPath, Name: "UserLogin"},
		{Path: LoginAdminPath, Name: "AdminLogin"},
		{Path: RegisterPath, Name: "Register"},

		{Path: HomePath, Name: "Home", RequiresAuth: true, AuthType: AuthTypeUser},
		{Path: "/items", Name: "ItemList", RequiresAuth: true, AuthType: AuthTypeUser},
		{Path: "/items/:id", Name: "ItemDetail", RequiresAuth: true, AuthType: AuthTypeUser},
		{Path: "/booking", Name: "Booking", RequiresAuth: true, AuthType: AuthTypeUser},
		{Path: "/profile", Name: "Profile", RequiresAuth: true, AuthType: AuthTypeUser},

		{Path: AdminHomePath, Name: "AdminHome", RequiresAuth: true, AuthType: AuthTypeAdmin},
		{Path: "/admin/items", Name: "AdminItems", RequiresAuth: true, AuthType: AuthTypeAdmin},
		{Path: "/admin/users", Name: "AdminUsers", RequiresAuth: true, AuthType: AuthTypeAdmin},
		{Path: "/admin/comments", Name: "AdminComments", RequiresAuth: true, AuthType: AuthTypeAdmin},
		{Path: "/admin/bookings", Name: "AdminBookings", RequiresAuth: true, AuthType: AuthTypeAdmin},

		{Path: "/", Name: "Root", Redirect: HomePath},
	}
}

// Action is the outcome kind of a guard decision.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
)

// Decision is the terminal outcome of one navigation attempt. Target is the
// path the navigation ended on: the requested path when allowed, the redirect
// destination otherwise.
type Decision struct {
	Action Action
	Target string
}

// Router tracks the current path and runs every navigation through the guard.
type Router struct {
	routes   []Route
	sessions session.Store
	current  string
}

func NewRouter(sessions session.Store) *Router {
	return &Router{
		routes:   Routes(),
		sessions: sessions,
		current:  "/",
	}
}

// Current returns the path of the last completed navigation.
func (r *Router) Current() string {
	return r.current
}

// Redirect moves the router without consulting the guard. Used by the HTTP
// client's auth-failure handling, which already decided where to go.
func (r *Router) Redirect(path string) {
	r.current = path
}

// Navigate attempts to move to path. Static redirects are resolved first,
// then the guard rules run; a guard redirect is itself re-evaluated so the
// router always settles on an allowed path, exactly as a browser-side router
// chains navigations.
func (r *Router) Navigate(path string) (Decision, error) {
	const maxHops = 8

	requested := path
	redirected := false

	for hop := 0; hop < maxHops; hop++ {
		route, ok := r.match(path)
		if !ok {
			return Decision{}, fmt.Errorf("unknown route %q", path)
		}

		if route.Redirect != "" {
			redirected = true
			path = route.Redirect
			continue
		}

		decision := r.decide(route, path)
		if decision.Action == ActionRedirect {
			redirected = true
			path = decision.Target
			continue
		}

		r.current = path
		if redirected {
			return Decision{Action: ActionRedirect, Target: path}, nil
		}
		return Decision{Action: ActionAllow, Target: path}, nil
	}

	return Decision{}, fmt.Errorf("navigation to %q did not settle", requested)
}

// Decide evaluates the guard rules for a single navigation attempt without
// moving the router.
func (r *Router) Decide(path string) (Decision, error) {
	route, ok := r.match(path)
	if !ok {
		return Decision{}, fmt.Errorf("unknown route %q", path)
	}
	if route.Redirect != "" {
		return Decision{Action: ActionRedirect, Target: route.Redirect}, nil
	}
	return r.decide(route, path), nil
}

// decide runs the fixed-priority rules. Order matters; the first matching
// rule is terminal for the attempt.
func (r *Router) decide(route Route, path string) Decision {
	token := r.sessions.Token()
	loginType := r.sessions.LoginType()

	if route.RequiresAuth {
		// Rule 1: protected route, no token
		if token == "" {
			return Decision{Action: ActionRedirect, Target: loginPathFor(route.AuthType)}
		}

		// Rule 2: protected route, token present, wrong surface
		if loginType != string(route.AuthType) {
			return Decision{Action: ActionRedirect, Target: loginPathFor(route.AuthType)}
		}
	}

	// Rule 3: already authed, heading for the general login or registration
	if token != "" && (path == LoginUserPath || path == RegisterPath) {
		return Decision{Action: ActionRedirect, Target: HomePath}
	}

	// Rule 4: authed admin heading for the admin login
	if token != "" && path == LoginAdminPath && loginType == session.LoginTypeAdmin {
		return Decision{Action: ActionRedirect, Target: AdminHomePath}
	}

	// Rule 5: allow
	return Decision{Action: ActionAllow, Target: path}
}

func loginPathFor(authType AuthType) string {
	if authType == AuthTypeAdmin {
		return LoginAdminPath
	}
	return LoginUserPath
}

// match finds the route whose pattern matches path. ':' segments match any
// non-empty segment.
func (r *Router) match(path string) (Route, bool) {
	for _, route := range r.routes {
		if matchPattern(route.Path, path) {
			return route, true
		}
	}
	return Route{}, false
}

func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternSegs) != len(pathSegs) {
		return false
	}

	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

// LoginPathForNamespace returns the login route matching a path's namespace:
// admin paths expire to the admin login, everything else to the general one.
func LoginPathForNamespace(path string) string {
	if strings.HasPrefix(path, AdminHomePath) {
		return LoginAdminPath
	}
	return LoginUserPath
}
