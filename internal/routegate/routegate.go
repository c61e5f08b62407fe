// Package routegate decides, for every navigation attempt, whether the
// current session may enter the requested area. It replaces the original
// per-area guard classes with a single table-driven gate: each protected
// area is configuration (required role, secondary-id requirement, fallback
// home map), not its own code path.
package routegate

import (
	"net/url"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/session"
)

// Area tags a navigation target with the protected area it belongs to.
type Area int

const (
	// AreaNone is the catch-all for paths outside every known area.
	AreaNone Area = iota
	AreaAdmin
	AreaCliente
	AreaEntrenador
	// AreaAuth is the public login/registration area.
	AreaAuth
)

func (a Area) String() string {
	switch a {
	case AreaAdmin:
		return "admin"
	case AreaCliente:
		return "cliente"
	case AreaEntrenador:
		return "entrenador"
	case AreaAuth:
		return "auth"
	}
	return "none"
}

// Action is the terminal outcome of a guard evaluation.
type Action int

const (
	// Allow lets the navigation proceed.
	Allow Action = iota
	// RedirectLogin sends the visitor to the login screen, carrying the
	// originally requested URL when one was captured.
	RedirectLogin
	// RedirectHome sends an authenticated visitor to the home route of
	// their current role. When the role is unrecognized the target
	// defaults to the login route.
	RedirectHome
)

// Decision is the result of evaluating one navigation attempt. Exactly one
// outcome is produced per attempt; a denied navigation is a silent
// redirect, never an error.
type Decision struct {
	Action Action
	// Target is the redirect destination path. Empty for Allow.
	Target string
	// ReturnURL is the originally requested path, set only when a
	// protected area bounced an anonymous visitor to login. The login
	// flow currently redirects purely by role and does not consume it,
	// but the contract still propagates it.
	ReturnURL string
}

// RedirectURL renders the full redirect target, including the returnUrl
// query parameter when one was captured.
func (d Decision) RedirectURL() string {
	if d.ReturnURL == "" {
		return d.Target
	}
	return d.Target + "?returnUrl=" + url.QueryEscape(d.ReturnURL)
}

// Route constants for the public area and each role's home screen.
const (
	LoginRoute    = "/auth/login"
	RegistroRoute = "/auth/registro"

	AdminHomeRoute      = "/admin/administradores"
	ClienteHomeRoute    = "/cliente/reservas"
	EntrenadorHomeRoute = "/entrenador/disponibilidades"
)

// areaConfig parameterizes the shared guard algorithm for one protected
// area.
type areaConfig struct {
	requiredRole auth.Role
	// requiresTrainerID additionally demands a present trainer id even
	// when the role matches; a session claiming ENTRENADOR without its
	// secondary id cannot use that area's screens.
	requiresTrainerID bool
	// fallbackHomes maps the *current* session's role to its home route
	// when the visitor holds the wrong role for this area. Each map
	// deliberately knows only the other two roles: reaching the fallback
	// branch while already holding this area's role is impossible by
	// construction, and the asymmetry mirrors the decision structure of
	// the original guards. Unmapped roles fall back to the login route.
	fallbackHomes map[auth.Role]string
}

var protectedAreas = map[Area]areaConfig{
	AreaAdmin: {
		requiredRole: auth.RoleAdmin,
		fallbackHomes: map[auth.Role]string{
			auth.RoleCliente:    ClienteHomeRoute,
			auth.RoleEntrenador: EntrenadorHomeRoute,
		},
	},
	AreaCliente: {
		requiredRole: auth.RoleCliente,
		fallbackHomes: map[auth.Role]string{
			auth.RoleAdmin:      AdminHomeRoute,
			auth.RoleEntrenador: EntrenadorHomeRoute,
		},
	},
	AreaEntrenador: {
		requiredRole:      auth.RoleEntrenador,
		requiresTrainerID: true,
		fallbackHomes: map[auth.Role]string{
			auth.RoleAdmin:   AdminHomeRoute,
			auth.RoleCliente: ClienteHomeRoute,
		},
	},
}

// loginAreaHomes is the full three-role map the public area uses to bounce
// already-authenticated visitors to their dashboard.
var loginAreaHomes = map[auth.Role]string{
	auth.RoleAdmin:      AdminHomeRoute,
	auth.RoleCliente:    ClienteHomeRoute,
	auth.RoleEntrenador: EntrenadorHomeRoute,
}

// ResolveArea tags a path with its protected area by prefix. Anything
// outside the known route surface is AreaNone and redirects to login.
func ResolveArea(path string) Area {
	switch {
	case path == "/admin" || hasAreaPrefix(path, "/admin/"):
		return AreaAdmin
	case path == "/cliente" || hasAreaPrefix(path, "/cliente/"):
		return AreaCliente
	case path == "/entrenador" || hasAreaPrefix(path, "/entrenador/"):
		return AreaEntrenador
	case path == "/auth" || hasAreaPrefix(path, "/auth/"):
		return AreaAuth
	}
	return AreaNone
}

func hasAreaPrefix(path, prefix string) bool {
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}

// Gate evaluates navigation attempts against the current session. All
// evaluation is synchronous: the decision is complete before the gated
// navigation proceeds.
type Gate struct {
	query *session.Query
}

// New builds a Gate over the given session query.
func New(query *session.Query) *Gate {
	return &Gate{query: query}
}

// Evaluate runs the guard for the area the path belongs to and returns
// exactly one of Allow, RedirectLogin or RedirectHome.
func (g *Gate) Evaluate(path string) Decision {
	area := ResolveArea(path)

	switch area {
	case AreaAuth:
		return g.evaluateAuthArea()
	case AreaNone:
		// The router's catch-all: unmatched paths go straight to login
		// without involving a guard, so no returnUrl is captured.
		return Decision{Action: RedirectLogin, Target: LoginRoute}
	default:
		return g.evaluateProtectedArea(protectedAreas[area], path)
	}
}

// evaluateProtectedArea is the one guard shared by all three protected
// areas, parameterized by the area's config.
func (g *Gate) evaluateProtectedArea(cfg areaConfig, requestedPath string) Decision {
	if !g.query.HasValidSession() {
		return Decision{
			Action:    RedirectLogin,
			Target:    LoginRoute,
			ReturnURL: requestedPath,
		}
	}

	if g.query.HasRole(cfg.requiredRole) {
		if !cfg.requiresTrainerID || g.query.TrainerID() != nil {
			return Decision{Action: Allow}
		}
		// Role matches but the secondary id is missing: fall through to
		// the fallback redirect rather than allowing.
	}

	return Decision{
		Action: RedirectHome,
		Target: homeFor(g.query.CurrentRole(), cfg.fallbackHomes),
	}
}

// evaluateAuthArea is the inverted guard for the public login/registration
// area: anonymous visitors pass, authenticated ones are bounced home.
func (g *Gate) evaluateAuthArea() Decision {
	if !g.query.HasValidSession() {
		return Decision{Action: Allow}
	}

	return Decision{
		Action: RedirectHome,
		Target: homeFor(g.query.CurrentRole(), loginAreaHomes),
	}
}

func homeFor(role auth.Role, homes map[auth.Role]string) string {
	if target, ok := homes[role]; ok {
		return target
	}
	return LoginRoute
}

// HomeRoute maps a role to the area root the login flow redirects to after
// a successful authentication. Unrecognized roles land back on login.
func HomeRoute(role auth.Role) string {
	switch auth.NormalizeRole(string(role)) {
	case auth.RoleAdmin:
		return "/admin"
	case auth.RoleCliente:
		return "/cliente"
	case auth.RoleEntrenador:
		return "/entrenador"
	}
	return LoginRoute
}
