package routegate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/session"
)

func uintPtr(v uint) *uint { return &v }

func gateWith(t *testing.T, s *session.Session) (*Gate, session.Store) {
	t.Helper()
	store := &session.MemStore{}
	if s != nil {
		require.NoError(t, store.Write(*s))
	}
	return New(session.NewQuery(store)), store
}

func TestResolveArea(t *testing.T) {
	tests := []struct {
		path string
		want Area
	}{
		{"/admin/administradores", AreaAdmin},
		{"/admin", AreaAdmin},
		{"/cliente/reservas", AreaCliente},
		{"/cliente/mis-pagos", AreaCliente},
		{"/entrenador/disponibilidades", AreaEntrenador},
		{"/auth/login", AreaAuth},
		{"/auth/registro", AreaAuth},
		{"/auth", AreaAuth},
		{"/", AreaNone},
		{"/administracion", AreaNone},
		{"/clientes", AreaNone},
		{"", AreaNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveArea(tt.path), "path %q", tt.path)
	}
}

func TestAnonymous_ProtectedAreasRedirectLogin(t *testing.T) {
	gate, _ := gateWith(t, nil)

	for _, path := range []string{
		"/admin/canchas",
		"/cliente/reservas",
		"/entrenador/solicitudes",
	} {
		d := gate.Evaluate(path)
		assert.Equal(t, RedirectLogin, d.Action, "path %q", path)
		assert.Equal(t, LoginRoute, d.Target)
		assert.Equal(t, path, d.ReturnURL, "returnUrl must carry the requested path")
	}
}

func TestAnonymous_AuthAreaAllows(t *testing.T) {
	gate, _ := gateWith(t, nil)

	assert.Equal(t, Allow, gate.Evaluate("/auth/login").Action)
	assert.Equal(t, Allow, gate.Evaluate("/auth/registro").Action)
}

func TestMatchingRoleAllows(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
		path string
	}{
		{"admin", session.Session{Token: "t", Role: "ADMIN"}, "/admin/tarifas"},
		{"cliente", session.Session{Token: "t", Role: "CLIENTE", ClientID: uintPtr(7)}, "/cliente/reservas"},
		{"entrenador", session.Session{Token: "t", Role: "ENTRENADOR", TrainerID: uintPtr(3)}, "/entrenador/disponibilidades"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, _ := gateWith(t, &tt.sess)
			assert.Equal(t, Allow, gate.Evaluate(tt.path).Action)
		})
	}
}

func TestWrongRoleRedirectsHome(t *testing.T) {
	tests := []struct {
		name       string
		sess       session.Session
		path       string
		wantTarget string
	}{
		{
			"cliente visiting admin",
			session.Session{Token: "t1", Role: "CLIENTE", ClientID: uintPtr(7)},
			"/admin/administradores",
			ClienteHomeRoute,
		},
		{
			"cliente visiting entrenador",
			session.Session{Token: "t1", Role: "CLIENTE", ClientID: uintPtr(7)},
			"/entrenador/solicitudes",
			ClienteHomeRoute,
		},
		{
			"admin visiting cliente",
			session.Session{Token: "t", Role: "ADMIN"},
			"/cliente/reservas",
			AdminHomeRoute,
		},
		{
			"entrenador visiting admin",
			session.Session{Token: "t", Role: "ENTRENADOR", TrainerID: uintPtr(3)},
			"/admin/canchas",
			EntrenadorHomeRoute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, _ := gateWith(t, &tt.sess)
			d := gate.Evaluate(tt.path)
			assert.Equal(t, RedirectHome, d.Action)
			assert.Equal(t, tt.wantTarget, d.Target)
			assert.Empty(t, d.ReturnURL)
		})
	}
}

func TestUnrecognizedRoleRedirectsToLogin(t *testing.T) {
	// MemStore sanitizes role-specific ids but keeps whatever role string
	// was stored, so an out-of-vocabulary role survives to the guard.
	gate, _ := gateWith(t, &session.Session{Token: "t", Role: "SUPERVISOR"})

	for _, path := range []string{"/admin/canchas", "/cliente/reservas", "/entrenador/solicitudes"} {
		d := gate.Evaluate(path)
		assert.Equal(t, LoginRoute, d.Target, "unknown role must land on login for %q", path)
	}
}

func TestEntrenadorWithoutTrainerIDNotAllowed(t *testing.T) {
	// Role matches ENTRENADOR but the secondary id is missing: the guard
	// must fall through to the fallback redirect, never Allow.
	gate, _ := gateWith(t, &session.Session{Token: "t2", Role: "ENTRENADOR"})

	d := gate.Evaluate("/entrenador/disponibilidades")
	assert.NotEqual(t, Allow, d.Action)
	assert.Equal(t, RedirectHome, d.Action)
	// The entrenador area's fallback map knows only ADMIN and CLIENTE, so
	// the current ENTRENADOR role defaults to the login route.
	assert.Equal(t, LoginRoute, d.Target)
}

func TestAuthAreaBouncesAuthenticatedVisitors(t *testing.T) {
	tests := []struct {
		role       string
		sess       session.Session
		wantTarget string
	}{
		{"ADMIN", session.Session{Token: "t", Role: "ADMIN"}, AdminHomeRoute},
		{"CLIENTE", session.Session{Token: "t", Role: "cliente", ClientID: uintPtr(7)}, ClienteHomeRoute},
		{"ENTRENADOR", session.Session{Token: "t", Role: "ENTRENADOR", TrainerID: uintPtr(3)}, EntrenadorHomeRoute},
		{"unknown", session.Session{Token: "t", Role: "SUPERVISOR"}, LoginRoute},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			gate, _ := gateWith(t, &tt.sess)
			d := gate.Evaluate("/auth/login")
			assert.NotEqual(t, Allow, d.Action, "authenticated visitors never see the login form")
			assert.Equal(t, RedirectHome, d.Action)
			assert.Equal(t, tt.wantTarget, d.Target)
		})
	}
}

func TestLowercaseRoleMatches(t *testing.T) {
	gate, _ := gateWith(t, &session.Session{Token: "t", Role: "admin"})
	assert.Equal(t, Allow, gate.Evaluate("/admin/reportes").Action)
}

func TestClearedSessionRedirectsImmediately(t *testing.T) {
	gate, store := gateWith(t, &session.Session{Token: "t1", Role: "CLIENTE", ClientID: uintPtr(7)})
	require.Equal(t, Allow, gate.Evaluate("/cliente/reservas").Action)

	// Logout, or a forced clear after a 401, must be visible to the very
	// next guard evaluation.
	require.NoError(t, store.Clear())

	d := gate.Evaluate("/cliente/reservas")
	assert.Equal(t, RedirectLogin, d.Action)
	assert.Equal(t, "/cliente/reservas", d.ReturnURL)
}

func TestCatchAllRedirectsLoginWithoutReturnURL(t *testing.T) {
	gate, _ := gateWith(t, nil)

	for _, path := range []string{"/", "/no-such-page", ""} {
		d := gate.Evaluate(path)
		assert.Equal(t, RedirectLogin, d.Action, "path %q", path)
		assert.Equal(t, LoginRoute, d.Target)
		assert.Empty(t, d.ReturnURL)
	}
}

func TestDecisionRedirectURL(t *testing.T) {
	d := Decision{Action: RedirectLogin, Target: LoginRoute, ReturnURL: "/cliente/reservas"}
	assert.Equal(t, "/auth/login?returnUrl=%2Fcliente%2Freservas", d.RedirectURL())

	d = Decision{Action: RedirectHome, Target: AdminHomeRoute}
	assert.Equal(t, AdminHomeRoute, d.RedirectURL())
}

func TestHomeRoute(t *testing.T) {
	assert.Equal(t, "/admin", HomeRoute(auth.RoleAdmin))
	assert.Equal(t, "/cliente", HomeRoute(auth.RoleCliente))
	assert.Equal(t, "/entrenador", HomeRoute(auth.RoleEntrenador))
	assert.Equal(t, LoginRoute, HomeRoute(auth.Role("SUPERVISOR")))
	assert.Equal(t, LoginRoute, HomeRoute(auth.Role("")))
}
