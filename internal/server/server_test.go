package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtly-dev/courtly/internal/config"
	"github.com/courtly-dev/courtly/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Addr:       "127.0.0.1:0",
			CORSOrigin: "http://localhost:4200",
		},
		Database: config.DatabaseConfig{
			URL: filepath.Join(t.TempDir(), "test.sqlite"),
		},
		Redis: config.RedisConfig{
			// Enqueue attempts fail and are logged; handlers still respond.
			Address: "127.0.0.1:1",
		},
	}

	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates an account through the public endpoints and
// returns the login response.
func registerAndLogin(t *testing.T, srv *Server, rol, email, usuario string) LoginResponse {
	t.Helper()

	reg := map[string]interface{}{
		"nombre":   "Test",
		"apellido": "User",
		"email":    email,
		"password": "secret123",
		"rol":      rol,
	}
	if usuario != "" {
		reg["usuario"] = usuario
	}
	rec := doJSON(t, srv, http.MethodPost, "/auth/registro", "", reg)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	identifier := email
	if usuario != "" {
		identifier = usuario
	}
	rec = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": identifier,
		"password":   "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestRegistroAndLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")
	assert.Equal(t, "CLIENTE", resp.Rol)
	assert.NotNil(t, resp.IDCliente)
	assert.Nil(t, resp.IDEntrenador)

	// Wrong password is rejected without detail.
	rec := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "cliente@example.com",
		"password":   "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Registering the same email again conflicts.
	rec = doJSON(t, srv, http.MethodPost, "/auth/registro", "", map[string]interface{}{
		"nombre":   "Dup",
		"email":    "cliente@example.com",
		"password": "secret123",
		"rol":      "CLIENTE",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWithAdminHandle(t *testing.T) {
	srv := newTestServer(t)

	resp := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")
	assert.Equal(t, "ADMIN", resp.Rol)
	assert.Nil(t, resp.IDCliente)
}

func TestEntrenadorLoginCarriesTrainerID(t *testing.T) {
	srv := newTestServer(t)

	resp := registerAndLogin(t, srv, "ENTRENADOR", "coach@example.com", "")
	assert.Equal(t, "ENTRENADOR", resp.Rol)
	require.NotNil(t, resp.IDEntrenador)
}

func TestAvailabilityChecks(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")

	rec := doJSON(t, srv, http.MethodGet, "/auth/usuario/root/disponible", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "false", rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/auth/usuario/libre/disponible", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/auth/email/admin@example.com/disponible", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "false", rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/reservas", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleEnforcement(t *testing.T) {
	srv := newTestServer(t)

	admin := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")
	cliente := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")

	// The staff directory is admin-only.
	rec := doJSON(t, srv, http.MethodGet, "/administradores", cliente.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/administradores", admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Trainer endpoints reject clients.
	rec = doJSON(t, srv, http.MethodGet, "/solicitudes/disponibles", cliente.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestClienteOwnership(t *testing.T) {
	srv := newTestServer(t)

	admin := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")
	a := registerAndLogin(t, srv, "CLIENTE", "a@example.com", "")
	b := registerAndLogin(t, srv, "CLIENTE", "b@example.com", "")

	ownPath := fmt.Sprintf("/clientes/%d", *a.IDCliente)
	otherPath := fmt.Sprintf("/clientes/%d", *b.IDCliente)

	rec := doJSON(t, srv, http.MethodGet, ownPath, a.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, otherPath, a.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admins read any client record.
	rec = doJSON(t, srv, http.MethodGet, otherPath, admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCanchaCRUDAndLimit(t *testing.T) {
	srv := newTestServer(t)
	admin := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")

	for i := 0; i < models.MaxCanchas; i++ {
		rec := doJSON(t, srv, http.MethodPost, "/canchas", admin.Token, map[string]string{
			"nombre": fmt.Sprintf("Cancha %d", i+1),
			"tipo":   models.TipoCanchaFutbol6,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// The fifth court is rejected: the center has four.
	rec := doJSON(t, srv, http.MethodPost, "/canchas", admin.Token, map[string]string{
		"nombre": "Cancha 5",
		"tipo":   models.TipoCanchaPadel,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/canchas", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var canchas []models.Cancha
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &canchas))
	assert.Len(t, canchas, models.MaxCanchas)
	assert.Equal(t, models.EstadoCanchaDisponible, canchas[0].Estado)

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/canchas/%d", canchas[0].ID), admin.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTarifasVigentes(t *testing.T) {
	srv := newTestServer(t)
	admin := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")

	vigente := true
	retirada := false
	rec := doJSON(t, srv, http.MethodPost, "/tarifas", admin.Token, map[string]interface{}{
		"tipoServicio": "CANCHA_FUTBOL_6",
		"precioHora":   25.0,
		"vigente":      vigente,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/tarifas", admin.Token, map[string]interface{}{
		"tipoServicio": "CANCHA_PADEL",
		"precioHora":   18.0,
		"vigente":      retirada,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/tarifas/vigentes", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tarifas []models.Tarifa
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tarifas))
	require.Len(t, tarifas, 1)
	assert.Equal(t, "CANCHA_FUTBOL_6", tarifas[0].TipoServicio)
}

func TestReservaFlow(t *testing.T) {
	srv := newTestServer(t)
	admin := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")
	cliente := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")
	other := registerAndLogin(t, srv, "CLIENTE", "other@example.com", "")

	rec := doJSON(t, srv, http.MethodPost, "/canchas", admin.Token, map[string]string{
		"nombre": "Cancha 1",
		"tipo":   models.TipoCanchaFutbol6,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cancha models.Cancha
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancha))

	body := map[string]interface{}{
		"clienteId":  *cliente.IDCliente,
		"canchaId":   cancha.ID,
		"inicio":     "2026-09-01T10:00:00Z",
		"fin":        "2026-09-01T11:00:00Z",
		"totalPagar": 25.0,
	}
	rec = doJSON(t, srv, http.MethodPost, "/reservas", cliente.Token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reserva models.Reserva
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reserva))
	assert.NotEmpty(t, reserva.Codigo)
	assert.Equal(t, models.EstadoReservaPendiente, reserva.Estado)

	// A client cannot book on someone else's behalf.
	body["clienteId"] = *cliente.IDCliente
	rec = doJSON(t, srv, http.MethodPost, "/reservas", other.Token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Inverted interval is rejected.
	rec = doJSON(t, srv, http.MethodPost, "/reservas", cliente.Token, map[string]interface{}{
		"clienteId": *cliente.IDCliente,
		"canchaId":  cancha.ID,
		"inicio":    "2026-09-01T11:00:00Z",
		"fin":       "2026-09-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The per-client listing only shows the owner's bookings.
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/reservas/cliente/%d", *cliente.IDCliente), cliente.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reservas []models.Reserva
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reservas))
	assert.Len(t, reservas, 1)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/reservas/cliente/%d", *cliente.IDCliente), other.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPagoRequiresReserva(t *testing.T) {
	srv := newTestServer(t)
	admin := registerAndLogin(t, srv, "ADMIN", "admin@example.com", "root")
	cliente := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")

	rec := doJSON(t, srv, http.MethodPost, "/pagos", cliente.Token, map[string]interface{}{
		"idReserva":  999,
		"idCliente":  *cliente.IDCliente,
		"monto":      25.0,
		"metodo":     "EFECTIVO",
		"estadoPago": "PAGADO",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/canchas", admin.Token, map[string]string{
		"nombre": "Cancha 1",
		"tipo":   models.TipoCanchaFutbol6,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cancha models.Cancha
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancha))

	rec = doJSON(t, srv, http.MethodPost, "/reservas", cliente.Token, map[string]interface{}{
		"clienteId": *cliente.IDCliente,
		"canchaId":  cancha.ID,
		"inicio":    "2026-09-01T10:00:00Z",
		"fin":       "2026-09-01T11:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var reserva models.Reserva
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reserva))

	rec = doJSON(t, srv, http.MethodPost, "/pagos", cliente.Token, map[string]interface{}{
		"idReserva":  reserva.ID,
		"idCliente":  *cliente.IDCliente,
		"monto":      25.0,
		"metodo":     "EFECTIVO",
		"estadoPago": "PAGADO",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var pago models.Pago
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pago))
	assert.NotEmpty(t, pago.Recibo)
}

func TestSolicitudAcceptFlow(t *testing.T) {
	srv := newTestServer(t)
	cliente := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")
	coach := registerAndLogin(t, srv, "ENTRENADOR", "coach@example.com", "")
	require.NotNil(t, coach.IDEntrenador)

	rec := doJSON(t, srv, http.MethodPost, "/solicitudes", cliente.Token, map[string]interface{}{
		"idCliente": *cliente.IDCliente,
		"inicio":    "2026-09-02T09:00:00Z",
		"fin":       "2026-09-02T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var solicitud models.Solicitud
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &solicitud))
	assert.Equal(t, models.EstadoSolicitudPendiente, solicitud.Estado)
	assert.Nil(t, solicitud.EntrenadorID)

	// The unclaimed request shows up in the trainer's pool.
	rec = doJSON(t, srv, http.MethodGet, "/solicitudes/disponibles", coach.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pool []models.Solicitud
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pool))
	require.Len(t, pool, 1)

	acceptPath := fmt.Sprintf("/solicitudes/%d/aceptar/%d", solicitud.ID, *coach.IDEntrenador)
	rec = doJSON(t, srv, http.MethodPost, acceptPath, coach.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var accepted models.Solicitud
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.Equal(t, models.EstadoSolicitudAceptada, accepted.Estado)
	require.NotNil(t, accepted.EntrenadorID)
	assert.Equal(t, *coach.IDEntrenador, *accepted.EntrenadorID)

	// Accepting twice conflicts.
	rec = doJSON(t, srv, http.MethodPost, acceptPath, coach.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A trainer cannot claim on behalf of another trainer id.
	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/solicitudes/%d/aceptar/%d", solicitud.ID, *coach.IDEntrenador+1), coach.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRechazarSolicitud(t *testing.T) {
	srv := newTestServer(t)
	cliente := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")
	coach := registerAndLogin(t, srv, "ENTRENADOR", "coach@example.com", "")

	rec := doJSON(t, srv, http.MethodPost, "/solicitudes", cliente.Token, map[string]interface{}{
		"idCliente": *cliente.IDCliente,
		"inicio":    "2026-09-02T09:00:00Z",
		"fin":       "2026-09-02T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var solicitud models.Solicitud
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &solicitud))

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/solicitudes/%d/rechazar", solicitud.ID), coach.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rejected models.Solicitud
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rejected))
	assert.Equal(t, models.EstadoSolicitudRechazada, rejected.Estado)
}

func TestDisponibilidadOwnership(t *testing.T) {
	srv := newTestServer(t)
	coach := registerAndLogin(t, srv, "ENTRENADOR", "coach@example.com", "")
	require.NotNil(t, coach.IDEntrenador)

	rec := doJSON(t, srv, http.MethodPost, "/disponibilidad", coach.Token, map[string]interface{}{
		"idEntrenador": *coach.IDEntrenador,
		"diaDesSemana": "LUNES",
		"horaInicio":   "09:00",
		"horaFin":      "12:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Publishing under someone else's trainer id is forbidden.
	rec = doJSON(t, srv, http.MethodPost, "/disponibilidad", coach.Token, map[string]interface{}{
		"idEntrenador": *coach.IDEntrenador + 1,
		"diaDesSemana": "MARTES",
		"horaInicio":   "09:00",
		"horaFin":      "12:00",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/disponibilidad/entrenador/%d", *coach.IDEntrenador), coach.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots []models.Disponibilidad
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Len(t, slots, 1)
}

func TestRecuperarPasswordIsOpaque(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")

	known := doJSON(t, srv, http.MethodPost, "/auth/recuperar-password", "", map[string]string{
		"email": "cliente@example.com",
	})
	unknown := doJSON(t, srv, http.MethodPost, "/auth/recuperar-password", "", map[string]string{
		"email": "nobody@example.com",
	})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())

	// The token row only exists for the real account.
	var count int64
	require.NoError(t, srv.GetDB().Model(&models.PasswordReset{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCambiarPassword(t *testing.T) {
	srv := newTestServer(t)
	cliente := registerAndLogin(t, srv, "CLIENTE", "cliente@example.com", "")

	rec := doJSON(t, srv, http.MethodPut, "/auth/cambiar-password", cliente.Token, map[string]string{
		"oldPassword": "wrong",
		"newPassword": "newsecret",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodPut, "/auth/cambiar-password", cliente.Token, map[string]string{
		"oldPassword": "secret123",
		"newPassword": "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "cliente@example.com",
		"password":   "newsecret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")
}
