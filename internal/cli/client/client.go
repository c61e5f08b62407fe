package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/courtly-dev/courtly/internal/models"
	"github.com/courtly-dev/courtly/internal/session"
)

// Client talks to the Courtly API. Requests carry the stored bearer
// token automatically; a 401/403 response ends the local session.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
}

// New creates an API client bound to a session store.
func New(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &AuthTransport{Store: store},
		},
	}
}

// SetHTTPClient sets a custom HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// LoginResponse is the session record the server hands back.
type LoginResponse struct {
	Token        string `json:"token"`
	IDUsuario    uint   `json:"idUsuario"`
	Nombre       string `json:"nombre"`
	Rol          string `json:"rol"`
	IDCliente    *uint  `json:"idCliente,omitempty"`
	IDEntrenador *uint  `json:"idEntrenador,omitempty"`
}

// Login authenticates and persists the session record. The stored record
// is replaced wholesale; any previous session is gone.
func (c *Client) Login(identifier, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	err = c.store.Write(session.Session{
		Token:       resp.Token,
		UserID:      resp.IDUsuario,
		DisplayName: resp.Nombre,
		Role:        resp.Rol,
		TrainerID:   resp.IDEntrenador,
		ClientID:    resp.IDCliente,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &resp, nil
}

// Logout drops the local session. There is no server call: the token
// simply stops being presented.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// RegistroRequest is the self-registration body.
type RegistroRequest struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido,omitempty"`
	Usuario   string `json:"usuario,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rol       string `json:"rol"`
	Telefono  string `json:"telefono,omitempty"`
	Documento string `json:"documento,omitempty"`
}

// Registro creates a new account.
func (c *Client) Registro(req RegistroRequest) error {
	return c.doJSON(http.MethodPost, "/auth/registro", req, nil, http.StatusCreated)
}

// UsuarioDisponible reports whether an admin handle is free.
func (c *Client) UsuarioDisponible(handle string) (bool, error) {
	var available bool
	err := c.doJSON(http.MethodGet, "/auth/usuario/"+url.PathEscape(handle)+"/disponible", nil, &available, http.StatusOK)
	return available, err
}

// EmailDisponible reports whether an email is free.
func (c *Client) EmailDisponible(email string) (bool, error) {
	var available bool
	err := c.doJSON(http.MethodGet, "/auth/email/"+url.PathEscape(email)+"/disponible", nil, &available, http.StatusOK)
	return available, err
}

// Me returns the account behind the current session.
func (c *Client) Me() (*models.Usuario, error) {
	var usuario models.Usuario
	if err := c.doJSON(http.MethodGet, "/auth/me", nil, &usuario, http.StatusOK); err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (c *Client) ListAdministradores() ([]models.Administrador, error) {
	var out []models.Administrador
	err := c.doJSON(http.MethodGet, "/administradores", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListClientes() ([]models.Cliente, error) {
	var out []models.Cliente
	err := c.doJSON(http.MethodGet, "/clientes", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListEntrenadores() ([]models.Entrenador, error) {
	var out []models.Entrenador
	err := c.doJSON(http.MethodGet, "/entrenadores", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListCanchas() ([]models.Cancha, error) {
	var out []models.Cancha
	err := c.doJSON(http.MethodGet, "/canchas", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListTarifasVigentes() ([]models.Tarifa, error) {
	var out []models.Tarifa
	err := c.doJSON(http.MethodGet, "/tarifas/vigentes", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListReservas() ([]models.Reserva, error) {
	var out []models.Reserva
	err := c.doJSON(http.MethodGet, "/reservas", nil, &out, http.StatusOK)
	return out, err
}

// CrearReservaRequest books a court.
type CrearReservaRequest struct {
	ClienteID         uint      `json:"clienteId"`
	CanchaID          uint      `json:"canchaId"`
	TarifaID          *uint     `json:"tarifaId,omitempty"`
	Inicio            time.Time `json:"inicio"`
	Fin               time.Time `json:"fin"`
	IncluirEntrenador bool      `json:"incluirEntrenador"`
	TotalPagar        float64   `json:"totalPagar"`
}

func (c *Client) CrearReserva(req CrearReservaRequest) (*models.Reserva, error) {
	var reserva models.Reserva
	if err := c.doJSON(http.MethodPost, "/reservas", req, &reserva, http.StatusCreated); err != nil {
		return nil, err
	}
	return &reserva, nil
}

func (c *Client) ListPagos() ([]models.Pago, error) {
	var out []models.Pago
	err := c.doJSON(http.MethodGet, "/pagos", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListDisponibilidadesByEntrenador(entrenadorID uint) ([]models.Disponibilidad, error) {
	var out []models.Disponibilidad
	err := c.doJSON(http.MethodGet, fmt.Sprintf("/disponibilidad/entrenador/%d", entrenadorID), nil, &out, http.StatusOK)
	return out, err
}

// CrearDisponibilidadRequest publishes a weekly availability slot.
type CrearDisponibilidadRequest struct {
	EntrenadorID uint   `json:"idEntrenador"`
	DiaSemana    string `json:"diaDesSemana"`
	HoraInicio   string `json:"horaInicio"`
	HoraFin      string `json:"horaFin"`
}

func (c *Client) CrearDisponibilidad(req CrearDisponibilidadRequest) (*models.Disponibilidad, error) {
	var slot models.Disponibilidad
	if err := c.doJSON(http.MethodPost, "/disponibilidad", req, &slot, http.StatusCreated); err != nil {
		return nil, err
	}
	return &slot, nil
}

// CrearSolicitudRequest files a training request; leaving the trainer id
// empty drops it into the open pool.
type CrearSolicitudRequest struct {
	ClienteID    uint      `json:"idCliente"`
	EntrenadorID *uint     `json:"idEntrenador,omitempty"`
	Inicio       time.Time `json:"inicio"`
	Fin          time.Time `json:"fin"`
}

func (c *Client) CrearSolicitud(req CrearSolicitudRequest) (*models.Solicitud, error) {
	var solicitud models.Solicitud
	if err := c.doJSON(http.MethodPost, "/solicitudes", req, &solicitud, http.StatusCreated); err != nil {
		return nil, err
	}
	return &solicitud, nil
}

func (c *Client) ListSolicitudesByCliente(clienteID uint) ([]models.Solicitud, error) {
	var out []models.Solicitud
	err := c.doJSON(http.MethodGet, fmt.Sprintf("/solicitudes/cliente/%d", clienteID), nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListSolicitudesDisponibles() ([]models.Solicitud, error) {
	var out []models.Solicitud
	err := c.doJSON(http.MethodGet, "/solicitudes/disponibles", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) ListSolicitudesByEntrenador(entrenadorID uint) ([]models.Solicitud, error) {
	var out []models.Solicitud
	err := c.doJSON(http.MethodGet, fmt.Sprintf("/solicitudes/entrenador/%d", entrenadorID), nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) AceptarSolicitud(solicitudID, entrenadorID uint) (*models.Solicitud, error) {
	var solicitud models.Solicitud
	path := fmt.Sprintf("/solicitudes/%d/aceptar/%d", solicitudID, entrenadorID)
	if err := c.doJSON(http.MethodPost, path, nil, &solicitud, http.StatusOK); err != nil {
		return nil, err
	}
	return &solicitud, nil
}

func (c *Client) RechazarSolicitud(solicitudID uint) (*models.Solicitud, error) {
	var solicitud models.Solicitud
	path := fmt.Sprintf("/solicitudes/%d/rechazar", solicitudID)
	if err := c.doJSON(http.MethodPost, path, nil, &solicitud, http.StatusOK); err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// doJSON sends a request and decodes the response into out (when out is
// non-nil). Any status other than want is an error carrying the body.
func (c *Client) doJSON(method, path string, body, out interface{}, want int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
