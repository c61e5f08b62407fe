package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtly-dev/courtly/internal/session"
)

func uintPtr(v uint) *uint { return &v }

func TestLoginPersistsSession(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		json.NewEncoder(w).Encode(LoginResponse{
			Token:     "test-token",
			IDUsuario: 7,
			Nombre:    "Ana",
			Rol:       "CLIENTE",
			IDCliente: uintPtr(3),
		})
	}))
	defer mock.Close()

	store := &session.MemStore{}
	c := New(mock.URL, store)

	resp, err := c.Login("ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "test-token", resp.Token)

	s, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "test-token", s.Token)
	assert.Equal(t, "CLIENTE", s.Role)
	require.NotNil(t, s.ClientID)
	assert.Equal(t, uint(3), *s.ClientID)
	assert.Nil(t, s.TrainerID)
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))
	defer mock.Close()

	store := &session.MemStore{}
	c := New(mock.URL, store)

	_, err := c.Login("ana@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	_, ok := store.Read()
	assert.False(t, ok)
}

func TestTransportAttachesBearerToken(t *testing.T) {
	var gotAuth string
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"idUsuario": 7})
	}))
	defer mock.Close()

	store := &session.MemStore{}
	require.NoError(t, store.Write(session.Session{Token: "stored-token", UserID: 7, Role: "CLIENTE"}))

	c := New(mock.URL, store)
	_, err := c.Me()
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored-token", gotAuth)
}

func TestTransportClearsSessionOnUnauthorized(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mock.Close()

	store := &session.MemStore{}
	require.NoError(t, store.Write(session.Session{Token: "stale-token", UserID: 7, Role: "CLIENTE"}))

	c := New(mock.URL, store)
	_, err := c.Me()

	// The call still fails; clearing the session is a side effect.
	require.Error(t, err)
	_, ok := store.Read()
	assert.False(t, ok)
}

func TestTransportClearsSessionOnForbidden(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer mock.Close()

	store := &session.MemStore{}
	require.NoError(t, store.Write(session.Session{Token: "stale-token", UserID: 7, Role: "CLIENTE"}))

	c := New(mock.URL, store)
	_, err := c.ListAdministradores()

	require.Error(t, err)
	_, ok := store.Read()
	assert.False(t, ok)
}

func TestAvailabilityEndpoints(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/usuario/root/disponible":
			json.NewEncoder(w).Encode(false)
		case "/auth/email/free@example.com/disponible":
			json.NewEncoder(w).Encode(true)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer mock.Close()

	c := New(mock.URL, &session.MemStore{})

	taken, err := c.UsuarioDisponible("root")
	require.NoError(t, err)
	assert.False(t, taken)

	free, err := c.EmailDisponible("free@example.com")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestLogoutClearsStore(t *testing.T) {
	store := &session.MemStore{}
	require.NoError(t, store.Write(session.Session{Token: "tok", Role: "ADMIN"}))

	c := New("http://localhost:0", store)
	require.NoError(t, c.Logout())

	_, ok := store.Read()
	assert.False(t, ok)
}
