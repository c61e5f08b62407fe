package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtly-dev/courtly/internal/auth"
)

func TestQuery_NoSession(t *testing.T) {
	q := NewQuery(&MemStore{})

	assert.False(t, q.HasValidSession())
	assert.Equal(t, auth.Role(""), q.CurrentRole())
	assert.False(t, q.HasRole(auth.RoleAdmin))
	assert.Nil(t, q.TrainerID())
	assert.Nil(t, q.ClientID())
}

func TestQuery_HasRoleCaseInsensitive(t *testing.T) {
	store := &MemStore{}
	require.NoError(t, store.Write(Session{Token: "t1", Role: "admin"}))
	q := NewQuery(store)

	assert.True(t, q.HasValidSession())
	assert.True(t, q.HasRole(auth.RoleAdmin))
	assert.False(t, q.HasRole(auth.RoleCliente))
	assert.Equal(t, auth.RoleAdmin, q.CurrentRole())
}

func TestQuery_ReflectsLatestWrite(t *testing.T) {
	store := &MemStore{}
	q := NewQuery(store)

	require.NoError(t, store.Write(Session{Token: "t1", Role: "CLIENTE", ClientID: uintPtr(7)}))
	assert.True(t, q.HasRole(auth.RoleCliente))
	require.NotNil(t, q.ClientID())
	assert.Equal(t, uint(7), *q.ClientID())

	// No private cache: a clear is visible on the very next call.
	require.NoError(t, store.Clear())
	assert.False(t, q.HasValidSession())
	assert.False(t, q.HasRole(auth.RoleCliente))
	assert.Nil(t, q.ClientID())
}

func TestQuery_TrainerID(t *testing.T) {
	store := &MemStore{}
	require.NoError(t, store.Write(Session{Token: "t2", Role: "ENTRENADOR", TrainerID: uintPtr(3)}))
	q := NewQuery(store)

	require.NotNil(t, q.TrainerID())
	assert.Equal(t, uint(3), *q.TrainerID())
	assert.Nil(t, q.ClientID())
}
