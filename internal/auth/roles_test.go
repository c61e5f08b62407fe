package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole(" Admin "))
	assert.Equal(t, RoleEntrenador, NormalizeRole("entrenador"))
	assert.Equal(t, Role(""), NormalizeRole("   "))
}

func TestRolesEqual(t *testing.T) {
	assert.True(t, RolesEqual("admin", "ADMIN"))
	assert.True(t, RolesEqual("Cliente", "cliente"))
	assert.False(t, RolesEqual("ADMIN", "CLIENTE"))
	assert.False(t, RolesEqual("", "ADMIN"))
}

func TestKnownRole(t *testing.T) {
	assert.True(t, KnownRole("entrenador"))
	assert.True(t, KnownRole("ADMIN"))
	assert.False(t, KnownRole("SUPERVISOR"))
	assert.False(t, KnownRole(""))
}
