package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func fileStoreAt(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(EnvSessionFile, path)
	return NewFileStore()
}

func TestFileStore_WriteReadClear(t *testing.T) {
	store := fileStoreAt(t)

	_, ok := store.Read()
	assert.False(t, ok, "empty store should report no session")

	s := Session{
		Token:       "t1",
		UserID:      42,
		DisplayName: "Ana",
		Role:        "CLIENTE",
		ClientID:    uintPtr(7),
	}
	require.NoError(t, store.Write(s))

	got, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "t1", got.Token)
	assert.Equal(t, uint(42), got.UserID)
	assert.Equal(t, "CLIENTE", got.Role)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, uint(7), *got.ClientID)
	assert.Nil(t, got.TrainerID)

	require.NoError(t, store.Clear())
	_, ok = store.Read()
	assert.False(t, ok)

	// Clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(EnvSessionFile, path)

	first := NewFileStore()
	require.NoError(t, first.Write(Session{Token: "t2", Role: "ADMIN"}))

	// A fresh store over the same path sees the record, mirroring a
	// process restart.
	second := NewFileStore()
	got, ok := second.Read()
	require.True(t, ok)
	assert.Equal(t, "t2", got.Token)
}

func TestFileStore_SanitizesMismatchedIDs(t *testing.T) {
	store := fileStoreAt(t)

	// A CLIENTE session must not carry a trainer id, and the stored role
	// is normalized to upper case.
	require.NoError(t, store.Write(Session{
		Token:     "t3",
		Role:      "cliente",
		ClientID:  uintPtr(7),
		TrainerID: uintPtr(9),
	}))

	got, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "CLIENTE", got.Role)
	assert.Nil(t, got.TrainerID)
	require.NotNil(t, got.ClientID)
}

func TestFileStore_DisabledWithoutPath(t *testing.T) {
	t.Setenv(EnvSessionFile, "")
	t.Setenv("HOME", "")
	// os.UserHomeDir consults more than HOME on some platforms
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("USERPROFILE", "")

	store := NewFileStore()
	if store.Enabled() {
		t.Skip("home directory still resolvable on this platform")
	}

	assert.NoError(t, store.Write(Session{Token: "t4", Role: "ADMIN"}))
	_, ok := store.Read()
	assert.False(t, ok, "disabled store must behave like an anonymous visitor")
	assert.NoError(t, store.Clear())
}

func TestFileStore_CorruptRecordReadsAsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(EnvSessionFile, path)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore()
	_, ok := store.Read()
	assert.False(t, ok)
}

func TestMemStore(t *testing.T) {
	store := &MemStore{}

	_, ok := store.Read()
	assert.False(t, ok)

	require.NoError(t, store.Write(Session{Token: "t5", Role: "ENTRENADOR", TrainerID: uintPtr(3)}))
	got, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "ENTRENADOR", got.Role)

	require.NoError(t, store.Clear())
	_, ok = store.Read()
	assert.False(t, ok)
}
