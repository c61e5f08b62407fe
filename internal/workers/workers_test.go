package workers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
	"github.com/courtly-dev/courtly/internal/tasks"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

type recordingMailer struct {
	emails []string
	err    error
}

func (m *recordingMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	if m.err != nil {
		return m.err
	}
	m.emails = append(m.emails, email)
	return nil
}

func TestHandlePasswordResetDelivers(t *testing.T) {
	db := newTestDB(t)

	reset := models.PasswordReset{
		UsuarioID: 1,
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, db.Create(&reset).Error)

	task, err := tasks.NewPasswordResetTask(1, "user@example.com", "tok-1")
	require.NoError(t, err)

	mailer := &recordingMailer{}
	require.NoError(t, HandlePasswordReset(context.Background(), task, db, mailer, zerolog.Nop()))
	assert.Equal(t, []string{"user@example.com"}, mailer.emails)
}

func TestHandlePasswordResetSkipsMissingToken(t *testing.T) {
	db := newTestDB(t)

	task, err := tasks.NewPasswordResetTask(1, "user@example.com", "gone")
	require.NoError(t, err)

	mailer := &recordingMailer{}
	require.NoError(t, HandlePasswordReset(context.Background(), task, db, mailer, zerolog.Nop()))
	assert.Empty(t, mailer.emails)
}

func TestHandlePasswordResetPropagatesDeliveryError(t *testing.T) {
	db := newTestDB(t)

	reset := models.PasswordReset{
		UsuarioID: 2,
		Token:     "tok-2",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, db.Create(&reset).Error)

	task, err := tasks.NewPasswordResetTask(2, "user@example.com", "tok-2")
	require.NoError(t, err)

	mailer := &recordingMailer{err: errors.New("relay down")}
	err = HandlePasswordReset(context.Background(), task, db, mailer, zerolog.Nop())
	assert.Error(t, err)
}

func TestHandleResetTokenPurge(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	used := now.Add(-time.Hour)
	rows := []models.PasswordReset{
		{UsuarioID: 1, Token: "expired", ExpiresAt: now.Add(-time.Minute)},
		{UsuarioID: 2, Token: "used", ExpiresAt: now.Add(time.Hour), UsedAt: &used},
		{UsuarioID: 3, Token: "live", ExpiresAt: now.Add(time.Hour)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	require.NoError(t, HandleResetTokenPurge(context.Background(), tasks.NewResetTokenPurgeTask(), db, zerolog.Nop()))

	var remaining []models.PasswordReset
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].Token)
}
