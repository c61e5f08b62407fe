package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	// Password recovery mail delivery
	TypePasswordReset = "auth:password_reset"
	// Periodic removal of expired/used reset tokens
	TypeResetTokenPurge = "auth:reset_token_purge"
)

// PasswordResetPayload carries everything the worker needs to deliver a
// recovery message.
type PasswordResetPayload struct {
	UsuarioID uint   `json:"usuario_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
}

// NewPasswordResetTask creates a task to deliver a password recovery message
func NewPasswordResetTask(usuarioID uint, email, token string) (*asynq.Task, error) {
	payload, err := json.Marshal(PasswordResetPayload{
		UsuarioID: usuarioID,
		Email:     email,
		Token:     token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypePasswordReset, payload), nil
}

// ParsePasswordResetPayload parses the payload from an Asynq task
func ParsePasswordResetPayload(task *asynq.Task) (PasswordResetPayload, error) {
	var payload PasswordResetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}

// NewResetTokenPurgeTask creates a task that deletes expired reset tokens
func NewResetTokenPurgeTask() *asynq.Task {
	return asynq.NewTask(TypeResetTokenPurge, nil)
}
