// Package session holds the locally persisted authentication record and the
// read layer the route guards consume. The record is the client-side proof
// that a user is authenticated: an opaque bearer token plus the identity
// fields the UI and the guards need.
package session

import (
	"github.com/courtly-dev/courtly/internal/auth"
)

// Session is the persisted authentication record. A session exists iff
// Token is non-empty. TrainerID is set only for ENTRENADOR sessions and
// ClientID only for CLIENTE sessions; Sanitize enforces that.
type Session struct {
	Token       string `json:"token"`
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	TrainerID   *uint  `json:"trainer_id,omitempty"`
	ClientID    *uint  `json:"client_id,omitempty"`
}

// Sanitize returns a copy with the role normalized and role-specific ids
// dropped when they do not belong to the role. The login flow only stores
// idEntrenador for ENTRENADOR and idCliente for CLIENTE; this keeps any
// hand-edited or stale record consistent with that invariant.
func (s Session) Sanitize() Session {
	out := s
	out.Role = string(auth.NormalizeRole(s.Role))
	if !auth.RolesEqual(out.Role, string(auth.RoleEntrenador)) {
		out.TrainerID = nil
	}
	if !auth.RolesEqual(out.Role, string(auth.RoleCliente)) {
		out.ClientID = nil
	}
	return out
}
