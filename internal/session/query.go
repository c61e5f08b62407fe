package session

import "github.com/courtly-dev/courtly/internal/auth"

// Query is the read-only view over a Store that the route guards consume.
// Every method re-reads the store so a logout (or a forced clear after a
// 401) is visible to the very next guard evaluation.
type Query struct {
	store Store
}

// NewQuery wraps a store.
func NewQuery(store Store) *Query {
	return &Query{store: store}
}

// HasValidSession reports whether a token is present. There is no local
// expiry check; the backend judges real validity on the next call.
func (q *Query) HasValidSession() bool {
	s, ok := q.store.Read()
	return ok && s.Token != ""
}

// Token returns the stored bearer token, or empty.
func (q *Query) Token() string {
	s, _ := q.store.Read()
	return s.Token
}

// CurrentRole returns the normalized stored role, or empty.
func (q *Query) CurrentRole() auth.Role {
	s, ok := q.store.Read()
	if !ok {
		return ""
	}
	return auth.NormalizeRole(s.Role)
}

// HasRole reports whether a valid session exists with the candidate role,
// compared case-insensitively.
func (q *Query) HasRole(candidate auth.Role) bool {
	if !q.HasValidSession() {
		return false
	}
	return auth.RolesEqual(string(q.CurrentRole()), string(candidate))
}

// TrainerID returns the trainer id for ENTRENADOR sessions, or nil.
func (q *Query) TrainerID() *uint {
	s, ok := q.store.Read()
	if !ok {
		return nil
	}
	return s.TrainerID
}

// ClientID returns the client id for CLIENTE sessions, or nil.
func (q *Query) ClientID() *uint {
	s, ok := q.store.Read()
	if !ok {
		return nil
	}
	return s.ClientID
}

// DisplayName returns the stored display name, or empty.
func (q *Query) DisplayName() string {
	s, _ := q.store.Read()
	return s.DisplayName
}

// UserID returns the stored user id, or zero.
func (q *Query) UserID() uint {
	s, _ := q.store.Read()
	return s.UserID
}
