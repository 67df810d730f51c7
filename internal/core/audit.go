package core

import "time"

// AuditEntry records a security-relevant event: a signin attempt, an
// issued session, or a denied request. Entries are internal logging
// only and may carry details that are never surfaced to clients.
type AuditEntry struct {
	// ID is the correlation ID of the request that produced the entry.
	ID string `json:"id"`

	Time   time.Time `json:"time"`
	Action string    `json:"action"`

	PrincipalID string `json:"principal_id,omitempty"`
	Email       string `json:"email,omitempty"`

	// TokenFingerprint identifies an issued session token without
	// storing the token itself.
	TokenFingerprint string `json:"token_fingerprint,omitempty"`

	Granted bool   `json:"granted"`
	Error   string `json:"error,omitempty"`
}

// Auditor stores audit entries.
type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// AuditReader is implemented by auditors that can be queried back,
// used by the admin audit endpoint.
type AuditReader interface {
	// GetRecent returns up to limit entries, newest first.
	GetRecent(limit int) ([]AuditEntry, error)

	// Find returns up to limit entries matching the predicate, newest
	// first.
	Find(predicate func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
}
