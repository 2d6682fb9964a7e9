package models

import "time"

// Audit event kinds recorded by the audit sink.
const (
	AuditLoginAttempt   = "LOGIN_ATTEMPT"
	AuditTokenRefresh   = "TOKEN_REFRESH"
	AuditPasswordChange = "PASSWORD_CHANGE"
	AuditUserCreate     = "USER_CREATE"
	AuditUserUnlock     = "USER_UNLOCK"
	AuditMenuChange     = "MENU_CHANGE"
	AuditGrantChange    = "GRANT_CHANGE"
)

// Audit event outcomes.
const (
	AuditOutcomeSuccess = "SUCCESS"
	AuditOutcomeDenied  = "DENIED"
	AuditOutcomeError   = "ERROR"
)

// AuditEvent is one append-only record of a login attempt or a sensitive
// operation. Events are written best-effort: a failed audit write is logged
// but never fails the operation that produced it.
type AuditEvent struct {
	// ID is a KSUID assigned by the sink at record time.
	ID string `json:"id"`

	// Kind is one of the Audit* constants above.
	Kind string `json:"kind"`

	// Subject identifies the affected entity (user id, menu no, group id).
	Subject string `json:"subject"`

	// Outcome is one of the AuditOutcome* constants above.
	Outcome string `json:"outcome"`

	// Details holds a short human-readable context line. It must never
	// contain credentials or token material.
	Details string `json:"details"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AuditEvent model.
func (e AuditEvent) TableName() string {
	return "audit_log"
}
