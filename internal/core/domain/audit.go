package domain

import "time"

// AuditKind labels an entry in the auth audit trail.
type AuditKind string

const (
	AuditLoginSuccess    AuditKind = "login_success"
	AuditLoginFailure    AuditKind = "login_failure"
	AuditPasswordChanged AuditKind = "password_changed"
	AuditAccountDeleted  AuditKind = "account_deleted"
)

// AuditEvent is a single auth-trail entry. Recording is fire-and-forget:
// audit failures never affect the outcome of the auth operation itself.
type AuditEvent struct {
	Username string    `json:"username" bson:"username"`
	Kind     AuditKind `json:"kind" bson:"kind"`
	Detail   string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At       time.Time `json:"at" bson:"at"`
}
