package entity

import "time"

const (
	AuditRegister         = "register"
	AuditLoginSuccess     = "login_success"
	AuditLoginFailure     = "login_failure"
	AuditResourceSubmit   = "resource_submit"
	AuditResourceModerate = "resource_moderate"
)

// AuditEntry is one append-only record of a security relevant action
type AuditEntry struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time
}
