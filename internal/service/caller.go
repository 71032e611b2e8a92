package service

import (
	"homeserve/internal/apperr"
	"homeserve/internal/notify"
)

// Caller identifies the authenticated principal behind a request.
type Caller struct {
	ID   string
	Role string
}

// requireRole is the uniform capability gate applied before every mutation.
func requireRole(c Caller, role, msg string) error {
	if c.Role != role {
		return apperr.Forbidden(msg)
	}
	return nil
}

// requireOwner rejects callers that do not own the target record.
func requireOwner(ownerID string, c Caller, msg string) error {
	if ownerID != c.ID {
		return apperr.Forbidden(msg)
	}
	return nil
}

// Notifier is the best-effort fan-out contract. Implemented by notify.Hub.
type Notifier interface {
	NotifyUser(userID string, n notify.Notification)
	NotifyProviders(n notify.Notification)
	NotifyHomeowners(n notify.Notification)
}
