package service

import "github.com/google/uuid"

// Session identifies the authenticated user for an operation. It is
// constructed once per request from verified token claims and passed to
// services explicitly rather than read from ambient state.
type Session struct {
	UserID uuid.UUID
	Email  string
}
