// Package constants defines shared constants used across the application.
package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Context keys set by the auth middleware.
const (
	ContextKeyActorID   = "actor_id"
	ContextKeyActorRole = "actor_role"
)
