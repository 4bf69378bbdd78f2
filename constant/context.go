package constant

type contextKey string

// RequestIDKey carries the per-request id through the context
const RequestIDKey contextKey = "request_id"

// UserEventRegistered and friends are routing keys for the user lifecycle feed
const (
	UserEventRegistered = "user.registered"
	UserEventUpdated    = "user.updated"
	UserEventDeleted    = "user.deleted"
)
