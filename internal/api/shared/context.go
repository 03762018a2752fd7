package shared

// ContextKey is the type for context values set by api middleware.
type ContextKey string

// CustomerIDContextKey holds the authenticated customer's uuid.UUID.
const CustomerIDContextKey ContextKey = "customerID"
