package constants

// Context keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyID        = "id"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
)

// Query parameters
const (
	QuerySearch = "search"
	QueryStatus = "status"
)

// Form fields
const (
	FormFieldLogo = "logo"
)
