package constants

// Context keys
const (
	ContextKeyUser = "user"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
