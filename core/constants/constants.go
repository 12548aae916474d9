package constants

// Context keys
const (
	ContextUserID = "user_id"
)

// HTTP headers
const (
	HeaderUserID = "X-User-ID"
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Database pool defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)
