package log

// Canonical field name constants for structured logging.
const (
	FieldComponent = "component"

	// HTTP
	FieldMethod   = "method"
	FieldPath     = "path"
	FieldStatus   = "status"
	FieldLatency  = "latency"
	FieldClientIP = "client_ip_hash"

	// Content
	FieldRepo = "repo"
	FieldFile = "file"
)
