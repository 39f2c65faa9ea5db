package errors

// ErrorCode identifies a failure class independently of its HTTP status
type ErrorCode int

const (
	// General
	ErrorCode_INTERNAL           ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT   ErrorCode = 1001
	ErrorCode_NOT_FOUND          ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD    ErrorCode = 1003
	ErrorCode_PAYLOAD_TOO_LARGE  ErrorCode = 1004
	ErrorCode_METHOD_NOT_ALLOWED ErrorCode = 1005

	// AI
	ErrorCode_AI_SUMMARY_FAILED ErrorCode = 3000

	// Email
	ErrorCode_EMAIL_INVALID_RECIPIENT ErrorCode = 4000
	ErrorCode_EMAIL_DELIVERY_FAILED   ErrorCode = 4001

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 5000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 5001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_PAYLOAD_TOO_LARGE:       "PAYLOAD_TOO_LARGE",
	ErrorCode_METHOD_NOT_ALLOWED:      "METHOD_NOT_ALLOWED",
	ErrorCode_AI_SUMMARY_FAILED:       "AI_SUMMARY_FAILED",
	ErrorCode_EMAIL_INVALID_RECIPIENT: "EMAIL_INVALID_RECIPIENT",
	ErrorCode_EMAIL_DELIVERY_FAILED:   "EMAIL_DELIVERY_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:    "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies and logs
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
