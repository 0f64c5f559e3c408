package errors

// ErrorCode identifies a failure kind across the HTTP envelope, logs and persisted runs
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_NOT_CONFIGURED   ErrorCode = 1004

	// Pipeline
	ErrorCode_INVALID_REQUEST         ErrorCode = 2000
	ErrorCode_UNSUPPORTED_FORMAT      ErrorCode = 2001
	ErrorCode_MEDIA_PROCESSING_FAILED ErrorCode = 2002
	ErrorCode_TRANSCRIPTION_FAILED    ErrorCode = 2003
	ErrorCode_MODEL_LOAD_FAILED       ErrorCode = 2004
	ErrorCode_GENERATION_CALL_FAILED  ErrorCode = 2005
	ErrorCode_EXPORT_FAILED           ErrorCode = 2006

	// Integration
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 3000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 3001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 3002

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 4000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_NOT_CONFIGURED:                  "NOT_CONFIGURED",
	ErrorCode_INVALID_REQUEST:                 "INVALID_REQUEST",
	ErrorCode_UNSUPPORTED_FORMAT:              "UNSUPPORTED_FORMAT",
	ErrorCode_MEDIA_PROCESSING_FAILED:         "MEDIA_PROCESSING_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:            "TRANSCRIPTION_FAILED",
	ErrorCode_MODEL_LOAD_FAILED:               "MODEL_LOAD_FAILED",
	ErrorCode_GENERATION_CALL_FAILED:          "GENERATION_CALL_FAILED",
	ErrorCode_EXPORT_FAILED:                   "EXPORT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
