package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpInvalidEventError    = "invalid_event"
	HttpInvalidPeriodError   = "invalid_period"
	HttpInvalidQueryError    = "invalid_query"
	HttpCounterNotFound      = "counter_not_found"
	HttpStoreUnavailable     = "store_unavailable"
	HttpPayloadTooLargeError = "payload_too_large"
)

// ErrorResponse is the error response body shared by every endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
