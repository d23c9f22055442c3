package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ErrorCode identifies a failure class for clients and for the status line.
type ErrorCode string

const (
	ErrCodeConnection     ErrorCode = "CONNECTION_ERROR"
	ErrCodePlayerNotFound ErrorCode = "PLAYER_NOT_FOUND"
	ErrCodeInvalidAPIKey  ErrorCode = "INVALID_API_KEY"
	ErrCodeRateLimited    ErrorCode = "RATE_LIMITED"
	ErrCodeParse          ErrorCode = "PARSE_ERROR"
	ErrCodeInvalidRegion  ErrorCode = "INVALID_REGION"
	ErrCodeMissingFields  ErrorCode = "MISSING_FIELDS"
	ErrCodeUpstream       ErrorCode = "UPSTREAM_ERROR"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code ErrorCode, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status}
}

func ConnectionError(message string) *APIError {
	return NewAPIError(ErrCodeConnection, message, http.StatusBadGateway)
}

func PlayerNotFound(gameName, tagLine string) *APIError {
	return NewAPIError(ErrCodePlayerNotFound, "player not found: "+gameName+"#"+tagLine, http.StatusNotFound)
}

func NotFoundError(message string) *APIError {
	return NewAPIError(ErrCodePlayerNotFound, message, http.StatusNotFound)
}

func AuthError() *APIError {
	return NewAPIError(ErrCodeInvalidAPIKey, "invalid or insufficient API key", http.StatusUnauthorized)
}

func RateLimitError() *APIError {
	return NewAPIError(ErrCodeRateLimited, "rate limit exceeded, try again shortly", http.StatusTooManyRequests)
}

func ParseError(message string) *APIError {
	return NewAPIError(ErrCodeParse, message, http.StatusBadGateway)
}

func InvalidRegion(code string) *APIError {
	return NewAPIError(ErrCodeInvalidRegion, "unknown region: "+code, http.StatusBadRequest)
}

func MissingFields(message string) *APIError {
	return NewAPIError(ErrCodeMissingFields, message, http.StatusBadRequest)
}

func UpstreamError(message string) *APIError {
	return NewAPIError(ErrCodeUpstream, message, http.StatusBadGateway)
}

// AsAPIError unwraps err to an *APIError, falling back to INTERNAL_ERROR so
// that no failure path leaves the status line empty.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(ErrCodeInternal, "internal error", http.StatusInternalServerError)
}

type errorResponse struct {
	Error     errorDetail `json:"error"`
	Timestamp int64       `json:"timestamp"`
	RequestID string      `json:"requestId,omitempty"`
}

type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error, logger *Logger) {
	apiErr := AsAPIError(err)
	requestID := GetRequestID(r.Context())

	logger.Error("request_failed").
		Component("http").
		Operation("write_error").
		HTTP(r.Method, r.URL.Path, apiErr.Status).
		Request(r.UserAgent(), r.RemoteAddr, requestID).
		Err(err).
		ErrorCode(string(apiErr.Code)).
		Log()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(errorResponse{
		Error:     errorDetail{Code: apiErr.Code, Message: apiErr.Message},
		Timestamp: time.Now().Unix(),
		RequestID: requestID,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, data interface{}, logger *Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("json_encode_failed").
			Component("http").
			Operation("write_json").
			Request("", "", GetRequestID(r.Context())).
			Err(err).
			Log()
	}
}
