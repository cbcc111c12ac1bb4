package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Коды нормализованных ошибок транспортного уровня.
const (
	CodeNetwork = "NETWORK_ERROR"
	CodeServer  = "SERVER_ERROR"
	CodeRequest = "REQUEST_ERROR"
	CodeUnknown = "UNKNOWN_ERROR"
)

// APIError — единая форма любой ошибки, пришедшей от бэкенда.
// Все отказы клиента нормализуются в неё до возврата вызывающему.
type APIError struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream: %s (status %d, code %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("upstream: %s (code %s)", e.Message, e.Code)
}

// errorBody покрывает варианты тела ошибки, которые отдаёт бэкенд:
// {"message": ...}, {"error": ...}, опционально с кодом и деталями.
type errorBody struct {
	Message string          `json:"message"`
	Err     string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status: status,
		Code:   CodeServer,
	}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		switch {
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		case parsed.Err != "":
			apiErr.Message = parsed.Err
		}
		if parsed.Code != "" {
			apiErr.Code = parsed.Code
		}
		apiErr.Details = parsed.Details
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
		if status >= 400 && status < 500 {
			apiErr.Code = CodeRequest
		}
	}
	return apiErr
}

func networkError(err error) *APIError {
	return &APIError{
		Message: err.Error(),
		Code:    CodeNetwork,
	}
}

// AsAPIError извлекает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf возвращает HTTP-статус нормализованной ошибки, 0 если его нет.
func StatusOf(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status
	}
	return 0
}

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return StatusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }
