package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SendErrorResponse sends a consistent error response with logging
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, logMessage string, err error) {
	// 5xx is our fault, 4xx is the caller's
	logFn := log.Warn
	if statusCode >= http.StatusInternalServerError {
		logFn = log.Error
	}
	if err != nil {
		logFn(logMessage, "status", statusCode, "err", err)
	} else {
		logFn(logMessage, "status", statusCode)
	}

	SendJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// SendJSON writes v as the JSON response body
func SendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "err", err)
	}
}

// ValidateJSONBody decodes a JSON request body into dest
func ValidateJSONBody(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return &ValidationError{Message: "Request body is required"}
	}

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return &ValidationError{Message: "Invalid JSON format: " + err.Error()}
	}

	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BearerToken pulls the token out of an "Authorization: Bearer ..." header
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
