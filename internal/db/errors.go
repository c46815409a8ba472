package db

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is a persistence failure translated to an HTTP status and a
// human-readable message.
type APIError struct {
	Status  int    // HTTP status code.
	Message string // User-facing message.
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Constraint markers checked against lowercased error text. Each list covers
// both supported engines: PostgreSQL names the violated constraint
// ("users_email_key"), SQLite names the column ("users.email").
var (
	duplicateMarkers  = []string{"duplicate key value violates unique constraint", "unique constraint failed"}
	emailMarkers      = []string{"_email_key", ".email"}
	usernameMarkers   = []string{"_username_key", ".username"}
	employeeIDMarkers = []string{"_employee_id_key", ".employee_id"}
	notNullMarkers    = []string{"violates not-null constraint", "not null constraint failed"}
	foreignKeyMarkers = []string{"violates foreign key constraint", "foreign key constraint failed"}
)

// TranslateConstraintError maps a database constraint violation to an API
// error by inspecting the error text. It returns nil when the error does not
// look like a constraint violation, in which case the caller should fall back
// to its own generic message.
func TranslateConstraintError(err error, modelName string) *APIError {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())

	if containsAny(message, duplicateMarkers) {
		switch {
		case containsAny(message, emailMarkers):
			return &APIError{Status: http.StatusConflict, Message: "Email already exists. Please use a different email address."}
		case containsAny(message, usernameMarkers):
			return &APIError{Status: http.StatusConflict, Message: "Username already exists. Please choose a different username."}
		case containsAny(message, employeeIDMarkers):
			return &APIError{Status: http.StatusConflict, Message: "Employee ID already exists. Please use a different employee ID."}
		default:
			return &APIError{Status: http.StatusConflict, Message: fmt.Sprintf("A %s with this information already exists. Please check your input.", modelName)}
		}
	}

	if containsAny(message, notNullMarkers) {
		return &APIError{Status: http.StatusBadRequest, Message: "Missing required field. Please provide all required information."}
	}
	if containsAny(message, foreignKeyMarkers) {
		return &APIError{Status: http.StatusBadRequest, Message: "Referenced record does not exist. Please check your input."}
	}
	if strings.Contains(message, "constraint") {
		return &APIError{Status: http.StatusBadRequest, Message: "Database error: Unable to process request. Please check your input."}
	}
	return nil
}

// containsAny reports whether the message contains any of the markers.
func containsAny(message string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
