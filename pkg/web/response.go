// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// GetErrorMsg maps a failed validation tag to a human readable message
// suffix for the offending field.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must not exceed " + fe.Param()
	case "oneof":
		return " must be one of: " + fe.Param()
	case "datetime":
		return " must be a date formatted as " + fe.Param()
	}

	return " is invalid"
}
