// Package response writes JSON HTTP responses in the API's error format.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

// ErrorItem is one entry of an error response.
type ErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// Message is a body carrying a single informational message.
type Message struct {
	Msg string `json:"msg"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a single-message error body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Errors: []ErrorItem{{Msg: msg}}})
}

// ValidationErrors writes a 400 with one entry per invalid field.
func ValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	items := make([]ErrorItem, len(errs))
	for i, fe := range errs {
		items[i] = ErrorItem{Msg: fe.Msg, Param: fe.Param}
	}

	JSON(w, http.StatusBadRequest, ErrorBody{Errors: items})
}

// InternalError writes the generic 500 body. Details belong in the logs only.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Server error")
}
