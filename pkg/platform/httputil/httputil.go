// Package httputil holds the JSON response helpers shared by handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "kredita/pkg/domain-errors"
)

// GenericErrorMessage is shown whenever the real cause must not leak.
const GenericErrorMessage = "Something went wrong. Please try again."

// ErrorResponse is the JSON envelope for failed actions.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status and an ErrorResponse. Messages of
// internal and unavailable errors are replaced by GenericErrorMessage.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), ErrorResponse{
		Error: PublicMessage(err),
		Code:  string(code),
	})
}

// PublicMessage returns the message that may be shown to the visitor.
func PublicMessage(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeUnavailable:
		return GenericErrorMessage
	}
	if msg := dErrors.MessageOf(err); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
