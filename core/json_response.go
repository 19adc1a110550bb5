package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nexuscampus/authcore/pkg/validator"
)

// JSONResponse is the envelope for every JSON reply.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail carries the machine-readable error code, an optional
// human-readable message, and per-field validation details.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// WriteJSON renders data inside the standard envelope.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, JSONResponse{Data: data})
}

// WriteJSONMeta renders data with response metadata.
func WriteJSONMeta(w http.ResponseWriter, status int, data any, meta map[string]any) {
	writeEnvelope(w, status, JSONResponse{Data: data, Meta: meta})
}

// WriteError renders err as an error envelope. Validation errors become a
// 400 with per-field details; HTTPError values keep their status and code;
// anything else is an opaque 500. When devMode is true the underlying
// message of unexpected errors is included for debugging.
func WriteError(w http.ResponseWriter, err error, devMode bool) {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{Code: ErrInternalServerError.Key}
	if devMode {
		detail.Message = err.Error()
	}

	var verrs validator.ValidationErrors
	var httpErr HTTPError
	switch {
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
		detail.Code = "validation_error"
		detail.Message = "invalid input"
		detail.Details = verrs.Fields()
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(httpErr.Code)
	}

	writeEnvelope(w, status, JSONResponse{Error: detail})
}

func writeEnvelope(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
