// Package httpx provides the HTTP JSON API for the skip job lifecycle.
package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// maxBodyBytes caps request bodies; signatures are the largest field.
const maxBodyBytes = 1 << 20

// DecodeJSON strictly decodes the body into dst. On failure it has already
// written a 400 (or 413 for oversized bodies) and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, ErrorParams{Code: http.StatusRequestEntityTooLarge, ErrCode: "body_too_large", Err: err})
			return false
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON encodes v before touching w so an encoding failure can still
// become a clean 500.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// ErrorParams describes a {"error","message"} response.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes p as JSON.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}
