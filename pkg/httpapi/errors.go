package httpapi

import (
	"encoding/json"
	"net/http"
)

// apiError is the JSON body returned for any non-2xx response from this
// package's handlers: {"msg": "..."}.
type apiError struct {
	Msg  string `json:"msg"`
	code int
}

func newAPIError(code int, msg string) *apiError {
	return &apiError{Msg: msg, code: code}
}

func (e *apiError) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.code)
	_ = json.NewEncoder(w).Encode(e)
}
