package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape every endpoint responds with.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithData writes a successful response carrying a payload
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	respond(w, code, Envelope{Success: true, Data: data})
}

// RespondWithMessage writes a successful response carrying only a message
func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	respond(w, code, Envelope{Success: true, Message: message})
}

// RespondWithError writes an error response in JSON format
func RespondWithError(w http.ResponseWriter, code int, message string) {
	respond(w, code, Envelope{Success: false, Message: message})
}

func respond(w http.ResponseWriter, code int, payload Envelope) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
