package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

func WriteJSONResponse(w http.ResponseWriter, v any, statusCode int) {
	vJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		WriteJSONMessage(w, "internal server error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, "application/json", vJson, statusCode)
}

// WriteJSONMessage writes the API-wide `{"message": "..."}` body, used for
// every error response and for plain confirmation responses.
func WriteJSONMessage(w http.ResponseWriter, message string, statusCode int) {
	body := struct {
		Message string `json:"message"`
	}{Message: message}

	// marshalling a plain string field cannot fail
	bodyJson, _ := json.Marshal(body)

	WriteResponseBytes(w, "application/json", bodyJson, statusCode)
}
