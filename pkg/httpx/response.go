package httpx

import (
	"encoding/json"
	"net/http"

	apperrors "slotdesk/pkg/errors"
)

// Every response carries an {ok: bool, ...} envelope. Failures always pair
// ok:false with a human-readable error string.

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps the error onto the taxonomy status and writes the
// ok:false envelope. Internal detail never reaches the body.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		OK:    false,
		Error: appErr.Message,
	})
}

func WriteOK(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, MessageResponse{OK: true, Message: message})
}
