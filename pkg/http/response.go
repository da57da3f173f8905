package http

import (
	"encoding/json"
	"net/http"

	apperrors "flightdb/pkg/errors"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError renders err with the status carried by its AppError. Anything else
// becomes an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	if !apperrors.IsAppError(err) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  apperrors.CodeInternal,
		})
		return
	}

	appErr := apperrors.AsAppError(err)
	WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteStatus(w http.ResponseWriter, statusCode int, status StatusResponse) {
	WriteJSON(w, statusCode, status)
}
