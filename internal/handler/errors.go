package handler

import (
	"errors"
	"net/http"

	"maichat/internal/domain"
	"maichat/internal/httputil"
)

// handleError maps a domain error to an HTTP response. Every taxonomy
// member carries its own status via the HTTPError interface; anything
// else is an unexpected internal fault.
func (h *ChatHandler) handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.StatusCode()
		if status >= http.StatusInternalServerError {
			h.logger.Error("turn failed", "error", err, "status", status)
		} else {
			h.logger.Info("turn rejected", "error", err, "status", status)
		}
		httputil.RespondError(w, status, httpErr.Error())
		return
	}

	h.logger.Error("unexpected error", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
