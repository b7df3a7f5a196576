package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	chatModels "maichat/internal/domain/models/chat"
	chatSvc "maichat/internal/domain/services/chat"
	"maichat/internal/httputil"
)

// ChatHandler handles conversation turn HTTP requests.
// Handlers only communicate with services, never tools or repositories.
type ChatHandler struct {
	turns  chatSvc.TurnService
	logger *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(turns chatSvc.TurnService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		turns:  turns,
		logger: logger,
	}
}

// TurnRequest is the wire shape of one conversation turn.
type TurnRequest struct {
	Input []chatModels.Message `json:"input"`
}

// Validate checks the request carries at least one message.
func (r TurnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Input, validation.Required),
	)
}

// RunTurn executes one agent turn.
// POST /chat
// Responds with {"result": "..."} or {"tool_result": ...}.
func (h *ChatHandler) RunTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.turns.RunTurn(r.Context(), req.Input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, outcome)
}
