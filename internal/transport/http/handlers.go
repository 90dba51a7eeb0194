package httptransport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"intake-gateway/internal/conversation"
	"intake-gateway/pkg/apperrors"
)

// Handler translates webhook posts into engine events.
type Handler struct {
	engine *conversation.Engine
	logger *slog.Logger
}

func NewHandler(engine *conversation.Engine, logger *slog.Logger) (*Handler, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{engine: engine, logger: logger}, nil
}

// inboundEvent is the wire shape of one platform update. Type selects which
// fields are meaningful.
type inboundEvent struct {
	Type        string `json:"type"` // start | contact | text
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Text        string `json:"text,omitempty"`
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev inboundEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "decode event"))
		return
	}
	if ev.UserID == "" {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "user_id is required"))
		return
	}

	ctx := r.Context()
	var err error
	switch ev.Type {
	case "start":
		err = h.engine.HandleStart(ctx, conversation.StartEvent{
			UserID:      ev.UserID,
			DisplayName: ev.DisplayName,
		})
	case "contact":
		err = h.engine.HandleContact(ctx, conversation.ContactEvent{
			UserID:      ev.UserID,
			PhoneNumber: ev.Phone,
		})
	case "text":
		err = h.engine.HandleText(ctx, conversation.TextEvent{
			UserID: ev.UserID,
			Text:   ev.Text,
		})
	default:
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "unknown event type"))
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "event handling failed",
			"type", ev.Type, "user_id", ev.UserID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates coded domain errors into consistent JSON envelopes.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	writeJSON(w, apperrors.ToHTTPStatus(code), map[string]string{
		"error": string(code),
	})
}
