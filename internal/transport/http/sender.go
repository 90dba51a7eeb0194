package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"intake-gateway/internal/conversation"
)

// outboundMessage is the wire shape of one reply to the messaging platform.
type outboundMessage struct {
	UserID   string `json:"user_id"`
	Text     string `json:"text"`
	Keyboard string `json:"keyboard,omitempty"`
}

func keyboardName(k conversation.Keyboard) string {
	switch k {
	case conversation.KeyboardSharePhone:
		return "share_phone"
	case conversation.KeyboardRemove:
		return "remove"
	default:
		return ""
	}
}

// HTTPSender posts replies to the configured platform endpoint.
type HTTPSender struct {
	url    string
	client *http.Client
}

func NewHTTPSender(url string) (*HTTPSender, error) {
	if url == "" {
		return nil, fmt.Errorf("send URL is required")
	}
	return &HTTPSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *HTTPSender) Send(ctx context.Context, userID, text string, keyboard conversation.Keyboard) error {
	body, err := json.Marshal(outboundMessage{
		UserID:   userID,
		Text:     text,
		Keyboard: keyboardName(keyboard),
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LogSender writes replies to the log. Default when no send URL is
// configured; useful in development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, userID, text string, keyboard conversation.Keyboard) error {
	s.logger.InfoContext(ctx, "outbound message",
		"user_id", userID,
		"keyboard", keyboardName(keyboard),
		"text", text,
	)
	return nil
}
