// Package dispatch delivers finished dossiers to the two sinks: the intake
// request store and the reviewer notifications. Persistence is fatal for the
// conversation's finalize step; a single reviewer's failed notification is
// not.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"intake-gateway/internal/conversation"
	"intake-gateway/internal/platform/metrics"
)

// RequestStore persists completed intake requests.
type RequestStore interface {
	Save(ctx context.Context, dossier conversation.Dossier) error
}

// Notifier delivers one reviewer notification.
type Notifier interface {
	Notify(ctx context.Context, reviewerID, text string) error
}

// Dispatcher fans a dossier out: persist first, then one independent
// notification per configured reviewer.
type Dispatcher struct {
	store     RequestStore
	notifier  Notifier
	reviewers []string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func New(store RequestStore, notifier Notifier, reviewers []string, opts ...Option) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("request store is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}

	d := &Dispatcher{
		store:     store,
		notifier:  notifier,
		reviewers: reviewers,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch persists the dossier and notifies every reviewer. A persistence
// error aborts before any notification; a notification error is logged and
// counted, then delivery continues with the next reviewer.
func (d *Dispatcher) Dispatch(ctx context.Context, dossier conversation.Dossier) error {
	if err := d.store.Save(ctx, dossier); err != nil {
		return fmt.Errorf("persist intake request: %w", err)
	}

	text := ReviewerMessage(dossier)
	for _, reviewer := range d.reviewers {
		if err := d.notifier.Notify(ctx, reviewer, text); err != nil {
			if d.metrics != nil {
				d.metrics.ReviewerFailures.Inc()
			}
			d.logger.ErrorContext(ctx, "reviewer notification failed",
				"reviewer_id", reviewer,
				"request_id", dossier.ID,
				"error", err,
			)
		}
	}
	return nil
}

// ReviewerMessage renders the notification text for one dossier.
func ReviewerMessage(d conversation.Dossier) string {
	var b strings.Builder
	b.WriteString("Новая заявка:\n")
	fmt.Fprintf(&b, "Пользователь: @%s (ID: %s)\n", d.DisplayName, d.UserID)
	fmt.Fprintf(&b, "Телефон: %s\n", d.Phone)
	fmt.Fprintf(&b, "ФИО: %s\n", d.FullName)
	fmt.Fprintf(&b, "СНИЛС: %s\n", orDash(d.SNILS))
	fmt.Fprintf(&b, "Паспорт: %s\n\n", orDash(d.Passport))
	fmt.Fprintf(&b, "Результаты проверки:\n%s", d.DocumentReport)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
