// Package conversation drives the guided-intake dialogue: an allow-listed
// user is walked through phone, full name and identity document, the phone
// is enriched via the lookup sources, and the finished dossier is handed to
// the dispatch sinks.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"intake-gateway/internal/platform/metrics"
	"intake-gateway/internal/validate"
	"intake-gateway/pkg/apperrors"
)

// Keyboard is the opaque hint telling the transport which reply affordance
// to render next to a message.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	// KeyboardSharePhone asks the platform to show its phone-share button.
	KeyboardSharePhone
	// KeyboardRemove hides any previously shown keyboard.
	KeyboardRemove
)

// Sender delivers a reply to the user. The transport behind it is opaque to
// the engine.
type Sender interface {
	Send(ctx context.Context, userID, text string, keyboard Keyboard) error
}

// PhoneAggregator merges the lookup sources into one report. It never fails;
// unavailable sources degrade inside the report.
type PhoneAggregator interface {
	Aggregate(ctx context.Context, phone string) string
}

// DocumentChecker builds the document verification report.
type DocumentChecker interface {
	Report(ctx context.Context, snils, passport string) string
}

// Dispatcher persists a finished dossier and notifies the reviewers. An
// error means persistence failed and the conversation must stay retryable.
type Dispatcher interface {
	Dispatch(ctx context.Context, dossier Dossier) error
}

// Engine is the conversation state machine. One instance serves all users;
// per-user mutations are serialized through sharded locks while different
// users proceed concurrently.
type Engine struct {
	sessions  Store
	allowlist Allowlist
	sender    Sender
	lookups   PhoneAggregator
	documents DocumentChecker
	dispatch  Dispatcher

	logger  *slog.Logger
	metrics *metrics.Metrics
	locks   userLocks
}

type EngineOption func(*Engine)

func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

func NewEngine(
	sessions Store,
	allowlist Allowlist,
	sender Sender,
	lookups PhoneAggregator,
	documents DocumentChecker,
	dispatch Dispatcher,
	opts ...EngineOption,
) (*Engine, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if allowlist == nil {
		return nil, fmt.Errorf("allowlist is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender is required")
	}
	if lookups == nil {
		return nil, fmt.Errorf("phone aggregator is required")
	}
	if documents == nil {
		return nil, fmt.Errorf("document checker is required")
	}
	if dispatch == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	e := &Engine{
		sessions:  sessions,
		allowlist: allowlist,
		sender:    sender,
		lookups:   lookups,
		documents: documents,
		dispatch:  dispatch,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// HandleStart opens a conversation for an allow-listed user. Refusal is an
// expected path: no session is created and no error is returned.
func (e *Engine) HandleStart(ctx context.Context, ev StartEvent) error {
	unlock := e.locks.lock(ev.UserID)
	defer unlock()

	if !e.allowlist.IsAuthorized(ev.UserID) {
		if e.metrics != nil {
			e.metrics.ConversationsRefused.Inc()
		}
		e.logger.DebugContext(ctx, "start refused", "user_id", ev.UserID)
		return e.sender.Send(ctx, ev.UserID, msgAccessDenied, KeyboardNone)
	}

	session := Session{
		UserID:      ev.UserID,
		DisplayName: ev.DisplayName,
		Stage:       StageAwaitingPhone,
	}
	if err := e.sessions.Save(ctx, session); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "create session")
	}

	if e.metrics != nil {
		e.metrics.ConversationsStarted.Inc()
	}
	return e.sender.Send(ctx, ev.UserID, msgGreeting, KeyboardSharePhone)
}

// HandleContact consumes a structured phone share.
func (e *Engine) HandleContact(ctx context.Context, ev ContactEvent) error {
	unlock := e.locks.lock(ev.UserID)
	defer unlock()

	if !e.allowlist.IsAuthorized(ev.UserID) {
		return e.sender.Send(ctx, ev.UserID, msgAccessDenied, KeyboardNone)
	}

	session, err := e.sessions.Get(ctx, ev.UserID)
	if errors.Is(err, ErrNotFound) {
		return e.sender.Send(ctx, ev.UserID, msgUseStart, KeyboardNone)
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "load session")
	}

	if session.Stage != StageAwaitingPhone {
		e.logger.DebugContext(ctx, "contact ignored",
			"user_id", ev.UserID, "stage", session.Stage.String())
		return nil
	}

	return e.acceptPhone(ctx, session, ev.PhoneNumber)
}

// HandleText consumes a free-text message and applies it against the
// session's current stage.
func (e *Engine) HandleText(ctx context.Context, ev TextEvent) error {
	unlock := e.locks.lock(ev.UserID)
	defer unlock()

	session, err := e.sessions.Get(ctx, ev.UserID)
	if errors.Is(err, ErrNotFound) {
		return e.sender.Send(ctx, ev.UserID, msgUseStart, KeyboardNone)
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "load session")
	}

	text := strings.TrimSpace(ev.Text)

	switch session.Stage {
	case StageAwaitingPhone:
		// The raw text is stored as the phone; no format rule is enforced.
		return e.acceptPhone(ctx, session, text)
	case StageAwaitingName:
		return e.handleName(ctx, session, text)
	case StageAwaitingDocument:
		return e.handleDocument(ctx, session, text)
	default:
		e.logger.DebugContext(ctx, "text ignored",
			"user_id", ev.UserID, "stage", session.Stage.String())
		return nil
	}
}

func (e *Engine) acceptPhone(ctx context.Context, session Session, phone string) error {
	session.Phone = phone
	session.Stage = StageAwaitingName
	if err := e.sessions.Save(ctx, session); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "save session")
	}
	return e.sender.Send(ctx, session.UserID, msgAskName, KeyboardRemove)
}

func (e *Engine) handleName(ctx context.Context, session Session, text string) error {
	if !validate.FullName(text) {
		if e.metrics != nil {
			e.metrics.IncValidationFailure("full_name")
		}
		return e.sender.Send(ctx, session.UserID, msgNameRetry, KeyboardNone)
	}

	session.FullName = text
	if err := e.sender.Send(ctx, session.UserID, msgNameAccepted, KeyboardNone); err != nil {
		return err
	}

	// The lookup runs synchronously, exactly once per session: the cached
	// report survives even if a later save fails and the user repeats the
	// name.
	if session.LookupReport == "" {
		session.LookupReport = e.lookups.Aggregate(ctx, session.Phone)
	}

	session.Stage = StageAwaitingDocument
	if err := e.sessions.Save(ctx, session); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "save session")
	}

	if err := e.sender.Send(ctx, session.UserID, session.LookupReport, KeyboardNone); err != nil {
		return err
	}
	return e.sender.Send(ctx, session.UserID, msgAskDocument, KeyboardNone)
}

func (e *Engine) handleDocument(ctx context.Context, session Session, text string) error {
	stripped := strings.ReplaceAll(text, " ", "")

	switch {
	case len(text) == 11 && validate.Digits(stripped):
		if !validate.SNILS(text) {
			if e.metrics != nil {
				e.metrics.IncValidationFailure("snils")
			}
			return e.sender.Send(ctx, session.UserID, msgBadSNILS, KeyboardNone)
		}
		session.SNILS = text
	case passportShape(len(text)):
		if !validate.PassportNumber(text) {
			if e.metrics != nil {
				e.metrics.IncValidationFailure("passport")
			}
			return e.sender.Send(ctx, session.UserID, msgBadPassport, KeyboardNone)
		}
		session.Passport = text
	default:
		return e.sender.Send(ctx, session.UserID, msgAskDocumentAgain, KeyboardNone)
	}

	return e.finalize(ctx, session)
}

func passportShape(n int) bool {
	return n == 9 || n == 10 || n == 12 || n == 14
}

// finalize builds the dossier and hands it to the sinks. Persistence failure
// aborts before any session mutation, so the user can resend the document;
// success deletes the session, leaving no observable Done state behind.
func (e *Engine) finalize(ctx context.Context, session Session) error {
	if err := e.sender.Send(ctx, session.UserID, msgChecking, KeyboardNone); err != nil {
		return err
	}

	documentReport := e.documents.Report(ctx, session.SNILS, session.Passport)

	dossier := Dossier{
		ID:             uuid.NewString(),
		UserID:         session.UserID,
		DisplayName:    session.DisplayName,
		Phone:          session.Phone,
		FullName:       session.FullName,
		SNILS:          session.SNILS,
		Passport:       session.Passport,
		LookupReport:   session.LookupReport,
		DocumentReport: documentReport,
		ReceivedAt:     time.Now().UTC(),
	}

	if err := e.dispatch.Dispatch(ctx, dossier); err != nil {
		e.logger.ErrorContext(ctx, "dossier dispatch failed",
			"user_id", session.UserID, "error", err)
		if sendErr := e.sender.Send(ctx, session.UserID, msgDispatchFailed, KeyboardNone); sendErr != nil {
			e.logger.ErrorContext(ctx, "dispatch failure notice not delivered",
				"user_id", session.UserID, "error", sendErr)
		}
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "dispatch dossier")
	}

	if e.metrics != nil {
		e.metrics.ConversationsCompleted.Inc()
	}

	if err := e.sender.Send(ctx, session.UserID, msgAccepted, KeyboardNone); err != nil {
		return err
	}

	if err := e.sessions.Delete(ctx, session.UserID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "clear session")
	}
	return nil
}
