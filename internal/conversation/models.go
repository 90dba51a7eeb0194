package conversation

import "time"

// Stage is the step a conversation is currently waiting on. It strictly
// orders the fields collected so far: Phone is set once the stage passed
// AwaitingPhone, FullName once it passed AwaitingName, and the document
// fields only when the dossier is being finalized.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingPhone
	StageAwaitingName
	StageAwaitingDocument
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAwaitingPhone:
		return "awaiting_phone"
	case StageAwaitingName:
		return "awaiting_name"
	case StageAwaitingDocument:
		return "awaiting_document"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Session is one user's in-progress conversation. It lives in the session
// store from the first authorized /start until the dossier is dispatched.
type Session struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Stage       Stage  `json:"stage"`
	Phone       string `json:"phone,omitempty"`
	FullName    string `json:"full_name,omitempty"`

	// SNILS and Passport are mutually exclusive: whichever document shape
	// the user submitted is set, the other stays empty.
	SNILS    string `json:"snils,omitempty"`
	Passport string `json:"passport,omitempty"`

	// LookupReport caches the merged phone lookup so it runs once per
	// session.
	LookupReport string `json:"lookup_report,omitempty"`
}

// Dossier is the finished, immutable record handed to the persistence and
// notification sinks. It is built once per completed conversation and not
// retained by the engine.
type Dossier struct {
	ID             string
	UserID         string
	DisplayName    string
	Phone          string
	FullName       string
	SNILS          string
	Passport       string
	LookupReport   string
	DocumentReport string
	ReceivedAt     time.Time
}

// Inbound events, abstracted from any specific messaging transport.

// StartEvent is the start command opening a conversation.
type StartEvent struct {
	UserID      string
	DisplayName string
}

// ContactEvent is a structured phone share from the platform UI.
type ContactEvent struct {
	UserID      string
	PhoneNumber string
}

// TextEvent is a free-text message.
type TextEvent struct {
	UserID string
	Text   string
}
