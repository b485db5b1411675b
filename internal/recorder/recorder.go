package recorder

import "time"

// TurnEvent holds one answered question.
type TurnEvent struct {
	SessionID  string
	Channel    string // "cli", "telegram", "ask"
	At         time.Time
	Input      string
	Intents    string // comma-separated intent names
	Rule       string
	Asset      string
	Disclaimer bool
}

// SessionEvent summarizes a finished conversation.
type SessionEvent struct {
	SessionID string
	Channel   string
	StartedAt time.Time
	EndedAt   time.Time
	Turns     int
	EndReason string // "exit", "eof", "interrupt"
}

// Recorder keeps an audit trail of conversations. The bot never reads it back.
type Recorder interface {
	RecordTurn(evt *TurnEvent) error
	RecordSession(evt *SessionEvent) error
	Close() error
}
