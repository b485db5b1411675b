package recorder

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTurn(_ *TurnEvent) error       { return nil }
func (n *NoopRecorder) RecordSession(_ *SessionEvent) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
