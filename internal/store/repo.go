package store

import (
	"time"
)

// EventKind is a session lifecycle transition.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventEmpty     EventKind = "empty"
	EventFinished  EventKind = "finished"
	EventAbandoned EventKind = "abandoned"
)

// SessionEvent is one lifecycle transition of a study session. Exam
// results are never recorded, only positions and card counts.
type SessionEvent struct {
	Sequence  int64
	SessionID string
	Mode      string
	Kind      EventKind
	Position  int
	Total     int
	At        time.Time
}

// SyncFailure is a progress write the backend did not acknowledge.
type SyncFailure struct {
	Sequence int64
	CardID   int
	Status   string
	Cause    string
	At       time.Time
}

// defaultLimit caps Recent* queries when the caller passes 0.
const defaultLimit = 50
