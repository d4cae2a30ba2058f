package model

import "time"

type TurnType string

const (
	TurnTypeTruth TurnType = "truth"
	TurnTypeDare  TurnType = "dare"
)

// ValidTurnType reports whether t is truth or dare.
func ValidTurnType(t TurnType) bool {
	return t == TurnTypeTruth || t == TurnTypeDare
}

// Phase is the derived game state for a room, reconstructed from the
// turns log rather than stored anywhere.
type Phase string

const (
	PhaseNotStarted     Phase = "not_started"
	PhaseAwaitingChoice Phase = "awaiting_choice"
	PhaseQuestionActive Phase = "question_active"
	PhaseEnded          Phase = "ended"
)

// Turn is one entry in a room's append-only turn log. The entry with
// the greatest seq for a room is the authoritative current turn; all
// older entries are inert history.
type Turn struct {
	ID            string     `json:"id,omitempty"`
	Seq           int64      `json:"seq,omitempty"`
	RoomID        string     `json:"room_id"`
	CurrentPlayer string     `json:"current_player"`
	Timestamp     time.Time  `json:"timestamp"`
	Type          TurnType   `json:"type,omitempty"`
	Question      string     `json:"question,omitempty"`
	Completed     bool       `json:"completed,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Phase derives the room phase from this turn, assuming the owning
// room is still active. A nil turn means the game has not started.
// A completed turn at the head of the log means its successor has not
// been appended yet; the room reads as awaiting the next choice, and a
// repeated Complete by the same player appends the missing turn.
func (t *Turn) Phase() Phase {
	if t == nil {
		return PhaseNotStarted
	}
	if t.Completed || t.Type == "" {
		return PhaseAwaitingChoice
	}
	return PhaseQuestionActive
}
