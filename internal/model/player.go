package model

import "time"

// Player is one participant in a room. Active=false marks a
// soft-departed player; player records are never deleted, so nickname
// history and turn references stay resolvable.
type Player struct {
	ID        string     `json:"id,omitempty"`
	Seq       int64      `json:"seq,omitempty"`
	RoomID    string     `json:"room_id"`
	Nickname  string     `json:"nickname"`
	IsHost    bool       `json:"is_host"`
	JoinedAt  time.Time  `json:"joined_at"`
	Active    bool       `json:"active"`
	IsTyping  bool       `json:"is_typing,omitempty"`
	LastTyped *time.Time `json:"last_typed,omitempty"`
}

// TypingAt computes the effective typing state: the stored flag only
// counts while the last keystroke is younger than expiry. Stale flags
// are a read-time concern, the stored value is never cleaned up.
func (p *Player) TypingAt(now time.Time, expiry time.Duration) bool {
	if !p.IsTyping || p.LastTyped == nil {
		return false
	}
	return now.Sub(*p.LastTyped) < expiry
}
