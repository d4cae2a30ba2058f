package model

import "time"

type RoomType string

const (
	RoomTypePartner RoomType = "partner" // 2 people
	RoomTypeFriends RoomType = "friends" // 3-5 people
	RoomTypeGroup   RoomType = "group"   // 5+ people
)

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypePartner, RoomTypeFriends, RoomTypeGroup:
		return true
	}
	return false
}

// Room is one game room. RoomID is the human-entered join code,
// canonically uppercase and compared case-insensitively. Active=false
// marks the room permanently closed; room records are never deleted.
type Room struct {
	ID           string    `json:"id,omitempty"`
	Seq          int64     `json:"seq,omitempty"`
	RoomID       string    `json:"room_id"`
	HostNickname string    `json:"host_nickname"`
	Type         RoomType  `json:"type"`
	Categories   []string  `json:"categories"`
	CreatedAt    time.Time `json:"created_at"`
	Active       bool      `json:"active"`
}

// HasCategory checks if the room draws questions from the category.
func (r *Room) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}
