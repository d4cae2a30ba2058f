package response

import (
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
)

// RoomResponse represents a room response
type RoomResponse struct {
	RoomID     string   `json:"room_id"`
	Type       string   `json:"type"`
	Categories []string `json:"categories"`
	Host       string   `json:"host"`
	Active     bool     `json:"active"`
	CreatedAt  string   `json:"created_at"`
}

// NewRoomResponse creates a room response from model
func NewRoomResponse(room *model.Room) *RoomResponse {
	return &RoomResponse{
		RoomID:     room.RoomID,
		Type:       string(room.Type),
		Categories: room.Categories,
		Host:       room.HostNickname,
		Active:     room.Active,
		CreatedAt:  room.CreatedAt.Format(time.RFC3339),
	}
}

// PlayerResponse represents a player response
type PlayerResponse struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	IsHost   bool   `json:"is_host"`
	JoinedAt string `json:"joined_at"`
}

// NewPlayerResponse creates a player response from model
func NewPlayerResponse(p *model.Player) *PlayerResponse {
	return &PlayerResponse{
		ID:       p.ID,
		Nickname: p.Nickname,
		IsHost:   p.IsHost,
		JoinedAt: p.JoinedAt.Format(time.RFC3339),
	}
}

// NewPlayerListResponse converts a roster to responses in join order
func NewPlayerListResponse(players []*model.Player) []*PlayerResponse {
	out := make([]*PlayerResponse, len(players))
	for i, p := range players {
		out[i] = NewPlayerResponse(p)
	}
	return out
}

// RoomDetailResponse represents a room with its active roster
type RoomDetailResponse struct {
	Room    *RoomResponse     `json:"room"`
	Players []*PlayerResponse `json:"players"`
}

// NewRoomDetailResponse creates a detailed room response
func NewRoomDetailResponse(room *model.Room, players []*model.Player) *RoomDetailResponse {
	return &RoomDetailResponse{
		Room:    NewRoomResponse(room),
		Players: NewPlayerListResponse(players),
	}
}

// JoinedRoomResponse represents the result of creating or joining a
// room: the room, the caller's player record and the session token the
// caller must present on every later request.
type JoinedRoomResponse struct {
	Room         *RoomResponse   `json:"room"`
	Player       *PlayerResponse `json:"player"`
	SessionToken string          `json:"session_token"`
}

// NewJoinedRoomResponse creates a join result response
func NewJoinedRoomResponse(room *model.Room, player *model.Player, token string) *JoinedRoomResponse {
	return &JoinedRoomResponse{
		Room:         NewRoomResponse(room),
		Player:       NewPlayerResponse(player),
		SessionToken: token,
	}
}
