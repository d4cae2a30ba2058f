package response

import (
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/service"
)

// TurnResponse represents a turn response
type TurnResponse struct {
	ID            string `json:"id"`
	CurrentPlayer string `json:"current_player"`
	Type          string `json:"type,omitempty"`
	Question      string `json:"question,omitempty"`
	Completed     bool   `json:"completed"`
	CompletedAt   string `json:"completed_at,omitempty"`
}

// NewTurnResponse creates a turn response from model
func NewTurnResponse(t *model.Turn) *TurnResponse {
	resp := &TurnResponse{
		ID:            t.ID,
		CurrentPlayer: t.CurrentPlayer,
		Type:          string(t.Type),
		Question:      t.Question,
		Completed:     t.Completed,
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// GameStateResponse represents the full derived room state a polling
// client needs to render
type GameStateResponse struct {
	Phase         string            `json:"phase"`
	Room          *RoomResponse     `json:"room"`
	Turn          *TurnResponse     `json:"turn,omitempty"`
	CurrentPlayer *PlayerResponse   `json:"current_player,omitempty"`
	Players       []*PlayerResponse `json:"players"`
}

// NewGameStateResponse creates a game state response
func NewGameStateResponse(state *service.GameState) *GameStateResponse {
	resp := &GameStateResponse{
		Phase:   string(state.Phase),
		Room:    NewRoomResponse(state.Room),
		Players: NewPlayerListResponse(state.ActivePlayers),
	}
	if state.Turn != nil {
		resp.Turn = NewTurnResponse(state.Turn)
	}
	if state.CurrentPlayer != nil {
		resp.CurrentPlayer = NewPlayerResponse(state.CurrentPlayer)
	}
	return resp
}
