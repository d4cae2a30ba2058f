package handler

import (
	"net/http"
	"testing"
)

func TestGameHandler_StateBeforeStart(t *testing.T) {
	env := newHandlerEnv(t)
	room, _ := env.createRoom(t, "alice", "bob")

	w := env.do(t, testRequest{method: "GET", path: "/api/v1/rooms/" + room.RoomID + "/state"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var data struct {
		Phase   string `json:"phase"`
		Players []struct {
			Nickname string `json:"nickname"`
		} `json:"players"`
	}
	decodeData(t, w, &data)

	if data.Phase != "not_started" {
		t.Errorf("Expected phase 'not_started', got %s", data.Phase)
	}
	if len(data.Players) != 2 {
		t.Errorf("Expected 2 players, got %d", len(data.Players))
	}
}

func TestGameHandler_StartRequiresHost(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")

	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/start",
		playerID: players[1].ID,
		roomID:   room.RoomID,
	})

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGameHandler_StartRequiresSession(t *testing.T) {
	env := newHandlerEnv(t)
	room, _ := env.createRoom(t, "alice", "bob")

	w := env.do(t, testRequest{
		method: "POST",
		path:   "/api/v1/rooms/" + room.RoomID + "/start",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGameHandler_FullTurnFlow(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")
	host := players[0]

	// Start the game.
	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/start",
		playerID: host.ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on start, got %d: %s", w.Code, w.Body.String())
	}

	var turn struct {
		PlayerID string `json:"current_player"`
		Type     string `json:"type"`
	}
	decodeData(t, w, &turn)
	if turn.Type != "" {
		t.Errorf("Expected no choice yet, got %q", turn.Type)
	}

	// The drawn player chooses truth.
	w = env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/choose",
		body:     map[string]string{"type": "truth"},
		playerID: turn.PlayerID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on choose, got %d: %s", w.Code, w.Body.String())
	}

	var chosen struct {
		Type     string `json:"type"`
		Question string `json:"question"`
	}
	decodeData(t, w, &chosen)
	if chosen.Type != "truth" {
		t.Errorf("Expected type 'truth', got %s", chosen.Type)
	}
	if chosen.Question == "" {
		t.Error("Expected a question to be drawn")
	}

	// A fresh question of the same type on request.
	w = env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/question/change",
		playerID: turn.PlayerID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on question change, got %d: %s", w.Code, w.Body.String())
	}
	var changed struct {
		Type string `json:"type"`
	}
	decodeData(t, w, &changed)
	if changed.Type != "truth" {
		t.Errorf("Expected the choice to survive a redraw, got %s", changed.Type)
	}

	// Complete the turn; it passes to the other player.
	w = env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/complete",
		playerID: turn.PlayerID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on complete, got %d: %s", w.Code, w.Body.String())
	}

	var next struct {
		PlayerID string `json:"current_player"`
	}
	decodeData(t, w, &next)
	if next.PlayerID == turn.PlayerID {
		t.Error("Expected the turn to pass to the other player")
	}

	// State reflects the new turn.
	w = env.do(t, testRequest{method: "GET", path: "/api/v1/rooms/" + room.RoomID + "/state"})
	var state struct {
		Phase         string `json:"phase"`
		CurrentPlayer *struct {
			ID string `json:"id"`
		} `json:"current_player"`
	}
	decodeData(t, w, &state)
	if state.Phase != "awaiting_choice" {
		t.Errorf("Expected phase 'awaiting_choice', got %s", state.Phase)
	}
	if state.CurrentPlayer == nil || state.CurrentPlayer.ID != next.PlayerID {
		t.Errorf("Expected current player %s, got %+v", next.PlayerID, state.CurrentPlayer)
	}
}

func TestGameHandler_ChooseRejectsBadType(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")
	host := players[0]

	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/start",
		playerID: host.ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on start, got %d: %s", w.Code, w.Body.String())
	}
	var turn struct {
		PlayerID string `json:"current_player"`
	}
	decodeData(t, w, &turn)

	w = env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/choose",
		body:     map[string]string{"type": "double-dare"},
		playerID: turn.PlayerID,
		roomID:   room.RoomID,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGameHandler_End(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")
	host := players[0]

	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/start",
		playerID: host.ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on start, got %d: %s", w.Code, w.Body.String())
	}

	// Guests cannot end the game.
	w = env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/end",
		playerID: players[1].ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for a guest, got %d", w.Code)
	}

	w = env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/end",
		playerID: host.ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	// The room now reads as ended.
	w = env.do(t, testRequest{method: "GET", path: "/api/v1/rooms/" + room.RoomID + "/state"})
	var state struct {
		Phase string `json:"phase"`
	}
	decodeData(t, w, &state)
	if state.Phase != "ended" {
		t.Errorf("Expected phase 'ended', got %s", state.Phase)
	}
}
