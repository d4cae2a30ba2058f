package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestMessageHandler_SendAndList(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")

	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/messages",
		body:     map[string]string{"message": "hello everyone"},
		playerID: players[0].ID,
		roomID:   room.RoomID,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var sent struct {
		Seq      int64  `json:"seq"`
		Nickname string `json:"nickname"`
		Message  string `json:"message"`
	}
	decodeData(t, w, &sent)

	if sent.Nickname != "alice" {
		t.Errorf("Expected nickname 'alice', got %s", sent.Nickname)
	}
	if sent.Message != "hello everyone" {
		t.Errorf("Expected the message body back, got %q", sent.Message)
	}

	// Full history: bob's join notice plus the chat message.
	w = env.do(t, testRequest{method: "GET", path: "/api/v1/rooms/" + room.RoomID + "/messages"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var list struct {
		Messages []struct {
			Seq     int64  `json:"seq"`
			System  bool   `json:"system"`
			Message string `json:"message"`
		} `json:"messages"`
		LastSeq int64 `json:"last_seq"`
	}
	decodeData(t, w, &list)

	if len(list.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(list.Messages))
	}
	if !list.Messages[0].System {
		t.Error("Expected the first message to be the system join notice")
	}
	if list.LastSeq != sent.Seq {
		t.Errorf("Expected last_seq %d, got %d", sent.Seq, list.LastSeq)
	}

	// Delta fetch past the last seen message is empty.
	w = env.do(t, testRequest{
		method: "GET",
		path:   fmt.Sprintf("/api/v1/rooms/%s/messages?after_seq=%d", room.RoomID, list.LastSeq),
	})
	var delta struct {
		Messages []struct{} `json:"messages"`
		LastSeq  int64      `json:"last_seq"`
	}
	decodeData(t, w, &delta)

	if len(delta.Messages) != 0 {
		t.Errorf("Expected an empty delta, got %d messages", len(delta.Messages))
	}
	if delta.LastSeq != list.LastSeq {
		t.Errorf("Expected last_seq to carry over as %d, got %d", list.LastSeq, delta.LastSeq)
	}
}

func TestMessageHandler_SendLargeImage(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")

	body := "[image:data:image/jpeg;base64," + strings.Repeat("B", 10000) + "]"

	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/messages",
		body:     map[string]string{"message": body},
		playerID: players[0].ID,
		roomID:   room.RoomID,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 for an image message, got %d: %s", w.Code, w.Body.String())
	}

	var sent struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
	}
	decodeData(t, w, &sent)

	if sent.Kind != "image" {
		t.Errorf("Expected kind 'image', got %s", sent.Kind)
	}
	if len(sent.Content) < 10000 {
		t.Errorf("Expected the full data URL back, got %d chars", len(sent.Content))
	}
}

func TestMessageHandler_SendValidation(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")

	cases := []struct {
		name string
		body map[string]string
	}{
		{"empty", map[string]string{"message": ""}},
		{"whitespace", map[string]string{"message": "   "}},
		{"too long", map[string]string{"message": strings.Repeat("a", 2001)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, testRequest{
				method:   "POST",
				path:     "/api/v1/rooms/" + room.RoomID + "/messages",
				body:     tc.body,
				playerID: players[0].ID,
				roomID:   room.RoomID,
			})
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestMessageHandler_SendRequiresSession(t *testing.T) {
	env := newHandlerEnv(t)
	room, _ := env.createRoom(t, "alice", "bob")

	w := env.do(t, testRequest{
		method: "POST",
		path:   "/api/v1/rooms/" + room.RoomID + "/messages",
		body:   map[string]string{"message": "hello"},
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMessageHandler_Typing(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")

	// Bob starts typing.
	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/typing",
		body:     map[string]bool{"typing": true},
		playerID: players[1].ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	// Alice sees bob typing.
	w = env.do(t, testRequest{
		method:   "GET",
		path:     "/api/v1/rooms/" + room.RoomID + "/typing",
		playerID: players[0].ID,
		roomID:   room.RoomID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var typing struct {
		Typing []string `json:"typing"`
	}
	decodeData(t, w, &typing)
	if len(typing.Typing) != 1 || typing.Typing[0] != "bob" {
		t.Errorf("Expected ['bob'], got %v", typing.Typing)
	}

	// Bob does not see himself.
	w = env.do(t, testRequest{
		method:   "GET",
		path:     "/api/v1/rooms/" + room.RoomID + "/typing",
		playerID: players[1].ID,
		roomID:   room.RoomID,
	})
	decodeData(t, w, &typing)
	if len(typing.Typing) != 0 {
		t.Errorf("Expected bob's own view to be empty, got %v", typing.Typing)
	}

	// Spectators see everyone.
	w = env.do(t, testRequest{
		method: "GET",
		path:   "/api/v1/rooms/" + room.RoomID + "/typing",
	})
	decodeData(t, w, &typing)
	if len(typing.Typing) != 1 {
		t.Errorf("Expected the spectator view to include bob, got %v", typing.Typing)
	}
}

func TestMessageHandler_SetTypingRequiresFlag(t *testing.T) {
	env := newHandlerEnv(t)
	room, players := env.createRoom(t, "alice", "bob")

	w := env.do(t, testRequest{
		method:   "POST",
		path:     "/api/v1/rooms/" + room.RoomID + "/typing",
		body:     map[string]string{},
		playerID: players[0].ID,
		roomID:   room.RoomID,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}
