package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/catalog"
	"github.com/Rohit1301k/dareroom/internal/middleware"
	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"github.com/Rohit1301k/dareroom/internal/service"
	"github.com/Rohit1301k/dareroom/internal/store"
	"go.uber.org/zap"
)

// Test session headers resolved by the stand-in middleware below, so
// handler tests run without Redis.
const (
	testPlayerHeader = "X-Test-Player"
	testRoomHeader   = "X-Test-Room"
)

type handlerEnv struct {
	router   *gin.Engine
	rooms    *service.RoomService
	games    *service.GameService
	messages *service.MessageService
	presence *service.PresenceService
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	s, err := store.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := zap.NewNop()
	roomRepo := repository.NewRoomRepository(s)
	playerRepo := repository.NewPlayerRepository(s)
	turnRepo := repository.NewTurnRepository(s)
	messageRepo := repository.NewMessageRepository(s)
	questionRepo := repository.NewQuestionRepository(s)

	if _, err := questionRepo.SeedIfEmpty(context.Background(), catalog.Questions()); err != nil {
		t.Fatalf("Failed to seed questions: %v", err)
	}

	env := &handlerEnv{
		rooms:    service.NewRoomService(roomRepo, playerRepo, messageRepo, 6, logger),
		games:    service.NewGameService(roomRepo, playerRepo, turnRepo, messageRepo, questionRepo, 2, logger),
		messages: service.NewMessageService(roomRepo, playerRepo, messageRepo, 2000, logger),
		presence: service.NewPresenceService(roomRepo, playerRepo, 3*time.Second, logger),
	}

	// Session minting needs Redis; endpoints that touch it are covered
	// by the integration test in room_handler_test.go.
	roomHandler := NewRoomHandler(env.rooms, nil)
	gameHandler := NewGameHandler(env.games)
	messageHandler := NewMessageHandler(env.messages, env.presence)

	router := gin.New()

	// Stand-in for session resolution: the caller's identity comes
	// from request headers instead of a token lookup.
	router.Use(func(c *gin.Context) {
		if playerID := c.GetHeader(testPlayerHeader); playerID != "" {
			c.Set(middleware.PlayerIDKey, playerID)
			c.Set(middleware.RoomIDKey, c.GetHeader(testRoomHeader))
		}
		c.Next()
	})

	rooms := router.Group("/api/v1/rooms")
	{
		rooms.GET("/:code", roomHandler.Get)
		rooms.POST("/:code/leave", roomHandler.Leave)

		rooms.GET("/:code/state", gameHandler.State)
		rooms.POST("/:code/start", gameHandler.Start)
		rooms.POST("/:code/choose", gameHandler.Choose)
		rooms.POST("/:code/question/change", gameHandler.ChangeQuestion)
		rooms.POST("/:code/complete", gameHandler.Complete)
		rooms.POST("/:code/end", gameHandler.End)

		rooms.GET("/:code/messages", messageHandler.List)
		rooms.POST("/:code/messages", messageHandler.Send)
		rooms.GET("/:code/typing", messageHandler.Typing)
		rooms.POST("/:code/typing", messageHandler.SetTyping)
	}

	env.router = router
	return env
}

// createRoom seeds a room through the service layer and returns it with
// its players, host first.
func (env *handlerEnv) createRoom(t *testing.T, host string, others ...string) (*model.Room, []*model.Player) {
	t.Helper()
	ctx := context.Background()

	room, hostPlayer, err := env.rooms.Create(ctx, &service.CreateRoomInput{
		Nickname:   host,
		Type:       model.RoomTypeFriends,
		Categories: []string{catalog.CategoryFunny, catalog.CategoryEmotional},
	})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}

	players := []*model.Player{hostPlayer}
	for _, nickname := range others {
		_, p, err := env.rooms.Join(ctx, &service.JoinRoomInput{Code: room.RoomID, Nickname: nickname})
		if err != nil {
			t.Fatalf("Failed to join %s: %v", nickname, err)
		}
		players = append(players, p)
	}
	return room, players
}

type testRequest struct {
	method string
	path   string
	body   interface{}

	// identity injected via the stand-in session middleware
	playerID string
	roomID   string
}

func (env *handlerEnv) buildRequest(t *testing.T, r testRequest) *http.Request {
	t.Helper()

	var reader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(r.method, r.path, reader)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.playerID != "" {
		req.Header.Set(testPlayerHeader, r.playerID)
		req.Header.Set(testRoomHeader, r.roomID)
	}
	return req
}

func (env *handlerEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *handlerEnv) do(t *testing.T, r testRequest) *httptest.ResponseRecorder {
	t.Helper()
	return env.serve(env.buildRequest(t, r))
}

// decodeData unmarshals the "data" field of the response envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to parse response envelope: %v (body: %s)", err, w.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("Expected a success envelope, got: %s", w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("Failed to parse response data: %v (body: %s)", err, w.Body.String())
		}
	}
}
