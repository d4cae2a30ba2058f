package service

import (
	"context"
	"testing"
	"time"

	"github.com/Rohit1301k/dareroom/internal/catalog"
	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"github.com/Rohit1301k/dareroom/internal/store"
	"go.uber.org/zap"
)

// testEnv wires every service over a file store in a temp directory.
type testEnv struct {
	rooms    *RoomService
	games    *GameService
	messages *MessageService
	presence *PresenceService

	roomRepo     *repository.RoomRepository
	playerRepo   *repository.PlayerRepository
	turnRepo     *repository.TurnRepository
	messageRepo  *repository.MessageRepository
	questionRepo *repository.QuestionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := zap.NewNop()
	env := &testEnv{
		roomRepo:     repository.NewRoomRepository(s),
		playerRepo:   repository.NewPlayerRepository(s),
		turnRepo:     repository.NewTurnRepository(s),
		messageRepo:  repository.NewMessageRepository(s),
		questionRepo: repository.NewQuestionRepository(s),
	}

	if _, err := env.questionRepo.SeedIfEmpty(context.Background(), catalog.Questions()); err != nil {
		t.Fatalf("Failed to seed questions: %v", err)
	}

	env.rooms = NewRoomService(env.roomRepo, env.playerRepo, env.messageRepo, 6, logger)
	env.games = NewGameService(env.roomRepo, env.playerRepo, env.turnRepo, env.messageRepo, env.questionRepo, 2, logger)
	env.messages = NewMessageService(env.roomRepo, env.playerRepo, env.messageRepo, 2000, logger)
	env.presence = NewPresenceService(env.roomRepo, env.playerRepo, 3*time.Second, logger)

	return env
}

// createRoom creates a room with a host and joins the extra nicknames.
func (e *testEnv) createRoom(t *testing.T, host string, others ...string) (*model.Room, []*model.Player) {
	t.Helper()
	ctx := context.Background()

	room, hostPlayer, err := e.rooms.Create(ctx, &CreateRoomInput{
		Nickname:   host,
		Type:       model.RoomTypeFriends,
		Categories: []string{catalog.CategoryFunny, catalog.CategoryEmotional},
	})
	if err != nil {
		t.Fatalf("Create room failed: %v", err)
	}

	players := []*model.Player{hostPlayer}
	for _, nickname := range others {
		_, p, err := e.rooms.Join(ctx, &JoinRoomInput{Code: room.RoomID, Nickname: nickname})
		if err != nil {
			t.Fatalf("Join failed for %s: %v", nickname, err)
		}
		players = append(players, p)
	}
	return room, players
}

// lastMessage returns the newest message in the room's log.
func (e *testEnv) lastMessage(t *testing.T, code string) *model.Message {
	t.Helper()

	msgs, err := e.messageRepo.ListByRoom(context.Background(), code)
	if err != nil {
		t.Fatalf("ListByRoom failed: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("Expected at least one message")
	}
	return msgs[len(msgs)-1]
}
