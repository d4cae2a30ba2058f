package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	apperrors "github.com/Rohit1301k/dareroom/internal/pkg/errors"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"github.com/Rohit1301k/dareroom/internal/store"
	"go.uber.org/zap"
)

// GameService is the turn state machine. Nothing here is stored as
// state; every decision is derived from the turns log, the player
// roster and the room record at call time, so it inherits exactly the
// store's consistency guarantees.
type GameService struct {
	roomRepo     *repository.RoomRepository
	playerRepo   *repository.PlayerRepository
	turnRepo     *repository.TurnRepository
	messageRepo  *repository.MessageRepository
	questionRepo *repository.QuestionRepository
	minPlayers   int
	logger       *zap.Logger
}

func NewGameService(
	roomRepo *repository.RoomRepository,
	playerRepo *repository.PlayerRepository,
	turnRepo *repository.TurnRepository,
	messageRepo *repository.MessageRepository,
	questionRepo *repository.QuestionRepository,
	minPlayers int,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		roomRepo:     roomRepo,
		playerRepo:   playerRepo,
		turnRepo:     turnRepo,
		messageRepo:  messageRepo,
		questionRepo: questionRepo,
		minPlayers:   minPlayers,
		logger:       logger,
	}
}

// GameState is the derived view pollers consume.
type GameState struct {
	Phase         model.Phase
	Room          *model.Room
	Turn          *model.Turn
	CurrentPlayer *model.Player
	ActivePlayers []*model.Player
}

// State reconstructs the room's phase from the turns log and roster.
func (s *GameService) State(ctx context.Context, code string) (*GameState, error) {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	players, err := s.playerRepo.ListActive(ctx, room.RoomID)
	if err != nil {
		s.logger.Error("Failed to list players", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	state := &GameState{
		Room:          room,
		ActivePlayers: players,
	}

	if !room.Active {
		state.Phase = model.PhaseEnded
		return state, nil
	}

	turn, err := s.turnRepo.Current(ctx, room.RoomID)
	if err != nil {
		s.logger.Error("Failed to get current turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	state.Turn = turn
	state.Phase = turn.Phase()
	if turn != nil {
		for _, p := range players {
			if p.ID == turn.CurrentPlayer {
				state.CurrentPlayer = p
				break
			}
		}
	}
	return state, nil
}

// Start begins the game: host only, before any turn exists, with
// enough active players. A random player goes first, with an empty
// turn awaiting their truth-or-dare choice.
func (s *GameService) Start(ctx context.Context, code, playerID string) (*model.Turn, error) {
	room, actor, err := s.loadLiveRoom(ctx, code, playerID)
	if err != nil {
		return nil, err
	}
	if !actor.IsHost {
		return nil, apperrors.ErrNotHost
	}

	current, err := s.turnRepo.Current(ctx, room.RoomID)
	if err != nil {
		s.logger.Error("Failed to get current turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if current != nil {
		return nil, apperrors.ErrGameAlreadyStarted
	}

	players, err := s.playerRepo.ListActive(ctx, room.RoomID)
	if err != nil {
		s.logger.Error("Failed to list players", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if len(players) < s.minPlayers {
		return nil, apperrors.ErrNotEnoughPlayers
	}

	first := players[rand.Intn(len(players))]
	turn := &model.Turn{
		RoomID:        room.RoomID,
		CurrentPlayer: first.ID,
	}
	if err := s.turnRepo.Append(ctx, turn); err != nil {
		s.logger.Error("Failed to append first turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.systemMessage(ctx, room.RoomID, fmt.Sprintf("Game started! %s goes first.", first.Nickname))

	s.logger.Info("Game started",
		zap.String("room_id", room.RoomID),
		zap.String("first_player", first.Nickname),
	)
	return turn, nil
}

// Choose records the current player's truth-or-dare choice and draws
// their question from the room's categories.
func (s *GameService) Choose(ctx context.Context, code, playerID string, choice model.TurnType) (*model.Turn, error) {
	room, actor, err := s.loadLiveRoom(ctx, code, playerID)
	if err != nil {
		return nil, err
	}

	turn, err := s.currentTurnFor(ctx, room.RoomID, actor.ID)
	if err != nil {
		return nil, err
	}
	if turn.Type != "" {
		return nil, apperrors.ErrQuestionPending
	}

	question, err := s.questionRepo.Random(ctx, room.Categories, choice)
	if err != nil {
		if errors.Is(err, repository.ErrNoQuestions) {
			return nil, apperrors.ErrNoQuestions
		}
		s.logger.Error("Failed to draw question", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	updated, err := s.turnRepo.Update(ctx, turn.ID, store.Record{
		"type":     string(choice),
		"question": question.Text,
	})
	if err != nil {
		s.logger.Error("Failed to update turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.systemMessage(ctx, room.RoomID, fmt.Sprintf("%s chose %s.", actor.Nickname, strings.ToUpper(string(choice))))
	return updated, nil
}

// ChangeQuestion redraws a question of the same type for the acting
// player's own active turn. The draw is independent, so a previously
// seen question can come up again.
func (s *GameService) ChangeQuestion(ctx context.Context, code, playerID string) (*model.Turn, error) {
	room, actor, err := s.loadLiveRoom(ctx, code, playerID)
	if err != nil {
		return nil, err
	}

	turn, err := s.currentTurnFor(ctx, room.RoomID, actor.ID)
	if err != nil {
		return nil, err
	}
	if turn.Type == "" {
		return nil, apperrors.ErrChoicePending
	}

	question, err := s.questionRepo.Random(ctx, room.Categories, turn.Type)
	if err != nil {
		if errors.Is(err, repository.ErrNoQuestions) {
			return nil, apperrors.ErrNoQuestions
		}
		s.logger.Error("Failed to draw question", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	updated, err := s.turnRepo.Update(ctx, turn.ID, store.Record{
		"question": question.Text,
	})
	if err != nil {
		s.logger.Error("Failed to update turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.systemMessage(ctx, room.RoomID, fmt.Sprintf("%s changed their question.", actor.Nickname))
	return updated, nil
}

// Complete finishes the current turn and hands play to the next
// player. The rotation order is the active roster as it stands right
// now, not a stored ring: players who left are skipped, newcomers are
// slotted in, and the order wraps modulo the roster size. With fewer
// than two active players the transition is refused and the game
// stalls on the active question until someone rejoins.
func (s *GameService) Complete(ctx context.Context, code, playerID string) (*model.Turn, error) {
	room, actor, err := s.loadLiveRoom(ctx, code, playerID)
	if err != nil {
		return nil, err
	}

	turn, err := s.currentTurnFor(ctx, room.RoomID, actor.ID)
	if err != nil {
		return nil, err
	}
	if turn.Type == "" {
		return nil, apperrors.ErrChoicePending
	}

	players, err := s.playerRepo.ListActive(ctx, room.RoomID)
	if err != nil {
		s.logger.Error("Failed to list players", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if len(players) < s.minPlayers {
		return nil, apperrors.ErrNotEnoughPlayers
	}

	next := nextPlayer(players, turn.CurrentPlayer)

	now := time.Now().UTC()
	if _, err := s.turnRepo.Update(ctx, turn.ID, store.Record{
		"completed":    true,
		"completed_at": now.Format(time.RFC3339Nano),
	}); err != nil {
		s.logger.Error("Failed to complete turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	newTurn := &model.Turn{
		RoomID:        room.RoomID,
		CurrentPlayer: next.ID,
	}
	if err := s.turnRepo.Append(ctx, newTurn); err != nil {
		s.logger.Error("Failed to append next turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.systemMessage(ctx, room.RoomID,
		fmt.Sprintf("%s completed their turn. It's now %s's turn.", actor.Nickname, next.Nickname))

	s.logger.Info("Turn completed",
		zap.String("room_id", room.RoomID),
		zap.String("player", actor.Nickname),
		zap.String("next", next.Nickname),
	)
	return newTurn, nil
}

// End closes the room for good. Host only; every later read derives
// the terminal phase from the room's active flag.
func (s *GameService) End(ctx context.Context, code, playerID string) error {
	room, actor, err := s.loadLiveRoom(ctx, code, playerID)
	if err != nil {
		return err
	}
	if !actor.IsHost {
		return apperrors.ErrNotHost
	}

	if _, err := s.roomRepo.SetActive(ctx, room.ID, false); err != nil {
		s.logger.Error("Failed to close room", zap.Error(err))
		return apperrors.ErrInternal
	}

	s.systemMessage(ctx, room.RoomID, "Game ended by the host.")

	s.logger.Info("Game ended", zap.String("room_id", room.RoomID))
	return nil
}

// loadLiveRoom resolves the room and the acting player, refusing
// closed rooms and actors who do not belong to the room.
func (s *GameService) loadLiveRoom(ctx context.Context, code, playerID string) (*model.Room, *model.Player, error) {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}
	if !room.Active {
		return nil, nil, apperrors.ErrRoomClosed
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return nil, nil, apperrors.ErrPlayerNotFound
		}
		s.logger.Error("Failed to get player", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}
	if player.RoomID != room.RoomID || !player.Active {
		return nil, nil, apperrors.ErrWrongRoom
	}

	return room, player, nil
}

// currentTurnFor returns the room's current turn, refusing callers who
// are not the player it belongs to. Wrong-actor attempts change
// nothing.
func (s *GameService) currentTurnFor(ctx context.Context, code, playerID string) (*model.Turn, error) {
	turn, err := s.turnRepo.Current(ctx, code)
	if err != nil {
		s.logger.Error("Failed to get current turn", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if turn == nil {
		return nil, apperrors.ErrGameNotStarted
	}
	if turn.CurrentPlayer != playerID {
		return nil, apperrors.ErrNotYourTurn
	}
	return turn, nil
}

// nextPlayer picks the entry after current in the roster, wrapping
// around. If the current player is no longer in the roster the first
// entry goes next.
func nextPlayer(players []*model.Player, currentID string) *model.Player {
	idx := -1
	for i, p := range players {
		if p.ID == currentID {
			idx = i
			break
		}
	}
	return players[(idx+1)%len(players)]
}

func (s *GameService) systemMessage(ctx context.Context, code, text string) {
	if err := s.messageRepo.AppendSystem(ctx, code, text); err != nil {
		s.logger.Warn("Failed to append system message",
			zap.String("room_id", code),
			zap.Error(err),
		)
	}
}
