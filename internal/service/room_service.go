package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rohit1301k/dareroom/internal/model"
	apperrors "github.com/Rohit1301k/dareroom/internal/pkg/errors"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"go.uber.org/zap"
)

type RoomService struct {
	roomRepo    *repository.RoomRepository
	playerRepo  *repository.PlayerRepository
	messageRepo *repository.MessageRepository
	codeLength  int
	logger      *zap.Logger
}

func NewRoomService(
	roomRepo *repository.RoomRepository,
	playerRepo *repository.PlayerRepository,
	messageRepo *repository.MessageRepository,
	codeLength int,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		playerRepo:  playerRepo,
		messageRepo: messageRepo,
		codeLength:  codeLength,
		logger:      logger,
	}
}

// CreateRoomInput represents room creation input
type CreateRoomInput struct {
	Nickname   string
	Type       model.RoomType
	Categories []string
}

// Create generates a fresh room code, stores the room and its host
// player, and returns both.
func (s *RoomService) Create(ctx context.Context, input *CreateRoomInput) (*model.Room, *model.Player, error) {
	code, err := s.roomRepo.GenerateCode(ctx, s.codeLength)
	if err != nil {
		s.logger.Error("Failed to generate room code", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}

	room := &model.Room{
		RoomID:       code,
		HostNickname: input.Nickname,
		Type:         input.Type,
		Categories:   input.Categories,
		Active:       true,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		s.logger.Error("Failed to create room", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}

	host := &model.Player{
		RoomID:   code,
		Nickname: input.Nickname,
		IsHost:   true,
		Active:   true,
	}
	if err := s.playerRepo.Create(ctx, host); err != nil {
		s.logger.Error("Failed to create host player", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.RoomID),
		zap.String("host", input.Nickname),
		zap.String("type", string(input.Type)),
	)

	return room, host, nil
}

// JoinRoomInput represents room join input
type JoinRoomInput struct {
	Nickname string
	Code     string
}

// Join adds a player to a live room. The code is normalized before
// lookup since players type it by hand.
func (s *RoomService) Join(ctx context.Context, input *JoinRoomInput) (*model.Room, *model.Player, error) {
	code := repository.NormalizeCode(input.Code)

	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to look up room", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}
	if !room.Active {
		return nil, nil, apperrors.ErrRoomClosed
	}

	taken, err := s.playerRepo.NicknameTaken(ctx, code, input.Nickname)
	if err != nil {
		s.logger.Error("Failed to check nickname", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}
	if taken {
		return nil, nil, apperrors.ErrNicknameTaken
	}

	player := &model.Player{
		RoomID:   code,
		Nickname: input.Nickname,
		Active:   true,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		s.logger.Error("Failed to create player", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}

	if err := s.messageRepo.AppendSystem(ctx, code, fmt.Sprintf("%s has joined the room.", input.Nickname)); err != nil {
		s.logger.Warn("Failed to append join message", zap.Error(err))
	}

	s.logger.Info("Player joined room",
		zap.String("room_id", code),
		zap.String("nickname", input.Nickname),
	)

	return room, player, nil
}

// Get returns the room and its current active roster.
func (s *RoomService) Get(ctx context.Context, code string) (*model.Room, []*model.Player, error) {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}

	players, err := s.playerRepo.ListActive(ctx, room.RoomID)
	if err != nil {
		s.logger.Error("Failed to list players", zap.Error(err))
		return nil, nil, apperrors.ErrInternal
	}

	return room, players, nil
}

// Resume re-validates a stored session against current state. The room
// must still be live and the player still active.
func (s *RoomService) Resume(ctx context.Context, code, playerID string) (*model.Room, *model.Player, error) {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, nil, apperrors.ErrRoomNotFound
		}
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
		return nil, nil, apperrors.ErrInternal
	}
	if !player.Active || player.RoomID != room.RoomID {
		return nil, nil, apperrors.ErrPlayerNotFound
	}

	return room, player, nil
}

// Leave removes a player from the room. The host leaving ends the game
// for everyone; anyone else is soft-deactivated, their record kept.
func (s *RoomService) Leave(ctx context.Context, code, playerID string) error {
	code = repository.NormalizeCode(code)

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return apperrors.ErrPlayerNotFound
		}
		s.logger.Error("Failed to get player", zap.Error(err))
		return apperrors.ErrInternal
	}
	if player.RoomID != code {
		return apperrors.ErrWrongRoom
	}

	if player.IsHost {
		room, err := s.roomRepo.GetByCode(ctx, code)
		if err != nil {
			return apperrors.ErrInternal
		}
		if _, err := s.roomRepo.SetActive(ctx, room.ID, false); err != nil {
			s.logger.Error("Failed to close room", zap.Error(err))
			return apperrors.ErrInternal
		}
		if err := s.messageRepo.AppendSystem(ctx, code, "Game ended by the host."); err != nil {
			s.logger.Warn("Failed to append end message", zap.Error(err))
		}

		s.logger.Info("Host left, room closed", zap.String("room_id", code))
		return nil
	}

	if _, err := s.playerRepo.Deactivate(ctx, playerID); err != nil {
		s.logger.Error("Failed to deactivate player", zap.Error(err))
		return apperrors.ErrInternal
	}
	if err := s.messageRepo.AppendSystem(ctx, code, fmt.Sprintf("%s has left the game.", player.Nickname)); err != nil {
		s.logger.Warn("Failed to append leave message", zap.Error(err))
	}

	s.logger.Info("Player left room",
		zap.String("room_id", code),
		zap.String("nickname", player.Nickname),
	)
	return nil
}
