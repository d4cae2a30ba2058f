package service

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/Rohit1301k/dareroom/internal/pkg/errors"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"go.uber.org/zap"
)

// PresenceService tracks who is typing. The stored flag by itself
// means nothing; a player only counts as typing while their last
// keystroke is younger than the expiry window. Nobody ever clears the
// flag, readers just stop trusting it.
type PresenceService struct {
	roomRepo   *repository.RoomRepository
	playerRepo *repository.PlayerRepository
	expiry     time.Duration
	logger     *zap.Logger
}

func NewPresenceService(
	roomRepo *repository.RoomRepository,
	playerRepo *repository.PlayerRepository,
	expiry time.Duration,
	logger *zap.Logger,
) *PresenceService {
	return &PresenceService{
		roomRepo:   roomRepo,
		playerRepo: playerRepo,
		expiry:     expiry,
		logger:     logger,
	}
}

// SetTyping records a typing heartbeat, or an explicit stop when
// typing is false.
func (s *PresenceService) SetTyping(ctx context.Context, code, playerID string, typing bool) error {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return apperrors.ErrInternal
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return apperrors.ErrPlayerNotFound
		}
		s.logger.Error("Failed to get player", zap.Error(err))
		return apperrors.ErrInternal
	}
	if player.RoomID != room.RoomID || !player.Active {
		return apperrors.ErrWrongRoom
	}

	if err := s.playerRepo.SetTyping(ctx, playerID, typing, time.Now().UTC()); err != nil {
		s.logger.Error("Failed to set typing flag", zap.Error(err))
		return apperrors.ErrInternal
	}
	return nil
}

// Typing returns the nicknames of players currently typing, applying
// the read-time expiry. The excludePlayerID slot keeps a player's own
// heartbeat out of their indicator.
func (s *PresenceService) Typing(ctx context.Context, code, excludePlayerID string) ([]string, error) {
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

	now := time.Now().UTC()
	typing := make([]string, 0)
	for _, p := range players {
		if p.ID == excludePlayerID {
			continue
		}
		if p.TypingAt(now, s.expiry) {
			typing = append(typing, p.Nickname)
		}
	}
	return typing, nil
}
