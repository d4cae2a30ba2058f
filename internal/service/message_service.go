package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rohit1301k/dareroom/internal/model"
	apperrors "github.com/Rohit1301k/dareroom/internal/pkg/errors"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"go.uber.org/zap"
)

// MessageService handles the room chat log.
type MessageService struct {
	roomRepo    *repository.RoomRepository
	playerRepo  *repository.PlayerRepository
	messageRepo *repository.MessageRepository
	maxLen      int
	logger      *zap.Logger
}

func NewMessageService(
	roomRepo *repository.RoomRepository,
	playerRepo *repository.PlayerRepository,
	messageRepo *repository.MessageRepository,
	maxLen int,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		roomRepo:    roomRepo,
		playerRepo:  playerRepo,
		messageRepo: messageRepo,
		maxLen:      maxLen,
		logger:      logger,
	}
}

// SendMessageInput carries a chat message from an authenticated
// player. Body is taken verbatim, including the [gif:] and [image:]
// tagged forms.
type SendMessageInput struct {
	Code     string
	PlayerID string
	Body     string
}

// Send appends a chat message to the room log.
func (s *MessageService) Send(ctx context.Context, input *SendMessageInput) (*model.Message, error) {
	body := input.Body
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.New(http.StatusBadRequest, "message cannot be empty")
	}
	// The length cap applies to plain text only. Tagged media bodies
	// are exempt: an inline [image:] data URL runs to hundreds of
	// kilobytes of base64.
	if !model.MediaBody(body) && utf8.RuneCountInString(body) > s.maxLen {
		return nil, apperrors.New(http.StatusBadRequest, "message is too long")
	}

	room, err := s.roomRepo.GetByCode(ctx, input.Code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if !room.Active {
		return nil, apperrors.ErrRoomClosed
	}

	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return nil, apperrors.ErrPlayerNotFound
		}
		s.logger.Error("Failed to get player", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if player.RoomID != room.RoomID || !player.Active {
		return nil, apperrors.ErrWrongRoom
	}

	msg := &model.Message{
		RoomID:    room.RoomID,
		Nickname:  player.Nickname,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Append(ctx, msg); err != nil {
		s.logger.Error("Failed to append message", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	return msg, nil
}

// List returns the room's messages in log order. With afterSeq > 0
// only messages newer than that sequence number are returned, which is
// how pollers fetch deltas.
func (s *MessageService) List(ctx context.Context, code string, afterSeq int64) ([]*model.Message, error) {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	var msgs []*model.Message
	if afterSeq > 0 {
		msgs, err = s.messageRepo.ListAfter(ctx, room.RoomID, afterSeq)
	} else {
		msgs, err = s.messageRepo.ListByRoom(ctx, room.RoomID)
	}
	if err != nil {
		s.logger.Error("Failed to list messages", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	return msgs, nil
}
