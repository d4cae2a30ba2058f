package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/store"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTurnNotFound   = errors.New("turn not found")
	ErrNoQuestions    = errors.New("no matching questions")
)

const roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type RoomRepository struct {
	col store.Collection
}

func NewRoomRepository(s store.Store) *RoomRepository {
	return &RoomRepository{col: store.MustCollection(s, store.Rooms)}
}

// Create stores a new room and fills in its assigned id and seq.
func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	room.RoomID = NormalizeCode(room.RoomID)

	rec, err := toRecord(room)
	if err != nil {
		return err
	}
	stored, err := r.col.Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return fromRecord(stored, room)
}

// GetByID retrieves a room by record id.
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*model.Room, error) {
	rec, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room model.Room
	if err := fromRecord(rec, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByCode retrieves a room by its join code, case-insensitively.
func (r *RoomRepository) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	recs, err := r.col.GetBy(ctx, "room_id", NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("failed to look up room code: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrRoomNotFound
	}

	var room model.Room
	if err := fromRecord(recs[0], &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// SetActive flips the room's active flag. Inactive rooms are closed
// for good; no operation reactivates them.
func (r *RoomRepository) SetActive(ctx context.Context, id string, active bool) (*model.Room, error) {
	rec, err := r.col.Update(ctx, id, store.Record{"active": active})
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	var room model.Room
	if err := fromRecord(rec, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns every room record, closed ones included.
func (r *RoomRepository) List(ctx context.Context) ([]*model.Room, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*model.Room, 0, len(recs))
	for _, rec := range recs {
		var room model.Room
		if err := fromRecord(rec, &room); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}
	return rooms, nil
}

// GenerateCode draws random join codes until one is free. Codes are
// uppercase alphanumeric; uniqueness is checked against every stored
// room, active or not, since codes are never reused. The free check
// and the later insert are separate writes, so two concurrent creates
// could in principle draw the same code; at six characters over a
// 36-symbol alphabet a collision needs both draws to land on the same
// code in the same instant.
func (r *RoomRepository) GenerateCode(ctx context.Context, length int) (string, error) {
	for {
		code := randomCode(length)
		existing, err := r.col.GetBy(ctx, "room_id", code)
		if err != nil {
			return "", fmt.Errorf("failed to check room code: %w", err)
		}
		if len(existing) == 0 {
			return code, nil
		}
	}
}

func randomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
	}
	return string(b)
}

// NormalizeCode returns the canonical storage form of a room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
