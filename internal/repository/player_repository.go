package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/store"
)

type PlayerRepository struct {
	col store.Collection
}

func NewPlayerRepository(s store.Store) *PlayerRepository {
	return &PlayerRepository{col: store.MustCollection(s, store.Players)}
}

// Create stores a new player and fills in its assigned id and seq.
func (r *PlayerRepository) Create(ctx context.Context, player *model.Player) error {
	if player.JoinedAt.IsZero() {
		player.JoinedAt = time.Now().UTC()
	}
	player.RoomID = NormalizeCode(player.RoomID)

	rec, err := toRecord(player)
	if err != nil {
		return err
	}
	stored, err := r.col.Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return fromRecord(stored, player)
}

// GetByID retrieves a player by record id.
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*model.Player, error) {
	rec, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var player model.Player
	if err := fromRecord(rec, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// ListByRoom returns every player record for a room, departed ones
// included, in join order.
func (r *PlayerRepository) ListByRoom(ctx context.Context, code string) ([]*model.Player, error) {
	recs, err := r.col.GetBy(ctx, "room_id", code)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	players := make([]*model.Player, 0, len(recs))
	for _, rec := range recs {
		var player model.Player
		if err := fromRecord(rec, &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// ListActive returns the room's current roster. The active set is
// recomputed from storage on every call, never cached.
func (r *PlayerRepository) ListActive(ctx context.Context, code string) ([]*model.Player, error) {
	players, err := r.ListByRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	active := players[:0]
	for _, p := range players {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// NicknameTaken checks the nickname against active players only, so
// a departed player's name can be reused.
func (r *PlayerRepository) NicknameTaken(ctx context.Context, code, nickname string) (bool, error) {
	players, err := r.ListActive(ctx, code)
	if err != nil {
		return false, err
	}
	for _, p := range players {
		if strings.EqualFold(p.Nickname, nickname) {
			return true, nil
		}
	}
	return false, nil
}

// Deactivate soft-removes a player from the room.
func (r *PlayerRepository) Deactivate(ctx context.Context, id string) (*model.Player, error) {
	rec, err := r.col.Update(ctx, id, store.Record{"active": false})
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to deactivate player: %w", err)
	}

	var player model.Player
	if err := fromRecord(rec, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// SetTyping writes the typing assertion. Setting it stamps last_typed
// with now; clearing it nulls the stamp, matching the write shape the
// read-time expiry rule expects.
func (r *PlayerRepository) SetTyping(ctx context.Context, id string, typing bool, now time.Time) error {
	patch := store.Record{"is_typing": typing}
	if typing {
		patch["last_typed"] = now.UTC().Format(time.RFC3339Nano)
	} else {
		patch["last_typed"] = nil
	}

	if _, err := r.col.Update(ctx, id, patch); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to set typing state: %w", err)
	}
	return nil
}
