package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/store"
)

type TurnRepository struct {
	col store.Collection
}

func NewTurnRepository(s store.Store) *TurnRepository {
	return &TurnRepository{col: store.MustCollection(s, store.Turns)}
}

// Append adds a turn to the room's log and fills in its id and seq.
// The log is append-only; completed turns stay as history.
func (r *TurnRepository) Append(ctx context.Context, turn *model.Turn) error {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}
	turn.RoomID = NormalizeCode(turn.RoomID)

	rec, err := toRecord(turn)
	if err != nil {
		return err
	}
	stored, err := r.col.Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return fromRecord(stored, turn)
}

// Current returns the turn with the greatest seq for the room, or
// (nil, nil) when the game has not started. Seq is the ordering key;
// wall-clock timestamps are display data only.
func (r *TurnRepository) Current(ctx context.Context, code string) (*model.Turn, error) {
	turns, err := r.ListByRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, nil
	}

	current := turns[0]
	for _, t := range turns[1:] {
		if t.Seq > current.Seq {
			current = t
		}
	}
	return current, nil
}

// ListByRoom returns the room's full turn history.
func (r *TurnRepository) ListByRoom(ctx context.Context, code string) ([]*model.Turn, error) {
	recs, err := r.col.GetBy(ctx, "room_id", code)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}

	turns := make([]*model.Turn, 0, len(recs))
	for _, rec := range recs {
		var turn model.Turn
		if err := fromRecord(rec, &turn); err != nil {
			return nil, err
		}
		turns = append(turns, &turn)
	}
	return turns, nil
}

// Update patches a turn in place. Used to attach the chosen type and
// question to the current turn and later to mark it completed.
func (r *TurnRepository) Update(ctx context.Context, id string, patch store.Record) (*model.Turn, error) {
	rec, err := r.col.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrTurnNotFound
		}
		return nil, fmt.Errorf("failed to update turn: %w", err)
	}

	var turn model.Turn
	if err := fromRecord(rec, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}
