package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Rohit1301k/dareroom/internal/model"
	"github.com/Rohit1301k/dareroom/internal/store"
)

type MessageRepository struct {
	col store.Collection
}

func NewMessageRepository(s store.Store) *MessageRepository {
	return &MessageRepository{col: store.MustCollection(s, store.Messages)}
}

// Append adds a message to the room's log. Messages are never mutated
// or deleted.
func (r *MessageRepository) Append(ctx context.Context, msg *model.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	msg.RoomID = NormalizeCode(msg.RoomID)

	rec, err := toRecord(msg)
	if err != nil {
		return err
	}
	stored, err := r.col.Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return fromRecord(stored, msg)
}

// AppendSystem adds a system message to the room's log.
func (r *MessageRepository) AppendSystem(ctx context.Context, code, text string) error {
	return r.Append(ctx, &model.Message{
		RoomID: code,
		System: true,
		Body:   text,
	})
}

// ListByRoom returns the room's messages ordered by seq ascending,
// which preserves insertion order even when created_at collides.
func (r *MessageRepository) ListByRoom(ctx context.Context, code string) ([]*model.Message, error) {
	recs, err := r.col.GetBy(ctx, "room_id", code)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*model.Message, 0, len(recs))
	for _, rec := range recs {
		var msg model.Message
		if err := fromRecord(rec, &msg); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Seq < messages[j].Seq
	})
	return messages, nil
}

// ListAfter returns the room's messages with seq greater than
// afterSeq, for pollers that have already rendered the earlier ones.
func (r *MessageRepository) ListAfter(ctx context.Context, code string, afterSeq int64) ([]*model.Message, error) {
	messages, err := r.ListByRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	fresh := messages[:0]
	for _, m := range messages {
		if m.Seq > afterSeq {
			fresh = append(fresh, m)
		}
	}
	return fresh, nil
}
