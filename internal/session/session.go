// Package session keeps the per-client association from an opaque
// token to "which room, which player". It is how a client remembers
// who it is across reloads; it is read once at startup and cleared on
// leave or game end.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rohit1301k/dareroom/internal/pkg/cache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one client's resumable identity.
type Session struct {
	Token     string    `json:"token"`
	RoomID    string    `json:"room_id"`
	PlayerID  string    `json:"player_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Manager struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewManager(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Create mints a fresh opaque token bound to the room and player.
func (m *Manager) Create(ctx context.Context, roomID, playerID string) (*Session, error) {
	sess := &Session{
		Token:     uuid.New().String(),
		RoomID:    roomID,
		PlayerID:  playerID,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	if err := m.client.Set(ctx, m.key(sess.Token), data, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	m.logger.Debug("Session created",
		zap.String("room_id", roomID),
		zap.String("player_id", playerID),
	)
	return sess, nil
}

// Get resolves a token and slides its expiry.
func (m *Manager) Get(ctx context.Context, token string) (*Session, error) {
	data, err := m.client.Get(ctx, m.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	// Active clients keep their session alive.
	_ = m.client.Expire(ctx, m.key(token), m.ttl).Err()

	return &sess, nil
}

// Delete clears the association, e.g. when the client leaves the room.
func (m *Manager) Delete(ctx context.Context, token string) error {
	if err := m.client.Del(ctx, m.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (m *Manager) key(token string) string {
	return fmt.Sprintf(cache.KeySession, token)
}
