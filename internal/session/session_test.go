package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping test, Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewManager(client, ttl, zap.NewNop())
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager(t, time.Hour)
	ctx := context.Background()

	sess, err := m.Create(ctx, "ABC123", "player-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer m.Delete(ctx, sess.Token)

	if sess.Token == "" {
		t.Error("Expected a token to be minted")
	}
	if sess.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	got, err := m.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.RoomID != "ABC123" {
		t.Errorf("Expected room ID 'ABC123', got '%s'", got.RoomID)
	}
	if got.PlayerID != "player-1" {
		t.Errorf("Expected player ID 'player-1', got '%s'", got.PlayerID)
	}
	if got.Token != sess.Token {
		t.Errorf("Expected token %s, got %s", sess.Token, got.Token)
	}
}

func TestManager_GetUnknownToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	if _, err := m.Get(context.Background(), "no-such-token"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(t, time.Hour)
	ctx := context.Background()

	sess, err := m.Create(ctx, "ABC123", "player-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := m.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := m.Get(ctx, sess.Token); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestManager_Expiry(t *testing.T) {
	m := newTestManager(t, time.Second)
	ctx := context.Background()

	sess, err := m.Create(ctx, "ABC123", "player-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if _, err := m.Get(ctx, sess.Token); err != ErrSessionNotFound {
		t.Errorf("Expected the session to expire, got %v", err)
	}
}
