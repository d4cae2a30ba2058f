package repository

import (
	"context"
	"testing"

	"github.com/Rohit1301k/dareroom/internal/model"
)

func TestRoomRepository_CreateAndGetByCode(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))
	ctx := context.Background()

	room := &model.Room{
		RoomID:       "abc123",
		HostNickname: "alice",
		Type:         model.RoomTypeFriends,
		Categories:   []string{"funny"},
		Active:       true,
	}
	if err := repo.Create(ctx, room); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if room.ID == "" {
		t.Error("Expected assigned id")
	}
	if room.Seq == 0 {
		t.Error("Expected assigned seq")
	}
	if room.RoomID != "ABC123" {
		t.Errorf("Expected normalized code ABC123, got %s", room.RoomID)
	}
	if room.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	// Lookup ignores case and whitespace
	for _, code := range []string{"ABC123", "abc123", " aBc123 "} {
		got, err := repo.GetByCode(ctx, code)
		if err != nil {
			t.Fatalf("GetByCode(%q) failed: %v", code, err)
		}
		if got.ID != room.ID {
			t.Errorf("GetByCode(%q): got wrong room", code)
		}
	}
}

func TestRoomRepository_GetByCodeMissing(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))

	_, err := repo.GetByCode(context.Background(), "NOPE42")
	if err != ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestRoomRepository_SetActive(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))
	ctx := context.Background()

	room := &model.Room{RoomID: "ABC123", HostNickname: "alice", Type: model.RoomTypeGroup, Active: true}
	if err := repo.Create(ctx, room); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.SetActive(ctx, room.ID, false)
	if err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if updated.Active {
		t.Error("Expected room to be inactive")
	}
	// Untouched fields survive the patch
	if updated.HostNickname != "alice" {
		t.Errorf("Expected host preserved, got %s", updated.HostNickname)
	}

	if _, err := repo.SetActive(ctx, "missing", false); err != ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestRoomRepository_GenerateCode(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))
	ctx := context.Background()

	code, err := repo.GenerateCode(ctx, 6)
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("Expected 6-char code, got %q", code)
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			t.Errorf("Expected uppercase alphanumeric code, got %q", code)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode(" abC123 "); got != "ABC123" {
		t.Errorf("NormalizeCode = %q", got)
	}
}
