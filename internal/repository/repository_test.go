package repository

import (
	"testing"

	"github.com/Rohit1301k/dareroom/internal/store"
	"go.uber.org/zap"
)

// newTestStore backs repository tests with a file store in a temp
// directory, so they run without any external services.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
