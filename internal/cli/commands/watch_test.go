package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlequiv/internal/testutil"
)

func TestWatchFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "a.sql")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("SELECT 1"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{watched}, testutil.NewTestLogger(t), func() {
			changes <- struct{}{}
		})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("SELECT 2"), 0o600))
	}

	select {
	case <-changes:
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	// writes in quick succession are reported once
	select {
	case <-changes:
		t.Fatal("debounced writes reported twice")
	case <-time.After(3 * watchDebounce):
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchFilesMissingDir(t *testing.T) {
	err := watchFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "a.sql")}, testutil.NewTestLogger(t), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
