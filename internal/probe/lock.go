package probe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
)

// Lock serializes probe runs against the same working directory so two runs
// never race on their transient files. The lock file lives in the system temp
// directory, keyed by the working directory, and is never removed.
type Lock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewLock creates the lock for workDir.
func NewLock(workDir string) *Lock {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		abs = workDir
	}
	sum := sha256.Sum256([]byte(abs))
	path := filepath.Join(os.TempDir(), "installcheck-"+hex.EncodeToString(sum[:8])+".lock")
	return &Lock{path: path, flock: flock.New(path)}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire waits for the lock until ctx is done, polling every retry.
func (l *Lock) Acquire(ctx context.Context, retry time.Duration) error {
	ok, err := l.flock.TryLockContext(ctx, retry)
	if err != nil && ctx.Err() == nil {
		return ierrors.New(ierrors.ErrCodeFilePermission, fmt.Sprintf("acquire lock %s", l.path), err)
	}
	if !ok {
		return ierrors.New(ierrors.ErrCodeWorkDirLocked, "another installcheck run is probing this directory", ctx.Err()).
			WithDetail("lock", l.path).
			WithSuggestion("Wait for the other run to finish and retry")
	}
	l.locked = true
	return nil
}

// Release unlocks. It is safe to call on an unlocked Lock.
func (l *Lock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
