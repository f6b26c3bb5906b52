// Package instance keeps a second copy of the shell from starting against
// the same data directory.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = "zukus.lock"

var ErrAlreadyRunning = errors.New("another instance is already running")

type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock file in dataDir without blocking.
func Acquire(dataDir string) (*Lock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, lockName)
	l := &Lock{path: path, lock: flock.New(path)}

	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock: %s)", ErrAlreadyRunning, path)
	}
	return l, nil
}

func (l *Lock) Path() string {
	return l.path
}

// Shutdown releases the lock. It satisfies shutdown.Shutdownable.
func (l *Lock) Shutdown() {
	_ = l.Release()
}

func (l *Lock) Release() error {
	if !l.lock.Locked() {
		return nil
	}
	return l.lock.Unlock()
}
