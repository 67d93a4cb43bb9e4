package convert

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/prgtools/prgconv/prg"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrLocked indicates that the output directory lock could not be acquired in time.
var ErrLocked = errors.New("output directory is locked by another conversion")

// writeOutput resolves a free output name next to inPath and writes data to it.
//
// The data goes to a temporary file in the output directory first and is renamed into
// place, so an interrupted run never leaves a partial output. With locking enabled, name
// resolution and rename happen under an advisory lock for the output directory.
func (c *Converter) writeOutput(ctx context.Context, inPath string, format prg.Format, data []byte) (string, error) {
	dir := filepath.Dir(inPath)

	tmpPath := filepath.Join(dir, ".prgconv-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil { //nolint:gosec
		return "", fmt.Errorf("write temporary file: %w", err)
	}
	defer os.Remove(tmpPath) //nolint:errcheck

	if c.lock {
		unlock, err := c.lockDirectory(ctx, dir)
		if err != nil {
			return "", err
		}
		defer unlock()
	}

	outPath, err := ResolveOutputPath(inPath, format)
	if err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return "", fmt.Errorf("move output into place: %w", err)
	}

	return outPath, nil
}

// lockDirectory acquires the advisory lock for dir and returns its release function.
func (c *Converter) lockDirectory(ctx context.Context, dir string) (func(), error) {
	lockPath, err := c.lockPath(dir)
	if err != nil {
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, c.lockTimeout)
	defer cancel()

	lock := flock.New(lockPath)
	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}
	c.log.Debug("acquired output directory lock", "dir", dir, "lock", lockPath)

	return func() {
		if err := lock.Unlock(); err != nil {
			c.log.Warn("failed to release output directory lock", "lock", lockPath, "error", err)
		}
	}, nil
}

// lockPath maps a directory to a lock file in the lock directory, so no lock files are left
// next to the user's programs.
func (c *Converter) lockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(abs))

	return filepath.Join(c.lockDir, "prgconv-"+strconv.FormatUint(h.Sum64(), 16)+".lock"), nil
}
