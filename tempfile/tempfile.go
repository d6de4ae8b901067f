// Package tempfile mints scratch-file paths and guards them for removal.
// A Guard owns a freshly created file and deletes it when removed, on both
// normal and error paths; ownership of the path can be handed off exactly
// once, after which the guard is inert.
package tempfile

import (
	"fmt"
	"os"
)

// defaultPattern is the name pattern for minted scratch files; the '*' is
// replaced by a random string.
const defaultPattern = "tape_*.tmp"

// Guard owns a scratch-file path and removes the file when asked. The zero
// value is an inert guard owning nothing.
type Guard struct {
	path string
}

// New creates an empty scratch file with a randomized name inside dir,
// creating dir first if it does not exist, and returns a Guard owning it.
func New(dir string) (*Guard, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	f, err := os.CreateTemp(dir, defaultPattern)
	if err != nil {
		return nil, fmt.Errorf("creating scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing scratch file: %w", err)
	}
	return &Guard{path: f.Name()}, nil
}

// Path returns the guarded path, or "" if ownership has been handed off or
// the file already removed.
func (g *Guard) Path() string {
	return g.path
}

// Release hands the path to the caller and empties the guard, so a later
// Remove is a no-op. Two owners never see the same non-empty path.
func (g *Guard) Release() string {
	path := g.path
	g.path = ""
	return path
}

// Remove deletes the guarded file and empties the guard. Calling Remove on
// an empty guard is a no-op, so it is safe to defer unconditionally.
func (g *Guard) Remove() error {
	if g.path == "" {
		return nil
	}
	path := g.path
	g.path = ""
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting scratch file %s: %w", path, err)
	}
	return nil
}
