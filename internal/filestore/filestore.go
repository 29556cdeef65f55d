// Package filestore implements the lab's write-then-read demo against a
// single text file. Concurrent requests share one path with no locking;
// the last writer wins, which the demo accepts.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
	"go.uber.org/zap"
)

// RoundTrip is the outcome of one write-then-read cycle: the resolved file
// path and the exact bytes read back.
type RoundTrip struct {
	Path    string
	Content string
}

// Store owns the demo file location.
type Store struct {
	path   string
	logger *zap.Logger
}

// New resolves dir/filename to an absolute path. The directory is created
// lazily on first write, not here.
func New(dir, filename string, logger *zap.Logger) (*Store, error) {
	path, err := filepath.Abs(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("resolve demo file path: %w", err)
	}
	return &Store{path: path, logger: logger}, nil
}

// Path returns the absolute demo file location.
func (s *Store) Path() string {
	return s.path
}

// RoundTrip renders the demo template for user, overwrites the demo file
// with it, and immediately reads the file back. The returned content is
// whatever the read produced, byte for byte.
func (s *Store) RoundTrip(user models.UserRecord) (*RoundTrip, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	content := fmt.Sprintf(
		"Hello from the file system demo!\nUser ID: %d\nUser Name: %s\nWritten at: %s\n",
		user.ID, user.Name, time.Now().UTC().Format(time.RFC3339),
	)
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write demo file: %w", err)
	}

	read, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read demo file: %w", err)
	}

	s.logger.Debug("demo file round trip",
		zap.String("path", s.path),
		zap.Int("bytes", len(read)))

	return &RoundTrip{Path: s.path, Content: string(read)}, nil
}
