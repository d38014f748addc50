// Package state persists the client-side session record between runs. It is
// the cookie-store analogue: one TOML file under the user config dir,
// written atomically with owner-only permissions.
package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	configDirName   = "bkcloud"
	sessionFileName = "session.toml"
	tempFilePattern = ".session-*.toml.tmp"

	schemaVersion = 1
)

type Store struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionStore = (*Store)(nil)

// DefaultPath resolves the session file under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(configDir, configDirName, sessionFileName), nil
}

func NewStore(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session file path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Store{path: absPath, mu: lockForPath(absPath)}, nil
}

type fileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

type sessionSchema struct {
	ID         string `toml:"id"`
	Login      string `toml:"login,omitempty"`
	ObtainedAt string `toml:"obtained_at,omitempty"`
}

func (s *Store) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, domain.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Session{}, fmt.Errorf("decode session file: %w", err)
	}
	if file.Session.ID == "" {
		return domain.Session{}, domain.ErrNoSession
	}

	return domain.Session{
		ID:         domain.SessionID(file.Session.ID),
		Login:      file.Session.Login,
		ObtainedAt: parseTime(file.Session.ObtainedAt),
	}, nil
}

func (s *Store) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session.ID == "" {
		return errors.New("session id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := fileSchema{
		Version: schemaVersion,
		Session: sessionSchema{
			ID:         string(session.ID),
			Login:      session.Login,
			ObtainedAt: formatTime(session.ObtainedAt),
		},
	}

	return s.write(file)
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session file: %w", err)
	}
	return nil
}

func (s *Store) write(file fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(s.path), stateDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(time.RFC3339)
}
