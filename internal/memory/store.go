package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"estatechat/internal/model"
)

// Store persists one session memory document per session.
type Store interface {
	Load(sessionID string) (*model.SessionMemory, error)
	Save(sessionID string, mem *model.SessionMemory) error
}

// FileStore keeps each session as a JSON file under a base directory. The
// first Load of an unknown session returns a fresh empty document.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed memory store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the session document, or returns an empty one when absent.
func (s *FileStore) Load(sessionID string) (*model.SessionMemory, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewSessionMemory(), nil
		}
		return nil, fmt.Errorf("failed to read session memory: %w", err)
	}

	mem := model.NewSessionMemory()
	if err := json.Unmarshal(data, mem); err != nil {
		return nil, fmt.Errorf("failed to parse session memory: %w", err)
	}
	return mem, nil
}

// Save writes the full session document immediately.
func (s *FileStore) Save(sessionID string, mem *model.SessionMemory) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create memory dir: %w", err)
	}

	data, err := json.MarshalIndent(mem, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session memory: %w", err)
	}

	if err := os.WriteFile(s.path(sessionID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write session memory: %w", err)
	}
	return nil
}

func (s *FileStore) path(sessionID string) string {
	// Base strips any path components a caller-supplied id could smuggle in.
	return filepath.Join(s.dir, filepath.Base(sessionID)+".json")
}
