package memory

import (
	"time"

	"estatechat/internal/model"
)

// Manager applies session memory mutations with write-through persistence:
// every mutation saves the full document before returning. It assumes a
// single active turn per session; there is no cross-process locking.
type Manager struct {
	store Store
}

// NewManager creates a memory manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Get returns the full memory document for a session.
func (m *Manager) Get(sessionID string) (*model.SessionMemory, error) {
	return m.store.Load(sessionID)
}

// GetPreference returns a stored preference, or "" when unset.
func (m *Manager) GetPreference(sessionID, key string) (string, error) {
	mem, err := m.store.Load(sessionID)
	if err != nil {
		return "", err
	}
	return mem.Preferences[key], nil
}

// SetPreference stores a preference.
func (m *Manager) SetPreference(sessionID, key, value string) error {
	mem, err := m.store.Load(sessionID)
	if err != nil {
		return err
	}
	mem.Preferences[key] = value
	return m.store.Save(sessionID, mem)
}

// AppendSearch records a search, trimming history to the most recent
// model.MaxSearchHistory entries.
func (m *Manager) AppendSearch(sessionID, query string, resultsCount int) error {
	mem, err := m.store.Load(sessionID)
	if err != nil {
		return err
	}
	mem.SearchHistory = append(mem.SearchHistory, model.SearchEntry{
		Query:        query,
		ResultsCount: resultsCount,
		Timestamp:    time.Now(),
	})
	if len(mem.SearchHistory) > model.MaxSearchHistory {
		mem.SearchHistory = mem.SearchHistory[len(mem.SearchHistory)-model.MaxSearchHistory:]
	}
	return m.store.Save(sessionID, mem)
}

// AppendConversation records one exchange, trimming history to the most
// recent model.MaxConversationHistory entries.
func (m *Manager) AppendConversation(sessionID, user, bot string) error {
	mem, err := m.store.Load(sessionID)
	if err != nil {
		return err
	}
	mem.ConversationHistory = append(mem.ConversationHistory, model.ConversationEntry{
		User:      user,
		Bot:       bot,
		Timestamp: time.Now(),
	})
	if len(mem.ConversationHistory) > model.MaxConversationHistory {
		mem.ConversationHistory = mem.ConversationHistory[len(mem.ConversationHistory)-model.MaxConversationHistory:]
	}
	return m.store.Save(sessionID, mem)
}

// SaveProperty bookmarks a listing. It is idempotent: saving an id that is
// already present performs no mutation and returns false.
func (m *Manager) SaveProperty(sessionID, propertyID string, info map[string]string) (bool, error) {
	mem, err := m.store.Load(sessionID)
	if err != nil {
		return false, err
	}
	for _, saved := range mem.SavedProperties {
		if saved.PropertyID == propertyID {
			return false, nil
		}
	}
	mem.SavedProperties = append(mem.SavedProperties, model.SavedProperty{
		PropertyID: propertyID,
		Info:       info,
		SavedAt:    time.Now(),
	})
	if err := m.store.Save(sessionID, mem); err != nil {
		return false, err
	}
	return true, nil
}

// ListSaved returns all bookmarked listings in insertion order.
func (m *Manager) ListSaved(sessionID string) ([]model.SavedProperty, error) {
	mem, err := m.store.Load(sessionID)
	if err != nil {
		return nil, err
	}
	return mem.SavedProperties, nil
}

// Clear resets all four memory sections to empty and persists the result.
func (m *Manager) Clear(sessionID string) error {
	return m.store.Save(sessionID, model.NewSessionMemory())
}
