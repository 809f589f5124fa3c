package model

import "time"

// History caps. Appends beyond these trim to the most recent entries.
const (
	MaxSearchHistory       = 50
	MaxConversationHistory = 20
)

// SessionMemory is the durable per-user interaction state. It is persisted as
// a single JSON document with exactly these four top-level keys.
type SessionMemory struct {
	Preferences         map[string]string   `json:"preferences"`
	SearchHistory       []SearchEntry       `json:"search_history"`
	SavedProperties     []SavedProperty     `json:"saved_properties"`
	ConversationHistory []ConversationEntry `json:"conversation_history"`
}

// NewSessionMemory returns a memory document with all four sections empty.
func NewSessionMemory() *SessionMemory {
	return &SessionMemory{
		Preferences:         map[string]string{},
		SearchHistory:       []SearchEntry{},
		SavedProperties:     []SavedProperty{},
		ConversationHistory: []ConversationEntry{},
	}
}

// SearchEntry records one executed search.
type SearchEntry struct {
	Query        string    `json:"query"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// SavedProperty records one bookmarked listing. Entries are deduplicated by
// PropertyID and kept in insertion order.
type SavedProperty struct {
	PropertyID string            `json:"property_id"`
	Info       map[string]string `json:"info,omitempty"`
	SavedAt    time.Time         `json:"saved_at"`
}

// ConversationEntry records one user/assistant exchange.
type ConversationEntry struct {
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	Timestamp time.Time `json:"timestamp"`
}
