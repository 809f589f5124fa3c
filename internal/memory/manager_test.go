package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"estatechat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(NewFileStore(t.TempDir()))
}

func TestFileStore_LoadUnknownSession(t *testing.T) {
	store := NewFileStore(t.TempDir())

	mem, err := store.Load("fresh")
	require.NoError(t, err)

	assert.Empty(t, mem.Preferences)
	assert.Empty(t, mem.SearchHistory)
	assert.Empty(t, mem.SavedProperties)
	assert.Empty(t, mem.ConversationHistory)
}

func TestFileStore_WriteThrough(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(NewFileStore(dir))

	require.NoError(t, mgr.SetPreference("user1", "city", "Pune"))

	// The mutation must already be on disk.
	data, err := os.ReadFile(filepath.Join(dir, "user1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"city": "Pune"`)

	// A fresh manager over the same dir sees it.
	fresh := NewManager(NewFileStore(dir))
	val, err := fresh.GetPreference("user1", "city")
	require.NoError(t, err)
	assert.Equal(t, "Pune", val)
}

func TestManager_AppendSearchCap(t *testing.T) {
	mgr := newTestManager(t)

	for i := 0; i < 51; i++ {
		require.NoError(t, mgr.AppendSearch("u", fmt.Sprintf("query %d", i), i))
	}

	mem, err := mgr.Get("u")
	require.NoError(t, err)
	require.Len(t, mem.SearchHistory, model.MaxSearchHistory)

	// Oldest entry dropped, order preserved.
	assert.Equal(t, "query 1", mem.SearchHistory[0].Query)
	assert.Equal(t, "query 50", mem.SearchHistory[49].Query)
}

func TestManager_AppendConversationCap(t *testing.T) {
	mgr := newTestManager(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, mgr.AppendConversation("u", fmt.Sprintf("msg %d", i), "ok"))
	}

	mem, err := mgr.Get("u")
	require.NoError(t, err)
	require.Len(t, mem.ConversationHistory, model.MaxConversationHistory)
	assert.Equal(t, "msg 5", mem.ConversationHistory[0].User)
	assert.Equal(t, "msg 24", mem.ConversationHistory[19].User)
}

func TestManager_SavePropertyIdempotent(t *testing.T) {
	mgr := newTestManager(t)

	added, err := mgr.SaveProperty("u", "P-100", map[string]string{"title": "2 BHK in Pune"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = mgr.SaveProperty("u", "P-100", map[string]string{"title": "duplicate"})
	require.NoError(t, err)
	assert.False(t, added)

	saved, err := mgr.ListSaved("u")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "2 BHK in Pune", saved[0].Info["title"])
}

func TestManager_SavedInsertionOrder(t *testing.T) {
	mgr := newTestManager(t)

	for _, id := range []string{"P-3", "P-1", "P-2"} {
		_, err := mgr.SaveProperty("u", id, nil)
		require.NoError(t, err)
	}

	saved, err := mgr.ListSaved("u")
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "P-3", saved[0].PropertyID)
	assert.Equal(t, "P-1", saved[1].PropertyID)
	assert.Equal(t, "P-2", saved[2].PropertyID)
}

func TestManager_Clear(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.SetPreference("u", "budget", "5000000"))
	require.NoError(t, mgr.AppendSearch("u", "villas in Goa", 3))
	require.NoError(t, mgr.AppendConversation("u", "hi", "hello"))
	_, err := mgr.SaveProperty("u", "P-1", nil)
	require.NoError(t, err)

	require.NoError(t, mgr.Clear("u"))

	mem, err := mgr.Get("u")
	require.NoError(t, err)
	assert.Empty(t, mem.Preferences)
	assert.Empty(t, mem.SearchHistory)
	assert.Empty(t, mem.SavedProperties)
	assert.Empty(t, mem.ConversationHistory)
}
