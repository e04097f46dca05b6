package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(t.TempDir(), zerolog.Nop())
}

func TestGetMissingSlotReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	got := Get(s, "missing", []item{{ID: "d", Text: "default"}})
	require.Len(t, got, 1)
	assert.Equal(t, "default", got[0].Text)
}

func TestSetGetRoundtrip(t *testing.T) {
	s := newTestStore(t)

	Set(s, "items", []item{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}})
	got := Get(s, "items", []item(nil))
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Text)
}

func TestGetCorruptedSlotReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, zerolog.Nop())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte("{not json"), 0o600))

	got := Get(s, "items", []item{{ID: "d"}})
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].ID)
}

func TestRemoveThenGetReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	Set(s, "items", []item{{ID: "1"}})
	s.Remove("items")
	assert.Nil(t, Get(s, "items", []item(nil)))

	// Removing a missing slot must not panic or log an error path.
	s.Remove("items")
}

func TestSetFailureIsSwallowed(t *testing.T) {
	// A store rooted at an uncreatable path degrades instead of failing.
	s := Open(filepath.Join(string(os.PathSeparator), "dev", "null", "nope"), zerolog.Nop())

	Set(s, "items", []item{{ID: "1"}})
	assert.Nil(t, Get(s, "items", []item(nil)))
}

func TestNilPointerDefault(t *testing.T) {
	s := newTestStore(t)

	type user struct {
		ID string `json:"id"`
	}
	assert.Nil(t, Get(s, "session", (*user)(nil)))

	Set(s, "session", &user{ID: "u1"})
	got := Get(s, "session", (*user)(nil))
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}
