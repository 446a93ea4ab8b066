package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(0)

	created := store.Create("# Jane Doe")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, types.ModeEdit, created.Mode)
	assert.Equal(t, "# Jane Doe", created.Text)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Text, got.Text)
}

func TestStore_GetUnknownID(t *testing.T) {
	store := NewStore(0)

	_, err := store.Get(uuid.New())
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_SetText(t *testing.T) {
	store := NewStore(0)
	created := store.Create("before")

	updated, err := store.SetText(created.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Text)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestStore_SetModePreservesText(t *testing.T) {
	store := NewStore(0)
	created := store.Create("# Jane Doe\n## Experience")

	updated, err := store.SetMode(created.ID, types.ModePreview)
	require.NoError(t, err)
	assert.Equal(t, types.ModePreview, updated.Mode)
	assert.Equal(t, created.Text, updated.Text)

	back, err := store.SetMode(created.ID, types.ModeEdit)
	require.NoError(t, err)
	assert.Equal(t, types.ModeEdit, back.Mode)
	assert.Equal(t, created.Text, back.Text)
}

func TestStore_SetModeRejectsUnknownMode(t *testing.T) {
	store := NewStore(0)
	created := store.Create("text")

	_, err := store.SetMode(created.ID, types.EditorMode("split"))
	var invalid *InvalidModeError
	assert.ErrorAs(t, err, &invalid)
}

func TestStore_ApplyResult(t *testing.T) {
	store := NewStore(0)
	created := store.Create("original text")

	result := &types.OptimizationResult{
		OptimizedText:   "# Jane Doe\n## Experience",
		KeyChanges:      []string{"Tightened summary"},
		SuggestedSkills: []string{"Go"},
		ATSScore:        77,
	}

	updated, err := store.ApplyResult(created.ID, result)
	require.NoError(t, err)
	assert.Equal(t, result.OptimizedText, updated.Text)
	require.NotNil(t, updated.LastResult)
	assert.Equal(t, 77, updated.LastResult.ATSScore)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	store := NewStore(0)
	created := store.Create("text")

	created.Text = "mutated by caller"

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "text", got.Text)
}

func TestStore_PruneExpired(t *testing.T) {
	store := NewStore(time.Hour)
	fresh := store.Create("fresh")
	stale := store.Create("stale")

	current := time.Now()
	store.now = func() time.Time { return current }
	_, err := store.SetText(stale.ID, "stale")
	require.NoError(t, err)

	// Advance the clock past the TTL, then touch only the fresh session.
	store.now = func() time.Time { return current.Add(2 * time.Hour) }
	_, err = store.SetText(fresh.ID, "fresh again")
	require.NoError(t, err)

	removed := store.PruneExpired()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(stale.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}
