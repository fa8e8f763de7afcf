package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
)

func TestSlot(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "jot.db")

	t.Run("Uninitialized Slot Errors", func(t *testing.T) {
		_, err := sqlite.NewSlot(sqlite.Config{Path: dbPath}).Read(ctx)
		assert.Error(t, err)
	})

	slot := sqlite.NewSlot(sqlite.Config{Path: dbPath})
	require.NoError(t, slot.Initialize(ctx))

	_, err := slot.Read(ctx)
	require.ErrorIs(t, err, core.ErrSlotEmpty)

	store := core.NewStore(slot)
	require.NoError(t, store.Initialize(ctx))
	first, err := store.Create(ctx, "first")
	require.NoError(t, err)
	_, err = store.Create(ctx, "second")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, first.ID))
	require.NoError(t, slot.Close())

	t.Run("Survives Reopen", func(t *testing.T) {
		reopened := sqlite.NewSlot(sqlite.Config{Path: dbPath})
		require.NoError(t, reopened.Initialize(ctx))
		defer reopened.Close()

		s := core.NewStore(reopened)
		require.NoError(t, s.Initialize(ctx))
		notes := s.Notes()
		require.Len(t, notes, 1)
		assert.Equal(t, "second", notes[0].Content)
	})

	t.Run("Slots Are Isolated By Name", func(t *testing.T) {
		other := sqlite.NewSlot(sqlite.Config{Path: dbPath, Name: "archive"})
		require.NoError(t, other.Initialize(ctx))
		defer other.Close()

		_, err := other.Read(ctx)
		assert.ErrorIs(t, err, core.ErrSlotEmpty)
	})
}

func TestSlot_State(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "jot.db")
	slot := sqlite.NewSlot(sqlite.Config{Path: dbPath})
	assert.Equal(t, sqlite.SlotState{Path: dbPath, Name: "notes"}, slot.State())

	require.NoError(t, slot.Initialize(context.Background()))
	assert.True(t, slot.State().(sqlite.SlotState).Open)

	require.NoError(t, slot.Close())
	assert.False(t, slot.State().(sqlite.SlotState).Open)
	assert.Equal(t, "sqlite-slot", slot.ComponentType())
}

func TestSlot_MustExist(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Vault Is Refused", func(t *testing.T) {
		vault := filepath.Join(t.TempDir(), "typo")
		slot := sqlite.NewSlot(sqlite.Config{
			Path:      filepath.Join(vault, ".jot", "jot.db"),
			VaultDir:  vault,
			MustExist: true,
		})

		err := slot.Initialize(ctx)
		assert.ErrorContains(t, err, "does not exist")
		assert.NoDirExists(t, vault)
	})

	t.Run("Existing Vault Opens", func(t *testing.T) {
		vault := t.TempDir()
		slot := sqlite.NewSlot(sqlite.Config{
			Path:      filepath.Join(vault, ".jot", "jot.db"),
			VaultDir:  vault,
			MustExist: true,
		})
		require.NoError(t, slot.Initialize(ctx))
		defer slot.Close()
		assert.FileExists(t, filepath.Join(vault, ".jot", "jot.db"))
	})
}
