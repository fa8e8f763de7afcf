package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	t.Run("Outside A Vault", func(t *testing.T) {
		vaultPath = ""
		t.Chdir(t.TempDir())

		_, err := resolveRoot()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "não é um cofre jot (execute 'jot init')")
	})

	t.Run("Nearest Vault Above", func(t *testing.T) {
		vaultPath = ""
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".jot"), 0755))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0755))
		t.Chdir(nested)

		got, err := resolveRoot()
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("Flag Wins", func(t *testing.T) {
		vaultPath = "/somewhere"
		t.Cleanup(func() { vaultPath = "" })

		got, err := resolveRoot()
		require.NoError(t, err)
		assert.Equal(t, "/somewhere", got)
	})
}
