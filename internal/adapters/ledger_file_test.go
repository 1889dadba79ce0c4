package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rhcos-prune/internal/types"
)

func TestLedgerFileLoadMissingFileIsEmpty(t *testing.T) {
	adapter := NewLedgerFileAdapter(filepath.Join(t.TempDir(), "deleted_images.json"))
	ledger, err := adapter.Load()
	require.NoError(t, err)
	require.Empty(t, ledger)
}

func TestLedgerFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deleted_images.json")
	adapter := NewLedgerFileAdapter(path)

	ledger := types.Ledger{
		"410.2": {
			{Region: "us-east-1", Image: "img-B"},
			{Region: "eu-central-1", Image: "img-C", Deleted: true},
		},
	}
	require.NoError(t, adapter.Save(ledger))

	loaded, err := adapter.Load()
	require.NoError(t, err)
	require.Equal(t, ledger, loaded)
}

func TestLedgerFileLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deleted_images.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	adapter := NewLedgerFileAdapter(path)
	_, err := adapter.Load()
	require.Error(t, err)
}

func TestLedgerFileSaveLeavesNoTemporaries(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLedgerFileAdapter(filepath.Join(dir, "deleted_images.json"))
	require.NoError(t, adapter.Save(types.Ledger{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "deleted_images.json", entries[0].Name())
}

func TestLedgerFileEmptyPathFails(t *testing.T) {
	adapter := NewLedgerFileAdapter("")
	_, err := adapter.Load()
	require.Error(t, err)
	require.Error(t, adapter.Save(types.Ledger{}))
}
