// Package testutil provides shared test helpers used across
// integration and unit test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rhcos-prune/internal/types"
)

// LedgerPath returns a ledger file path inside a fresh temp dir.
func LedgerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "deleted_images.json")
}

// WriteLedger persists a ledger fixture directly, bypassing the adapter.
func WriteLedger(t *testing.T, path string, ledger types.Ledger) {
	t.Helper()
	data, err := json.Marshal(ledger)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// ReadLedger reads a ledger file back for assertions.
func ReadLedger(t *testing.T, path string) types.Ledger {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ledger := types.Ledger{}
	require.NoError(t, json.Unmarshal(data, &ledger))
	return ledger
}
