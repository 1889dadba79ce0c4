package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSupportThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arches:\n  x86_64: 41084202201000\n  aarch64: 41284202210000\n"), 0644))

	thresholds, err := LoadSupportThresholds(path)
	require.NoError(t, err)
	require.Equal(t, int64(41084202201000), thresholds.Arches["x86_64"])
	require.Equal(t, int64(41284202210000), thresholds.Arches["aarch64"])
}

func TestLoadSupportThresholdsEmptyPath(t *testing.T) {
	thresholds, err := LoadSupportThresholds("")
	require.NoError(t, err)
	require.Empty(t, thresholds.Arches)
}

func TestLoadSupportThresholdsMissingFileFails(t *testing.T) {
	_, err := LoadSupportThresholds(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadSupportThresholdsMalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arches: [oops"), 0644))
	_, err := LoadSupportThresholds(path)
	require.Error(t, err)
}
