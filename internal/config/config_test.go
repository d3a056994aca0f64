package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcortes/volunteer-hub/internal/match"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent, not empty,
	// for envDefault to apply.
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("MATCH_WEIGHTS_FILE", "")
	os.Unsetenv("MATCH_WEIGHTS_FILE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, match.DefaultWeights(), cfg.Weights)
}

func TestLoadWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	content := "availability: 30\nstateMatch: 12\ncityMatch: 6\nurgencyStep: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	w, err := loadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, w.Availability)
	assert.Equal(t, 12.0, w.StateMatch)
	assert.Equal(t, 6.0, w.CityMatch)
	assert.Equal(t, 5.0, w.UrgencyStep)
}

func TestLoadWeightsFileRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("availability: -1\n"), 0644))

	_, err := loadWeights(path)
	assert.Error(t, err)
}

func TestLoadWeightsFileMissing(t *testing.T) {
	_, err := loadWeights(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
