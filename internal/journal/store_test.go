package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal_metadata.json")
	data := `{
		"Journal of Finance": {"field": "Finance", "sjr": 12.3, "scopus": true},
		"World Development": {"field": "Economics", "open_access": false}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	logger := zerolog.Nop()
	s, err := Load(path, &logger)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())

	j, ok := s.Get("Journal of Finance")
	require.True(t, ok)
	assert.Equal(t, "Journal of Finance", j.Name)
	assert.Equal(t, 12.3, j.SJRValue())
	assert.True(t, j.Scopus)
}

func TestLoadMissingFile(t *testing.T) {
	logger := zerolog.Nop()
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), &logger)
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	logger := zerolog.Nop()
	_, err := Load(path, &logger)
	assert.Error(t, err)
}

func TestSJRValueNil(t *testing.T) {
	j := Journal{}
	assert.Zero(t, j.SJRValue())
}
