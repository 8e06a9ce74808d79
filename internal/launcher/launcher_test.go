package launcher

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLauncher(spawn func(app string) error) (*Launcher, *bytes.Buffer) {
	var out bytes.Buffer
	logger := zerolog.Nop()
	return &Launcher{
		Out:    &out,
		In:     strings.NewReader(""),
		Logger: &logger,
		Spawn:  spawn,
	}, &out
}

func TestRunSpawnsBothApps(t *testing.T) {
	var spawned []string
	l, _ := newTestLauncher(func(app string) error {
		spawned = append(spawned, app)
		return nil
	})

	require.NoError(t, l.Run())
	assert.Equal(t, []string{"finder", "checker"}, spawned)
}

func TestRunPrintsURLs(t *testing.T) {
	l, out := newTestLauncher(func(string) error { return nil })
	require.NoError(t, l.Run())

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "Journal Finder: http://localhost:8501", lines[0])
	assert.Equal(t, "Manuscript Checker (Coming Soon): http://localhost:7860", lines[1])
	assert.Contains(t, out.String(), "Press any key to close this window")
}

func TestRunIgnoresSpawnErrors(t *testing.T) {
	calls := 0
	l, out := newTestLauncher(func(string) error {
		calls++
		return errors.New("address already in use")
	})

	require.NoError(t, l.Run())
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "Journal Finder: http://localhost:8501")
}

func TestRunUnblocksOnInput(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.Nop()
	l := &Launcher{
		Out:    &out,
		In:     strings.NewReader("q"),
		Logger: &logger,
		Spawn:  func(string) error { return nil },
	}
	require.NoError(t, l.Run())
}
