// Package launcher starts both web apps as child processes and prints
// their URLs. It is the code behind `manuscripthub launch`.
package launcher

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/chislo/manuscripthub/internal/config"
)

// Apps spawned by the launcher, in spawn and print order.
var Apps = []string{"finder", "checker"}

// URL lines printed after spawning. The checker is feature-complete on
// the API side but its UI is still being finished, hence the label.
func urlLines() []string {
	return []string{
		fmt.Sprintf("Journal Finder: http://localhost:%s", config.DefaultFinderPort),
		fmt.Sprintf("Manuscript Checker (Coming Soon): http://localhost:%s", config.DefaultCheckerPort),
	}
}

// Launcher spawns the two app processes. Spawn is swappable so tests
// can observe spawn calls without forking real processes.
type Launcher struct {
	Out    io.Writer
	In     io.Reader
	Logger *zerolog.Logger

	// Spawn starts one app subcommand detached from the launcher.
	// When nil, Run uses the default os/exec spawner.
	Spawn func(app string) error
}

// Run spawns both apps, prints their URLs, and blocks until the user
// presses a key. It always returns nil: a child that fails to start
// (port already bound by an earlier launch, for instance) is reported
// but does not fail the launcher, so repeated launches stay harmless.
func (l *Launcher) Run() error {
	spawn := l.Spawn
	if spawn == nil {
		spawn = l.spawnDetached
	}

	for _, app := range Apps {
		if err := spawn(app); err != nil {
			l.Logger.Warn().Err(err).Str("app", app).Msg("could not start app, it may already be running")
		}
	}

	for _, line := range urlLines() {
		fmt.Fprintln(l.Out, line)
	}
	fmt.Fprintln(l.Out)
	fmt.Fprintln(l.Out, "Press any key to close this window (the apps keep running)...")

	l.waitForKey()
	return nil
}

// spawnDetached re-executes the current binary with the app subcommand
// as a detached child so it outlives the launcher process.
func (l *Launcher) spawnDetached(app string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, app)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}

	// Reap the child in the background so it never zombies while the
	// launcher is still alive.
	go func() { _ = cmd.Wait() }()

	l.Logger.Info().Str("app", app).Int("pid", cmd.Process.Pid).Msg("started app")
	return nil
}

// waitForKey blocks until any input arrives. A closed stdin (launch
// from a non-interactive shell) unblocks immediately.
func (l *Launcher) waitForKey() {
	reader := bufio.NewReader(l.In)
	_, _ = reader.ReadByte()
}
