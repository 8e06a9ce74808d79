//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own session so closing the launcher
// terminal does not kill it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
