//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach starts the child in its own process group so closing the
// launcher console does not kill it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: 0x00000008 | 0x00000200, // DETACHED_PROCESS | CREATE_NEW_PROCESS_GROUP
	}
}
