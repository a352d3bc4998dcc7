//go:build unix

package transport

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own process group so its exit never shows up
// as a job-control notification in the interactive shell.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
