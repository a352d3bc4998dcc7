//go:build !unix

package transport

import "os/exec"

func detach(cmd *exec.Cmd) {}
