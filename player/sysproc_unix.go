//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// isolate puts mpv in its own process group so a terminal SIGINT only reaches castdeck.
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate kills mpv together with any helpers it spawned.
func terminate(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	_ = cmd.Process.Kill()
}
