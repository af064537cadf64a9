//go:build windows

package probe

import (
	"os/exec"
	"syscall"
)

// configureCommand keeps PowerShell and wmic from flashing a console window
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
