package packaging

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// scriptRemounter implements Remounter by invoking the platform's
// remount-read-write helper script, falling back to a direct mount
// syscall when the script is absent.
type scriptRemounter struct {
	script string
	target string
}

// NewRemounter returns a Remounter that runs the given helper script.
// When the script does not exist (non-Venus images, test rigs), the
// target mount point is remounted read-write via mount(2) instead.
func NewRemounter(script, target string) Remounter {
	return &scriptRemounter{script: script, target: target}
}

func (r *scriptRemounter) Remount() error {
	if _, err := os.Stat(r.script); errors.Is(err, os.ErrNotExist) {
		return remountSyscall(r.target)
	}

	cmd := exec.Command("sh", r.script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("packaging: remount script %s: %s: %w", r.script, strings.TrimSpace(string(output)), err)
	}
	return nil
}

func remountSyscall(target string) error {
	if err := unix.Mount("", target, "", unix.MS_REMOUNT, ""); err != nil {
		return fmt.Errorf("packaging: remount %s read-write: %w", target, err)
	}
	return nil
}

// realRootChecker implements RootChecker using os.Getuid.
type realRootChecker struct{}

// NewRootChecker returns a RootChecker that checks the real process UID.
func NewRootChecker() RootChecker {
	return &realRootChecker{}
}

func (c *realRootChecker) IsRoot() bool {
	return os.Getuid() == 0
}
