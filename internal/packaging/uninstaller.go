// Package packaging removes the serial-battery driver's artifacts from the
// appliance: the serial-starter config file, the running driver processes,
// and the autostart line in the boot script.
package packaging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/venus-drivers/sbadm/internal/driver"
)

// Uninstaller performs best-effort removal of the driver's artifacts.
type Uninstaller struct {
	cfg     driver.Config
	remount Remounter
	procs   ProcessScanner
	root    RootChecker
	logger  *slog.Logger
}

// NewUninstaller creates an Uninstaller with defaults applied.
func NewUninstaller(cfg driver.Config, remount Remounter, procs ProcessScanner, root RootChecker, logger *slog.Logger) *Uninstaller {
	cfg.ApplyDefaults()
	return &Uninstaller{
		cfg:     cfg,
		remount: remount,
		procs:   procs,
		root:    root,
		logger:  logger.With("component", "packaging"),
	}
}

// Uninstall runs the cleanup sequence. Every step runs regardless of prior
// failures; a target that is already absent counts as success. The returned
// error reflects only the final step, matching the exit-status contract of
// the shell uninstaller this replaces. Earlier failures are logged.
func (u *Uninstaller) Uninstall() error {
	if !u.root.IsRoot() {
		u.logger.Warn("not running as root, cleanup may be incomplete")
	}

	// 1. Make the data filesystem writable.
	if err := u.remount.Remount(); err != nil {
		u.logger.Warn("remount read-write", "error", err)
	} else {
		u.logger.Info("filesystem remounted read-write")
	}

	// 2. Remove the serial-starter config file.
	confPath := u.cfg.ConfPath()
	switch err := os.Remove(confPath); {
	case err == nil:
		u.logger.Info("config file removed", "path", confPath)
	case errors.Is(err, os.ErrNotExist):
		u.logger.Info("config file already absent", "path", confPath)
	default:
		u.logger.Warn("remove config file", "path", confPath, "error", err)
	}

	// 3. Terminate running driver processes.
	if err := u.terminateProcesses(); err != nil {
		u.logger.Warn("terminate processes", "error", err)
	}

	// 4. Remove the autostart line from the boot script.
	removed, err := pruneLines(u.cfg.RCLocalPath, u.cfg.ReinstallLine)
	if err != nil {
		u.logger.Warn("prune startup file", "path", u.cfg.RCLocalPath, "error", err)
		return err
	}
	u.logger.Info("startup file pruned", "path", u.cfg.RCLocalPath, "lines_removed", removed)

	return nil
}

func (u *Uninstaller) terminateProcesses() error {
	pids, err := u.procs.Find(u.cfg.ProcessPattern)
	if err != nil {
		return err
	}
	if len(pids) == 0 {
		u.logger.Info("no driver processes running", "pattern", u.cfg.ProcessPattern)
		return nil
	}

	// Signal every match even if one fails.
	var lastErr error
	for _, pid := range pids {
		if err := u.procs.Terminate(pid); err != nil {
			u.logger.Warn("terminate process", "pid", pid, "error", err)
			lastErr = err
			continue
		}
		u.logger.Info("process terminated", "pid", pid)
	}
	return lastErr
}

// Report describes which driver artifacts are still present.
type Report struct {
	ConfPresent    bool
	AutostartLines int
	RunningPIDs    []int32
}

// Clean reports whether no artifacts remain.
func (r Report) Clean() bool {
	return !r.ConfPresent && r.AutostartLines == 0 && len(r.RunningPIDs) == 0
}

// Inspect reports the driver artifacts currently present without touching
// anything.
func (u *Uninstaller) Inspect() (Report, error) {
	var rep Report

	if _, err := os.Stat(u.cfg.ConfPath()); err == nil {
		rep.ConfPresent = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return rep, fmt.Errorf("packaging: stat %s: %w", u.cfg.ConfPath(), err)
	}

	lines, err := countLines(u.cfg.RCLocalPath, u.cfg.ReinstallLine)
	if err != nil {
		return rep, err
	}
	rep.AutostartLines = lines

	pids, err := u.procs.Find(u.cfg.ProcessPattern)
	if err != nil {
		return rep, err
	}
	rep.RunningPIDs = pids

	return rep, nil
}
