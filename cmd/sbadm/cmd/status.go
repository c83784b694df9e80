package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/venus-drivers/sbadm/internal/driver"
	"github.com/venus-drivers/sbadm/internal/packaging"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which driver artifacts are present",
	Long:  "Report the driver artifacts still on the system without modifying anything.",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := driver.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("sbadm status: %w", err)
	}

	uninstaller := packaging.NewUninstaller(
		*cfg,
		packaging.NewRemounter(cfg.RemountScript, cfg.DataMount),
		packaging.NewProcessScanner(),
		packaging.NewRootChecker(),
		logger,
	)

	rep, err := uninstaller.Inspect()
	if err != nil {
		return fmt.Errorf("sbadm status: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Driver:           %s\n", cfg.DriverName)
	fmt.Fprintf(w, "Config file:      %s\n", presence(rep.ConfPresent))
	fmt.Fprintf(w, "Autostart lines:  %d\n", rep.AutostartLines)
	fmt.Fprintf(w, "Running PIDs:     %v\n", rep.RunningPIDs)
	if rep.Clean() {
		fmt.Fprintln(w, "\nNo driver artifacts found.")
	}
	return nil
}

func presence(present bool) string {
	if present {
		return "present"
	}
	return "absent"
}
