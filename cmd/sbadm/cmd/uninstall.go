package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/venus-drivers/sbadm/internal/driver"
	"github.com/venus-drivers/sbadm/internal/packaging"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the driver's config, processes and autostart entry",
	Long: "Remount the data filesystem read-write, delete the serial-starter\n" +
		"config file, terminate running driver processes and remove the driver's\n" +
		"autostart line from the boot script. Each step is best-effort: targets\n" +
		"that are already absent are treated as success.",
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := driver.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("sbadm uninstall: %w", err)
	}

	uninstaller := packaging.NewUninstaller(
		*cfg,
		packaging.NewRemounter(cfg.RemountScript, cfg.DataMount),
		packaging.NewProcessScanner(),
		packaging.NewRootChecker(),
		logger,
	)

	if err := uninstaller.Uninstall(); err != nil {
		return fmt.Errorf("sbadm uninstall: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s uninstalled\n", cfg.DriverName)
	return nil
}
