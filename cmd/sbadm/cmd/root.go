// Package cmd implements the sbadm CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cfgFile string

// DefaultConfigPath is the optional sbadm config file location.
const DefaultConfigPath = "/data/etc/sbadm/config.yaml"

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("sbadm version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
}

var rootCmd = &cobra.Command{
	Use:   "sbadm",
	Short: "sbadm manages serial-battery driver artifacts on Venus OS devices",
	Long: "sbadm is a maintenance tool for the dbus-serialbattery driver on\n" +
		"Venus-OS-style appliances. It removes the driver's serial-starter config,\n" +
		"terminates running driver processes, and prunes the autostart line the\n" +
		"driver added to the boot script.",
	// No Run function — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", DefaultConfigPath, "config file path")

	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("sbadm version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
