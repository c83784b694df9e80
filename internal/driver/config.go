// Package driver describes the serial-battery driver artifacts that sbadm manages.
package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultDriverName is the name of the driver whose artifacts are removed.
const DefaultDriverName = "dbus-serialbattery"

// DefaultSerialStarterDir is the serial-starter configuration directory.
const DefaultSerialStarterDir = "/data/conf/serial-starter.d"

// DefaultRCLocalPath is the boot script the driver appends its reinstall line to.
const DefaultRCLocalPath = "/data/rc.local"

// DefaultRemountScript is the Venus OS helper that remounts the root filesystem read-write.
const DefaultRemountScript = "/opt/victronenergy/swupdate-scripts/remount-rw.sh"

// DefaultDataMount is the mount point remounted read-write when the helper script is absent.
const DefaultDataMount = "/data"

// Config identifies the driver and the filesystem locations of its artifacts.
// All derived fields (ConfPath, ReinstallLine, ProcessPattern) follow
// DriverName unless explicitly overridden.
type Config struct {
	// DriverName is the driver identifier used to derive paths and patterns.
	// Default: dbus-serialbattery
	DriverName string `yaml:"driver_name"`

	// SerialStarterDir contains the per-driver serial-starter config files.
	// Default: /data/conf/serial-starter.d
	SerialStarterDir string `yaml:"serial_starter_dir"`

	// RCLocalPath is the startup script pruned during uninstall.
	// Default: /data/rc.local
	RCLocalPath string `yaml:"rc_local_path"`

	// RemountScript is the external remount-read-write helper.
	// Default: /opt/victronenergy/swupdate-scripts/remount-rw.sh
	RemountScript string `yaml:"remount_script"`

	// DataMount is the mount point for the syscall remount fallback.
	// Default: /data
	DataMount string `yaml:"data_mount"`

	// ReinstallLine is the literal substring identifying the driver's
	// autostart line in RCLocalPath.
	// Default: sh /data/etc/<DriverName>/reinstalllocal.sh
	ReinstallLine string `yaml:"reinstall_line"`

	// ProcessPattern is the regular expression matched against process
	// command lines to find running driver instances.
	// Default: python .*/<DriverName>.py
	ProcessPattern string `yaml:"process_pattern"`
}

// ApplyDefaults sets default values for zero-valued fields. Derived fields
// are computed from DriverName, so it is defaulted first.
func (c *Config) ApplyDefaults() {
	if c.DriverName == "" {
		c.DriverName = DefaultDriverName
	}
	if c.SerialStarterDir == "" {
		c.SerialStarterDir = DefaultSerialStarterDir
	}
	if c.RCLocalPath == "" {
		c.RCLocalPath = DefaultRCLocalPath
	}
	if c.RemountScript == "" {
		c.RemountScript = DefaultRemountScript
	}
	if c.DataMount == "" {
		c.DataMount = DefaultDataMount
	}
	if c.ReinstallLine == "" {
		c.ReinstallLine = fmt.Sprintf("sh /data/etc/%s/reinstalllocal.sh", c.DriverName)
	}
	if c.ProcessPattern == "" {
		c.ProcessPattern = fmt.Sprintf("python .*/%s.py", c.DriverName)
	}
}

// Validate checks that required fields are set and ProcessPattern compiles.
func (c *Config) Validate() error {
	if c.DriverName == "" {
		return errors.New("driver: config: DriverName is required")
	}
	if c.SerialStarterDir == "" {
		return errors.New("driver: config: SerialStarterDir is required")
	}
	if c.RCLocalPath == "" {
		return errors.New("driver: config: RCLocalPath is required")
	}
	if c.DataMount == "" {
		return errors.New("driver: config: DataMount is required")
	}
	if c.ReinstallLine == "" {
		return errors.New("driver: config: ReinstallLine is required")
	}
	if _, err := regexp.Compile(c.ProcessPattern); err != nil {
		return fmt.Errorf("driver: config: invalid ProcessPattern %q: %w", c.ProcessPattern, err)
	}
	return nil
}

// ConfPath returns the serial-starter config file for this driver.
func (c *Config) ConfPath() string {
	return filepath.Join(c.SerialStarterDir, c.DriverName+".conf")
}

// ParseConfig reads a YAML config file, applies defaults and validates.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("driver: config: parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig behaves like ParseConfig but returns a default config when the
// file does not exist. sbadm runs configless on a stock Venus OS install.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		var cfg Config
		cfg.ApplyDefaults()
		return &cfg, nil
	}
	return ParseConfig(path)
}
