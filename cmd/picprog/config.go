package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-picprog/hexfile"
	"github.com/moffa90/go-picprog/picerr"
	"github.com/moffa90/go-picprog/protocol"
	"github.com/moffa90/go-picprog/serialport"
)

// Settings are the connection and session settings that may come from the
// config file, the environment or flags.
type Settings struct {
	Port          string        `yaml:"port"`
	Baud          int           `yaml:"baud"`
	Driver        string        `yaml:"driver"`
	Device        string        `yaml:"device"`
	Timeout       time.Duration `yaml:"timeout"`
	Retries       int           `yaml:"retries"`
	Slow          bool          `yaml:"slow"`
	LogLevel      string        `yaml:"log_level"`
	Format        string        `yaml:"format"`
	StrictFraming bool          `yaml:"strict_framing"`
}

// Serial drivers.
const (
	driverBugst = "bugst"
	driverTarm  = "tarm"
)

func defaultSettings() Settings {
	return Settings{
		Port:     defaultPort(),
		Baud:     serialport.DefaultBaud,
		Driver:   driverBugst,
		Device:   "auto",
		Timeout:  protocol.DefaultTimeout,
		Retries:  protocol.DefaultRetries,
		LogLevel: "info",
		Format:   "auto",
	}
}

func defaultPort() string {
	if os.PathSeparator == '\\' {
		return "COM1"
	}
	return "/dev/ttyUSB0"
}

// defaultConfigPath returns $HOME/.picprog.yaml, or "" without a home
// directory.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".picprog.yaml")
}

// loadSettings overlays the YAML file at path on s. A missing file is an
// error only when required.
func loadSettings(s *Settings, path string, required bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return nil
	}
	if err != nil {
		return picerr.E(picerr.IO, "read config", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return picerr.E(picerr.DataFormat, "parse config "+path, err)
	}
	return nil
}

// applyEnv overrides s from PIC_DEVICE and PIC_PORT.
func applyEnv(s *Settings, getenv func(string) string) {
	if v := strings.TrimSpace(getenv("PIC_DEVICE")); v != "" {
		s.Device = v
	}
	if v := strings.TrimSpace(getenv("PIC_PORT")); v != "" {
		s.Port = v
	}
}

// validate checks values a YAML file or flag may have set wrongly.
func (s *Settings) validate() error {
	switch s.Driver {
	case driverBugst, driverTarm:
	default:
		return picerr.Errorf(picerr.Usage, "unknown serial driver %q, want %s or %s", s.Driver, driverBugst, driverTarm)
	}
	if s.Baud <= 0 {
		return picerr.Errorf(picerr.Usage, "invalid baud rate %d", s.Baud)
	}
	if s.Retries < 0 {
		return picerr.Errorf(picerr.Usage, "invalid retry count %d", s.Retries)
	}
	if _, err := hexfile.ParseFormat(s.Format); err != nil {
		return err
	}
	return nil
}
