package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moffa90/go-picprog/hexfile"
	"github.com/moffa90/go-picprog/picerr"
)

type changedFlags map[string]bool

func (c changedFlags) Changed(name string) bool { return c[name] }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picprog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolve(t *testing.T) {
	file := writeConfig(t, `
port: /dev/ttyS1
baud: 57600
driver: tarm
device: pic16f84a
timeout: 3s
retries: 2
slow: true
log_level: debug
format: ihx32
`)

	tests := []struct {
		name    string
		changed changedFlags
		flags   Settings
		env     map[string]string
		check   func(t *testing.T, s Settings)
	}{
		{
			name: "file over defaults",
			check: func(t *testing.T, s Settings) {
				if s.Port != "/dev/ttyS1" || s.Baud != 57600 || s.Driver != driverTarm {
					t.Errorf("line settings = %s %d %s", s.Port, s.Baud, s.Driver)
				}
				if s.Timeout != 3*time.Second || s.Retries != 2 || !s.Slow {
					t.Errorf("session settings = %v %d %v", s.Timeout, s.Retries, s.Slow)
				}
				if s.Device != "pic16f84a" || s.LogLevel != "debug" || s.Format != "ihx32" {
					t.Errorf("device %s, log level %s, format %s", s.Device, s.LogLevel, s.Format)
				}
			},
		},
		{
			name: "environment over file",
			env:  map[string]string{"PIC_DEVICE": "pic16f628a", "PIC_PORT": "/dev/ttyUSB3"},
			check: func(t *testing.T, s Settings) {
				if s.Device != "pic16f628a" || s.Port != "/dev/ttyUSB3" {
					t.Errorf("device %s, port %s", s.Device, s.Port)
				}
			},
		},
		{
			name:    "flags over environment",
			changed: changedFlags{"device": true, "baud": true, "driver": true},
			flags:   Settings{Device: "pic18f452", Baud: 9600, Driver: driverBugst},
			env:     map[string]string{"PIC_DEVICE": "pic16f628a"},
			check: func(t *testing.T, s Settings) {
				if s.Device != "pic18f452" || s.Baud != 9600 || s.Driver != driverBugst {
					t.Errorf("device %s, baud %d, driver %s", s.Device, s.Baud, s.Driver)
				}
				// Unchanged flags leave the file values alone.
				if s.Port != "/dev/ttyS1" || !s.Slow {
					t.Errorf("port %s, slow %v", s.Port, s.Slow)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := resolve(tt.changed, tt.flags, file, env(tt.env))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		path     string
		wantKind picerr.Kind
		errMsg   string
	}{
		{
			name:     "missing explicit file",
			path:     filepath.Join(os.TempDir(), "picprog-missing", "config.yaml"),
			wantKind: picerr.IO,
			errMsg:   "read config",
		},
		{
			name:     "malformed yaml",
			config:   "port: [unterminated",
			wantKind: picerr.DataFormat,
			errMsg:   "parse config",
		},
		{
			name:     "unknown driver",
			config:   "driver: ftdi",
			wantKind: picerr.Usage,
			errMsg:   `unknown serial driver "ftdi"`,
		},
		{
			name:     "unknown format",
			config:   "format: srec",
			wantKind: picerr.Usage,
			errMsg:   "unknown hex format",
		},
		{
			name:     "bad baud rate",
			config:   "baud: -1",
			wantKind: picerr.Usage,
			errMsg:   "invalid baud rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeConfig(t, tt.config)
			}
			_, err := resolve(changedFlags{}, Settings{}, path, env(nil))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errMsg)
			}
			if picerr.KindOf(err) != tt.wantKind {
				t.Errorf("KindOf = %v, want %v", picerr.KindOf(err), tt.wantKind)
			}
		})
	}
}

func TestLoadSettings_MissingDefault(t *testing.T) {
	s := defaultSettings()
	path := filepath.Join(t.TempDir(), ".picprog.yaml")
	if err := loadSettings(&s, path, false); err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if s != defaultSettings() {
		t.Errorf("settings changed: %+v", s)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		want    hexfile.Format
		wantErr string
	}{
		{name: "read only", opts: options{output: "out.hex"}, want: hexfile.FormatAuto},
		{name: "erase only", opts: options{erase: true, ihx8m: true}, want: hexfile.IHX8M},
		{name: "program with copy", opts: options{input: "in.hex", cc: "cc.hex", ihx32: true}, want: hexfile.IHX32},
		{name: "nothing to do", opts: options{}, wantErr: "Please specify either input or output hexfile or --erase"},
		{name: "copy without input", opts: options{output: "out.hex", cc: "cc.hex"}, wantErr: "Carbon copy does not make sense"},
		{name: "two formats", opts: options{input: "in.hex", ihx8m: true, ihx16: true}, wantErr: "at most one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := tt.opts.format("auto")
			if err == nil {
				err = tt.opts.validate()
			}
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
				}
				if exitCode(err) != exitUsage {
					t.Errorf("exitCode = %d, want %d", exitCode(err), exitUsage)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if format != tt.want {
				t.Errorf("format = %v, want %v", format, tt.want)
			}
		})
	}
}
