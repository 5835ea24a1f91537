// Package settings manages persistent user settings for the wancost CLI.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds persistent user preferences
type Settings struct {
	// Controller is the API base URL used when --controller is not given
	Controller string `yaml:"controller,omitempty"`

	// AuditLog overrides the default audit trail location
	AuditLog string `yaml:"audit_log,omitempty"`

	// Timeout bounds each controller API call
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// InsecureSkipVerify disables TLS certificate checks
	InsecureSkipVerify bool `yaml:"insecure_skip_verify,omitempty"`
}

// Keys accepted by Get and Set.
var keys = []string{"audit_log", "controller", "insecure_skip_verify", "timeout"}

// Keys returns the setting names in display order.
func Keys() []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}

// Dir returns the per-user configuration directory
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wancost"
	}
	return filepath.Join(home, ".wancost")
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	return filepath.Join(Dir(), "settings.yaml")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path. A missing file yields
// empty settings.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// GetAuditLog returns the audit log path (with fallback)
func (s *Settings) GetAuditLog() string {
	if s.AuditLog != "" {
		return s.AuditLog
	}
	return filepath.Join(Dir(), "audit.log")
}

// Get returns a setting by name as text. Unset values are "".
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "controller":
		return s.Controller, nil
	case "audit_log":
		return s.AuditLog, nil
	case "timeout":
		if s.Timeout == 0 {
			return "", nil
		}
		return s.Timeout.String(), nil
	case "insecure_skip_verify":
		if !s.InsecureSkipVerify {
			return "", nil
		}
		return "true", nil
	}
	return "", unknownKey(key)
}

// Set parses value and assigns it to the named setting.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "controller":
		s.Controller = value
	case "audit_log":
		s.AuditLog = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must not be negative")
		}
		s.Timeout = d
	case "insecure_skip_verify":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("insecure_skip_verify: %w", err)
		}
		s.InsecureSkipVerify = b
	default:
		return unknownKey(key)
	}
	return nil
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown setting: %s (valid: %v)", key, Keys())
}
