// Package settings manages the vydriver settings file: device profiles and
// process-wide defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/vydriver/pkg/session"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Settings is the content of ~/.vydriver/settings.yaml.
type Settings struct {
	// DefaultDevice is used when -d is not given.
	DefaultDevice string `yaml:"default_device,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat is "text" (default) or "json".
	LogFormat string `yaml:"log_format,omitempty"`

	// AuditLog is the JSON-lines audit file; empty disables auditing.
	AuditLog        string `yaml:"audit_log,omitempty"`
	AuditMaxSize    int64  `yaml:"audit_max_size,omitempty"`
	AuditMaxBackups int    `yaml:"audit_max_backups,omitempty"`

	// Redis is the optional fact export target.
	Redis *Redis `yaml:"redis,omitempty"`

	Devices map[string]Device `yaml:"devices,omitempty"`
}

// Redis locates the export database.
type Redis struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Device is a connection profile for one router.
type Device struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port,omitempty"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	KeyFile        string `yaml:"key_file,omitempty"`
	KnownHostsFile string `yaml:"known_hosts_file,omitempty"`

	// Timeout is a Go duration string such as "30s".
	Timeout string `yaml:"timeout,omitempty"`
}

// SessionConfig converts the profile into session parameters.
func (d Device) SessionConfig() (session.Config, error) {
	cfg := session.Config{
		Host:           d.Host,
		Port:           d.Port,
		Username:       d.Username,
		Password:       d.Password,
		KeyFile:        d.KeyFile,
		KnownHostsFile: d.KnownHostsFile,
	}
	if d.Timeout != "" {
		t, err := time.ParseDuration(d.Timeout)
		if err != nil {
			return cfg, util.NewInvalidInputError("timeout", err.Error())
		}
		cfg.Timeout = t
	}
	return cfg, nil
}

// DefaultSettingsPath returns the default path for the settings file.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vydriver_settings.yaml"
	}
	return filepath.Join(home, ".vydriver", "settings.yaml")
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from path. A missing file yields empty settings.
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

// Save writes settings to the default location.
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to path. The file may hold passwords, so it is
// readable by the owner only.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Device returns the named profile, or the default device's when name is empty.
func (s *Settings) Device(name string) (string, Device, error) {
	if name == "" {
		name = s.DefaultDevice
	}
	if name == "" {
		return "", Device{}, util.NewInvalidInputError("device", "no device given and no default_device set")
	}
	d, ok := s.Devices[name]
	if !ok {
		return name, Device{}, util.NewLookupError("settings devices", name)
	}
	if d.Host == "" {
		d.Host = name
	}
	return name, d, nil
}

// SetDevice adds or replaces a profile.
func (s *Settings) SetDevice(name string, d Device) {
	if s.Devices == nil {
		s.Devices = make(map[string]Device)
	}
	s.Devices[name] = d
}

// DeviceNames returns the profile names in sorted order.
func (s *Settings) DeviceNames() []string {
	names := make([]string, 0, len(s.Devices))
	for n := range s.Devices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Keys accepted by Set.
var Keys = []string{"default_device", "log_level", "log_format", "audit_log", "audit_max_size", "audit_max_backups", "redis_addr", "redis_db"}

// Set assigns one scalar setting by its file key. An empty value clears it.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "default_device":
		s.DefaultDevice = value
	case "log_level":
		s.LogLevel = value
	case "log_format":
		if value != "" && value != "text" && value != "json" {
			return util.NewInvalidInputError("settings set", fmt.Sprintf("log_format must be text or json, not %q", value))
		}
		s.LogFormat = value
	case "audit_log":
		s.AuditLog = value
	case "audit_max_size":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		s.AuditMaxSize = int64(n)
	case "audit_max_backups":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		s.AuditMaxBackups = n
	case "redis_addr":
		if value == "" {
			s.Redis = nil
			return nil
		}
		s.redis().Addr = value
	case "redis_db":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		s.redis().DB = n
	default:
		return util.NewInvalidInputError("settings set", fmt.Sprintf("unknown key %q", key))
	}
	return nil
}

func (s *Settings) redis() *Redis {
	if s.Redis == nil {
		s.Redis = &Redis{}
	}
	return s.Redis
}

func parseInt(key, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, util.NewInvalidInputError("settings set", fmt.Sprintf("%s must be a non-negative integer, got %q", key, value))
	}
	return n, nil
}

// Clear resets all settings.
func (s *Settings) Clear() {
	*s = Settings{}
}
