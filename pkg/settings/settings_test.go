package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newtron-network/vydriver/pkg/util"
)

const sampleYAML = `default_device: edge1
log_level: debug
audit_log: /var/log/vydriver/audit.log
redis:
  addr: 127.0.0.1:6379
  db: 3
devices:
  edge1:
    host: 192.0.2.10
    username: vyos
    password: secret
    timeout: 30s
  edge2:
    port: 2222
    key_file: ~/.ssh/id_ed25519
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing settings: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	s, err := LoadFrom(writeSettings(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if s.DefaultDevice != "edge1" || s.LogLevel != "debug" {
		t.Errorf("scalars = %q, %q", s.DefaultDevice, s.LogLevel)
	}
	if s.Redis == nil || s.Redis.Addr != "127.0.0.1:6379" || s.Redis.DB != 3 {
		t.Errorf("Redis = %+v", s.Redis)
	}
	if got := s.DeviceNames(); len(got) != 2 || got[0] != "edge1" || got[1] != "edge2" {
		t.Errorf("DeviceNames() = %v", got)
	}
}

func TestSettings_Device(t *testing.T) {
	s, err := LoadFrom(writeSettings(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	name, d, err := s.Device("")
	if err != nil {
		t.Fatalf("Device(\"\") failed: %v", err)
	}
	if name != "edge1" || d.Host != "192.0.2.10" {
		t.Errorf("default device = %q %+v", name, d)
	}

	cfg, err := d.SessionConfig()
	if err != nil {
		t.Fatalf("SessionConfig() failed: %v", err)
	}
	if cfg.Timeout != 30*time.Second || cfg.Username != "vyos" || cfg.Password != "secret" {
		t.Errorf("SessionConfig() = %+v", cfg)
	}

	// A profile without host connects to its own name.
	_, d, err = s.Device("edge2")
	if err != nil {
		t.Fatal(err)
	}
	if d.Host != "edge2" || d.Port != 2222 {
		t.Errorf("edge2 = %+v", d)
	}

	if _, _, err := s.Device("nosuch"); !errors.Is(err, util.ErrLookup) {
		t.Errorf("unknown device error = %v, want ErrLookup", err)
	}
	if _, _, err := (&Settings{}).Device(""); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("no default error = %v, want ErrInvalidInput", err)
	}
}

func TestDevice_SessionConfigBadTimeout(t *testing.T) {
	_, err := Device{Host: "r1", Timeout: "soon"}.SessionConfig()
	if !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSettings_Set(t *testing.T) {
	s := &Settings{}

	for key, value := range map[string]string{
		"default_device":    "edge1",
		"log_level":         "warn",
		"log_format":        "json",
		"audit_log":         "/tmp/audit.log",
		"audit_max_size":    "1048576",
		"audit_max_backups": "5",
		"redis_addr":        "localhost:6379",
		"redis_db":          "2",
	} {
		if err := s.Set(key, value); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}
	if s.DefaultDevice != "edge1" || s.LogLevel != "warn" || s.AuditLog != "/tmp/audit.log" {
		t.Errorf("scalars not set: %+v", s)
	}
	if s.LogFormat != "json" {
		t.Errorf("LogFormat = %q", s.LogFormat)
	}
	if err := s.Set("log_format", "xml"); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("log_format xml: err = %v, want ErrInvalidInput", err)
	}
	if s.AuditMaxSize != 1048576 || s.AuditMaxBackups != 5 {
		t.Errorf("rotation = %d/%d", s.AuditMaxSize, s.AuditMaxBackups)
	}
	if s.Redis == nil || s.Redis.Addr != "localhost:6379" || s.Redis.DB != 2 {
		t.Errorf("Redis = %+v", s.Redis)
	}

	if err := s.Set("redis_addr", ""); err != nil || s.Redis != nil {
		t.Errorf("clearing redis_addr: %v, %+v", err, s.Redis)
	}
	if err := s.Set("audit_max_backups", "-1"); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("negative value error = %v", err)
	}
	if err := s.Set("color", "always"); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("unknown key error = %v", err)
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{DefaultDevice: "edge1", LogLevel: "debug", Redis: &Redis{Addr: "x"}}
	s.SetDevice("edge1", Device{Host: "192.0.2.1"})

	s.Clear()

	if s.DefaultDevice != "" || s.LogLevel != "" || s.Redis != nil || s.Devices != nil {
		t.Error("Clear() should reset all fields")
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	original := &Settings{DefaultDevice: "edge1", AuditLog: "/tmp/a.log"}
	original.SetDevice("edge1", Device{Host: "192.0.2.10", Username: "vyos", Timeout: "10s"})

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if loaded.DefaultDevice != "edge1" || loaded.AuditLog != "/tmp/a.log" {
		t.Errorf("loaded = %+v", loaded)
	}
	if d := loaded.Devices["edge1"]; d.Host != "192.0.2.10" || d.Timeout != "10s" {
		t.Errorf("loaded device = %+v", d)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	s, err := LoadFrom("/nonexistent/path/settings.yaml")
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil || s.DefaultDevice != "" || len(s.Devices) != 0 {
		t.Errorf("LoadFrom() non-existent = %+v, want empty settings", s)
	}
}

func TestSettings_LoadInvalidYAML(t *testing.T) {
	if _, err := LoadFrom(writeSettings(t, "devices: [unclosed")); err == nil {
		t.Error("LoadFrom() with invalid YAML should error")
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(dir); err == nil {
		t.Error("LoadFrom() should error when path is a directory")
	}
}

func TestSaveTo_MkdirError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("blocking"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := &Settings{DefaultDevice: "edge1"}
	if err := s.SaveTo(filepath.Join(blocker, "sub", "settings.yaml")); err == nil {
		t.Error("SaveTo() should fail when directory creation fails")
	}
}

func TestLoadSave_DefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() with no file: %v", err)
	}
	if s.DefaultDevice != "" {
		t.Error("Load() with no file should return empty settings")
	}

	s.DefaultDevice = "saved-device"
	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".vydriver", "settings.yaml")); err != nil {
		t.Fatalf("Save() did not create the default file: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultDevice != "saved-device" {
		t.Errorf("DefaultDevice = %q", loaded.DefaultDevice)
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	t.Setenv("HOME", "")
	if path := DefaultSettingsPath(); path != "vydriver_settings.yaml" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q", path)
	}
}
