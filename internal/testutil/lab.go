//go:build integration

package testutil

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/newtron-network/vydriver/pkg/session"
)

// LabConfig returns connection settings for a real VyOS router taken from
// VYDRIVER_LAB_HOST, VYDRIVER_LAB_PORT, VYDRIVER_LAB_USER, VYDRIVER_LAB_PASSWORD
// and VYDRIVER_LAB_KEY. The test is skipped when no host is set.
func LabConfig(t *testing.T) session.Config {
	t.Helper()

	host := os.Getenv("VYDRIVER_LAB_HOST")
	if host == "" {
		t.Skip("no lab router: set VYDRIVER_LAB_HOST")
	}

	cfg := session.Config{
		Host:     host,
		Username: envOr("VYDRIVER_LAB_USER", "vyos"),
		Password: os.Getenv("VYDRIVER_LAB_PASSWORD"),
		KeyFile:  os.Getenv("VYDRIVER_LAB_KEY"),
		Timeout:  30 * time.Second,
	}
	if p := os.Getenv("VYDRIVER_LAB_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			t.Fatalf("VYDRIVER_LAB_PORT: %v", err)
		}
		cfg.Port = port
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
