package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vydriver/pkg/cli"
	"github.com/newtron-network/vydriver/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.vydriver/settings.yaml.

Examples:
  vydriver settings show
  vydriver settings set default_device edge1
  vydriver settings set redis_addr 127.0.0.1:6379
  vydriver settings device edge1 --host 192.0.2.10 --username vyos --key-file ~/.ssh/id_ed25519
  vydriver settings clear`,
}

func (a *App) saveSettings() error {
	if a.settingsPath != "" {
		return a.settings.SaveTo(a.settingsPath)
	}
	return a.settings.Save()
}

func (a *App) settingsFile() string {
	if a.settingsPath != "" {
		return a.settingsPath
	}
	return settings.DefaultSettingsPath()
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.settings
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Settings file: %s\n\n", app.settingsFile())

		t := cli.NewTable(out, "SETTING", "VALUE")
		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}
		printSetting("default_device", s.DefaultDevice)
		printSetting("log_level", s.LogLevel)
		printSetting("log_format", s.LogFormat)
		printSetting("audit_log", s.AuditLog)
		printSetting("audit_max_size", intSetting(s.AuditMaxSize))
		printSetting("audit_max_backups", intSetting(int64(s.AuditMaxBackups)))
		if s.Redis != nil {
			printSetting("redis_addr", s.Redis.Addr)
			printSetting("redis_db", strconv.Itoa(s.Redis.DB))
		} else {
			printSetting("redis_addr", "")
		}
		t.Flush()

		names := s.DeviceNames()
		if len(names) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		dt := cli.NewTable(out, "DEVICE", "HOST", "PORT", "USERNAME", "AUTH")
		for _, name := range names {
			d := s.Devices[name]
			auth := "prompt"
			switch {
			case d.KeyFile != "":
				auth = "key " + d.KeyFile
			case d.Password != "":
				auth = "password"
			}
			port := ""
			if d.Port != 0 {
				port = strconv.Itoa(d.Port)
			}
			dt.Row(name, d.Host, port, d.Username, auth)
		}
		dt.Flush()
		return nil
	},
}

func intSetting(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value. An empty value clears it.

Available settings:
  ` + strings.Join(settings.Keys, "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.settings.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := app.saveSettings(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", args[0], args[1])
		return nil
	},
}

var deviceProfile settings.Device

var settingsDeviceCmd = &cobra.Command{
	Use:   "device <name>",
	Short: "Add or replace a device profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := deviceProfile.SessionConfig(); err != nil {
			return err
		}
		app.settings.SetDevice(args[0], deviceProfile)
		if err := app.saveSettings(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Device %s saved\n", args[0])
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.settings.Clear()
		if err := app.saveSettings(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings cleared")
		return nil
	},
}

func init() {
	f := settingsDeviceCmd.Flags()
	f.StringVar(&deviceProfile.Host, "host", "", "Address or hostname (default: the profile name)")
	f.IntVar(&deviceProfile.Port, "port", 0, "SSH port (default 22)")
	f.StringVar(&deviceProfile.Username, "username", "", "Login user (default vyos)")
	f.StringVar(&deviceProfile.Password, "password", "", "Login password (prompted when neither password nor key is set)")
	f.StringVar(&deviceProfile.KeyFile, "key-file", "", "Private key file")
	f.StringVar(&deviceProfile.KnownHostsFile, "known-hosts", "", "known_hosts file for host key verification")
	f.StringVar(&deviceProfile.Timeout, "timeout", "", "Per-command timeout, e.g. 30s")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsDeviceCmd, settingsClearCmd)
}
