// vydriver - VyOS router driver
//
// Reads facts from a VyOS router and drives its configuration lifecycle over
// one SSH session per invocation.
//
//	vydriver -d <device> [--json] [--export] <verb> [args]
//
// Devices are profiles in ~/.vydriver/settings.yaml:
//
//	default_device: edge1
//	audit_log: /var/log/vydriver/audit.log
//	redis:
//	  addr: 127.0.0.1:6379
//	devices:
//	  edge1:
//	    host: 192.0.2.10
//	    username: vyos
//	    key_file: ~/.ssh/id_ed25519
//
// Examples:
//
//	vydriver -d edge1 facts
//	vydriver -d edge1 --json interfaces
//	vydriver -d edge1 bgp --detail --neighbor 192.168.1.1
//	vydriver -d edge1 config replace --file edge1.conf --commit
//	vydriver -d edge1 config rollback
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newtron-network/vydriver/pkg/audit"
	"github.com/newtron-network/vydriver/pkg/cli"
	"github.com/newtron-network/vydriver/pkg/driver"
	"github.com/newtron-network/vydriver/pkg/export"
	"github.com/newtron-network/vydriver/pkg/settings"
	"github.com/newtron-network/vydriver/pkg/util"
	"github.com/newtron-network/vydriver/pkg/version"
)

// Default audit rotation when the settings leave it unset.
const (
	defaultAuditMaxSize    = 10 * 1024 * 1024
	defaultAuditMaxBackups = 10
)

// App holds the global flags and the state shared by every command.
type App struct {
	deviceName   string
	settingsPath string
	jsonOutput   bool
	exportFacts  bool
	verbose      bool

	settings *settings.Settings
	sink     *export.RedisSink
	out      io.Writer

	// readPassword prompts for a password when the profile has none.
	readPassword func(prompt string) (string, error)
}

var app = &App{out: os.Stdout, readPassword: promptPassword}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "vydriver",
	Short:             "VyOS router driver",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `vydriver reads facts from a VyOS router and manages its configuration.

Every invocation opens one SSH session to the device selected with -d (or the
default device from the settings file) and closes it on exit.

  vydriver -d <device> [--json] [--export] <verb> [args]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return app.shutdown()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.deviceName, "device", "d", "", "Device profile name")
	rootCmd.PersistentFlags().StringVar(&app.settingsPath, "settings", "", "Settings file (default ~/.vydriver/settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")
	rootCmd.PersistentFlags().BoolVar(&app.exportFacts, "export", false, "Publish fact records to the Redis configured in settings")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "facts", Title: "Facts:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
		&cobra.Group{ID: "meta", Title: "Settings & Meta:"},
	)

	for _, cmd := range factCommands() {
		cmd.GroupID = "facts"
		rootCmd.AddCommand(cmd)
	}
	configCmd.GroupID = "config"
	rootCmd.AddCommand(configCmd)
	for _, cmd := range []*cobra.Command{settingsCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

// init loads the settings and sets up logging, auditing and the export sink.
func (a *App) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	var err error
	if a.settingsPath != "" {
		a.settings, err = settings.LoadFrom(a.settingsPath)
	} else {
		a.settings, err = settings.Load()
	}
	if err != nil {
		util.Warnf("Could not load settings: %v", err)
		a.settings = &settings.Settings{}
	}

	// Quiet by default, verbose on -v.
	level := "warn"
	if a.settings.LogLevel != "" {
		level = a.settings.LogLevel
	}
	if a.verbose {
		level = "debug"
	}
	if err := util.SetLogLevel(level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if a.settings.LogFormat == "json" {
		util.SetJSONFormat()
	}

	if isMetaCommand(cmd) {
		return nil
	}

	if a.settings.AuditLog != "" {
		rotation := audit.RotationConfig{
			MaxSize:    a.settings.AuditMaxSize,
			MaxBackups: a.settings.AuditMaxBackups,
		}
		if rotation.MaxSize == 0 {
			rotation.MaxSize = defaultAuditMaxSize
		}
		if rotation.MaxBackups == 0 {
			rotation.MaxBackups = defaultAuditMaxBackups
		}
		logger, err := audit.NewFileLogger(a.settings.AuditLog, rotation)
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(logger)
		}
	}

	if a.exportFacts {
		r := a.settings.Redis
		if r == nil || r.Addr == "" {
			return util.NewInvalidInputError("--export", "no redis address in settings (vydriver settings set redis_addr <host:port>)")
		}
		a.sink = export.NewRedisSink(r.Addr, r.DB, r.Password)
		if err := a.sink.Connect(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) shutdown() error {
	if a.sink != nil {
		a.sink.Close()
		a.sink = nil
	}
	if l := audit.Default(); l != nil {
		audit.SetDefaultLogger(nil)
		return l.Close()
	}
	return nil
}

// isMetaCommand reports whether cmd runs without a device.
func isMetaCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings", "audit":
			return true
		}
	}
	return false
}

// withDriver opens a session to the selected device, runs fn and closes the
// session.
func (a *App) withDriver(ctx context.Context, fn func(d *driver.Driver) error) error {
	name, profile, err := a.settings.Device(a.deviceName)
	if err != nil {
		return err
	}
	cfg, err := profile.SessionConfig()
	if err != nil {
		return err
	}
	if cfg.Username == "" {
		cfg.Username = "vyos"
	}
	if cfg.Password == "" && cfg.KeyFile == "" {
		if cfg.Password, err = a.readPassword(fmt.Sprintf("%s@%s password: ", cfg.Username, cfg.Host)); err != nil {
			return err
		}
	}

	d := driver.Dial(name, cfg, driver.WithUser(currentUser()))
	if err := d.Open(ctx); err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", util.NewInvalidInputError("password", "no password in profile and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// emit publishes record when --export is set, then prints it as JSON or
// through render.
func (a *App) emit(ctx context.Context, device, getter string, record any, render func(w io.Writer)) error {
	if a.sink != nil {
		if err := a.sink.Publish(ctx, device, getter, record); err != nil {
			return fmt.Errorf("exporting %s: %w", getter, err)
		}
	}
	if a.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	render(a.out)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Fprintln(cmd.OutOrStdout(), "vydriver dev build")
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "vydriver %s\n", version.Info())
	},
}

// Color helpers, delegating to pkg/cli.
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }
