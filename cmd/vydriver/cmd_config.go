package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vydriver/pkg/cli"
	"github.com/newtron-network/vydriver/pkg/driver"
	"github.com/newtron-network/vydriver/pkg/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change the device configuration",
	Long: `Show and change the device configuration.

replace and merge load the candidate, print the pending diff and discard it
unless --commit is given. Everything happens in one session: uncommitted
changes do not outlive the command, so there are no separate compare, commit
or discard verbs. rollback restores the backup the device keeps of the
startup configuration taken before the last load.

Examples:
  vydriver -d edge1 config show running --sanitized
  vydriver -d edge1 config replace --file edge1.conf
  vydriver -d edge1 config replace --file edge1.conf --commit
  vydriver -d edge1 config merge --text "set system host-name edge1" --commit
  vydriver -d edge1 config rollback`,
}

var (
	configSanitized bool
	configFile      string
	configText      string
	configCommit    bool
	configMessage   string
)

var configShowCmd = &cobra.Command{
	Use:       "show [running|startup|candidate|all]",
	Short:     "Show configuration stores",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{driver.RetrieveRunning, driver.RetrieveStartup, driver.RetrieveCandidate, driver.RetrieveAll},
	RunE: func(cmd *cobra.Command, args []string) error {
		retrieve := driver.RetrieveRunning
		if len(args) == 1 {
			retrieve = args[0]
		}
		return runGetter(cmd, "config", func(d *driver.Driver, ctx context.Context) (model.ConfigViews, error) {
			return d.GetConfig(ctx, retrieve, configSanitized)
		}, renderConfig)
	},
}

func renderConfig(w io.Writer, v model.ConfigViews) {
	for _, s := range []struct{ name, text string }{
		{"running", v.Running},
		{"startup", v.Startup},
		{"candidate", v.Candidate},
	} {
		if s.text == "" {
			continue
		}
		fmt.Fprintf(w, "%s\n%s\n", bold("# "+s.name), s.text)
	}
}

var configReplaceCmd = &cobra.Command{
	Use:   "replace (--file <path> | --text <config>)",
	Short: "Replace the configuration with a full configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return loadAndApply(cmd, "load_replace", (*driver.Driver).LoadReplace)
	},
}

var configMergeCmd = &cobra.Command{
	Use:   "merge (--file <path> | --text <statements>)",
	Short: "Merge set/delete statements into the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return loadAndApply(cmd, "load_merge", (*driver.Driver).LoadMerge)
	},
}

// loadAndApply loads the candidate, prints the diff and then commits or
// discards it.
func loadAndApply(cmd *cobra.Command, step string, load func(*driver.Driver, context.Context, driver.Source) error) error {
	src := driver.Source{Filename: configFile, Config: configText}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return app.withDriver(ctx, func(d *driver.Driver) error {
		if err := load(d, ctx, src); err != nil {
			fmt.Fprintln(out, cli.DotPad(step, 16), red("FAILED"))
			return err
		}
		fmt.Fprintln(out, cli.DotPad(step, 16), green("ok"))

		diff, err := d.Compare(ctx)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Fprintln(out, "No changes.")
			return d.Discard(ctx)
		}
		fmt.Fprint(out, diff)

		if !configCommit {
			if err := d.Discard(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n"+yellow("DRY-RUN: changes discarded. Use --commit to apply."))
			return nil
		}
		if err := d.Commit(ctx, configMessage); err != nil {
			fmt.Fprintln(out, cli.DotPad("commit", 16), red("FAILED"))
			if derr := d.Discard(ctx); derr != nil {
				return fmt.Errorf("%w (discard also failed: %v)", err, derr)
			}
			return err
		}
		fmt.Fprintln(out, cli.DotPad("commit", 16), green("ok"))
		return nil
	})
}

var configRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Restore the configuration saved before the last load",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configStep(cmd, (*driver.Driver).Rollback)
	},
}

// configStep runs one lifecycle step and reports it.
func configStep(cmd *cobra.Command, step func(*driver.Driver, context.Context) error) error {
	ctx := cmd.Context()
	return app.withDriver(ctx, func(d *driver.Driver) error {
		if err := step(d, ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), green(cmd.Name()+" ok"))
		return nil
	})
}

func init() {
	configShowCmd.Flags().BoolVar(&configSanitized, "sanitized", false, "Mask secrets")

	for _, cmd := range []*cobra.Command{configReplaceCmd, configMergeCmd} {
		cmd.Flags().StringVar(&configFile, "file", "", "Local configuration file")
		cmd.Flags().StringVar(&configText, "text", "", "Inline configuration")
		cmd.Flags().BoolVar(&configCommit, "commit", false, "Commit and save after loading (default is dry-run)")
		cmd.Flags().StringVarP(&configMessage, "message", "m", "", "Commit message (not supported by VyOS)")
		cmd.MarkFlagsMutuallyExclusive("file", "text")
		cmd.MarkFlagsOneRequired("file", "text")
	}

	configCmd.AddCommand(configShowCmd, configReplaceCmd, configMergeCmd, configRollbackCmd)
}
