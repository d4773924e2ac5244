package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/kontrol/pkg/log"
)

const (
	cmdName = "kontrol"
	cmdDesc = `Interactive demo of the kontrol dropdown and paginator components.`
	cmdLong = `Interactive demo of the kontrol dropdown and paginator components.

kontrol shows a paginated list of generated items, sorted by a dropdown.
Both controls are configured by kontrol.yaml. A value set in the file
controls its component: selections are still reported, but only a change
to the file moves the control. With --watch, edits to the file are applied
to the running program.`
)

// Command groups shown in the help output.
const (
	groupDemo   = "demo"
	groupConfig = "config"
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// AddFlags registers the logging flags, shared by every subcommand.
func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	flags := []struct {
		value   *string
		name    string
		desc    string
		choices []string
	}{
		{value: &ra.LogLevel, name: "log-level", desc: "Log level", choices: log.AllLevels},
		{value: &ra.LogFormat, name: "log-format", desc: "Log format", choices: log.AllFormats},
	}

	for _, f := range flags {
		cmd.PersistentFlags().StringVar(f.value, f.name, *f.value,
			fmt.Sprintf("%s, one of: %s", f.desc, f.choices))

		err := cmd.RegisterFlagCompletionFunc(f.name,
			cobra.FixedCompletions(f.choices, cobra.ShellCompDirectiveNoFileComp),
		)
		if err != nil {
			panic(fmt.Errorf("register %s completion: %w", f.name, err))
		}
	}
}

// NewRootCmd returns the kontrol command. Without a subcommand it behaves
// like "kontrol run".
func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	runCmd := NewRunCmd(runArgs)
	runCmd.GroupID = groupDemo

	schemaCmd := NewSchemaCmd()
	schemaCmd.GroupID = groupConfig

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Long:              cmdLong,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		Args:              runCmd.Args,
		RunE:              runCmd.RunE,
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)

	cmd.AddGroup(
		&cobra.Group{ID: groupDemo, Title: "Demo"},
		&cobra.Group{ID: groupConfig, Title: "Configuration"},
	)
	cmd.AddCommand(runCmd, schemaCmd)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))
		slog.Debug("logging configured",
			slog.String("level", ra.LogLevel),
			slog.String("format", ra.LogFormat),
		)

		return nil
	}
}
