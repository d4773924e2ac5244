package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/kontrol/pkg/config"
	"github.com/macropower/kontrol/pkg/log"
	"github.com/macropower/kontrol/pkg/ui"
	"github.com/macropower/kontrol/pkg/ui/themes"
)

const (
	cmdExamples = `  # Run the demo with the default configuration:
  kontrol

  # Use another configuration file, and apply edits to it while running:
  kontrol --config ./kontrol.yaml --watch

  # Write the default configuration and its JSON schema:
  kontrol --write-config

  # Print the active configuration:
  kontrol --show-config

  # Print the first page of items (disables TUI):
  kontrol > items.txt`
)

type RunArgs struct {
	*RootArgs

	ConfigPath  string
	Watch       bool
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the kontrol configuration file")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Watch the configuration file and apply changes")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration files and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Default command, can be used explicitly",
		Example: cmdExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, rc *RunArgs) error {
	configPath := rc.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	if rc.WriteConfig {
		// Overwrite with a backup, and fail on errors.
		return config.WriteDefaultConfig(configPath, true) //nolint:wrapcheck // Already wrapped.
	}

	err := config.WriteDefaultConfig(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}

	v, err := config.DefaultValidator()
	if err != nil {
		return fmt.Errorf("create config validator: %w", err)
	}

	colored := term.IsTerminal(int(os.Stderr.Fd()))

	cfg, err := config.Load(configPath, v, config.WithColor(colored))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("could not read config, using defaults", slog.Any("err", err))

		cfg = config.New()

	case err != nil:
		return fmt.Errorf("invalid config %q: %w", configPath, err)
	}

	if rc.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		return showConfig(cmd.OutOrStdout(), cfg)
	}

	// If stdout is not a terminal, print the first page.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return writePage(cmd.OutOrStdout(), cfg)
	}

	logBuf := log.NewBuffer(log.DefaultBufferCapacity)

	logHandler, err := log.CreateHandlerWithStrings(logBuf, rc.LogLevel, rc.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	opts := uiOptions{
		cfg:        cfg,
		logs:       logBuf,
		logger:     logger,
		validator:  v,
		configPath: configPath,
		watch:      rc.Watch,
	}

	err = runUI(cmd.Context(), opts)
	if err != nil {
		slog.Error("run UI", slog.Any("err", err))
		flushLogs(cmd.ErrOrStderr(), logBuf)

		return fmt.Errorf("ui program failure: %w", err)
	}

	flushLogs(cmd.ErrOrStderr(), logBuf)

	return nil
}

// showConfig writes cfg as YAML, highlighted with the configured theme when
// w is a terminal.
func showConfig(w io.Writer, cfg *config.Config) error {
	b, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err = w.Write(b)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		return nil
	}

	t := themes.New(cfg.UI.Theme)

	err = quick.Highlight(w, string(b), "yaml", "terminal256", t.ChromaStyle.Name)
	if err != nil {
		return fmt.Errorf("highlight config: %w", err)
	}

	return nil
}

// writePage writes the items on the first page, followed by the range note.
func writePage(w io.Writer, cfg *config.Config) error {
	m, err := ui.New(cfg.Options(nil, slog.Default()))
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	for _, item := range m.PageItems() {
		_, err = fmt.Fprintln(w, item.String())
		if err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}
	}

	_, err = fmt.Fprintln(w, m.RangeNote())
	if err != nil {
		return fmt.Errorf("write to stdout: %w", err)
	}

	return nil
}

func flushLogs(w io.Writer, buf *log.Buffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Len()),
		slog.Int("max", buf.Capacity()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}

type uiOptions struct {
	cfg        *config.Config
	logs       *log.Buffer
	logger     *slog.Logger
	validator  config.Validator
	configPath string
	watch      bool
}

// runUI starts the UI program. With watch, changes to the configuration file
// are sent to the program as they are loaded.
func runUI(ctx context.Context, opts uiOptions) error {
	logger := opts.logger
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, err := ui.NewProgram(opts.cfg.Options(opts.logs, logger), tea.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create program: %w", err)
	}

	if opts.watch {
		w, err := config.NewWatcher(opts.configPath, opts.validator,
			config.WithWatchLogger(logger),
			config.WithLoaderOpts(config.WithColor(false)),
		)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}

		defer func() {
			err := w.Close()
			if err != nil {
				logger.Error("close config watcher", slog.Any("err", err))
			}
		}()

		go w.Watch(ctx, sendReload(p))

		logger.Info("watching configuration", slog.String("path", w.Path()))
	}

	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("tea: %w", err)
	}

	return nil
}

type sender interface {
	Send(msg tea.Msg)
}

// sendReload returns a watch callback that forwards reloads to s.
func sendReload(s sender) func(*config.Config, error) {
	return func(cfg *config.Config, err error) {
		if err != nil {
			s.Send(ui.ConfigErrorMsg{Err: err})

			return
		}

		s.Send(cfg.ReloadMsg())
	}
}
