package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/altinukshini/ci-downloader/cmd/ci-downloader/internal/clierr"
	"github.com/altinukshini/ci-downloader/internal/api"
	"github.com/altinukshini/ci-downloader/internal/config"
	"github.com/altinukshini/ci-downloader/internal/history"
	"github.com/altinukshini/ci-downloader/internal/logging"
	"github.com/altinukshini/ci-downloader/internal/resolver"
	"github.com/altinukshini/ci-downloader/internal/tui"
)

type options struct {
	configPath  string
	server      string
	historyFile string
	timeout     time.Duration
	debug       bool
	debugLog    string
}

// NewRootCmd builds the CLI. Without a subcommand it starts the TUI.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ci-downloader",
		Short:         "Find CI build artifacts and record repro results",
		Long:          "ci-downloader looks up CI build artifacts by device and commit on the artifact server, opens the download link and keeps a history of Repro / Not Repro verdicts.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: user config dir/ci-downloader/config.yml)")
	flags.StringVar(&opts.server, "server", "", "artifact server base URL")
	flags.StringVar(&opts.historyFile, "history", "", "history file path")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-lookup timeout (0 = none)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug log and HTTP traces")
	flags.StringVar(&opts.debugLog, "debug-log", "", "debug log path")

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newDevicesCmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ci-downloader %s\n", version)
		},
	})

	return cmd
}

// env is the wired application for one command invocation.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	logOut   io.WriteCloser
	client   *api.Client
	resolver *resolver.Resolver
	history  *history.Log
}

func (e *env) Close() error { return e.logOut.Close() }

// load resolves config from file, environment and flags, in that order of
// increasing precedence, and wires the collaborators.
func (o *options) load(cmd *cobra.Command) (*env, error) {
	path, explicit := o.configPath, o.configPath != ""
	if !explicit {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, err)
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = o.server
	}
	if flags.Changed("history") {
		cfg.HistoryFile = o.historyFile
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("debug-log") {
		cfg.DebugLog = o.debugLog
	}
	if err := cfg.Validate(); err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, err)
	}

	logger, logOut, err := logging.Setup(cfg.Debug, cfg.DebugLog)
	if err != nil {
		return nil, err
	}

	clientOpts := []api.Option{api.WithLogger(logger)}
	if cfg.Debug {
		clientOpts = append(clientOpts, api.WithDebugTrace(logOut))
	}
	client := api.NewClient(cfg.ServerURL, clientOpts...)

	logger.Debug("config loaded", "server", client.BaseURL(), "history", cfg.HistoryFile, "timeout", cfg.Timeout)
	return &env{
		cfg:      cfg,
		logger:   logger,
		logOut:   logOut,
		client:   client,
		resolver: resolver.New(client, logger),
		history:  history.New(cfg.HistoryFile),
	}, nil
}

func runTUI(cmd *cobra.Command, opts *options) error {
	e, err := opts.load(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	app := tui.NewApp(ctx, e.cfg, tui.Deps{
		Resolver:  e.resolver,
		History:   e.history,
		Browser:   browser.New("", e.logOut, e.logOut),
		Clipboard: clipboard.ReadAll,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
