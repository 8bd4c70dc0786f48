package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dsaleh/appimage-installer/internal/config"
	"github.com/dsaleh/appimage-installer/internal/desktop"
	"github.com/dsaleh/appimage-installer/internal/extractor"
	"github.com/dsaleh/appimage-installer/internal/installer"
	"github.com/dsaleh/appimage-installer/internal/log"
	"github.com/dsaleh/appimage-installer/internal/registration"
	"github.com/dsaleh/appimage-installer/internal/system"
	"github.com/dsaleh/appimage-installer/tui"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitUsage      = 2
	exitNotFound   = 3
	exitExtraction = 4
	exitFormat     = 5
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type app struct {
	home   string
	layout system.Layout

	install, uninstall bool
	cfgFile            string
	logFile            string
	verbose            bool

	notifier system.Notifier
	closeLog func()
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, home string, args []string, stdout, stderr io.Writer) int {
	a := &app{home: home, layout: system.LayoutAt(home)}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.closeLog != nil {
		a.closeLog()
	}
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, tui.Error(err))
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprint(stderr, root.UsageString())
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue):
		return exitUsage
	case errors.Is(err, installer.ErrNotFound):
		return exitNotFound
	case errors.Is(err, extractor.ErrExtraction):
		return exitExtraction
	case errors.Is(err, desktop.ErrFormat):
		return exitFormat
	default:
		return exitFailure
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "appimage-installer (--install | --uninstall) <path>",
		Short: "Install AppImages into the application menu, or remove them",
		Long: `Installs an AppImage into ~/Applications, extracts its icon to
~/.local/share/icons/Applications and registers its menu entry in
~/.local/share/applications. Uninstall finds and removes those files again.`,
		Version:           version,
		Args:              a.validateArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.Flags().BoolVar(&a.install, "install", false, "install the AppImage at <path>")
	root.Flags().BoolVar(&a.uninstall, "uninstall", false, "remove the AppImage named by <path>")
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ~/.config/appimage-installer/config.toml)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "append the log to this file (debug entries with --verbose)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug entries, to stderr unless a log file is set")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed AppImages and their menu entries",
		Args:  cobra.NoArgs,
		RunE:  a.runList,
	})
	return root
}

func (a *app) validateArgs(_ *cobra.Command, args []string) error {
	switch {
	case a.install && a.uninstall:
		return usageError{errors.New("--install and --uninstall are mutually exclusive")}
	case !a.install && !a.uninstall:
		return usageError{errors.New("please specify --install or --uninstall")}
	case len(args) == 0:
		return usageError{errors.New("no AppImage file path provided")}
	case len(args) > 1:
		return usageError{fmt.Errorf("expected one path, got %d", len(args))}
	}
	return nil
}

// setup loads the config and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if !filepath.IsAbs(a.home) {
		return fmt.Errorf("home directory %q is not an absolute path; set $HOME", a.home)
	}

	path := a.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logFile := a.logFile
	if logFile == "" {
		logFile = cfg.LogFile
	}
	level := log.LevelInfo
	if a.verbose {
		level = log.LevelDebug
	}
	log.SetMinLevel(level)
	switch {
	case logFile != "":
		closeLog, err := log.InitFile(logFile)
		if err != nil {
			return err
		}
		a.closeLog = closeLog
	case a.verbose:
		log.Init(cmd.ErrOrStderr())
		a.closeLog = func() { log.Init(nil) }
	}

	a.notifier = system.NopNotifier{}
	if cfg.Notify {
		a.notifier = system.CommandNotifier{Command: cfg.NotifyCommand}
	}
	return nil
}

func (a *app) options(out io.Writer) installer.Options {
	return installer.Options{
		Layout:   a.layout,
		Notifier: a.notifier,
		Progress: func(msg installer.ProgressMsg) {
			fmt.Fprintln(out, tui.Progress(msg))
		},
	}
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if a.install {
		fmt.Fprintf(out, "Installing: %s\n", filepath.Base(args[0]))
		res, err := installer.Install(cmd.Context(), args[0], a.options(out))
		if err != nil {
			return err
		}
		fmt.Fprint(out, tui.InstallReport(res))
		return nil
	}

	fmt.Fprintf(out, "Checking for installation of: %s\n", filepath.Base(args[0]))
	res, err := installer.Uninstall(args[0], a.options(out))
	if res != nil {
		fmt.Fprint(out, tui.UninstallReport(res))
	}
	return err
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	regs, err := registration.List(a.layout)
	if err != nil {
		return fmt.Errorf("list installed AppImages: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.List(regs, a.home))
	return nil
}
