package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/absorb/internal/config"
	"github.com/amirbrooks/absorb/internal/history"
	"github.com/amirbrooks/absorb/internal/logging"
	"github.com/amirbrooks/absorb/internal/store"
	"github.com/amirbrooks/absorb/internal/timeparsing"
	"github.com/amirbrooks/absorb/internal/ui"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitCorrupt  = 5
	ExitInternal = 10
)

type GlobalFlags struct {
	Root         string
	History      string
	LogDir       string
	NaturalDates bool
	Color        string
	Quiet        bool
	Verbose      bool
}

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// silent exits with code after the user has already been told why.
func silent(code int) error { return &exitError{code: code} }

// app is everything one invocation needs. It is built in the root command's
// PersistentPreRunE and shared by every subcommand.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	gf     GlobalFlags

	cfg    *config.Config
	log    *logging.Logger
	ws     *store.Workspace
	prompt Prompter
}

// Run executes the CLI against the process streams and returns an exit code.
func Run(args []string) int {
	return Execute(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

// Execute runs one invocation with explicit streams.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	a.prompt = newPrompter(in, errOut)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Close()
	}
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(errOut, "absorb:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(errOut, "absorb:", err)
	return ExitUsage
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "absorb",
		Short: "Tasks, a kanban board and ideas in plain JSON files",
		Long: `absorb keeps three collections under one directory: tasks.json,
kanban.json and ideas.json. Every change is recorded in the workspace history
(a git repository by default).

Argument sentinels:
  .      keep the current value (edit) or leave empty (create)
  +file  prompt for a file path; its content is shown at display time`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.gf.Root, "root", "", "Store root (default: ~/.absorb or ABSORB_ROOT)")
	pf.StringVar(&a.gf.History, "history", "", "History backend: git|audit|both|none")
	pf.StringVar(&a.gf.LogDir, "log-dir", "", "Directory for the diagnostic log (default: <root>/logs)")
	pf.BoolVar(&a.gf.NaturalDates, "natural-dates", false, "Accept phrases like \"tomorrow 5pm\" as due dates")
	pf.StringVar(&a.gf.Color, "color", "", "Color output: auto|always|never")
	pf.BoolVarP(&a.gf.Quiet, "quiet", "q", false, "Only print errors to the console")
	pf.BoolVarP(&a.gf.Verbose, "verbose", "v", false, "Print debug diagnostics")

	root.AddCommand(newTasksCmd(a))
	root.AddCommand(newKanbanCmd(a))
	root.AddCommand(newIdeaCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.gf.Quiet && a.gf.Verbose {
		return &exitError{code: ExitUsage, err: errors.New("--quiet and --verbose are mutually exclusive")}
	}
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}
	a.cfg = cfg
	ui.SetColorMode(cfg.Display.Color)

	level := slog.LevelWarn
	switch {
	case a.gf.Verbose:
		level = slog.LevelDebug
	case a.gf.Quiet:
		level = slog.LevelError
	}
	log, err := logging.New(logging.Options{
		Console:      a.errOut,
		ConsoleLevel: level,
		Dir:          cfg.Log.Dir,
		File:         cfg.Log.File,
		FileLevel:    slog.LevelError,
		MaxSizeMB:    cfg.Log.MaxSizeMB,
		MaxBackups:   cfg.Log.MaxBackups,
		MaxAgeDays:   cfg.Log.MaxAgeDays,
	})
	a.log = log
	if err != nil {
		log.Warn("diagnostic log file unavailable", "dir", cfg.Log.Dir, "err", err)
	}

	ws, err := store.Open(cfg.Root)
	if err != nil {
		return &exitError{code: ExitInternal, err: err}
	}
	sink, err := history.New(history.Options{
		Backend:   cfg.History.Backend,
		Root:      ws.Root,
		AuditFile: cfg.History.AuditFile,
		Log:       log.Logger,
	})
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}
	ws.Sink = sink
	ws.Log = log.Logger
	ws.Dates = timeparsing.Parser{Natural: cfg.Dates.NaturalLanguage}
	a.ws = ws
	log.Debug("workspace ready", "root", ws.Root, "history", cfg.History.Backend)
	return nil
}

func (a *app) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *app) warn(s string) {
	fmt.Fprintln(a.errOut, ui.Notice(s))
}

// writeFailed handles errors from mutating commands. Corrupt collections and
// malformed offsets stop the process; anything else is reported and masked.
func (a *app) writeFailed(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrCorrupt):
		return a.corrupt(op, err)
	case errors.Is(err, errPromptAborted):
		fmt.Fprintln(a.errOut, "Cancelled.")
		return nil
	case errors.Is(err, store.ErrInput):
		return &exitError{code: ExitUsage, err: fmt.Errorf("%s: %w", op, err)}
	case errors.Is(err, timeparsing.ErrInvalidOffset):
		return &exitError{code: ExitUsage, err: fmt.Errorf("%s: %w", op, err)}
	default:
		a.log.Error("write failed", "op", op, "err", err)
		fmt.Fprintln(a.errOut, ui.Failure("Failed to write to the file! Please check the logs in "+a.cfg.Log.Dir+"."))
		return nil
	}
}

func (a *app) corrupt(op string, err error) error {
	a.log.Error("collection unreadable", "op", op, "err", err)
	fmt.Fprintln(a.errOut, ui.Failure("Failed to read from the file! This might be due to corruption of the file. Please restore it from a previous commit in the history, if possible."))
	return silent(ExitCorrupt)
}

// readFailed handles errors from display commands. strict commands turn a
// missing collection into a non-zero exit.
func (a *app) readFailed(op string, err error, strict bool) error {
	switch {
	case errors.Is(err, store.ErrCorrupt):
		return a.corrupt(op, err)
	case errors.Is(err, store.ErrNotFound):
		a.log.Error("collection missing", "op", op, "err", err)
		fmt.Fprintln(a.errOut, ui.Failure("Nothing to show yet: the file was missing and has been created empty."))
		if strict {
			return silent(ExitNotFound)
		}
		return nil
	default:
		a.log.Error("read failed", "op", op, "err", err)
		return &exitError{code: ExitInternal, err: fmt.Errorf("%s: %w", op, err)}
	}
}
