package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"pccopy/internal"
	"pccopy/internal/form"
	"pccopy/internal/profile"
	"pccopy/internal/shares"
	"pccopy/internal/state"
	"pccopy/internal/transfer"
)

var (
	// ErrInvalidArgument is returned for flag combinations that make no sense.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransferAborted marks a copy that stopped before finishing.
	ErrTransferAborted = errors.New("transfer aborted")
)

// Runner holds the dependencies shared by every command.
type Runner struct {
	config   *internal.Config
	source   string
	logger   *log.Logger
	logFile  *os.File
	logPath  string
	output   io.Writer
	lockPath string
}

// RunnerOpts contains configuration options for creating a Runner. Config and
// Logger are resolved from flags when left nil.
type RunnerOpts struct {
	Config   *internal.Config
	Logger   *log.Logger
	Output   io.Writer
	LockPath string
}

// NewRunner creates a new Runner with the provided options
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LockPath == "" {
		opts.LockPath = lockFilePath
	}
	return &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		lockPath: opts.LockPath,
	}
}

// Setup loads the config and opens the log file. It runs before every command.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		config, source, err := internal.ResolveConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config, r.source = config, source
	} else if r.source == "" {
		r.source = "provided"
	}

	level := r.config.Log.Level
	if flag := cmd.String("log-level"); flag != "" {
		level = flag
	}

	if r.logger == nil {
		f, path, err := internal.OpenLogFile(r.config.Log)
		if err != nil {
			return ctx, err
		}
		r.logFile, r.logPath = f, path
		logger, err := internal.NewLogger(f, level)
		if err != nil {
			return ctx, err
		}
		r.logger = logger
	}

	r.logger.Debug("config loaded", "source", r.source, "share", r.config.Share.Name, "root", r.config.Share.Root)
	return ctx, nil
}

// Close releases the log file.
func (r *Runner) Close() {
	if r.logFile != nil {
		r.logFile.Close()
	}
}

func (r *Runner) dispatcher() *transfer.Dispatcher {
	return transfer.NewDispatcher(transfer.Options{
		Resolver: r.config.Resolver(),
		Logger:   r.logger,
	})
}

// Form opens the terminal form, or the classic form with --classic.
func (r *Runner) Form(ctx context.Context, cmd *cli.Command) error {
	release, err := acquireInstanceLock(r.lockPath)
	if err != nil {
		return err
	}
	defer release()

	if cmd.Bool("ascii") {
		internal.ForceASCII()
	}

	r.logger.Info("form opened", "classic", cmd.Bool("classic"), "version", internal.AppVersion)
	defer r.logger.Info("form closed")

	if cmd.Bool("classic") {
		classic := form.New(ctx, form.Options{
			Title:      internal.GetAppTitle(),
			Dispatcher: r.dispatcher(),
			Logger:     r.logger,
		})
		return classic.Run()
	}

	m := internal.InitialModel(internal.Options{
		Context:    ctx,
		Dispatcher: r.dispatcher(),
		LogPath:    r.logPath,
	})
	prog := tea.NewProgram(m, tea.WithAltScreen())

	// A signal asks the form to quit the same way ctrl+c does, so a running
	// transfer reports back before the program exits.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			prog.Send(state.CancelMsg{})
		case <-done:
		}
	}()

	_, err = prog.Run()
	return err
}

// params reads and trims the three copy parameters.
func params(cmd *cli.Command) profile.Params {
	return profile.Params{
		OldComputer: cmd.String("old"),
		NewComputer: cmd.String("new"),
		Username:    cmd.String("user"),
	}.Trimmed()
}

// Copy runs a headless transfer and prints the console lines.
func (r *Runner) Copy(ctx context.Context, cmd *cli.Command) error {
	names := cmd.StringSlice("category")
	all := cmd.Bool("all")
	if all && len(names) > 0 {
		return fmt.Errorf("%w: --all and --category cannot be combined", ErrInvalidArgument)
	}

	sel, err := profile.ParseCategories(names)
	if err != nil {
		return err
	}
	p := params(cmd)
	if err := p.Validate(); err != nil {
		return err
	}

	release, err := acquireInstanceLock(r.lockPath)
	if err != nil {
		return err
	}
	defer release()

	d := r.dispatcher()
	rep := transfer.ConsoleReporter{W: r.output}

	var summary transfer.Summary
	if all {
		summary, err = d.CopyAll(ctx, p, rep)
	} else {
		if sel.Len() == 0 {
			r.logger.Warn("no categories selected, nothing to copy")
		}
		summary, err = d.CopySelected(ctx, sel, p, rep)
	}
	if err != nil {
		return fmt.Errorf("%w after %d paths (run %s)", ErrTransferAborted, summary.Pairs, summary.RunID)
	}
	return nil
}

// Plan surveys the shares for a transfer without copying anything.
func (r *Runner) Plan(ctx context.Context, cmd *cli.Command) error {
	names := cmd.StringSlice("category")
	cats := profile.Categories()
	if len(names) > 0 {
		sel, err := profile.ParseCategories(names)
		if err != nil {
			return err
		}
		cats = sel.Ordered()
	}

	p := params(cmd)
	resolver := r.config.Resolver()
	pairs, err := resolver.ResolveAll(cats, p)
	if err != nil {
		return err
	}

	report, err := shares.Survey(ctx, resolver.ShareRoot(p.NewComputer), pairs)
	if err != nil {
		return err
	}
	r.logger.Info("plan surveyed", "pairs", len(pairs), "total", report.Total, "missing", len(report.Missing()))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "KIND", "SOURCE", "SIZE")
	for _, it := range report.Items {
		size := shares.FormatBytes(it.Size)
		switch {
		case !it.Exists:
			size = "missing"
		case it.Skipped > 0:
			size = fmt.Sprintf("%s (%d unreadable)", size, it.Skipped)
		}
		t.Row(it.Pair.Category.String(), it.Pair.Kind.String(), it.Pair.Source, size)
	}
	fmt.Fprintln(r.output, t.String())

	fmt.Fprintf(r.output, "Total to copy: %s\n", shares.FormatBytes(report.Total))
	if err := report.FreeErr(); err != nil || report.MinFree == 0 {
		msg := "Free space on the new computer is unknown"
		if err != nil {
			msg += ": " + err.Error()
			r.logger.Warn("free space unknown", "err", err)
		}
		fmt.Fprintln(r.output, internal.FormatWarning(msg))
		return nil
	}
	fmt.Fprintf(r.output, "Free on new computer: %s\n", shares.FormatBytes(int64(report.MinFree)))
	if report.Fits() {
		fmt.Fprintln(r.output, internal.FormatSuccess("The profile fits"))
	} else {
		fmt.Fprintln(r.output, internal.FormatWarning("The profile does not fit"))
	}
	return nil
}

// Categories lists the category table.
func (r *Runner) Categories(ctx context.Context, cmd *cli.Command) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "KIND", "PATH")
	for _, c := range profile.Categories() {
		for _, e := range profile.Entries(c) {
			t.Row(c.String(), e.Kind.String(), strings.Join(e.Segments, "/"))
		}
	}
	fmt.Fprintln(r.output, t.String())
	fmt.Fprintf(r.output, "Share root: %s\n", r.config.Resolver().ShareRoot("{computer}"))
	return nil
}

// ConfigInit writes the default config file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		var err error
		if path, err = internal.ConfigPath(); err != nil {
			return err
		}
	}
	if err := internal.WriteDefaultConfig(path, cmd.Bool("force")); err != nil {
		return err
	}
	r.logger.Info("config written", "path", path)
	fmt.Fprintf(r.output, "%s\n", internal.FormatSuccess("Config written to "+path))
	return nil
}
