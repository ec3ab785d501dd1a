package transfer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"pccopy/internal/profile"
)

// PairError ties a copy failure to the path pair that caused it.
type PairError struct {
	Op   string
	Pair profile.PathPair
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s %s: %s -> %s: %v", e.Op, e.Pair.Category, e.Pair.Source, e.Pair.Destination, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}

// Summary describes one trigger run.
type Summary struct {
	RunID      string
	Trigger    string
	Categories []profile.Category // categories that were dispatched, in order
	Pairs      int                // pairs copied successfully
	Stats      Stats
	Duration   time.Duration
}

// Options configures a Dispatcher. Zero values pick the defaults.
type Options struct {
	Resolver *profile.Resolver
	Copier   Copier
	Logger   *log.Logger
}

// Dispatcher resolves categories to path pairs and copies them.
type Dispatcher struct {
	resolver *profile.Resolver
	copier   Copier
	logger   *log.Logger
}

// NewDispatcher builds a dispatcher from opts.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.Resolver == nil {
		opts.Resolver = profile.NewResolver("", "")
	}
	if opts.Copier == nil {
		opts.Copier = FSCopier{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Dispatcher{resolver: opts.Resolver, copier: opts.Copier, logger: opts.Logger}
}

// Resolver returns the resolver the dispatcher copies with.
func (d *Dispatcher) Resolver() *profile.Resolver {
	return d.resolver
}

// Copy copies one category. The first failing pair stops the category; pairs
// already copied are left in place.
func (d *Dispatcher) Copy(ctx context.Context, c profile.Category, p profile.Params, rep Reporter) error {
	var summary Summary
	return d.copyCategory(ctx, d.logger, c, p, orNop(rep), &summary)
}

// CopySelected copies every toggled-on category in declaration order.
// An empty selection copies nothing.
func (d *Dispatcher) CopySelected(ctx context.Context, sel profile.Selection, p profile.Params, rep Reporter) (Summary, error) {
	return d.run(ctx, "selected", sel.Ordered(), p, orNop(rep))
}

// CopyAll copies all six categories in declaration order, ignoring any selection.
func (d *Dispatcher) CopyAll(ctx context.Context, p profile.Params, rep Reporter) (Summary, error) {
	return d.run(ctx, "all", profile.Categories(), p, orNop(rep))
}

func (d *Dispatcher) run(ctx context.Context, trigger string, cats []profile.Category, p profile.Params, rep Reporter) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), Trigger: trigger}
	logger := d.logger.With("run", summary.RunID)
	started := time.Now()

	finish := func(err error) (Summary, error) {
		summary.Duration = time.Since(started)
		if err != nil {
			logger.Error("transfer aborted", "trigger", trigger, "pairs", summary.Pairs, "err", err)
		} else {
			logger.Info("transfer complete", "trigger", trigger, "pairs", summary.Pairs,
				"files", summary.Stats.Files, "bytes", summary.Stats.Bytes, "took", summary.Duration.Round(time.Millisecond))
		}
		rep.TransferFinished(summary, err)
		return summary, err
	}

	logger.Info("transfer started", "trigger", trigger, "old", p.OldComputer, "new", p.NewComputer,
		"user", p.Username, "categories", len(cats))

	if err := p.Validate(); err != nil {
		return finish(err)
	}

	for _, c := range cats {
		if err := d.copyCategory(ctx, logger, c, p, rep, &summary); err != nil {
			return finish(err)
		}
	}
	return finish(nil)
}

func (d *Dispatcher) copyCategory(ctx context.Context, logger *log.Logger, c profile.Category, p profile.Params, rep Reporter, summary *Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pairs, err := d.resolver.Resolve(c, p)
	if err != nil {
		return err
	}

	rep.CategoryStarted(c)
	summary.Categories = append(summary.Categories, c)

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			stats Stats
			op    string
		)
		switch pair.Kind {
		case profile.KindFile:
			op = "copy file"
			stats, err = d.copier.CopyFile(ctx, pair.Source, pair.Destination)
		default:
			op = "copy tree"
			stats, err = d.copier.CopyTree(ctx, pair.Source, pair.Destination)
		}
		summary.Stats.Add(stats)

		if err != nil {
			err = &PairError{Op: op, Pair: pair, Err: err}
			rep.PairFinished(pair, stats, err)
			return err
		}

		summary.Pairs++
		logger.Debug("pair copied", "category", c, "kind", pair.Kind, "src", pair.Source,
			"dst", pair.Destination, "files", stats.Files, "bytes", stats.Bytes)
		rep.PairFinished(pair, stats, nil)
	}
	return nil
}

type nopReporter struct{}

func (nopReporter) CategoryStarted(profile.Category)            {}
func (nopReporter) PairFinished(profile.PathPair, Stats, error) {}
func (nopReporter) TransferFinished(Summary, error)             {}

func orNop(rep Reporter) Reporter {
	if rep == nil {
		return nopReporter{}
	}
	return rep
}
