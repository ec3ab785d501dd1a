package shares

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sync/errgroup"

	"pccopy/internal/profile"
)

// UsageFunc reports filesystem usage for the filesystem holding path.
type UsageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// Item is the preflight result for one path pair.
type Item struct {
	Pair profile.PathPair

	// Source side
	Exists  bool
	Size    int64
	Skipped int
	Err     error

	// Destination side, from the nearest existing parent inside the share
	FreePath string
	Free     uint64
	FreeErr  error
}

// Report is the preflight result for a whole transfer.
type Report struct {
	Items []Item
	Total int64

	// MinFree is the smallest free space seen across destinations, zero when
	// no destination could be read.
	MinFree uint64
}

// Missing returns the items whose source could not be read.
func (r Report) Missing() []Item {
	var out []Item
	for _, it := range r.Items {
		if !it.Exists {
			out = append(out, it)
		}
	}
	return out
}

// FreeErr returns the first destination that could not be inspected, if any.
func (r Report) FreeErr() error {
	for _, it := range r.Items {
		if it.FreeErr != nil {
			return it.FreeErr
		}
	}
	return nil
}

// Fits reports whether the sources fit in the smallest destination free space.
// It is false when free space is unknown for any destination.
func (r Report) Fits() bool {
	return r.MinFree > 0 && r.FreeErr() == nil && uint64(r.Total) <= r.MinFree
}

// Surveyor sizes sources and destination free space.
type Surveyor struct {
	Usage UsageFunc
	Limit int // concurrent directory walks

	// Root is the destination share root. Free space is only read at or below
	// it; when empty each destination must exist itself.
	Root string
}

// Survey runs a Surveyor with the defaults against the share at root.
func Survey(ctx context.Context, root string, pairs []profile.PathPair) (Report, error) {
	return Surveyor{Root: root}.Survey(ctx, pairs)
}

// Survey inspects every pair. Unreachable sources or destinations are recorded
// on the item. Only context cancellation is returned as an error.
func (s Surveyor) Survey(ctx context.Context, pairs []profile.PathPair) (Report, error) {
	usage := s.Usage
	if usage == nil {
		usage = disk.UsageWithContext
	}
	limit := s.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	items := make([]Item, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, pair := range pairs {
		items[i].Pair = pair
		i := i
		g.Go(func() error {
			return surveyItem(gctx, usage, s.Root, &items[i])
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Items: items}
	for _, it := range items {
		report.Total += it.Size
		if it.FreeErr == nil && it.FreePath != "" && (report.MinFree == 0 || it.Free < report.MinFree) {
			report.MinFree = it.Free
		}
	}
	return report, nil
}

// surveyItem fills one item. Each goroutine owns its own slot in the slice.
func surveyItem(ctx context.Context, usage UsageFunc, root string, it *Item) error {
	info, err := os.Stat(it.Pair.Source)
	switch {
	case err != nil:
		it.Err = err
	case info.IsDir():
		it.Exists = true
		size, skipped, err := CalculateDirectorySize(ctx, it.Pair.Source)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		it.Size, it.Skipped, it.Err = size, skipped, err
	default:
		it.Exists = true
		it.Size = info.Size()
	}

	path, err := nearestExisting(it.Pair.Destination, root)
	if err != nil {
		it.FreeErr = err
		return nil
	}
	it.FreePath = path
	stat, err := usage(ctx, path)
	if err != nil {
		it.FreeErr = fmt.Errorf("free space for %s: %w", path, err)
		return nil
	}
	it.Free = stat.Free
	return nil
}
