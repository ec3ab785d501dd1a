// Package shares inspects admin shares before a transfer.
// It sizes the sources and reads free space on the destination, and never writes.
package shares

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CalculateDirectorySize sums the sizes of regular files below path.
// Unreadable entries are skipped and counted in skipped.
func CalculateDirectorySize(ctx context.Context, path string) (size int64, skipped int, err error) {
	err = filepath.WalkDir(path, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d == nil {
				// the root itself
				return walkErr
			}
			skipped++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			skipped++
			return nil
		}
		if info.Mode().IsRegular() {
			size += info.Size()
		}
		return nil
	})
	return size, skipped, err
}

// ErrUnreachable is recorded when a destination share cannot be inspected.
var ErrUnreachable = errors.New("destination share unreachable")

// nearestExisting walks up from path until it finds something that exists,
// never leaving root. Destinations usually do not exist yet on a fresh
// computer, but the share root itself must. An empty root bounds the walk at
// path.
func nearestExisting(path, root string) (string, error) {
	if root == "" {
		root = path
	}
	root = filepath.Clean(root)
	if !filepath.IsAbs(root) {
		return "", fmt.Errorf("%w: %s is not an absolute path on this system", ErrUnreachable, root)
	}

	p := filepath.Clean(path)
	if rel, err := filepath.Rel(root, p); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrUnreachable, path, root)
	}

	for {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		parent := filepath.Dir(p)
		if p == root || parent == p {
			return "", fmt.Errorf("%w: %w", ErrUnreachable, err)
		}
		p = parent
	}
}

// FormatBytes formats byte counts into human-readable size.
//
// Examples:
//
//	FormatBytes(999) -> "999 B"
//	FormatBytes(1536) -> "1.5 KB"
//	FormatBytes(1073741824) -> "1.0 GB"
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
		PB = TB * 1024
	)

	switch {
	case bytes < KB:
		return fmt.Sprintf("%d B", bytes)
	case bytes < MB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	case bytes < GB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes < TB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes < PB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	default:
		return fmt.Sprintf("%.1f PB", float64(bytes)/PB)
	}
}
