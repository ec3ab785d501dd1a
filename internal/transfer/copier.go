// Package transfer copies resolved profile paths from the old computer's share
// to the new one.
//
// This package implements:
//   - The merge-copy primitive for folder trees and single files
//   - The dispatcher that turns one category into its copies
//   - The "Copy Selected" and "Copy All" triggers
//   - Reporters that surface progress lines to a console or a UI
//
// Copies are sequential and stop at the first failure. Nothing is ever
// deleted at the destination.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotDirectory is returned when a tree copy is pointed at something that is not a folder.
var ErrNotDirectory = errors.New("not a directory")

// Stats counts what a copy wrote.
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Files += other.Files
	s.Dirs += other.Dirs
	s.Bytes += other.Bytes
}

// Copier is the recursive copy primitive used by the dispatcher.
type Copier interface {
	CopyTree(ctx context.Context, src, dst string) (Stats, error)
	CopyFile(ctx context.Context, src, dst string) (Stats, error)
}

// FSCopier merge-copies on the local (or UNC mounted) filesystem.
// Existing destination files are overwritten, extra destination files are kept.
type FSCopier struct{}

// CopyTree copies every entry below src into dst, creating folders as needed.
// Symlinks are followed. Sockets, devices and pipes are skipped.
func (FSCopier) CopyTree(ctx context.Context, src, dst string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(src)
	if err != nil {
		return stats, err
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("cannot copy tree %s: %w", src, ErrNotDirectory)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		// Stat follows symlinks so linked files are copied by content
		fi, err := os.Stat(path)
		if err != nil {
			return err
		}

		switch {
		case fi.IsDir():
			if d.Type()&fs.ModeSymlink != 0 {
				// WalkDir does not descend into linked folders, copy them as their own tree
				sub, err := FSCopier{}.CopyTree(ctx, path, target)
				stats.Add(sub)
				return err
			}
			if err := os.MkdirAll(target, fi.Mode().Perm()|0o700); err != nil {
				return err
			}
			stats.Dirs++
			return nil
		case fi.Mode().IsRegular():
			n, err := copyFileEfficient(path, target, fi)
			if err != nil {
				return err
			}
			stats.Files++
			stats.Bytes += n
			return nil
		default:
			return nil
		}
	})

	return stats, err
}

// CopyFile copies one regular file, creating the destination folder if needed.
func (FSCopier) CopyFile(ctx context.Context, src, dst string) (Stats, error) {
	var stats Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return stats, err
	}
	if fi.IsDir() {
		return stats, fmt.Errorf("cannot copy file %s: is a directory", src)
	}

	n, err := copyFileEfficient(src, dst, fi)
	if err != nil {
		return stats, err
	}
	stats.Files = 1
	stats.Bytes = n
	return stats, nil
}

// copyFileEfficient copies src over dst with a buffer sized to the file.
// Mode and modification time are carried over once the data is written.
func copyFileEfficient(src, dst string, fi os.FileInfo) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fi.Mode().Perm()|0o200)
	if err != nil {
		return 0, err
	}

	bufSize := 256 * 1024
	if fi.Size() > 10*1024*1024 {
		bufSize = 2 * 1024 * 1024
	}
	if fi.Size() > 100*1024*1024 {
		bufSize = 4 * 1024 * 1024
	}

	n, err := io.CopyBuffer(dstFile, srcFile, make([]byte, bufSize))
	if err != nil {
		dstFile.Close()
		return n, err
	}
	if err := dstFile.Close(); err != nil {
		return n, err
	}

	// Best effort, shares do not always allow it
	_ = os.Chmod(dst, fi.Mode().Perm())
	_ = os.Chtimes(dst, fi.ModTime(), fi.ModTime())

	return n, nil
}
