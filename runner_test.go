package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pccopy/internal"
	"pccopy/internal/profile"
)

type fixture struct {
	runner *Runner
	output *bytes.Buffer
	root   string
	lock   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	config := internal.DefaultConfig()
	config.Share.Root = filepath.Join(root, "{computer}", "{share}")

	output := &bytes.Buffer{}
	lock := filepath.Join(t.TempDir(), "pccopy.lock")
	return &fixture{
		runner: NewRunner(RunnerOpts{
			Config:   config,
			Logger:   log.New(io.Discard),
			Output:   output,
			LockPath: lock,
		}),
		output: output,
		root:   root,
		lock:   lock,
	}
}

func (f *fixture) run(args ...string) error {
	return newApp(f.runner).Run(context.Background(), append([]string{"pccopy"}, args...))
}

func (f *fixture) share(computer string) string {
	return filepath.Join(f.root, computer, profile.DefaultShareName)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := internal.DefaultConfig()
			logger := log.New(io.Discard)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output, LockPath: "x.lock"})
			assert.Same(t, config, runner.config)
			assert.Same(t, logger, runner.logger)
			assert.Equal(t, output, runner.output)
			assert.Equal(t, "x.lock", runner.lockPath)
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			assert.Nil(t, runner.config)
			assert.Equal(t, os.Stdout, runner.output)
			assert.Equal(t, lockFilePath, runner.lockPath)
		})
	})

	t.Run("Setup", func(t *testing.T) {
		t.Run("loads --config and opens the log", func(t *testing.T) {
			dir := t.TempDir()
			logPath := filepath.Join(dir, "logs", "run.log")
			configPath := filepath.Join(dir, "config.toml")
			writeFile(t, configPath, "[share]\nname = \"c$\"\n[log]\npath = \""+filepath.ToSlash(logPath)+"\"\n")

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, LockPath: filepath.Join(dir, "pccopy.lock")})
			t.Cleanup(runner.Close)

			err := newApp(runner).Run(context.Background(), []string{"pccopy", "--config", configPath, "--log-level", "debug", "categories"})
			require.NoError(t, err)

			assert.Equal(t, "c$", runner.config.Share.Name)
			assert.Equal(t, configPath, runner.source)
			assert.Equal(t, log.DebugLevel, runner.logger.GetLevel())
			_, err = os.Stat(logPath)
			assert.NoError(t, err)
		})

		t.Run("rejects a bad log level", func(t *testing.T) {
			dir := t.TempDir()
			configPath := filepath.Join(dir, "config.toml")
			writeFile(t, configPath, "[log]\npath = \""+filepath.ToSlash(filepath.Join(dir, "run.log"))+"\"\n")

			runner := NewRunner(RunnerOpts{Output: io.Discard, LockPath: filepath.Join(dir, "pccopy.lock")})
			t.Cleanup(runner.Close)

			err := newApp(runner).Run(context.Background(), []string{"pccopy", "-c", configPath, "--log-level", "loud", "categories"})
			assert.Error(t, err)
		})
	})

	t.Run("Copy", func(t *testing.T) {
		t.Run("copies only the chosen categories", func(t *testing.T) {
			f := newFixture(t)
			writeFile(t, filepath.Join(f.share("PC1"), "users", "jdoe", "Documents", "report.docx"), "report")
			writeFile(t, filepath.Join(f.share("PC1"), "users", "jdoe", "Desktop", "todo.txt"), "todo")

			require.NoError(t, f.run("copy", "--old", "PC1", "--new", "PC2", "--user", "jdoe", "--category", "documents"))

			assert.Equal(t, "Copying Documents...\nTransfer complete.\n", f.output.String())
			data, err := os.ReadFile(filepath.Join(f.share("PC2"), "users", "jdoe", "Documents", "report.docx"))
			require.NoError(t, err)
			assert.Equal(t, "report", string(data))
			_, err = os.Stat(filepath.Join(f.share("PC2"), "users", "jdoe", "Desktop"))
			assert.ErrorIs(t, err, os.ErrNotExist)

			_, err = os.Stat(f.lock)
			assert.ErrorIs(t, err, os.ErrNotExist, "lock released")
		})

		t.Run("no categories copies nothing", func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.run("copy", "--old", "PC1", "--new", "PC2", "--user", "jdoe"))
			assert.Equal(t, "Transfer complete.\n", f.output.String())
		})

		t.Run("all aborts on a missing source", func(t *testing.T) {
			f := newFixture(t)
			writeFile(t, filepath.Join(f.share("PC1"), "users", "jdoe", "Desktop", "todo.txt"), "todo")

			err := f.run("copy", "--old", "PC1", "--new", "PC2", "--user", "jdoe", "--all")
			assert.ErrorIs(t, err, ErrTransferAborted)
			assert.Contains(t, f.output.String(), "Copying Desktop...\nCopying Favourites...\n")
			assert.NotContains(t, f.output.String(), "Copying Documents...")
		})

		t.Run("all with category is rejected", func(t *testing.T) {
			f := newFixture(t)
			err := f.run("copy", "--old", "PC1", "--new", "PC2", "--user", "jdoe", "--all", "--category", "Desktop")
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Empty(t, f.output.String())
		})

		t.Run("unknown category", func(t *testing.T) {
			f := newFixture(t)
			err := f.run("copy", "--old", "PC1", "--new", "PC2", "--user", "jdoe", "--category", "Music")
			assert.ErrorIs(t, err, profile.ErrUnknownCategory)
		})

		t.Run("invalid params", func(t *testing.T) {
			f := newFixture(t)
			err := f.run("copy", "--old", "PC1", "--new", "", "--user", "jdoe", "--all")
			assert.ErrorIs(t, err, profile.ErrInvalidParams)
			assert.Empty(t, f.output.String())
		})
	})

	t.Run("Plan", func(t *testing.T) {
		f := newFixture(t)
		writeFile(t, filepath.Join(f.share("PC1"), "users", "jdoe", "Documents", "report.docx"), "0123456789")
		require.NoError(t, os.MkdirAll(f.share("PC2"), 0o755))

		require.NoError(t, f.run("plan", "--old", "PC1", "--new", "PC2", "--user", "jdoe", "--category", "Documents", "--category", "Pictures"))

		out := f.output.String()
		assert.Contains(t, out, "Documents")
		assert.Contains(t, out, "10 B")
		assert.Contains(t, out, "missing")
		assert.Contains(t, out, "Total to copy: 10 B")
		assert.Contains(t, out, "fits")
		_, err := os.Stat(filepath.Join(f.share("PC2"), "users"))
		assert.ErrorIs(t, err, os.ErrNotExist, "plan writes nothing")
	})

	t.Run("Plan with an unreachable new computer", func(t *testing.T) {
		f := newFixture(t)
		writeFile(t, filepath.Join(f.share("PC1"), "users", "jdoe", "Documents", "report.docx"), "0123456789")

		require.NoError(t, f.run("plan", "--old", "PC1", "--new", "PC2", "--user", "jdoe", "--category", "Documents"))

		out := f.output.String()
		assert.Contains(t, out, "Free space on the new computer is unknown")
		assert.Contains(t, out, "destination share unreachable")
		assert.NotContains(t, out, "The profile fits")
	})

	t.Run("Categories", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.run("categories"))

		out := f.output.String()
		for _, c := range profile.Categories() {
			assert.Contains(t, out, c.String())
		}
		assert.Contains(t, out, "users/{user}/Favorites")
		assert.Contains(t, out, "fp/machine/dat32com.ini")
		assert.Contains(t, out, "Share root: "+filepath.Join(f.root, "{computer}", profile.DefaultShareName))
	})

	t.Run("ConfigInit", func(t *testing.T) {
		f := newFixture(t)
		path := filepath.Join(t.TempDir(), "config.toml")

		require.NoError(t, f.run("config", "init", "--path", path))
		assert.Contains(t, f.output.String(), path)

		err := f.run("config", "init", "--path", path)
		assert.ErrorIs(t, err, internal.ErrConfigExists)

		require.NoError(t, f.run("config", "init", "--path", path, "--force"))
		config, err := internal.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, internal.DefaultConfig(), config)
	})
}

func TestInstanceLock(t *testing.T) {
	t.Run("acquire and release", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pccopy.lock")
		release, err := acquireInstanceLock(path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

		release()
		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("stale lock is replaced", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pccopy.lock")
		writeFile(t, path, "not-a-pid")

		release, err := acquireInstanceLock(path)
		require.NoError(t, err)
		defer release()
	})

	t.Run("live process holds the lock", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pccopy.lock")
		writeFile(t, path, strconv.Itoa(os.Getppid()))

		_, err := acquireInstanceLock(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already running")
	})
}
