// Package main implements the entry point for PC Copy.
//
// This package handles:
//   - Single instance checking so two copies never write to the same share
//   - Signal handling for clean shutdown
//   - The command line: the form, headless copies, the preflight survey
//     and config bootstrapping
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"pccopy/internal"
)

// lockFilePath is the singleton instance lock file.
var lockFilePath = filepath.Join(os.TempDir(), internal.AppID+".lock")

// checkSingleInstance verifies that no other pccopy process is running.
// Stale lock files left by a dead process are removed.
func checkSingleInstance(path string) error {
	if _, err := os.Stat(path); err == nil {
		lockContent, readErr := os.ReadFile(path)
		if readErr == nil {
			pid := strings.TrimSpace(string(lockContent))
			if pidInt, err := strconv.Atoi(pid); err == nil && pidInt != os.Getpid() {
				if process, err := os.FindProcess(pidInt); err == nil {
					// Signal 0 only checks that the process exists
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("another %s process is already running (PID: %s)", internal.AppID, pid)
					}
				}
			}
		}
		os.Remove(path)
	}
	return nil
}

// createInstanceLock writes the current PID to the lock file.
func createInstanceLock(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

// removeInstanceLock deletes the lock file.
func removeInstanceLock(path string) {
	os.Remove(path)
}

// acquireInstanceLock checks for another instance and takes the lock.
// The returned func releases it.
func acquireInstanceLock(path string) (func(), error) {
	if err := checkSingleInstance(path); err != nil {
		return nil, fmt.Errorf("%w\nIf you are sure no other copy is running, remove %s", err, path)
	}
	if err := createInstanceLock(path); err != nil {
		return nil, fmt.Errorf("failed to create instance lock: %w", err)
	}
	return func() { removeInstanceLock(path) }, nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for clean exit. Running copies see the
	// cancellation and stop at the next entry.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	runner := NewRunner(RunnerOpts{LockPath: lockFilePath})
	app := newApp(runner)

	err := app.Run(ctx, os.Args)
	runner.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", internal.CurrentSymbols.Error, err)
		os.Exit(1)
	}
}
