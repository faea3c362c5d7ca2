// Package writer persists a rendered composition plan to disk. The whole
// tree is staged under a temporary sibling directory and atomically renamed
// into place, so an aborted or failed run never leaves a partial project in
// the target path.
package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/planner"
)

// IOError reports a filesystem failure while persisting the plan.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// ErrorKind identifies the error taxonomy entry for CLI exit-code mapping.
func (e *IOError) ErrorKind() string { return "io_error" }

// Unwrap exposes the underlying filesystem error.
func (e *IOError) Unwrap() error { return e.Err }

// Write materializes the plan at outputPath. The target must not already
// exist as a non-empty directory or as a file. All content is written to a
// staging directory in the same parent (so the final rename stays on one
// filesystem) and moved into place in a single step; any failure removes the
// staging directory.
func Write(ctx context.Context, plan *planner.Plan, outputPath string) (err error) {
	logger := ctxlog.FromContext(ctx)

	absOut, aerr := filepath.Abs(outputPath)
	if aerr != nil {
		return &IOError{Op: "resolve", Path: outputPath, Err: aerr}
	}
	if cerr := checkTarget(absOut); cerr != nil {
		return cerr
	}

	parent := filepath.Dir(absOut)
	if merr := os.MkdirAll(parent, 0o755); merr != nil {
		return &IOError{Op: "mkdir", Path: parent, Err: merr}
	}
	staging, terr := os.MkdirTemp(parent, ".scaffgo-stage-*")
	if terr != nil {
		return &IOError{Op: "mkdir", Path: parent, Err: terr}
	}
	defer func() {
		if err != nil {
			os.RemoveAll(staging)
		}
	}()

	for _, dir := range plan.Dirs {
		if derr := ensureDir(filepath.Join(staging, filepath.FromSlash(dir))); derr != nil {
			return derr
		}
	}

	for _, item := range plan.Files() {
		target := filepath.Join(staging, filepath.FromSlash(item.Artifact.Path))
		if werr := os.WriteFile(target, item.Content, 0o644); werr != nil {
			return &IOError{Op: "write", Path: item.Artifact.Path, Err: werr}
		}
	}

	// An existing empty directory target is replaced by the staged tree.
	if rerr := os.Remove(absOut); rerr != nil && !os.IsNotExist(rerr) {
		return &IOError{Op: "replace", Path: absOut, Err: rerr}
	}
	if rerr := os.Rename(staging, absOut); rerr != nil {
		return &IOError{Op: "rename", Path: absOut, Err: rerr}
	}

	logger.Info("Project written.",
		"path", absOut,
		"files", len(plan.Files()),
		"directories", len(plan.Dirs),
	)
	return nil
}

// checkTarget refuses targets that already hold content.
func checkTarget(absOut string) error {
	info, err := os.Stat(absOut)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &IOError{Op: "stat", Path: absOut, Err: err}
	}
	if !info.IsDir() {
		return &IOError{Op: "check", Path: absOut, Err: fmt.Errorf("target exists and is not a directory")}
	}
	entries, err := os.ReadDir(absOut)
	if err != nil {
		return &IOError{Op: "read", Path: absOut, Err: err}
	}
	if len(entries) > 0 {
		return &IOError{Op: "check", Path: absOut, Err: fmt.Errorf("target directory is not empty")}
	}
	return nil
}

// ensureDir creates a directory idempotently: create if absent, accept an
// existing directory, fail only on a non-directory collision.
func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err == nil {
		return nil
	} else if info, serr := os.Stat(path); serr == nil && !info.IsDir() {
		return &IOError{Op: "mkdir", Path: path, Err: fmt.Errorf("path exists as a file")}
	} else {
		return &IOError{Op: "mkdir", Path: path, Err: err}
	}
}
