// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package vcs asks the version control system about files: whether a file is
// tracked, and when it was last changed.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go4org/hashtriemap"

	"go.astrophena.name/copywriter/logger"
)

// VCS reports version control metadata for files.
type VCS interface {
	// IsTracked reports whether path is known to version control.
	IsTracked(ctx context.Context, path string) (bool, error)
	// LastModifiedYear returns the year of the last commit touching path.
	LastModifiedYear(ctx context.Context, path string) (int, error)
}

// ErrNoHistory is returned by LastModifiedYear when no commit touches a path.
var ErrNoHistory = errors.New("no commits touch this file")

// Runner runs an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// CommandRunner is a [Runner] backed by [exec.CommandContext].
type CommandRunner struct{}

// Run runs the command and collects its output.
func (CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Git is a [VCS] that runs the git command.
//
// Years are remembered per path for the lifetime of a Git value.
type Git struct {
	// Runner runs git. If nil, CommandRunner is used.
	Runner Runner

	years hashtriemap.HashTrieMap[string, int]
}

func (g *Git) runner() Runner {
	if g.Runner == nil {
		return CommandRunner{}
	}
	return g.Runner
}

// git runs git from the directory containing path, passing the base name of
// path as the last argument.
func (g *Git) git(ctx context.Context, path string, args ...string) ([]byte, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	args = append(args, "--", name)
	stdout, stderr, err := g.runner().Run(ctx, dir, "git", args...)
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return stdout, &exitError{args: args, code: ee.ExitCode(), stderr: strings.TrimSpace(string(stderr))}
		}
		return nil, fmt.Errorf("running git %s: %w", strings.Join(args, " "), err)
	}
	return stdout, nil
}

type exitError struct {
	args   []string
	code   int
	stderr string
}

func (e *exitError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.args, " "), e.code)
	if e.stderr != "" {
		msg += ": " + e.stderr
	}
	return msg
}

// IsTracked implements [VCS].
func (g *Git) IsTracked(ctx context.Context, path string) (bool, error) {
	_, err := g.git(ctx, path, "ls-files", "--error-unmatch")
	var ee *exitError
	if errors.As(err, &ee) {
		logger.Debug(ctx, "file is not tracked", slog.String("path", path))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LastModifiedYear implements [VCS].
func (g *Git) LastModifiedYear(ctx context.Context, path string) (int, error) {
	if year, ok := g.years.Load(path); ok {
		return year, nil
	}
	out, err := g.git(ctx, path, "log", "-1", "--format=%ad", "--date=format:%Y")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	year, err := ParseYear(out)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	year, _ = g.years.LoadOrStore(path, year)
	return year, nil
}

// ParseYear parses the output of git log formatted as a year.
func ParseYear(out []byte) (int, error) {
	s := strings.Trim(string(out), "'\"\n\r\t ")
	if s == "" {
		return 0, ErrNoHistory
	}
	year, err := strconv.Atoi(s)
	if err != nil || len(s) != 4 {
		return 0, fmt.Errorf("unexpected year %q from git log", s)
	}
	return year, nil
}
