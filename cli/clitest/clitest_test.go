// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package clitest_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/copywriter/cli"
	"go.astrophena.name/copywriter/cli/clitest"
	"go.astrophena.name/copywriter/logger"
)

var errEmptyNotice = errors.New("empty notice")

// pathError reports a file that could not be stamped.
type pathError struct{ path string }

func (e *pathError) Error() string { return "cannot stamp " + e.path }

// stamper prints a notice for each path argument, read from -config or
// standard input, and remembers what it stamped.
type stamper struct {
	config string
	year   int

	stamped []string
}

func (s *stamper) Flags(fs *flag.FlagSet) {
	fs.StringVar(&s.config, "config", "", "File holding the notice. Read from stdin if empty.")
	fs.IntVar(&s.year, "year", 2026, "Year to stamp.")
}

func (s *stamper) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	var (
		b   []byte
		err error
	)
	if s.config != "" {
		b, err = os.ReadFile(s.config)
	} else {
		b, err = io.ReadAll(env.Stdin)
	}
	if err != nil {
		return err
	}
	notice := strings.TrimSpace(string(b))
	if notice == "" {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, errEmptyNotice)
	}
	if owner := env.Getenv("COPYRIGHT_OWNER"); owner != "" {
		notice += " " + owner
	}

	for _, path := range env.Args {
		if strings.HasSuffix(path, ".bin") {
			return &pathError{path: path}
		}
		fmt.Fprintf(env.Stdout, "%s: %s %d\n", path, notice, s.year)
		logger.Debug(ctx, "stamped", slog.String("path", path))
		s.stamped = append(s.stamped, path)
	}
	return nil
}

func TestRun(t *testing.T) {
	config := filepath.Join(t.TempDir(), "notice.txt")
	if err := os.WriteFile(config, []byte("Copyright\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	setup := func(t *testing.T) *stamper { return new(stamper) }

	clitest.Run(t, setup, map[string]clitest.Case[*stamper]{
		"nothing to stamp": {
			Stdin:              strings.NewReader("Copyright"),
			WantNothingPrinted: true,
		},
		"stdin": {
			Args:         []string{"foo.c"},
			Stdin:        strings.NewReader("Copyright\n"),
			WantInStdout: "foo.c: Copyright 2026\n",
		},
		"config flag": {
			Args:         []string{"-config", config, "-year", "1086", "foo.c", "bar.h"},
			WantInStdout: "foo.c: Copyright 1086\nbar.h: Copyright 1086\n",
			CheckFunc: func(t *testing.T, s *stamper) {
				if len(s.stamped) != 2 || s.stamped[1] != "bar.h" {
					t.Errorf("stamped = %v, want [foo.c bar.h]", s.stamped)
				}
			},
		},
		"env": {
			Args:         []string{"-config", config, "foo.c"},
			Env:          map[string]string{"COPYRIGHT_OWNER": "William"},
			WantInStdout: "foo.c: Copyright William 2026\n",
		},
		"verbose": {
			Args:         []string{"-v", "-config", config, "foo.c"},
			WantInStderr: "DBG stamped path=foo.c\n",
		},
		"empty notice": {
			Args:    []string{"foo.c"},
			WantErr: errEmptyNotice,
		},
		"invalid args": {
			WantErr: cli.ErrInvalidArgs,
		},
		"missing config": {
			Args:    []string{"-config", filepath.Join(t.TempDir(), "nope.txt")},
			WantErr: os.ErrNotExist,
		},
		"error type": {
			Args:        []string{"-config", config, "foo.bin"},
			WantErrType: &pathError{},
		},
	})
}
