// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"go.astrophena.name/copywriter/testutil"
)

type call struct {
	dir  string
	args []string
}

// fakeRunner answers git invocations from a function and records them.
type fakeRunner struct {
	calls []call
	fn    func(args []string) ([]byte, error)
}

func (r *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, call{dir: dir, args: args})
	out, err := r.fn(args)
	return out, nil, err
}

func TestParseYear(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    int
		wantErr error
	}{
		"plain":   {in: "2020\n", want: 2020},
		"quoted":  {in: "\"2019\"\n", want: 2019},
		"empty":   {in: "", wantErr: ErrNoHistory},
		"newline": {in: "\n", wantErr: ErrNoHistory},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseYear([]byte(tc.in))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want error %v, got %v", tc.wantErr, err)
				}
				return
			}
			testutil.AssertEqual(t, err, nil)
			testutil.AssertEqual(t, got, tc.want)
		})
	}

	if _, err := ParseYear([]byte("soon")); err == nil {
		t.Fatal("want error for a non-numeric year")
	}
}

func TestGitLastModifiedYear(t *testing.T) {
	r := &fakeRunner{fn: func(args []string) ([]byte, error) { return []byte("2021\n"), nil }}
	g := &Git{Runner: r}
	ctx := context.Background()

	for range 3 {
		year, err := g.LastModifiedYear(ctx, filepath.Join("src", "foo.c"))
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, year, 2021)
	}
	testutil.AssertEqual(t, len(r.calls), 1)
	testutil.AssertEqual(t, r.calls[0].dir, "src"+string(filepath.Separator))
	testutil.AssertEqual(t, r.calls[0].args, []string{"log", "-1", "--format=%ad", "--date=format:%Y", "--", "foo.c"})
}

func TestGitLastModifiedYearNoHistory(t *testing.T) {
	g := &Git{Runner: &fakeRunner{fn: func(args []string) ([]byte, error) { return nil, nil }}}
	_, err := g.LastModifiedYear(context.Background(), "foo.c")
	if !errors.Is(err, ErrNoHistory) {
		t.Fatalf("want ErrNoHistory, got %v", err)
	}
}

func TestGitIsTracked(t *testing.T) {
	g := &Git{Runner: &fakeRunner{fn: func(args []string) ([]byte, error) {
		if args[len(args)-1] == "tracked.c" {
			return []byte("tracked.c\n"), nil
		}
		return nil, &exec.ExitError{}
	}}}
	ctx := context.Background()

	ok, err := g.IsTracked(ctx, "tracked.c")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, ok, true)

	ok, err = g.IsTracked(ctx, "generated.c")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, ok, false)
}

func TestGitIsTrackedRunnerFailure(t *testing.T) {
	errNoGit := errors.New("git not installed")
	g := &Git{Runner: &fakeRunner{fn: func(args []string) ([]byte, error) { return nil, errNoGit }}}
	_, err := g.IsTracked(context.Background(), "foo.c")
	if !errors.Is(err, errNoGit) {
		t.Fatalf("want %v, got %v", errNoGit, err)
	}
}

func TestGitRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	dir := t.TempDir()
	git := func(env []string, args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-c", "user.name=Test", "-c", "user.email=test@example.com"}, args...)...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), env...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	git(nil, "init", "-q")
	write("old.c", "int main(void) { return 0; }\n")
	git(nil, "add", "old.c")
	git([]string{"GIT_AUTHOR_DATE=2019-06-01T12:00:00Z", "GIT_COMMITTER_DATE=2019-06-01T12:00:00Z"}, "commit", "-q", "-m", "old")
	write("new.c", "int x;\n")

	g := new(Git)
	ctx := context.Background()

	year, err := g.LastModifiedYear(ctx, filepath.Join(dir, "old.c"))
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, year, 2019)

	ok, err := g.IsTracked(ctx, filepath.Join(dir, "old.c"))
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, ok, true)

	ok, err = g.IsTracked(ctx, filepath.Join(dir, "new.c"))
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, ok, false)

	if _, err := g.LastModifiedYear(ctx, filepath.Join(dir, "new.c")); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("want ErrNoHistory for an uncommitted file, got %v", err)
	}
}
