// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.astrophena.name/copywriter/filetype"
	"go.astrophena.name/copywriter/logger"
	"go.astrophena.name/copywriter/vcs"
)

var (
	// ErrNotFile is returned by Open for paths that are not regular files.
	ErrNotFile = errors.New("not a file")
	// ErrUnrecognized is returned by Open for files of unknown type.
	ErrUnrecognized = errors.New("unrecognized file type")
)

// Options configure a [File].
type Options struct {
	// Registry recognizes the file type. If nil, filetype.Default is used.
	Registry filetype.Registry
	// Regexp matches the notice. If nil, DefaultRegexp is used.
	Regexp *regexp.Regexp
	// VCS reports modification years. It is required by IsOutdated, Add and
	// Update.
	VCS vcs.VCS
}

// File is a source file that may carry a copyright notice.
//
// File does not cache anything read from disk: every method reads the file
// again.
type File struct {
	Path string
	Type *filetype.Type

	re  *regexp.Regexp
	vcs vcs.VCS
}

// Open returns a File for path. It fails with [ErrNotFile] if path is not a
// regular file and with [ErrUnrecognized] if no file type matches it.
func Open(path string, opts Options) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFile, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}
	reg := opts.Registry
	if reg == nil {
		reg = filetype.Default
	}
	typ, ok := reg.Recognize(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, path)
	}
	re := opts.Regexp
	if re == nil {
		re = DefaultRegexp
	}
	return &File{Path: path, Type: typ, re: re, vcs: opts.VCS}, nil
}

func (f *File) String() string { return f.Path }

// Notice returns the copyright notice of f, or an empty string if it has
// none.
func (f *File) Notice() (string, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	buf := make([]byte, Lookback)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	return Extract(f.re, buf[:n]), nil
}

// YearRange returns the years covered by the notice of f. See
// [ParseYearRange].
func (f *File) YearRange() (r YearRange, ok bool, err error) {
	notice, err := f.Notice()
	if err != nil {
		return YearRange{}, false, err
	}
	r, ok, err = ParseYearRange(notice)
	if err != nil {
		return YearRange{}, false, fmt.Errorf("%s: %w", f.Path, err)
	}
	return r, ok, nil
}

// Format returns the notice of f with its years replaced by [Placeholder]. It
// returns false if f has no notice.
func (f *File) Format() (string, bool, error) {
	notice, err := f.Notice()
	if err != nil {
		return "", false, err
	}
	format, ok := DeriveFormat(notice)
	return format, ok, nil
}

// ModificationYear returns the year f was last changed in version control.
func (f *File) ModificationYear(ctx context.Context) (int, error) {
	if f.vcs == nil {
		return 0, fmt.Errorf("%s: no version control configured", f.Path)
	}
	year, err := f.vcs.LastModifiedYear(ctx, f.Path)
	if err != nil {
		return 0, fmt.Errorf("getting modification year: %w", err)
	}
	return year, nil
}

// IsOutdated reports whether f was changed after the last year in its
// notice.
//
// Files without a notice, without a year or with a confusing year token are
// never outdated. An error is returned only if f can't be read or its
// modification year is unknown.
func (f *File) IsOutdated(ctx context.Context) (bool, error) {
	r, ok, err := f.YearRange()
	if errors.Is(err, ErrNoNotice) {
		return false, nil
	}
	if errors.Is(err, ErrConfusingHeader) {
		logger.Warn(ctx, "ignoring confusing copyright header", slog.String("path", f.Path), logger.Err(err))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	year, err := f.ModificationYear(ctx)
	if err != nil {
		return false, err
	}
	return year >= r.End, nil
}

// Add inserts a notice rendered from format with the modification year of f.
func (f *File) Add(ctx context.Context, format string) error {
	year, err := f.ModificationYear(ctx)
	if err != nil {
		return err
	}
	notice := Render(format, strconv.Itoa(year))

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}
	lines := Insert(SplitLines(string(content)), f.Type, notice)

	logger.Debug(ctx, "adding copyright notice", slog.String("path", f.Path), slog.String("notice", notice))
	return f.write([]byte(strings.Join(lines, "")))
}

// Update extends the years in the notice of f up to its modification year.
//
// The first year token becomes "start-year", where start is the first year
// of the old token.
func (f *File) Update(ctx context.Context) error {
	notice, err := f.Notice()
	if err != nil {
		return err
	}
	r, ok, err := ParseYearRange(notice)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w: %q", f.Path, ErrNoYear, notice)
	}
	year, err := f.ModificationYear(ctx)
	if err != nil {
		return err
	}
	updated := replaceYears(notice, fmt.Sprintf("%d-%d", r.Start, year))

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}
	loc := find(f.re, content)
	if loc == nil {
		return fmt.Errorf("%s: %w", f.Path, ErrNoNotice)
	}
	var b strings.Builder
	b.Write(content[:loc[0]])
	b.WriteString(updated)
	b.Write(content[loc[1]:])

	logger.Debug(ctx, "updating copyright notice", slog.String("path", f.Path), slog.String("old", notice), slog.String("new", updated))
	return f.write([]byte(b.String()))
}

// write replaces the contents of f in place, keeping its permissions.
func (f *File) write(content []byte) error {
	fi, err := os.Stat(f.Path)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, content, fi.Mode().Perm())
}
