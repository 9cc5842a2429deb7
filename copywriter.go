// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package copywriter keeps copyright notices in a source tree current.
//
// A [Copywriter] scans a set of roots for tracked source files, finds the
// ones whose notice is older than their last change or that have no notice
// at all, and updates or adds notices.
package copywriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.astrophena.name/copywriter/filetype"
	"go.astrophena.name/copywriter/header"
	"go.astrophena.name/copywriter/logger"
	"go.astrophena.name/copywriter/scan"
	"go.astrophena.name/copywriter/syncx"
	"go.astrophena.name/copywriter/vcs"
)

var (
	// ErrBadRoot is returned by New for a root that does not exist.
	ErrBadRoot = errors.New("bad root")
	// ErrNoFiles is returned by New when no tracked file of a recognized type
	// exists under the roots.
	ErrNoFiles = errors.New("no tracked source files found")
	// ErrNoFormat is returned by AddMissing when no format was given and none
	// could be detected.
	ErrNoFormat = errors.New("no copyright format given or detected")
)

// Options configure a [Copywriter].
type Options struct {
	// Roots are files or directories to process. If empty, the current
	// directory is used.
	Roots []string
	// Regexp matches a notice. If nil, header.DefaultRegexp is used.
	Regexp *regexp.Regexp
	// Format is used to add missing notices, unless AddMissing is given one.
	// If empty, the AutoHeader is used.
	Format string
	// Filter, if set, limits processing to files whose slash-separated path
	// it matches.
	Filter *regexp.Regexp
	// Exclude lists path suffixes of files to skip.
	Exclude []string
	// Registry recognizes file types. If nil, filetype.Default is used.
	Registry filetype.Registry
	// VCS reports which files are tracked and when they changed. If nil,
	// git is used.
	VCS vcs.VCS
}

// Copywriter finds and fixes outdated and missing copyright notices.
//
// The outdated and missing sets are computed once, on first use.
type Copywriter struct {
	opts  Options
	files []string

	outdated syncx.Lazy[[]string]
	missing  syncx.Lazy[[]string]
}

// New scans opts.Roots and returns a Copywriter for the files found.
func New(ctx context.Context, opts Options) (*Copywriter, error) {
	if len(opts.Roots) == 0 {
		opts.Roots = []string{"."}
	}
	if opts.Regexp == nil {
		opts.Regexp = header.DefaultRegexp
	}
	if opts.Registry == nil {
		opts.Registry = filetype.Default
	}
	if opts.VCS == nil {
		opts.VCS = new(vcs.Git)
	}

	for _, root := range opts.Roots {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRoot, err)
		}
	}

	found, err := scan.FindFiles(ctx, opts.Registry, opts.VCS, opts.Roots...)
	if err != nil {
		return nil, err
	}
	cw := &Copywriter{opts: opts}
	for _, path := range found {
		if cw.skip(path) {
			logger.Debug(ctx, "skipping file", slog.String("path", path))
			continue
		}
		cw.files = append(cw.files, path)
	}
	if len(cw.files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, strings.Join(opts.Roots, ", "))
	}
	logger.Debug(ctx, "found files", slog.Int("count", len(cw.files)))
	return cw, nil
}

func (cw *Copywriter) skip(path string) bool {
	slash := filepath.ToSlash(path)
	for _, ex := range cw.opts.Exclude {
		if strings.HasSuffix(slash, ex) {
			return true
		}
	}
	return cw.opts.Filter != nil && !cw.opts.Filter.MatchString(slash)
}

// Files returns the files being processed, sorted.
func (cw *Copywriter) Files() []string { return cw.files }

func (cw *Copywriter) open(path string) (*header.File, error) {
	return header.Open(path, header.Options{
		Registry: cw.opts.Registry,
		Regexp:   cw.opts.Regexp,
		VCS:      cw.opts.VCS,
	})
}

// Outdated returns the files whose notice ends before the year they were
// last changed.
func (cw *Copywriter) Outdated(ctx context.Context) ([]string, error) {
	return cw.outdated.GetErr(func() ([]string, error) {
		return cw.collect(func(f *header.File) (bool, error) {
			return f.IsOutdated(ctx)
		})
	})
}

// Missing returns the files without a notice.
func (cw *Copywriter) Missing(ctx context.Context) ([]string, error) {
	return cw.missing.GetErr(func() ([]string, error) {
		return cw.collect(func(f *header.File) (bool, error) {
			notice, err := f.Notice()
			return notice == "", err
		})
	})
}

func (cw *Copywriter) collect(keep func(*header.File) (bool, error)) ([]string, error) {
	var paths []string
	for _, path := range cw.files {
		f, err := cw.open(path)
		if err != nil {
			return nil, err
		}
		ok, err := keep(f)
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// AutoHeader returns the most common notice format among the files, or an
// empty string if no file has a notice. Ties go to the format seen first.
func (cw *Copywriter) AutoHeader(ctx context.Context) (string, error) {
	var (
		order  []string
		counts = make(map[string]int)
	)
	for _, path := range cw.files {
		f, err := cw.open(path)
		if err != nil {
			return "", err
		}
		format, ok, err := f.Format()
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		if counts[format] == 0 {
			order = append(order, format)
		}
		counts[format]++
	}

	var best string
	for _, format := range order {
		if counts[format] > counts[best] {
			best = format
		}
	}
	return best, nil
}

// format picks the format for new notices: the one given, the configured
// one, or the detected one.
func (cw *Copywriter) format(ctx context.Context, format string) (string, error) {
	if format != "" {
		return format, nil
	}
	if cw.opts.Format != "" {
		return cw.opts.Format, nil
	}
	auto, err := cw.AutoHeader(ctx)
	if err != nil {
		return "", err
	}
	if auto == "" {
		return "", ErrNoFormat
	}
	return auto, nil
}

// Update brings every outdated notice up to date. It stops at the first
// file that fails and returns the files changed so far.
func (cw *Copywriter) Update(ctx context.Context) ([]string, error) {
	outdated, err := cw.Outdated(ctx)
	if err != nil {
		return nil, err
	}
	var changed []string
	for _, path := range outdated {
		f, err := cw.open(path)
		if err != nil {
			return changed, err
		}
		if err := f.Update(ctx); err != nil {
			return changed, fmt.Errorf("updating %s: %w", path, err)
		}
		logger.Info(ctx, "updated copyright notice", slog.String("path", path))
		changed = append(changed, path)
	}
	return changed, nil
}

// AddMissing adds a notice to every file without one, rendering format (see
// header.Render) with each file's modification year. An empty format falls
// back to the configured format and then to the AutoHeader. It stops at the
// first file that fails and returns the files changed so far.
func (cw *Copywriter) AddMissing(ctx context.Context, format string) ([]string, error) {
	missing, err := cw.Missing(ctx)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return nil, nil
	}
	format, err = cw.format(ctx, format)
	if err != nil {
		return nil, err
	}
	var changed []string
	for _, path := range missing {
		f, err := cw.open(path)
		if err != nil {
			return changed, err
		}
		if err := f.Add(ctx, format); err != nil {
			return changed, fmt.Errorf("adding notice to %s: %w", path, err)
		}
		logger.Info(ctx, "added copyright notice", slog.String("path", path))
		changed = append(changed, path)
	}
	return changed, nil
}

// Show writes a summary of the files that need changes to w.
func (cw *Copywriter) Show(ctx context.Context, w io.Writer) error {
	outdated, err := cw.Outdated(ctx)
	if err != nil {
		return err
	}
	missing, err := cw.Missing(ctx)
	if err != nil {
		return err
	}

	if len(outdated) > 0 {
		fmt.Fprintf(w, "Old copyright headers: %s\n", formatList(outdated))
	}
	if len(missing) > 0 {
		fmt.Fprintf(w, "Missing copyright headers: %s\n", formatList(missing))
	}
	if len(outdated) > 0 {
		fmt.Fprintf(w, "%d files have outdated headers.\n    Pass -update to update.\n", len(outdated))
	}
	if len(missing) > 0 {
		fmt.Fprintf(w, "%d files are missing headers.\n    Pass -add-missing to add copyright headers to these files.\n", len(missing))
		format, err := cw.format(ctx, "")
		switch {
		case errors.Is(err, ErrNoFormat):
			fmt.Fprintln(w, "    No header format detected; pass -format to choose one.")
		case err != nil:
			return err
		default:
			fmt.Fprintf(w, "    Header format: %s\n", format)
		}
	}
	if len(outdated) == 0 && len(missing) == 0 {
		fmt.Fprintf(w, "All %d files have current copyright headers.\n", len(cw.files))
	}
	return nil
}

func formatList(paths []string) string {
	return "[\n    " + strings.Join(paths, "\n    ") + "\n]"
}
