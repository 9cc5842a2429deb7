// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package vcstest provides an in-memory [vcs.VCS] for tests.
package vcstest

import (
	"context"
	"fmt"
	"path/filepath"

	"go.astrophena.name/copywriter/vcs"
)

// Fake is a [vcs.VCS] that answers from a map.
//
// A path is tracked if it has an entry in Years. An entry of zero means the
// file is tracked but has no commits yet.
type Fake struct {
	Years map[string]int
	// Calls counts LastModifiedYear calls.
	Calls int
}

var _ vcs.VCS = (*Fake)(nil)

// Track records path as tracked and last changed in year.
func (f *Fake) Track(path string, year int) {
	if f.Years == nil {
		f.Years = make(map[string]int)
	}
	f.Years[filepath.Clean(path)] = year
}

// IsTracked implements [vcs.VCS].
func (f *Fake) IsTracked(ctx context.Context, path string) (bool, error) {
	_, ok := f.Years[filepath.Clean(path)]
	return ok, nil
}

// LastModifiedYear implements [vcs.VCS].
func (f *Fake) LastModifiedYear(ctx context.Context, path string) (int, error) {
	f.Calls++
	year, ok := f.Years[filepath.Clean(path)]
	if !ok || year == 0 {
		return 0, fmt.Errorf("%s: %w", path, vcs.ErrNoHistory)
	}
	return year, nil
}
