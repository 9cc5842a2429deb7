// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package scan finds the tracked source files of recognized types under a set
// of roots.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"go.astrophena.name/copywriter/filetype"
	"go.astrophena.name/copywriter/logger"
	"go.astrophena.name/copywriter/vcs"
)

// FindFiles returns the files under roots that reg recognizes and v tracks,
// sorted and without duplicates.
//
// A root that is a file is kept if reg recognizes it. A root that is a
// directory is searched recursively for every pattern in reg.
func FindFiles(ctx context.Context, reg filetype.Registry, v vcs.VCS, roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var found []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			found = append(found, p)
		}
	}

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			if _, ok := reg.Recognize(root); ok {
				add(root)
			}
			continue
		}
		for _, pat := range reg.Patterns() {
			err := doublestar.GlobWalk(os.DirFS(root), path.Join("**", pat), func(p string, d fs.DirEntry) error {
				if !d.Type().IsRegular() {
					return nil
				}
				add(filepath.Join(root, filepath.FromSlash(p)))
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("searching %s for %s: %w", root, pat, err)
			}
		}
	}

	tracked := found[:0]
	for _, p := range found {
		ok, err := v.IsTracked(ctx, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug(ctx, "skipping untracked file", slog.String("path", p))
			continue
		}
		tracked = append(tracked, p)
	}
	slices.Sort(tracked)
	return tracked, nil
}
