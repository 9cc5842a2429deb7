// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package filetype describes the source file types that can carry a copyright
// notice and how comments are written in each of them.
package filetype

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Type describes a family of source files and its comment syntax.
//
// A Type always has a line comment marker. The block form (BlockStart,
// BlockEnd and BlockPrefix) is optional; see [Type.HasBlock].
type Type struct {
	// Name identifies the type, for example "c-style".
	Name string
	// Patterns are shell glob patterns matched against a file's base name.
	Patterns []string
	// LineComment starts a line comment, for example "//".
	LineComment string
	// BlockStart and BlockEnd delimit a block comment.
	BlockStart string
	BlockEnd   string
	// BlockPrefix starts each inner line of a block comment, for example " * ".
	BlockPrefix string
}

// HasBlock reports whether t defines a block comment form.
func (t *Type) HasBlock() bool { return t.BlockStart != "" && t.BlockEnd != "" }

// Match reports whether the base name of path matches any of t's patterns.
func (t *Type) Match(path string) bool {
	name := filepath.Base(path)
	for _, pat := range t.Patterns {
		if doublestar.MatchUnvalidated(pat, name) {
			return true
		}
	}
	return false
}

func (t *Type) String() string { return t.Name }

// Registry is an ordered list of file types.
//
// When more than one type matches a path, the one that comes first in the
// registry wins.
type Registry []*Type

// Recognize returns the first type in r that matches path.
func (r Registry) Recognize(path string) (*Type, bool) {
	for _, t := range r {
		if t.Match(path) {
			return t, true
		}
	}
	return nil, false
}

// Patterns returns the patterns of every type in registry order, without
// duplicates.
func (r Registry) Patterns() []string {
	var (
		pats []string
		seen = make(map[string]bool)
	)
	for _, t := range r {
		for _, pat := range t.Patterns {
			if seen[pat] {
				continue
			}
			seen[pat] = true
			pats = append(pats, pat)
		}
	}
	return pats
}

// Lookup returns the type named name.
func (r Registry) Lookup(name string) (*Type, bool) {
	for _, t := range r {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// Default is the built-in registry.
var Default = Registry{
	{
		Name:        "c-style",
		Patterns:    []string{"*.c", "*.cc", "*.cpp", "*.cxx", "*.h", "*.hh", "*.hpp"},
		LineComment: "//",
		BlockStart:  "/*",
		BlockEnd:    "*/",
		BlockPrefix: " * ",
	},
	{
		Name:        "py-style",
		Patterns:    []string{"*.py", "*.pyi", "*.pyx", "*.pxd", "*.pyd", "*.pxi"},
		LineComment: "#",
		BlockStart:  `"""`,
		BlockEnd:    `"""`,
	},
	{
		Name:        "cmake",
		Patterns:    []string{"CMakeLists.txt", "*.cmake"},
		LineComment: "#",
	},
	{
		Name:        "bash",
		Patterns:    []string{"*.sh", "*.bash"},
		LineComment: "#",
	},
}
