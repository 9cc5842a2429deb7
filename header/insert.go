// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"slices"
	"strings"
	"unicode"

	"go.astrophena.name/copywriter/filetype"
)

// blockZone is how many leading lines are searched for an existing block
// comment to put the notice in.
const blockZone = 3

// SplitLines splits s into lines, keeping line terminators.
func SplitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Insert returns lines with a comment holding notice added in the comment
// syntax of t.
//
// Types with a block comment form get the notice inside a block: the first
// block comment within the leading lines is expanded, otherwise a new block
// is added. Other types get three line comments. New comments never go
// before a shebang line.
func Insert(lines []string, t *filetype.Type, notice string) []string {
	lines = slices.Clone(lines)
	eol := lineEnding(lines)
	if t.HasBlock() {
		for i := range min(len(lines), blockZone) {
			if strings.HasPrefix(lines[i], t.BlockStart) {
				return expandBlock(lines, i, t, notice, eol)
			}
		}
		end := leadingSpace(t.BlockPrefix) + t.BlockEnd
		return insertAt(lines, headerStart(lines), eol,
			t.BlockStart,
			t.BlockPrefix+notice,
			end,
		)
	}
	return insertAt(lines, headerStart(lines), eol,
		t.LineComment,
		t.LineComment+" "+notice,
		t.LineComment,
	)
}

// expandBlock splits the block start at lines[i] after the start marker and
// any characters glued to it, and puts the notice right after it.
func expandBlock(lines []string, i int, t *filetype.Type, notice, eol string) []string {
	line := lines[i]
	body := strings.TrimRight(line, "\r\n")
	term := line[len(body):]

	split := len(t.BlockStart)
	if n := strings.IndexFunc(body[split:], unicode.IsSpace); n >= 0 {
		split += n
	} else {
		split = len(body)
	}
	head, rest := body[:split], strings.TrimSpace(body[split:])

	repl := []string{
		head + eol,
		t.BlockPrefix + notice + eol,
		strings.TrimRightFunc(t.BlockPrefix, unicode.IsSpace) + eol,
	}
	if rest != "" {
		repl = append(repl, t.BlockPrefix+rest+eol)
	}
	if term == "" {
		last := len(repl) - 1
		repl[last] = strings.TrimSuffix(repl[last], eol)
	}
	return slices.Replace(lines, i, i+1, repl...)
}

// insertAt inserts add at index i, terminating each added line with eol.
func insertAt(lines []string, i int, eol string, add ...string) []string {
	if i > 0 && !strings.HasSuffix(lines[i-1], "\n") {
		lines[i-1] += eol
	}
	for j := range add {
		add[j] += eol
	}
	return slices.Insert(lines, i, add...)
}

// headerStart returns the index of the first line after a shebang.
func headerStart(lines []string) int {
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		return 1
	}
	return 0
}

func lineEnding(lines []string) string {
	if len(lines) > 0 && strings.HasSuffix(lines[0], "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}
