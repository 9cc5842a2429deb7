// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header finds, parses, updates and inserts copyright notices at the
// top of source files.
//
// A notice is the text matched by a copyright regular expression, for example
// "Copyright 2018-2020 Bob". Its year token ("2018-2020") gives a
// [YearRange], and replacing the year token with [Placeholder] gives a format
// that can be rendered again for other files.
package header

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Lookback is how many leading bytes of a file are searched for a notice.
const Lookback = 1000

// Placeholder stands for the year token in a format.
const Placeholder = "{year}"

// DefaultPattern matches a notice by its leading "Copyright " up to the end
// of the line.
const DefaultPattern = `Copyright .*`

// DefaultRegexp is the compiled [DefaultPattern].
var DefaultRegexp = regexp.MustCompile(DefaultPattern)

var (
	yearTokenRe = regexp.MustCompile(`[0-9]{4}( *-? *[0-9]{4})?`)
	yearRe      = regexp.MustCompile(`[0-9]{4}`)
)

var (
	// ErrNoNotice means a file has no copyright notice.
	ErrNoNotice = errors.New("no copyright notice found")
	// ErrNoYear means a notice has no year token.
	ErrNoYear = errors.New("copyright notice has no year")
	// ErrConfusingHeader means a notice has a year token that is neither one
	// nor two years.
	ErrConfusingHeader = errors.New("confusing copyright header")
)

// YearRange is the half-open interval of years [Start, End) covered by a
// notice.
type YearRange struct {
	Start, End int
}

func (r YearRange) String() string {
	if r.End-r.Start <= 1 {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End-1)
}

// Extract returns the first match of re within the first [Lookback] bytes of
// content, or an empty string. A carriage return ending the match is not
// part of the notice.
func Extract(re *regexp.Regexp, content []byte) string {
	if len(content) > Lookback {
		content = content[:Lookback]
	}
	loc := find(re, content)
	if loc == nil {
		return ""
	}
	return string(content[loc[0]:loc[1]])
}

// find returns the span of the first match of re in content, leaving out a
// trailing '\r' so notices on CRLF lines keep their line ending.
func find(re *regexp.Regexp, content []byte) []int {
	loc := re.FindIndex(content)
	if loc != nil && loc[1] > loc[0] && content[loc[1]-1] == '\r' {
		loc[1]--
	}
	return loc
}

// ParseYearRange parses the year token of notice.
//
// It returns ok == false with no error when notice has no year token. It
// fails with [ErrNoNotice] when notice is empty and with [ErrConfusingHeader]
// when the year token holds other than one or two years.
func ParseYearRange(notice string) (r YearRange, ok bool, err error) {
	if notice == "" {
		return YearRange{}, false, ErrNoNotice
	}
	tok := yearTokenRe.FindString(notice)
	if tok == "" {
		return YearRange{}, false, nil
	}
	years := yearRe.FindAllString(tok, -1)
	if len(years) != 1 && len(years) != 2 {
		return YearRange{}, false, fmt.Errorf("%w: %q", ErrConfusingHeader, tok)
	}
	start, _ := strconv.Atoi(years[0])
	last, _ := strconv.Atoi(years[len(years)-1])
	return YearRange{Start: start, End: last + 1}, true, nil
}

// DeriveFormat replaces the first year token of notice with [Placeholder].
// It returns false if notice is empty.
func DeriveFormat(notice string) (string, bool) {
	if notice == "" {
		return "", false
	}
	return replaceYears(notice, Placeholder), true
}

// Render fills the placeholder in format with years.
func Render(format, years string) string {
	return strings.ReplaceAll(format, Placeholder, years)
}

func replaceYears(notice, years string) string {
	loc := yearTokenRe.FindStringIndex(notice)
	if loc == nil {
		return notice
	}
	return notice[:loc[0]] + years + notice[loc[1]:]
}
