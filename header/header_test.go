// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"go.astrophena.name/copywriter/testutil"
)

func TestExtract(t *testing.T) {
	cases := map[string]struct {
		content string
		want    string
	}{
		"line comment":   {content: "// Copyright 1084-1085 William\nint x;\n", want: "Copyright 1084-1085 William"},
		"block comment":  {content: "/*\n * Copyright 1085-1086 William\n */\n", want: "Copyright 1085-1086 William"},
		"docstring":      {content: "\"\"\"\nCopyright 1085 William\n\"\"\"\n", want: "Copyright 1085 William"},
		"spaced range":   {content: "# Copyright 1085 - 1086 William\n", want: "Copyright 1085 - 1086 William"},
		"first match":    {content: "# Copyright 2001 A\n# Copyright 2002 B\n", want: "Copyright 2001 A"},
		"crlf":           {content: "// Copyright 2020 Bob\r\nint x;\r\n", want: "Copyright 2020 Bob"},
		"lone cr":        {content: "// Copyright 2020 Bob\r", want: "Copyright 2020 Bob"},
		"none":           {content: "int main(void) { return 0; }\n", want: ""},
		"beyond window":  {content: strings.Repeat("x", Lookback) + "\n// Copyright 2020 Late\n", want: ""},
		"at window edge": {content: strings.Repeat("x", Lookback-len("Copyright 20")) + "Copyright 2020 Bob\n", want: "Copyright 20"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, Extract(DefaultRegexp, []byte(tc.content)), tc.want)
		})
	}
}

func TestExtractCustomRegexp(t *testing.T) {
	re := regexp.MustCompile(`© [0-9]{4} [A-Za-z ]+`)
	got := Extract(re, []byte("// © 2024 Ilya Mateyko. All rights reserved.\n"))
	testutil.AssertEqual(t, got, "© 2024 Ilya Mateyko")
}

func TestParseYearRange(t *testing.T) {
	cases := map[string]struct {
		notice  string
		want    YearRange
		wantOK  bool
		wantErr error
	}{
		"single year":    {notice: "Copyright 2019 Bob", want: YearRange{2019, 2020}, wantOK: true},
		"range":          {notice: "Copyright 2018-2019 Bob", want: YearRange{2018, 2020}, wantOK: true},
		"spaced range":   {notice: "Copyright 1085 - 1086 William", want: YearRange{1085, 1087}, wantOK: true},
		"space only":     {notice: "Copyright 2001 2003 Bob", want: YearRange{2001, 2004}, wantOK: true},
		"first token":    {notice: "Copyright 2001, 2005-2007 Bob", want: YearRange{2001, 2002}, wantOK: true},
		"no year":        {notice: "Copyright Bob"},
		"short number":   {notice: "Copyright 99 Bob"},
		"empty":          {notice: "", wantErr: ErrNoNotice},
		"glued digits":   {notice: "Copyright 20182019 Bob", want: YearRange{2018, 2020}, wantOK: true},
		"trailing range": {notice: "Copyright Bob, 2010-2012", want: YearRange{2010, 2013}, wantOK: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok, err := ParseYearRange(tc.notice)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want error %v, got %v", tc.wantErr, err)
				}
				return
			}
			testutil.AssertEqual(t, err, nil)
			testutil.AssertEqual(t, ok, tc.wantOK)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestYearRange(t *testing.T) {
	r := YearRange{2018, 2020}
	testutil.AssertEqual(t, r.String(), "2018-2019")
	testutil.AssertEqual(t, YearRange{2019, 2020}.String(), "2019")
}

func TestDeriveFormat(t *testing.T) {
	cases := map[string]struct {
		notice string
		years  string
		want   string
	}{
		"single year": {notice: "Copyright 2019 Bob", years: "2019", want: "Copyright {year} Bob"},
		"range":       {notice: "Copyright 2018-2019 Bob", years: "2018-2019", want: "Copyright {year} Bob"},
		"spaced":      {notice: "Copyright 1085 - 1086 William", years: "1085 - 1086", want: "Copyright {year} William"},
		"suffix":      {notice: "Copyright (c) 2020, The Authors.", years: "2020", want: "Copyright (c) {year}, The Authors."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			format, ok := DeriveFormat(tc.notice)
			testutil.AssertEqual(t, ok, true)
			testutil.AssertEqual(t, format, tc.want)
			// Rendering the format with the original years gives back the
			// notice.
			testutil.AssertEqual(t, Render(format, tc.years), tc.notice)
		})
	}

	_, ok := DeriveFormat("")
	testutil.AssertEqual(t, ok, false)

	format, ok := DeriveFormat("Copyright Bob")
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, format, "Copyright Bob")
}
