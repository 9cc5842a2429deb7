// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Copywriter keeps copyright headers in a source tree up to date.

Usage:

	$ copywriter [flags] [path ...]

It searches the given paths (the current directory by default) for files
tracked by git whose type it knows: C and C++ sources and headers, Python,
CMake and shell scripts. Each file's copyright notice is found with a
regular expression in its first 1000 bytes.

A notice is outdated when the file was changed in git after the last year
the notice covers. With -update, the first year or year range of each
outdated notice becomes a range ending in the year of the last change:

	Copyright 2019 Jane Doe       ->  Copyright 2019-2021 Jane Doe
	Copyright 2017-2019 Jane Doe  ->  Copyright 2017-2021 Jane Doe

With -add-missing, a notice is added to each file without one. The notice is
rendered from a format where {year} stands for the year the file was last
changed, for example "Copyright {year} Jane Doe". When no format is given, the
format most notices in the tree already share is used. The notice goes into
a comment that matches the file type, after a shebang line. C and Python
files with a comment block at the top get the notice inside that block.

Without -update or -add-missing, copywriter reports outdated and missing
notices and changes nothing.

The tool can be configured through a .copywriter.txtar file in the current
directory, or the file passed with -config. This file is a txtar archive and
can contain the following files:

  - regexp: A regular expression that matches a copyright notice.
  - format: The format of notices added with -add-missing.
  - only: A regular expression; only files whose path matches it are
    processed.
  - exclusions.json: A JSON array of path suffixes to skip.

Flags override the values from the configuration file.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/copywriter/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
