// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports the build information of the running program.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Info describes a build.
type Info struct {
	// Name is the command name.
	Name string
	// Version is the main module version, "(devel)" for local builds.
	Version string
	// Commit is the VCS revision, if known.
	Commit string
	// Dirty reports uncommitted changes at build time.
	Dirty bool
	// Go is the Go version used for the build.
	Go string
}

func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s", i.Commit)
		if i.Dirty {
			sb.WriteString(", dirty")
		}
		sb.WriteString(")")
	}
	if i.Go != "" {
		fmt.Fprintf(&sb, " built with %s", i.Go)
	}
	sb.WriteString("\n")
	return sb.String()
}

// CmdName returns the base name of the running executable.
func CmdName() string {
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}

// Version returns the build information of the running program.
func Version() Info {
	info := Info{Name: CmdName(), Version: "(devel)"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Go = bi.GoVersion
	if v := bi.Main.Version; v != "" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}
