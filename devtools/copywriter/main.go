// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"golang.org/x/tools/txtar"

	"go.astrophena.name/copywriter"
	"go.astrophena.name/copywriter/cli"
	"go.astrophena.name/copywriter/header"
	"go.astrophena.name/copywriter/logger"
	"go.astrophena.name/copywriter/vcs"
)

const defaultConfig = ".copywriter.txtar"

type config struct {
	regexp     string
	format     string
	only       string
	exclusions []string
}

func parseConfig(path string) (*config, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, err
	}

	cfg := new(config)
	for _, f := range ar.Files {
		val := strings.TrimSuffix(string(f.Data), "\n")
		switch f.Name {
		case "regexp":
			cfg.regexp = val
		case "format":
			cfg.format = val
		case "only":
			cfg.only = val
		case "exclusions.json":
			if err := json.Unmarshal(f.Data, &cfg.exclusions); err != nil {
				return nil, fmt.Errorf("%s: exclusions.json: %w", path, err)
			}
		}
	}
	return cfg, nil
}

func main() { cli.Main(new(app)) }

type app struct {
	show       bool
	update     bool
	addMissing bool
	pattern    string
	format     string
	only       string
	configPath string

	// vcs is used instead of git if set.
	vcs vcs.VCS
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.show, "show", false, "Show outdated and missing copyright headers. This is the default.")
	fs.BoolVar(&a.update, "update", false, "Update outdated copyright headers.")
	fs.BoolVar(&a.addMissing, "add-missing", false, "Add copyright headers to files missing them.")
	fs.StringVar(&a.pattern, "copyright-re", "", "Regular expression that matches a copyright notice. (default "+header.DefaultPattern+")")
	fs.StringVar(&a.format, "format", "", "Format of added copyright headers, with {year} standing for the year. Detected if not set.")
	fs.StringVar(&a.only, "only", "", "Process only files whose path matches this regular expression.")
	fs.StringVar(&a.configPath, "config", "", "Path to the configuration file. (default "+defaultConfig+" if it exists)")
}

func (a *app) loadConfig() (*config, error) {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfig); errors.Is(err, fs.ErrNotExist) {
			return new(config), nil
		}
		path = defaultConfig
	}
	return parseConfig(path)
}

func compile(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", cli.ErrInvalidArgs, name, err)
	}
	return re, nil
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	re, err := compile("-copyright-re", cmp.Or(a.pattern, cfg.regexp))
	if err != nil {
		return err
	}
	filter, err := compile("-only", cmp.Or(a.only, cfg.only))
	if err != nil {
		return err
	}
	format := cmp.Or(a.format, cfg.format)
	if format != "" && !strings.Contains(format, header.Placeholder) {
		return fmt.Errorf("%w: -format %q has no %s placeholder", cli.ErrInvalidArgs, format, header.Placeholder)
	}

	cw, err := copywriter.New(ctx, copywriter.Options{
		Roots:   env.Args,
		Regexp:  re,
		Format:  format,
		Filter:  filter,
		Exclude: cfg.exclusions,
		VCS:     a.vcs,
	})
	if err != nil {
		return err
	}

	if a.show || (!a.update && !a.addMissing) {
		if err := cw.Show(ctx, env.Stdout); err != nil {
			return err
		}
	}
	if a.update {
		changed, err := cw.Update(ctx)
		if err != nil {
			return err
		}
		logger.Info(ctx, "updated outdated headers", slog.Int("files", len(changed)))
	}
	if a.addMissing {
		changed, err := cw.AddMissing(ctx, "")
		if err != nil {
			return err
		}
		logger.Info(ctx, "added missing headers", slog.Int("files", len(changed)))
	}
	return nil
}
