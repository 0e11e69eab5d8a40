// Package driver owns the worklist of taxonomy documents, feeds the
// taxonomy store, and reads the schema and linkbase documents it crawls
// (the path resolver's existence probe and the concept resolver's
// namespace fallback also touch the filesystem). Config is a plain struct
// of collaborators handed in by the caller, never built by magic inside
// the package.
package driver

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/conceptgraph/xbrltax/internal/pathresolve"
	"gopkg.in/yaml.v3"
)

// Config is the set of collaborators a crawl requires.
type Config struct {
	// BaseDir is the repository root used for the resources/{http,https}
	// fallback layout and for resolving a relative EntryPoint.
	BaseDir string
	// EntryPoint is the path (absolute, or relative to BaseDir) of the
	// taxonomy's entry-point schema.
	EntryPoint string
	// PrefixTable is consulted before the repository-layout fallback.
	// When nil, New seeds it with pathresolve.DefaultPrefixTable(BaseDir),
	// covering the well-known XBRL hosts; an empty non-nil table disables
	// prefix matching so every reference falls through to the fallback.
	PrefixTable []pathresolve.PrefixEntry
	// Logger receives warning-level ResolutionMiss/ParseFailure/
	// DanglingXLink notices. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// fileConfig is the on-disk YAML shape accepted by LoadConfigFile, for
// callers who prefer a config file over constructing Config in code.
type fileConfig struct {
	BaseDir    string `yaml:"baseDir"`
	EntryPoint string `yaml:"entryPoint"`
	Prefixes   []struct {
		URLPrefix string `yaml:"urlPrefix"`
		LocalDir  string `yaml:"localDir"`
	} `yaml:"prefixes"`
}

// LoadConfigFile reads a YAML configuration file into a Config. The
// Logger field is never set from file and must be assigned by the caller
// afterward if a non-default logger is wanted.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("driver: reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("driver: parsing config file: %w", err)
	}
	cfg := Config{BaseDir: fc.BaseDir, EntryPoint: fc.EntryPoint}
	for _, p := range fc.Prefixes {
		cfg.PrefixTable = append(cfg.PrefixTable, pathresolve.PrefixEntry{
			URLPrefix: p.URLPrefix,
			LocalDir:  p.LocalDir,
		})
	}
	return cfg, nil
}
