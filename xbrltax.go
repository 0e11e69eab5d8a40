// Package xbrltax loads an XBRL taxonomy — an entry-point schema plus the
// transitive closure of its imports, includes and linkbase references —
// into a consolidated, graph-shaped store of concepts, labels,
// references, relationship networks and dimensional structures.
package xbrltax

import (
	"github.com/conceptgraph/xbrltax/driver"
	"github.com/conceptgraph/xbrltax/taxonomy"
)

// Load crawls a taxonomy starting from cfg.EntryPoint and returns the
// resulting taxonomy store. See driver.Config for the required
// collaborators (base directory, entry point, prefix table, logger).
func Load(cfg driver.Config) (*taxonomy.Store, error) {
	return driver.New(cfg).Run()
}

// LoadFromConfigFile reads a YAML config file (see driver.LoadConfigFile
// for its shape) and crawls the taxonomy it describes.
func LoadFromConfigFile(path string) (*taxonomy.Store, error) {
	cfg, err := driver.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return Load(cfg)
}
