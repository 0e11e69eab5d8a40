// Command taxcrawl is a thin CLI wrapper around xbrltax.Load, printing a
// basic-stats summary of the crawled taxonomy.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/conceptgraph/xbrltax"
	"github.com/conceptgraph/xbrltax/driver"
	"github.com/conceptgraph/xbrltax/internal/pathresolve"
)

func main() {
	baseDir := flag.String("base", ".", "taxonomy base directory")
	entryPoint := flag.String("entry", "", "entry-point schema path")
	useDefaults := flag.Bool("default-prefixes", true, "seed the prefix table with the well-known XBRL hosts")
	flag.Parse()

	if *entryPoint == "" {
		fmt.Fprintln(os.Stderr, "taxcrawl: -entry is required")
		os.Exit(2)
	}

	cfg := driver.Config{
		BaseDir:    *baseDir,
		EntryPoint: *entryPoint,
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	if !*useDefaults {
		cfg.PrefixTable = []pathresolve.PrefixEntry{}
	}

	store, err := xbrltax.Load(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "taxcrawl: %v\n", err)
		os.Exit(1)
	}

	stats := store.Stats()
	meta := store.Metadata()
	fmt.Printf("entryPoint=%s baseDir=%s timestamp=%s\n", meta.EntryPoint, meta.BaseDir, meta.Timestamp)
	fmt.Printf("concepts=%d (abstract=%d, concrete=%d)\n", stats.TotalConcepts, stats.AbstractConcepts, stats.NonAbstractConcepts)
	fmt.Printf("networks: presentation=%d calculation=%d definition=%d\n", stats.PresentationNetworks, stats.CalculationNetworks, stats.DefinitionNetworks)
	fmt.Printf("roleTypes=%d arcroleTypes=%d\n", stats.RoleTypes, stats.ArcroleTypes)
	fmt.Printf("dimensions: hypercubes=%d explicitDimensions=%d\n", stats.Hypercubes, stats.ExplicitDimensions)
}
