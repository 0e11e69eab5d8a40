package driver

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/conceptgraph/xbrltax/internal/linkbase"
	"github.com/conceptgraph/xbrltax/internal/pathresolve"
	"github.com/conceptgraph/xbrltax/internal/schemaextract"
	"github.com/conceptgraph/xbrltax/internal/xmltree"
	"github.com/conceptgraph/xbrltax/taxonomy"
)

// Driver orchestrates the traversal starting from the entry point,
// feeding the taxonomy store. It opens the schema and linkbase documents;
// every extractor downstream works on an already-parsed tree.
type Driver struct {
	cfg      Config
	paths    *pathresolve.Resolver
	resolver *linkbase.ConceptResolver
	logger   *slog.Logger

	schemas   documentCache
	linkbases documentCache
	linkWork  []string
}

// New constructs a Driver from Config. The store is created fresh on Run.
// A nil PrefixTable is seeded with the well-known XBRL hosts; pass an
// empty (non-nil) table to opt out entirely.
func New(cfg Config) *Driver {
	table := cfg.PrefixTable
	if table == nil {
		table = pathresolve.DefaultPrefixTable(cfg.BaseDir)
	}
	paths := pathresolve.New(cfg.BaseDir, table)
	return &Driver{
		cfg:      cfg,
		paths:    paths,
		resolver: linkbase.NewConceptResolver(paths),
		logger:   cfg.logger(),
	}
}

// Run executes the full crawl and returns the frozen-ready store. It never
// returns an error for recoverable conditions — missing references and
// malformed documents are logged as warnings and traversal continues. A
// non-nil error here means an internal invariant was violated.
func (d *Driver) Run() (*taxonomy.Store, error) {
	entry := d.paths.Resolve(d.cfg.EntryPoint, d.cfg.BaseDir)
	store := taxonomy.NewStore(d.cfg.EntryPoint, d.cfg.BaseDir)

	d.processSchema(entry, store)

	// Linkbases run after every schema so the concept resolver has the
	// full namespace catalog; they process in discovery order, which keeps
	// the label last-write-wins rule deterministic across documents.
	for i := 0; i < len(d.linkWork); i++ {
		d.processLinkbase(d.linkWork[i], store)
	}

	store.SetTimestamp(time.Now().UTC().Format(time.RFC3339))
	return store, nil
}

func (d *Driver) processSchema(path string, store *taxonomy.Store) {
	if !d.schemas.claim(path) {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		d.logger.Warn("ResolutionMiss: schema file not found", "path", path, "error", err.Error())
		return
	}
	root, err := xmltree.Parse(bytes.NewReader(data))
	if err != nil {
		d.logger.Warn("ParseFailure: schema is not well-formed XML, abandoning document", "path", path, "error", err.Error())
		return
	}

	targetNamespace := root.AttrDefault("", "targetNamespace", "")
	d.resolver.Register(path, targetNamespace)

	deps := schemaextract.Extract(root, path, store)
	dir := filepath.Dir(path)
	for _, dep := range deps {
		resolved := d.paths.Resolve(dep.Href, dir)
		if !fileExists(resolved) {
			d.logger.Warn("ResolutionMiss: dependency does not exist on disk", "reference", dep.Href, "resolved", resolved, "kind", string(dep.Kind))
			continue
		}
		switch dep.Kind {
		case schemaextract.DependencyImport, schemaextract.DependencyInclude:
			// depth-first in discovery order; the document cache breaks
			// import cycles.
			d.processSchema(resolved, store)
		case schemaextract.DependencyLinkbaseRef:
			d.linkWork = append(d.linkWork, resolved)
		}
	}
}

func (d *Driver) processLinkbase(path string, store *taxonomy.Store) {
	if !d.linkbases.claim(path) {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		d.logger.Warn("ResolutionMiss: linkbase file not found", "path", path, "error", err.Error())
		return
	}
	root, err := xmltree.Parse(bytes.NewReader(data))
	if err != nil {
		d.logger.Warn("ParseFailure: linkbase is not well-formed XML, abandoning document", "path", path, "error", err.Error())
		return
	}

	linkbase.Extract(root, path, filepath.Dir(path), store, d.resolver, d.logger)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
