package linkbase

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/conceptgraph/xbrltax/internal/pathresolve"
	"github.com/conceptgraph/xbrltax/internal/xmltree"
)

// ConceptResolver turns an XLink href of the form "<docPart>#<fragment>"
// into a concept id. It tries a known-document suffix match first, then
// falls back to resolving and parsing the referenced document for its
// targetNamespace.
type ConceptResolver struct {
	paths *pathresolve.Resolver

	mu    sync.Mutex
	known map[string]string // canonical schema path -> targetNamespace
}

// NewConceptResolver creates a resolver backed by the given path resolver.
func NewConceptResolver(paths *pathresolve.Resolver) *ConceptResolver {
	return &ConceptResolver{paths: paths, known: make(map[string]string)}
}

// Register tells the resolver that canonicalPath declares targetNamespace,
// so future hrefs whose docPart is a suffix of canonicalPath resolve
// without re-parsing the file. The Driver calls this once per schema it
// successfully processes.
func (r *ConceptResolver) Register(canonicalPath, namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[canonicalPath] = namespace
}

// Resolve maps href to a concept id, or reports failure so the caller can
// drop the arc. linkbaseDir is the directory of the document containing
// the href, used for the path-resolver fallback.
func (r *ConceptResolver) Resolve(href, linkbaseDir string) (conceptID string, ok bool) {
	docPart, fragment := pathresolve.SplitFragment(href)
	if fragment == "" {
		return "", false
	}

	if ns, found := r.namespaceBySuffix(docPart); found {
		return ns + "#" + fragment, true
	}

	resolvedPath := r.paths.Resolve(docPart, linkbaseDir)
	ns, err := r.parseTargetNamespace(resolvedPath)
	if err != nil || ns == "" {
		return "", false
	}
	r.Register(resolvedPath, ns)
	return ns + "#" + fragment, true
}

func (r *ConceptResolver) namespaceBySuffix(docPart string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := filepath.ToSlash(docPart)
	for path, ns := range r.known {
		if strings.HasSuffix(filepath.ToSlash(path), normalized) {
			return ns, true
		}
	}
	return "", false
}

func (r *ConceptResolver) parseTargetNamespace(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("linkbase: concept resolver fallback parse: %w", err)
	}
	root, err := xmltree.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("linkbase: concept resolver fallback parse: %w", err)
	}
	ns, _ := root.Attr("", "targetNamespace")
	return ns, nil
}
