// Package pathresolve turns schemaLocation, XLink href, and linkbaseRef
// href strings into local filesystem paths, using an ordered prefix table
// with a repository-layout fallback. Resolution is a pure function of the
// reference, the table and a filesystem probe, memoized for throughput.
package pathresolve

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// PrefixEntry is one (urlPrefix, localDir) pair in the ordered prefix table.
type PrefixEntry struct {
	URLPrefix string
	LocalDir  string
}

// DefaultPrefixTable covers the well-known XBRL taxonomy hosts, under
// both http and https. The Resolver picks the longest matching prefix;
// table position only decides between entries with identical prefixes,
// where the earlier entry wins.
func DefaultPrefixTable(base string) []PrefixEntry {
	hosts := []string{"xbrl.org", "xbrl.us", "xbrl.fasb.org", "xbrl.sec.gov"}
	var out []PrefixEntry
	for _, scheme := range []string{"https", "http"} {
		for _, host := range hosts {
			prefix := scheme + "://" + host + "/"
			out = append(out, PrefixEntry{
				URLPrefix: prefix,
				LocalDir:  filepath.Join(base, "resources", scheme, host),
			})
		}
	}
	return out
}

// Resolver maps references to local filesystem paths, memoizing by
// (reference, baseDir).
type Resolver struct {
	base  string
	table []PrefixEntry
	stat  func(string) (os.FileInfo, error)
	mu    sync.Mutex
	cache map[cacheKey]string
}

type cacheKey struct {
	reference string
	baseDir   string
}

// New creates a Resolver rooted at base with the given ordered prefix
// table. An empty table is fine; Resolve still performs the repository
// fallback and local-path rules.
func New(base string, table []PrefixEntry) *Resolver {
	return &Resolver{
		base:  base,
		table: table,
		stat:  os.Stat,
		cache: make(map[cacheKey]string),
	}
}

// Resolve maps a reference to a local path: http(s) URLs go through the
// prefix table and repository-layout fallback, absolute paths are
// normalized, and anything else is joined with baseDir — the directory of
// the document that contained the reference.
func (r *Resolver) Resolve(reference, baseDir string) string {
	key := cacheKey{reference: reference, baseDir: baseDir}

	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	resolved := r.resolveUncached(reference, baseDir)

	r.mu.Lock()
	r.cache[key] = resolved
	r.mu.Unlock()

	return resolved
}

func (r *Resolver) resolveUncached(reference, baseDir string) string {
	if isHTTPURL(reference) {
		return r.resolveHTTP(reference)
	}
	if filepath.IsAbs(reference) {
		return filepath.Clean(reference)
	}
	return filepath.Clean(filepath.Join(baseDir, reference))
}

func isHTTPURL(reference string) bool {
	return strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://")
}

// resolveHTTP consults the prefix table (longest match wins), then the
// repository-layout fallback with http/https swap-retry.
func (r *Resolver) resolveHTTP(reference string) string {
	if local, ok := r.longestPrefixMatch(reference); ok {
		return local
	}

	scheme, authority, path, ok := splitURL(reference)
	if !ok {
		return reference
	}

	primary := filepath.Join(r.base, "resources", scheme, authority, path)
	if r.exists(primary) {
		return primary
	}

	altScheme := "http"
	if scheme == "http" {
		altScheme = "https"
	}
	alt := filepath.Join(r.base, "resources", altScheme, authority, path)
	if r.exists(alt) {
		return alt
	}

	// Neither layout has the file yet; return the repository-layout guess
	// under the original scheme so the caller's existence check produces a
	// meaningful ResolutionMiss warning naming a plausible local path.
	return primary
}

// longestPrefixMatch finds the prefix-table entry with the longest
// URLPrefix that is a prefix of reference.
func (r *Resolver) longestPrefixMatch(reference string) (string, bool) {
	var best *PrefixEntry
	for i := range r.table {
		entry := &r.table[i]
		if !strings.HasPrefix(reference, entry.URLPrefix) {
			continue
		}
		if best == nil || len(entry.URLPrefix) > len(best.URLPrefix) {
			best = entry
		}
	}
	if best == nil {
		return "", false
	}
	rest := strings.TrimPrefix(reference, best.URLPrefix)
	rest = filepath.FromSlash(rest)
	return filepath.Join(best.LocalDir, rest), true
}

func (r *Resolver) exists(path string) bool {
	_, err := r.stat(path)
	return err == nil
}

// splitURL splits an http(s) URL into (scheme, authority, path-without-
// leading-slash). Deliberately minimal: taxonomy references never carry
// query strings or fragments by the time they reach the resolver (the
// fragment, if any, is stripped by the caller before resolution).
func splitURL(u string) (scheme, authority, path string, ok bool) {
	const httpsPrefix = "https://"
	const httpPrefix = "http://"
	switch {
	case strings.HasPrefix(u, httpsPrefix):
		scheme = "https"
		u = strings.TrimPrefix(u, httpsPrefix)
	case strings.HasPrefix(u, httpPrefix):
		scheme = "http"
		u = strings.TrimPrefix(u, httpPrefix)
	default:
		return "", "", "", false
	}
	idx := strings.IndexByte(u, '/')
	if idx < 0 {
		authority = u
		path = ""
	} else {
		authority = u[:idx]
		path = strings.TrimPrefix(u[idx:], "/")
	}
	return scheme, authority, filepath.FromSlash(path), true
}

// SplitFragment separates "docPart#fragment" into its two halves, as used
// by the concept resolver on XLink href values. If there is no "#",
// fragment is empty.
func SplitFragment(href string) (docPart, fragment string) {
	idx := strings.IndexByte(href, '#')
	if idx < 0 {
		return href, ""
	}
	return href[:idx], href[idx+1:]
}
