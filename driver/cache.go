package driver

import "golang.org/x/sync/syncmap"

// documentCache guarantees at most one processing attempt per canonical
// document path. syncmap.Map's LoadOrStore keeps consult-and-insert
// atomic, so the cache stays correct if a caller ever parallelizes the
// worklist.
type documentCache struct {
	seen syncmap.Map
}

// claim reports whether this call is the first to see path, atomically
// marking it seen either way.
func (c *documentCache) claim(path string) bool {
	_, loaded := c.seen.LoadOrStore(path, struct{}{})
	return !loaded
}
