// Package dimensional classifies definition-link arcs by the four
// standard XBRL Dimensions arcroles into hypercube/dimension/domain/
// member relations. It runs inline from the definitionArc walk rather
// than as a second pass over the document.
package dimensional

import "github.com/conceptgraph/xbrltax/taxonomy"

// ClassifyAndRecord records the dimensional relation for one definitionArc
// if its arcrole is one of the four recognized dimensional arcroles, and
// reports whether it did. An unrecognized arcrole is not an error here:
// the caller has already emitted the edge to the generic definition
// network regardless of this function's result.
func ClassifyAndRecord(store *taxonomy.Store, arcrole, from, to, roleURI, sourceFile string) bool {
	rel, ok := taxonomy.DimensionalRelationFor(arcrole)
	if !ok {
		return false
	}
	store.AddDimensionalRelation(rel, from, to, roleURI, sourceFile)
	return true
}
