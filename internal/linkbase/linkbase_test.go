package linkbase_test

import (
	"strings"
	"testing"

	"github.com/conceptgraph/xbrltax/internal/linkbase"
	"github.com/conceptgraph/xbrltax/internal/pathresolve"
	"github.com/conceptgraph/xbrltax/internal/xmltree"
	"github.com/conceptgraph/xbrltax/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labelFixture = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
               xmlns:xlink="http://www.w3.org/1999/xlink"
               xmlns:xml="http://www.w3.org/XML/1998/namespace">
  <link:labelLink xlink:role="http://example.com/role/link">
    <link:loc xlink:href="schemaA.xsd#X" xlink:label="lx"/>
    <link:label xlink:label="ll" xml:lang="en" xlink:role="http://www.xbrl.org/2003/role/label">Revenue</link:label>
    <link:label xlink:label="ll" xml:lang="en" xlink:role="http://www.xbrl.org/2003/role/label">Revenue (restated)</link:label>
    <link:labelArc xlink:from="lx" xlink:to="ll"/>
  </link:labelLink>
</link:linkbase>`

const presentationFixture = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:role="http://example.com/role/R">
    <link:loc xlink:href="schemaA.xsd#Parent" xlink:label="lp"/>
    <link:loc xlink:href="schemaA.xsd#C1" xlink:label="lc1"/>
    <link:loc xlink:href="schemaA.xsd#C2" xlink:label="lc2"/>
    <link:loc xlink:href="schemaA.xsd#C3" xlink:label="lc3"/>
    <link:presentationArc xlink:from="lp" xlink:to="lc3" order="3"/>
    <link:presentationArc xlink:from="lp" xlink:to="lc1" order="1"/>
    <link:presentationArc xlink:from="lp" xlink:to="lc2" order="2"/>
  </link:presentationLink>
</link:linkbase>`

const calculationFixture = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:calculationLink xlink:role="http://example.com/role/R">
    <link:loc xlink:href="schemaA.xsd#Total" xlink:label="lt"/>
    <link:loc xlink:href="schemaA.xsd#Discount" xlink:label="ld"/>
    <link:calculationArc xlink:from="lt" xlink:to="ld" order="1" weight="-1"/>
  </link:calculationLink>
</link:linkbase>`

const dimensionalFixture = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:definitionLink xlink:role="http://example.com/role/R">
    <link:loc xlink:href="schemaA.xsd#H" xlink:label="lh"/>
    <link:loc xlink:href="schemaA.xsd#D" xlink:label="ldm"/>
    <link:loc xlink:href="schemaA.xsd#Dom" xlink:label="ldo"/>
    <link:loc xlink:href="schemaA.xsd#M1" xlink:label="lm1"/>
    <link:loc xlink:href="schemaA.xsd#M2" xlink:label="lm2"/>
    <link:loc xlink:href="schemaA.xsd#Root" xlink:label="lroot"/>
    <link:definitionArc xlink:from="lroot" xlink:to="lh" xlink:arcrole="http://xbrl.org/int/dim/arcrole/all"/>
    <link:definitionArc xlink:from="lh" xlink:to="ldm" xlink:arcrole="http://xbrl.org/int/dim/arcrole/hypercube-dimension"/>
    <link:definitionArc xlink:from="ldm" xlink:to="ldo" xlink:arcrole="http://xbrl.org/int/dim/arcrole/dimension-domain"/>
    <link:definitionArc xlink:from="ldo" xlink:to="lm1" xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"/>
    <link:definitionArc xlink:from="lm1" xlink:to="lm2" xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"/>
  </link:definitionLink>
</link:linkbase>`

func newTestResolver(t *testing.T, store *taxonomy.Store) *linkbase.ConceptResolver {
	t.Helper()
	for _, name := range []string{"X", "Parent", "C1", "C2", "C3", "Total", "Discount", "H", "D", "Dom", "M1", "M2", "Root"} {
		store.UpsertConcept("urn:A", name, "/base/schemaA.xsd")
	}
	paths := pathresolve.New("/base", nil)
	r := linkbase.NewConceptResolver(paths)
	r.Register("/base/schemaA.xsd", "urn:A")
	return r
}

func parseLinkbase(t *testing.T, doc string) *xmltree.Element {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestLabelOverwriteLastWriteWins(t *testing.T) {
	store := taxonomy.NewStore("entry.xsd", "/base")
	resolver := newTestResolver(t, store)
	root := parseLinkbase(t, labelFixture)

	linkbase.Extract(root, "/base/label.xml", "/base", store, resolver, nil)

	c, ok := store.Concept("urn:A#X")
	require.True(t, ok)
	text, ok := c.Label("en", taxonomy.StandardLabelRole)
	require.True(t, ok)
	assert.Equal(t, "Revenue (restated)", text)
}

func TestPresentationOrdering(t *testing.T) {
	store := taxonomy.NewStore("entry.xsd", "/base")
	resolver := newTestResolver(t, store)
	root := parseLinkbase(t, presentationFixture)

	linkbase.Extract(root, "/base/pres.xml", "/base", store, resolver, nil)

	c, ok := store.Concept("urn:A#Parent")
	require.True(t, ok)
	edges := c.Edges(taxonomy.NetworkPresentation, "http://example.com/role/R")
	require.Len(t, edges, 3)
	assert.Equal(t, "urn:A#C1", edges[0].To)
	assert.Equal(t, "urn:A#C2", edges[1].To)
	assert.Equal(t, "urn:A#C3", edges[2].To)
}

func TestCalculationWeight(t *testing.T) {
	store := taxonomy.NewStore("entry.xsd", "/base")
	resolver := newTestResolver(t, store)
	root := parseLinkbase(t, calculationFixture)

	linkbase.Extract(root, "/base/calc.xml", "/base", store, resolver, nil)

	c, ok := store.Concept("urn:A#Total")
	require.True(t, ok)
	edges := c.Edges(taxonomy.NetworkCalculation, "http://example.com/role/R")
	require.Len(t, edges, 1)
	assert.Equal(t, "urn:A#Discount", edges[0].To)
	assert.Equal(t, 1.0, edges[0].Order)
	require.True(t, edges[0].HasWeight)
	assert.Equal(t, -1.0, edges[0].Weight)
}

func TestDimensionalChain(t *testing.T) {
	store := taxonomy.NewStore("entry.xsd", "/base")
	resolver := newTestResolver(t, store)
	root := parseLinkbase(t, dimensionalFixture)

	linkbase.Extract(root, "/base/dim.xml", "/base", store, resolver, nil)

	h, ok := store.DimensionalNode("urn:A#H")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"urn:A#D"}, h.Related(taxonomy.RelationDimension))

	d, ok := store.DimensionalNode("urn:A#D")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"urn:A#Dom"}, d.Related(taxonomy.RelationDomain))

	dom, ok := store.DimensionalNode("urn:A#Dom")
	require.True(t, ok)
	assert.Contains(t, dom.Related(taxonomy.RelationMember), "urn:A#M1")

	m1, ok := store.DimensionalNode("urn:A#M1")
	require.True(t, ok)
	assert.Contains(t, m1.Related(taxonomy.RelationMember), "urn:A#M2")
}

func TestUnresolvedLocatorDropsArc(t *testing.T) {
	store := taxonomy.NewStore("entry.xsd", "/base")
	resolver := linkbase.NewConceptResolver(pathresolve.New("/base", nil))
	root := parseLinkbase(t, presentationFixture)

	// no concepts registered, so every loc fails to resolve: the link
	// produces zero edges but must not panic.
	linkbase.Extract(root, "/base/pres.xml", "/base", store, resolver, nil)
	assert.Equal(t, 0, store.ConceptCount())
}
