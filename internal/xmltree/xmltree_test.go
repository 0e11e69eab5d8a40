package xmltree_test

import (
	"strings"
	"testing"

	"github.com/conceptgraph/xbrltax/internal/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:xbrli="http://www.xbrl.org/2003/instance"
           targetNamespace="http://example.com/ns">
  <xs:element name="Assets" id="ns_Assets" abstract="false" xbrli:periodType="instant" xbrli:balance="debit">
    <xs:annotation>
      <xs:documentation>Total assets.</xs:documentation>
    </xs:annotation>
  </xs:element>
  <xs:element name="Revenues" id="ns_Revenues" xbrli:periodType="duration"/>
</xs:schema>`

func parse(t *testing.T) *xmltree.Element {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	return root
}

func TestParseRoot(t *testing.T) {
	root := parse(t)
	assert.Equal(t, "schema", root.Name.Local)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema", root.Name.Space)
}

func TestAttrUnprefixed(t *testing.T) {
	root := parse(t)
	els := root.ChildrenOf("http://www.w3.org/2001/XMLSchema", "element")
	require.Len(t, els, 2)
	v, ok := els[0].Attr("", "name")
	require.True(t, ok)
	assert.Equal(t, "Assets", v)
}

func TestAttrByLocalNameIgnoresPrefix(t *testing.T) {
	root := parse(t)
	els := root.ChildrenOf("http://www.w3.org/2001/XMLSchema", "element")
	v, ok := els[0].AttrByLocalName("periodType")
	require.True(t, ok)
	assert.Equal(t, "instant", v)

	v, ok = els[0].AttrByLocalName("balance")
	require.True(t, ok)
	assert.Equal(t, "debit", v)

	_, ok = els[1].AttrByLocalName("balance")
	assert.False(t, ok)
}

func TestFindAllDescendant(t *testing.T) {
	root := parse(t)
	docs := root.FindAll("http://www.w3.org/2001/XMLSchema", "documentation")
	require.Len(t, docs, 1)
	assert.Equal(t, "Total assets.", docs[0].TextContent())
}

func TestAttrDefault(t *testing.T) {
	root := parse(t)
	els := root.ChildrenOf("http://www.w3.org/2001/XMLSchema", "element")
	assert.Equal(t, "false", els[0].AttrDefault("", "abstract", "false"))
	assert.Equal(t, "false", els[1].AttrDefault("", "abstract", "false"))
}

func TestChildMissing(t *testing.T) {
	root := parse(t)
	_, ok := root.Child("", "nope")
	assert.False(t, ok)
}
