package linkbase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conceptgraph/xbrltax/internal/linkbase"
	"github.com/conceptgraph/xbrltax/internal/pathresolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConceptResolverSuffixMatch(t *testing.T) {
	paths := pathresolve.New("/base", nil)
	r := linkbase.NewConceptResolver(paths)
	r.Register("/base/taxonomy/schemaA.xsd", "urn:A")

	id, ok := r.Resolve("schemaA.xsd#Root", "/base/linkbases")
	require.True(t, ok)
	assert.Equal(t, "urn:A#Root", id)
}

func TestConceptResolverFallbackParsesDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schemaB.xsd")
	require.NoError(t, os.WriteFile(schemaPath, []byte(
		`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:B"/>`), 0o644))

	paths := pathresolve.New(dir, nil)
	r := linkbase.NewConceptResolver(paths)

	id, ok := r.Resolve("schemaB.xsd#Leaf", dir)
	require.True(t, ok)
	assert.Equal(t, "urn:B#Leaf", id)
}

func TestConceptResolverUnresolved(t *testing.T) {
	paths := pathresolve.New(t.TempDir(), nil)
	r := linkbase.NewConceptResolver(paths)

	_, ok := r.Resolve("missing.xsd#X", "/wherever")
	assert.False(t, ok)
}

func TestConceptResolverMissingFragment(t *testing.T) {
	paths := pathresolve.New("/base", nil)
	r := linkbase.NewConceptResolver(paths)
	r.Register("/base/schemaA.xsd", "urn:A")

	_, ok := r.Resolve("schemaA.xsd", "/base")
	assert.False(t, ok)
}
