package xbrltax_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conceptgraph/xbrltax"
	"github.com/conceptgraph/xbrltax/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entry.xsd"), []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:Test">
  <xs:element name="Thing" abstract="false"/>
</xs:schema>`), 0o644))

	store, err := xbrltax.Load(driver.Config{BaseDir: dir, EntryPoint: "entry.xsd"})
	require.NoError(t, err)

	c, ok := store.Concept("urn:Test#Thing")
	require.True(t, ok)
	assert.False(t, c.Abstract)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entry.xsd"), []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:Test"/>`), 0o644))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("baseDir: "+dir+"\nentryPoint: entry.xsd\n"), 0o644))

	store, err := xbrltax.LoadFromConfigFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 0, store.ConceptCount())
}
