// Package schemaextract harvests concepts, role/arcrole type catalogs and
// inline type info from a parsed XML Schema document, and reports the
// import/include/linkbaseRef references the driver must enqueue next.
// Each document is walked exactly once.
package schemaextract

import (
	"strings"

	"github.com/conceptgraph/xbrltax/internal/xmltree"
	"github.com/conceptgraph/xbrltax/taxonomy"
)

// Namespace URIs relevant to schema documents.
const (
	NSSchema   = "http://www.w3.org/2001/XMLSchema"
	NSInstance = "http://www.xbrl.org/2003/instance"
	NSLinkbase = "http://www.xbrl.org/2003/linkbase"
	NSXLink    = "http://www.w3.org/1999/xlink"
)

// DependencyKind distinguishes the three reference shapes the Schema
// Extractor discovers and routes onward.
type DependencyKind string

const (
	DependencyImport      DependencyKind = "import"
	DependencyInclude     DependencyKind = "include"
	DependencyLinkbaseRef DependencyKind = "linkbaseRef"
)

// Dependency is one reference the Driver must resolve and enqueue.
type Dependency struct {
	Kind DependencyKind
	Href string
}

// Extract harvests one parsed schema document and returns the
// dependencies the caller must enqueue. sourceFile is the canonical path
// of the document being processed, recorded on every concept it creates.
func Extract(root *xmltree.Element, sourceFile string, store *taxonomy.Store) []Dependency {
	targetNamespace := root.AttrDefault("", "targetNamespace", "")

	extractConcepts(root, targetNamespace, sourceFile, store)
	extractRoleTypes(root, targetNamespace, store)
	extractArcroleTypes(root, targetNamespace, store)

	var deps []Dependency
	for _, el := range root.FindAll(NSSchema, "import") {
		if loc, ok := el.Attr("", "schemaLocation"); ok && loc != "" {
			deps = append(deps, Dependency{Kind: DependencyImport, Href: loc})
		}
	}
	for _, el := range root.FindAll(NSSchema, "include") {
		if loc, ok := el.Attr("", "schemaLocation"); ok && loc != "" {
			deps = append(deps, Dependency{Kind: DependencyInclude, Href: loc})
		}
	}
	for _, el := range root.FindAll(NSLinkbase, "linkbaseRef") {
		if href, ok := el.Attr(NSXLink, "href"); ok && href != "" {
			deps = append(deps, Dependency{Kind: DependencyLinkbaseRef, Href: href})
		}
	}
	return deps
}

func extractConcepts(root *xmltree.Element, targetNamespace, sourceFile string, store *taxonomy.Store) {
	for _, el := range root.FindAll(NSSchema, "element") {
		name, ok := el.Attr("", "name")
		if !ok || name == "" {
			continue // a ref-only element declaration, not a concept
		}
		c, created := store.UpsertConcept(targetNamespace, name, sourceFile)
		if !created {
			continue // first write wins on overlapping includes
		}

		c.Abstract = el.AttrDefault("", "abstract", "false") == "true"
		c.Nillable = el.AttrDefault("", "nillable", "false") == "true"
		c.SubstitutionGroup, _ = el.Attr("", "substitutionGroup")
		c.Type, _ = el.Attr("", "type")

		if v, ok := el.AttrByLocalName("periodType"); ok {
			c.PeriodType = v
		}
		if v, ok := el.AttrByLocalName("balance"); ok {
			c.Balance = v
		}

		c.TypeInfo = extractTypeInfo(el)
	}
}

func extractTypeInfo(el *xmltree.Element) *taxonomy.TypeInfo {
	if ct, ok := el.Child(NSSchema, "complexType"); ok {
		info := &taxonomy.TypeInfo{Kind: taxonomy.TypeKindComplex}
		for _, a := range ct.FindAll(NSSchema, "attribute") {
			name, _ := a.Attr("", "name")
			info.Attributes = append(info.Attributes, taxonomy.AttributeDecl{
				Name: name,
				Type: a.AttrDefault("", "type", ""),
				Use:  a.AttrDefault("", "use", "optional"),
			})
		}
		for _, e := range ct.FindAll(NSSchema, "element") {
			name, ok := e.Attr("", "name")
			if !ok {
				continue
			}
			info.Elements = append(info.Elements, taxonomy.ElementDecl{
				Name:      name,
				Type:      e.AttrDefault("", "type", ""),
				MinOccurs: e.AttrDefault("", "minOccurs", "1"),
				MaxOccurs: e.AttrDefault("", "maxOccurs", "1"),
			})
		}
		if r, ok := ct.Child(NSSchema, "restriction"); ok {
			info.Restriction = extractRestriction(r)
			info.Enumerations = extractEnumerations(r)
		}
		return info
	}

	if st, ok := el.Child(NSSchema, "simpleType"); ok {
		info := &taxonomy.TypeInfo{Kind: taxonomy.TypeKindSimple}
		if r, ok := st.Child(NSSchema, "restriction"); ok {
			info.Restriction = extractRestriction(r)
			info.Enumerations = extractEnumerations(r)
		}
		if u, ok := st.Child(NSSchema, "union"); ok {
			if members, ok := u.Attr("", "memberTypes"); ok {
				info.Union = strings.Fields(members)
			}
		}
		return info
	}

	return nil
}

func extractRestriction(r *xmltree.Element) *taxonomy.Restriction {
	out := &taxonomy.Restriction{
		Base:   r.AttrDefault("", "base", ""),
		Facets: make(map[string]string),
	}
	for _, c := range r.Children {
		if c.Name.Space != NSSchema || c.Name.Local == "enumeration" {
			continue
		}
		if v, ok := c.Attr("", "value"); ok {
			out.Facets[c.Name.Local] = v
		}
	}
	return out
}

func extractEnumerations(r *xmltree.Element) []taxonomy.EnumerationValue {
	var out []taxonomy.EnumerationValue
	for _, c := range r.ChildrenOf(NSSchema, "enumeration") {
		value, _ := c.Attr("", "value")
		doc := ""
		if d := c.FindFirst(NSSchema, "documentation"); d != nil {
			doc = strings.TrimSpace(d.TextContent())
		}
		out = append(out, taxonomy.EnumerationValue{Value: value, Documentation: doc})
	}
	return out
}

func extractRoleTypes(root *xmltree.Element, targetNamespace string, store *taxonomy.Store) {
	for _, el := range root.FindAll(NSLinkbase, "roleType") {
		roleURI, _ := el.Attr("", "roleURI")
		if roleURI == "" {
			continue
		}
		rt := &taxonomy.RoleType{
			ID:        el.AttrDefault("", "id", ""),
			RoleURI:   roleURI,
			Namespace: targetNamespace,
		}
		if d, ok := el.Child(NSLinkbase, "definition"); ok {
			rt.Definition = strings.TrimSpace(d.TextContent())
		}
		for _, u := range el.ChildrenOf(NSLinkbase, "usedOn") {
			rt.UsedOn = append(rt.UsedOn, strings.TrimSpace(u.TextContent()))
		}
		store.UpsertRoleType(rt)
	}
}

func extractArcroleTypes(root *xmltree.Element, targetNamespace string, store *taxonomy.Store) {
	for _, el := range root.FindAll(NSLinkbase, "arcroleType") {
		arcroleURI, _ := el.Attr("", "arcroleURI")
		if arcroleURI == "" {
			continue
		}
		at := &taxonomy.ArcroleType{
			ID:            el.AttrDefault("", "id", ""),
			ArcroleURI:    arcroleURI,
			Namespace:     targetNamespace,
			CyclesAllowed: el.AttrDefault("", "cyclesAllowed", "none"),
		}
		if d, ok := el.Child(NSLinkbase, "definition"); ok {
			at.Definition = strings.TrimSpace(d.TextContent())
		}
		for _, u := range el.ChildrenOf(NSLinkbase, "usedOn") {
			at.UsedOn = append(at.UsedOn, strings.TrimSpace(u.TextContent()))
		}
		store.UpsertArcroleType(at)
	}
}
