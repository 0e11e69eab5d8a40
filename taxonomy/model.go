// Package taxonomy holds the denormalized, graph-shaped data model produced
// by crawling an XBRL taxonomy: concepts, role/arcrole catalogs, per-network
// relationship edges, and the dimensional subgraph. Nothing in this package
// touches a filesystem or the network; it is the accumulator the driver
// fills in and the frozen view handed to an output sink.
package taxonomy

import "github.com/conceptgraph/xbrltax/orderedmap"

// ConceptID returns the canonical "{namespace}#{localName}" form used to
// address every concept, the only identifier exposed across the model.
func ConceptID(namespace, localName string) string {
	return namespace + "#" + localName
}

// NetworkKind identifies one of the three linkbase relationship networks a
// concept can participate in.
type NetworkKind string

const (
	NetworkPresentation NetworkKind = "presentation"
	NetworkCalculation  NetworkKind = "calculation"
	NetworkDefinition   NetworkKind = "definition"
)

// DimensionalRelation is one of the four tiers of the XBRL Dimensions
// hypercube -> dimension -> domain -> member hierarchy.
type DimensionalRelation string

const (
	RelationHypercube DimensionalRelation = "hypercube"
	RelationDimension DimensionalRelation = "dimension"
	RelationDomain    DimensionalRelation = "domain"
	RelationMember    DimensionalRelation = "member"
)

const (
	// StandardLabelRole is the default label role used when an arc or
	// resource does not carry an explicit xlink:role.
	StandardLabelRole = "http://www.xbrl.org/2003/role/label"
	// StandardReferenceRole is the default reference role.
	StandardReferenceRole = "http://www.xbrl.org/2003/role/reference"
	// DefaultLang is used for labels missing an xml:lang attribute.
	DefaultLang = "en"
)

// Arcrole URIs recognized by the dimensional analyzer.
const (
	ArcroleAll                = "http://xbrl.org/int/dim/arcrole/all"
	ArcroleHypercubeDimension = "http://xbrl.org/int/dim/arcrole/hypercube-dimension"
	ArcroleDimensionDomain    = "http://xbrl.org/int/dim/arcrole/dimension-domain"
	ArcroleDomainMember       = "http://xbrl.org/int/dim/arcrole/domain-member"
)

// DimensionalRelationFor maps a dimensional arcrole URI to the relation
// kind it records, and reports whether the arcrole was one of the four
// recognized ones.
func DimensionalRelationFor(arcrole string) (DimensionalRelation, bool) {
	switch arcrole {
	case ArcroleAll:
		return RelationHypercube, true
	case ArcroleHypercubeDimension:
		return RelationDimension, true
	case ArcroleDimensionDomain:
		return RelationDomain, true
	case ArcroleDomainMember:
		return RelationMember, true
	}
	return "", false
}

// QName is a namespace-qualified name, used for types, substitution
// groups and other schema-level references that are not themselves
// concept ids (the namespace here need not belong to a known schema,
// unlike a concept's own namespace).
type QName struct {
	Prefix    string
	Local     string
	Namespace string
}

func (q QName) String() string {
	if q.Local == "" {
		return ""
	}
	if q.Prefix != "" {
		return q.Prefix + ":" + q.Local
	}
	return q.Local
}

// IsZero reports whether the QName carries no information at all.
func (q QName) IsZero() bool {
	return q.Local == "" && q.Prefix == ""
}

// AttributeDecl is one xs:attribute declaration found inside an inline
// complexType.
type AttributeDecl struct {
	Name string
	Type string
	Use  string // defaults to "optional"
}

// ElementDecl is one xs:element declaration found inside an inline
// complexType.
type ElementDecl struct {
	Name      string
	Type      string
	MinOccurs string // defaults to "1"
	MaxOccurs string // defaults to "1"
}

// EnumerationValue is one xs:enumeration facet, optionally documented via
// annotation/documentation.
type EnumerationValue struct {
	Value         string
	Documentation string
}

// Restriction captures an xs:restriction's base type and arbitrary facets
// keyed by the facet's local name (e.g. "minLength", "pattern").
type Restriction struct {
	Base   string
	Facets map[string]string
}

// TypeKind distinguishes the two inline type shapes the schema extractor
// recognizes.
type TypeKind string

const (
	TypeKindComplex TypeKind = "complexType"
	TypeKindSimple  TypeKind = "simpleType"
)

// TypeInfo is the inline type information harvested when a concept's
// schema element declares a child complexType or simpleType.
type TypeInfo struct {
	Kind         TypeKind
	Attributes   []AttributeDecl
	Elements     []ElementDecl
	Restriction  *Restriction
	Enumerations []EnumerationValue
	Union        []string // qualified member type names
}

// ExampleValue synthesizes a value conforming to the type's restriction
// pattern facet, when one is present. Returns ("", false) when there is
// nothing to generate from.
func (t *TypeInfo) ExampleValue() (string, bool) {
	if t == nil || t.Restriction == nil {
		return "", false
	}
	pattern, ok := t.Restriction.Facets["pattern"]
	if !ok || pattern == "" {
		return "", false
	}
	return generateFromPattern(pattern)
}

// Edge is one outgoing relationship from a parent concept to a child
// concept within one (network, role) bucket.
type Edge struct {
	To             string // child concept id
	Order          float64
	PreferredLabel string

	// calculation-only
	Weight    float64
	HasWeight bool

	// definition-only
	ContextElement string
	TypedDomainRef string
	TargetRole     string

	// seq records arrival order, used to break ties on Order deterministically.
	seq int
}

// Concept is a reporting element declared by an xs:element with a name
// attribute, keyed by its concept id.
type Concept struct {
	ID         string
	Name       string
	Namespace  string
	SourceFile string

	Abstract          bool
	Nillable          bool
	SubstitutionGroup string
	Type              string

	PeriodType string // "instant", "duration", or ""; populated from schema attributes only, never from labels
	Balance    string // "debit", "credit", or ""

	TypeInfo *TypeInfo

	// labels[lang][roleURI] = text
	labels map[string]orderedmap.Map[string, string]
	// references[roleURI] = ordered list of part maps
	references orderedmap.Map[string, []map[string]string]

	presentation orderedmap.Map[string, []Edge]
	calculation  orderedmap.Map[string, []Edge]
	definition   orderedmap.Map[string, []Edge]
}

func newConcept(id, name, namespace, sourceFile string) *Concept {
	return &Concept{
		ID:           id,
		Name:         name,
		Namespace:    namespace,
		SourceFile:   sourceFile,
		labels:       make(map[string]orderedmap.Map[string, string]),
		references:   orderedmap.New[string, []map[string]string](),
		presentation: orderedmap.New[string, []Edge](),
		calculation:  orderedmap.New[string, []Edge](),
		definition:   orderedmap.New[string, []Edge](),
	}
}

// Label returns the label text for (lang, roleURI), and whether it exists.
func (c *Concept) Label(lang, roleURI string) (string, bool) {
	if c == nil {
		return "", false
	}
	byRole, ok := c.labels[lang]
	if !ok {
		return "", false
	}
	return byRole.Get(roleURI)
}

// Languages returns the languages this concept has labels in.
func (c *Concept) Languages() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.labels))
	for lang := range c.labels {
		out = append(out, lang)
	}
	return out
}

// LabelRoles returns the label roles populated for one language, in the
// order they were first set.
func (c *Concept) LabelRoles(lang string) []string {
	if c == nil {
		return nil
	}
	m, ok := c.labels[lang]
	if !ok {
		return nil
	}
	return orderedmap.Keys(m)
}

func (c *Concept) setLabel(lang, roleURI, text string) {
	m, ok := c.labels[lang]
	if !ok {
		m = orderedmap.New[string, string]()
		c.labels[lang] = m
	}
	// last write wins per document order.
	m.Set(roleURI, text)
}

// References returns the ordered reference-part records for one role URI.
func (c *Concept) References(roleURI string) []map[string]string {
	if c == nil {
		return nil
	}
	return c.references.GetOrZero(roleURI)
}

// ReferenceRoles returns the reference roles populated on this concept.
func (c *Concept) ReferenceRoles() []string {
	if c == nil {
		return nil
	}
	return orderedmap.Keys(c.references)
}

func (c *Concept) appendReference(roleURI string, parts map[string]string) {
	existing := c.references.GetOrZero(roleURI)
	existing = append(existing, parts)
	c.references.Set(roleURI, existing)
}

func (c *Concept) networkFor(kind NetworkKind) orderedmap.Map[string, []Edge] {
	switch kind {
	case NetworkPresentation:
		return c.presentation
	case NetworkCalculation:
		return c.calculation
	case NetworkDefinition:
		return c.definition
	}
	return nil
}

// Edges returns the ordered outgoing edges for (network, role).
func (c *Concept) Edges(kind NetworkKind, roleURI string) []Edge {
	if c == nil {
		return nil
	}
	m := c.networkFor(kind)
	if m == nil {
		return nil
	}
	return m.GetOrZero(roleURI)
}

// Roles returns the role URIs a concept has outgoing edges under, for one
// network kind, in first-seen order.
func (c *Concept) Roles(kind NetworkKind) []string {
	if c == nil {
		return nil
	}
	m := c.networkFor(kind)
	if m == nil {
		return nil
	}
	return orderedmap.Keys(m)
}

// RoleType is a defined link:roleType element.
type RoleType struct {
	ID         string
	RoleURI    string
	Namespace  string
	Definition string
	UsedOn     []string
}

// ArcroleType is a defined link:arcroleType element; adds CyclesAllowed
// over RoleType.
type ArcroleType struct {
	ID            string
	ArcroleURI    string
	Namespace     string
	Definition    string
	UsedOn        []string
	CyclesAllowed string // "none" (default), "undirected", "any"
}

// DimensionalNode is one concept's participation in the dimensional
// subgraph.
type DimensionalNode struct {
	ID         string
	SourceFile string
	related    map[DimensionalRelation]map[string]bool
	roles      map[string]bool
}

func newDimensionalNode(id string) *DimensionalNode {
	return &DimensionalNode{
		ID:      id,
		related: make(map[DimensionalRelation]map[string]bool),
		roles:   make(map[string]bool),
	}
}

// Related returns the (deduplicated) target concept ids for one relation
// kind, in no particular order (the underlying storage is a set).
func (d *DimensionalNode) Related(kind DimensionalRelation) []string {
	if d == nil {
		return nil
	}
	set := d.related[kind]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Roles returns the role URIs this node participates in.
func (d *DimensionalNode) Roles() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.roles))
	for r := range d.roles {
		out = append(out, r)
	}
	return out
}

func (d *DimensionalNode) addRelated(kind DimensionalRelation, to, sourceFile string) {
	set, ok := d.related[kind]
	if !ok {
		set = make(map[string]bool)
		d.related[kind] = set
	}
	set[to] = true
	d.SourceFile = sourceFile
}

func (d *DimensionalNode) addRole(roleURI string) {
	d.roles[roleURI] = true
}

// Metadata describes the run that produced a frozen Store.
type Metadata struct {
	EntryPoint string
	BaseDir    string
	Timestamp  string
}
