package taxonomy

import (
	"sort"
	"sync"

	"github.com/conceptgraph/xbrltax/orderedmap"
)

// Store is the sole mutable accumulator for a taxonomy crawl. The driver
// owns it exclusively; extractors only ever hold concept ids, never the
// store itself, beyond the single upsert call that hands them data.
//
// Concepts, roles and arcroles are kept in insertion order via orderedmap
// so a frozen Store serializes deterministically in document order.
type Store struct {
	mu sync.Mutex

	concepts     orderedmap.Map[string, *Concept]
	roleTypes    orderedmap.Map[string, *RoleType]
	arcroleTypes orderedmap.Map[string, *ArcroleType]
	dimensional  orderedmap.Map[string, *DimensionalNode]

	networks map[NetworkKind]orderedmap.Map[string, *Network]

	metadata Metadata
	seq      int // insertion-order tiebreak counter, see Concept.Edges ordering
}

// Network is the per-(kind, role) relationship network index: the set of
// participating concept ids and the source document it was built from.
type Network struct {
	Kind         NetworkKind
	RoleURI      string
	SourceFile   string
	participants map[string]bool
}

// Participants returns the concept ids participating in this network.
func (n *Network) Participants() []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.participants))
	for id := range n.participants {
		out = append(out, id)
	}
	return out
}

// NewStore creates an empty accumulator.
func NewStore(entryPoint, baseDir string) *Store {
	networks := make(map[NetworkKind]orderedmap.Map[string, *Network])
	for _, k := range []NetworkKind{NetworkPresentation, NetworkCalculation, NetworkDefinition} {
		networks[k] = orderedmap.New[string, *Network]()
	}
	return &Store{
		concepts:     orderedmap.New[string, *Concept](),
		roleTypes:    orderedmap.New[string, *RoleType](),
		arcroleTypes: orderedmap.New[string, *ArcroleType](),
		dimensional:  orderedmap.New[string, *DimensionalNode](),
		networks:     networks,
		metadata:     Metadata{EntryPoint: entryPoint, BaseDir: baseDir},
	}
}

// SetTimestamp stamps the run's completion time (ISO 8601). The driver
// calls this once, after the traversal terminates.
func (s *Store) SetTimestamp(iso8601 string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata.Timestamp = iso8601
}

// Metadata returns the {entryPoint, baseDir, timestamp} block.
func (s *Store) Metadata() Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata
}

// UpsertConcept inserts a concept if its id is unseen, or returns the
// existing one untouched (first write wins on overlapping includes). The
// bool return reports whether this call created the concept.
func (s *Store) UpsertConcept(namespace, name, sourceFile string) (*Concept, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ConceptID(namespace, name)
	if existing, ok := s.concepts.Get(id); ok {
		return existing, false
	}
	c := newConcept(id, name, namespace, sourceFile)
	s.concepts.Set(id, c)
	return c, true
}

// Concept looks up a concept by id.
func (s *Store) Concept(id string) (*Concept, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.concepts.Get(id)
}

// ConceptIDs returns every known concept id in first-insertion order.
func (s *Store) ConceptIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderedmap.Keys(s.concepts)
}

// ConceptCount reports the number of concepts in the store.
func (s *Store) ConceptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.concepts.Len()
}

// UpsertRoleType records a role type, indexed by its roleURI. Repeated
// definitions for the same roleURI overwrite, matching the schema
// extractor's single-pass-per-document scan.
func (s *Store) UpsertRoleType(rt *RoleType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleTypes.Set(rt.RoleURI, rt)
}

// RoleType looks up a role type by URI.
func (s *Store) RoleType(roleURI string) (*RoleType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roleTypes.Get(roleURI)
}

// RoleURIs returns every known role URI in first-insertion order.
func (s *Store) RoleURIs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderedmap.Keys(s.roleTypes)
}

// UpsertArcroleType records an arcrole type, indexed by its arcroleURI.
func (s *Store) UpsertArcroleType(at *ArcroleType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arcroleTypes.Set(at.ArcroleURI, at)
}

// ArcroleType looks up an arcrole type by URI.
func (s *Store) ArcroleType(arcroleURI string) (*ArcroleType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arcroleTypes.Get(arcroleURI)
}

// SetLabel records (lang, roleURI) -> text on a concept, overwriting any
// prior value for that key; the label latest in document order wins.
func (s *Store) SetLabel(conceptID, lang, roleURI, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.concepts.Get(conceptID)
	if !ok {
		return false
	}
	c.setLabel(lang, roleURI, text)
	return true
}

// AppendReference appends a reference-part record for (conceptID, roleURI).
func (s *Store) AppendReference(conceptID, roleURI string, parts map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.concepts.Get(conceptID)
	if !ok {
		return false
	}
	c.appendReference(roleURI, parts)
	return true
}

// AddEdge appends one outgoing edge from parentID under (kind, roleURI),
// re-sorting the bucket by Order with arrival-order tiebreaking. It also
// registers both endpoints as participants of the named network.
func (s *Store) AddEdge(kind NetworkKind, roleURI, parentID, sourceFile string, edge Edge) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.concepts.Get(parentID)
	if !ok {
		return false
	}
	edge.seq = s.seq
	s.seq++

	m := parent.networkFor(kind)
	bucket := m.GetOrZero(roleURI)
	bucket = append(bucket, edge)
	sortEdges(bucket)
	m.Set(roleURI, bucket)

	s.touchNetwork(kind, roleURI, sourceFile, parentID, edge.To)
	return true
}

func sortEdges(edges []Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Order != edges[j].Order {
			return edges[i].Order < edges[j].Order
		}
		return edges[i].seq < edges[j].seq
	})
}

// RegisterNetworkParticipants adds every id in ids to the (kind, roleURI)
// network's participant set, independent of whether an edge was ever
// emitted between them. A network's participants are the union of all
// locators in its extended links — a locator declared via link:loc but
// never used as an arc endpoint still counts.
func (s *Store) RegisterNetworkParticipants(kind NetworkKind, roleURI, sourceFile string, ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchNetwork(kind, roleURI, sourceFile, ids...)
}

func (s *Store) touchNetwork(kind NetworkKind, roleURI, sourceFile string, ids ...string) {
	byRole := s.networks[kind]
	net, ok := byRole.Get(roleURI)
	if !ok {
		net = &Network{Kind: kind, RoleURI: roleURI, SourceFile: sourceFile, participants: make(map[string]bool)}
		byRole.Set(roleURI, net)
	}
	for _, id := range ids {
		net.participants[id] = true
	}
}

// Network returns the network index for (kind, roleURI), if any edges or
// locator participants have been recorded under it.
func (s *Store) Network(kind NetworkKind, roleURI string) (*Network, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byRole, ok := s.networks[kind]
	if !ok {
		return nil, false
	}
	return byRole.Get(roleURI)
}

// NetworkRoles returns the role URIs with at least one network of the
// given kind, in first-seen order.
func (s *Store) NetworkRoles(kind NetworkKind) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	byRole, ok := s.networks[kind]
	if !ok {
		return nil
	}
	return orderedmap.Keys(byRole)
}

// AddDimensionalRelation records that `from` relates to `to` via `kind`
// under `roleURI` in the dimensional subgraph.
func (s *Store) AddDimensionalRelation(kind DimensionalRelation, from, to, roleURI, sourceFile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.dimensional.Get(from)
	if !ok {
		node = newDimensionalNode(from)
		s.dimensional.Set(from, node)
	}
	node.addRelated(kind, to, sourceFile)
	node.addRole(roleURI)
}

// DimensionalNode looks up a node in the dimensional subgraph by concept id.
func (s *Store) DimensionalNode(id string) (*DimensionalNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimensional.Get(id)
}

// DimensionalNodeIDs returns every concept id with dimensional relations.
func (s *Store) DimensionalNodeIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderedmap.Keys(s.dimensional)
}
