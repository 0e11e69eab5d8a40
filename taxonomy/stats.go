package taxonomy

import "sort"

// Stats is a cheap, read-only summary over a Store, derived on demand.
// The Store itself remains the source of truth.
type Stats struct {
	TotalConcepts        int
	AbstractConcepts     int
	NonAbstractConcepts  int
	PresentationNetworks int
	CalculationNetworks  int
	DefinitionNetworks   int
	RoleTypes            int
	ArcroleTypes         int
	Dimensions           int
	Hypercubes           int
	ExplicitDimensions   int
}

// Stats computes a Stats summary over the store's current contents.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stat Stats
	stat.TotalConcepts = s.concepts.Len()
	for pair := s.concepts.First(); pair != nil; pair = pair.Next() {
		if pair.Value().Abstract {
			stat.AbstractConcepts++
		} else {
			stat.NonAbstractConcepts++
		}
	}

	stat.PresentationNetworks = s.networks[NetworkPresentation].Len()
	stat.CalculationNetworks = s.networks[NetworkCalculation].Len()
	stat.DefinitionNetworks = s.networks[NetworkDefinition].Len()
	stat.RoleTypes = s.roleTypes.Len()
	stat.ArcroleTypes = s.arcroleTypes.Len()

	stat.Dimensions = s.dimensional.Len()
	for pair := s.dimensional.First(); pair != nil; pair = pair.Next() {
		// Relations are stored on the arc's source: a hypercube carries
		// hypercube-dimension relations, an explicit dimension carries
		// dimension-domain relations.
		node := pair.Value()
		if len(node.related[RelationDimension]) > 0 {
			stat.Hypercubes++
		}
		if len(node.related[RelationDomain]) > 0 {
			stat.ExplicitDimensions++
		}
	}
	return stat
}

// NamespaceStats returns the number of concepts declared per namespace,
// sorted by descending count and then by namespace for determinism.
func (s *Store) NamespaceStats() []NamespaceCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for pair := s.concepts.First(); pair != nil; pair = pair.Next() {
		counts[pair.Value().Namespace]++
	}
	out := make([]NamespaceCount, 0, len(counts))
	for ns, n := range counts {
		out = append(out, NamespaceCount{Namespace: ns, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Namespace < out[j].Namespace
	})
	return out
}

// NamespaceCount is one entry of NamespaceStats.
type NamespaceCount struct {
	Namespace string
	Count     int
}

// Enumerations flattens every inline enumeration facet found across all
// concepts' TypeInfo into a single index keyed by the restriction's base
// type. The nested TypeInfo.Enumerations on each Concept remains
// authoritative; this is a derived convenience view.
func (s *Store) Enumerations() map[string][]EnumerationValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]EnumerationValue)
	for pair := s.concepts.First(); pair != nil; pair = pair.Next() {
		ti := pair.Value().TypeInfo
		if ti == nil || len(ti.Enumerations) == 0 || ti.Restriction == nil {
			continue
		}
		base := ti.Restriction.Base
		out[base] = append(out[base], ti.Enumerations...)
	}
	return out
}
