// Package linkbase walks each extended link of a parsed linkbase
// document, resolves XLink indirection through a per-link scratch map,
// and emits labels, references, and presentation/calculation/definition
// edges to the taxonomy store — plus dimensional relations for the four
// standard dimensional arcroles, which ride the same definitionArc walk.
package linkbase

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/conceptgraph/xbrltax/internal/dimensional"
	"github.com/conceptgraph/xbrltax/internal/schemaextract"
	"github.com/conceptgraph/xbrltax/internal/xmltree"
	"github.com/conceptgraph/xbrltax/taxonomy"
	"golang.org/x/text/unicode/norm"
)

// Namespace URIs specific to linkbase documents, beyond the schema ones
// reused from schemaextract.
const (
	NSXML    = "http://www.w3.org/XML/1998/namespace"
	NSXbrldt = "http://xbrl.org/2005/xbrldt"
	NSRef    = "http://www.xbrl.org/2006/ref"
)

type linkSpec struct {
	linkLocal     string
	arcLocal      string
	resourceLocal string // "" for presentation/calculation/definition (loc-to-loc)
	network       taxonomy.NetworkKind
}

var links = []linkSpec{
	{linkLocal: "labelLink", arcLocal: "labelArc", resourceLocal: "label"},
	{linkLocal: "referenceLink", arcLocal: "referenceArc", resourceLocal: "reference"},
	{linkLocal: "presentationLink", arcLocal: "presentationArc", network: taxonomy.NetworkPresentation},
	{linkLocal: "calculationLink", arcLocal: "calculationArc", network: taxonomy.NetworkCalculation},
	{linkLocal: "definitionLink", arcLocal: "definitionArc", network: taxonomy.NetworkDefinition},
}

// Extract processes every extended link in one parsed linkbase document.
// linkbaseDir is the directory of the linkbase document (used to resolve
// relative loc hrefs); sourceFile is its canonical path, recorded on every
// network and dimensional relation it touches.
func Extract(root *xmltree.Element, sourceFile, linkbaseDir string, store *taxonomy.Store, resolver *ConceptResolver, logger *slog.Logger) {
	for _, spec := range links {
		for _, link := range root.ChildrenOf(schemaextract.NSLinkbase, spec.linkLocal) {
			processExtendedLink(link, spec, sourceFile, linkbaseDir, store, resolver, logger)
		}
	}
}

// processExtendedLink indexes the link's locators, then walks its arcs
// and emits the matching labels, references or edges. Failures skip the
// arc without aborting the document.
func processExtendedLink(link *xmltree.Element, spec linkSpec, sourceFile, linkbaseDir string, store *taxonomy.Store, resolver *ConceptResolver, logger *slog.Logger) {
	roleURI, _ := link.Attr(schemaextract.NSXLink, "role")

	locatorMap := make(map[string]string)
	for _, loc := range link.ChildrenOf(schemaextract.NSLinkbase, "loc") {
		href, _ := loc.Attr(schemaextract.NSXLink, "href")
		label, _ := loc.Attr(schemaextract.NSXLink, "label")
		if href == "" || label == "" {
			continue
		}
		conceptID, ok := resolver.Resolve(href, linkbaseDir)
		if !ok {
			warnf(logger, "ResolutionMiss: locator %q in %s did not resolve to a known concept", href, sourceFile)
			continue
		}
		locatorMap[label] = conceptID
	}

	if spec.network != "" && len(locatorMap) > 0 {
		participants := make([]string, 0, len(locatorMap))
		for _, conceptID := range locatorMap {
			participants = append(participants, conceptID)
		}
		store.RegisterNetworkParticipants(spec.network, roleURI, sourceFile, participants...)
	}

	var resourceMap map[string][]*xmltree.Element
	if spec.resourceLocal != "" {
		resourceMap = make(map[string][]*xmltree.Element)
		for _, res := range link.ChildrenOf(schemaextract.NSLinkbase, spec.resourceLocal) {
			label, _ := res.Attr(schemaextract.NSXLink, "label")
			resourceMap[label] = append(resourceMap[label], res)
		}
	}

	for _, arc := range link.ChildrenOf(schemaextract.NSLinkbase, spec.arcLocal) {
		from, _ := arc.Attr(schemaextract.NSXLink, "from")
		to, _ := arc.Attr(schemaextract.NSXLink, "to")

		parentID, ok := locatorMap[from]
		if !ok {
			warnf(logger, "DanglingXLink: arc from=%q has no locator in %s", from, sourceFile)
			continue
		}

		switch spec.resourceLocal {
		case "label":
			emitLabels(parentID, resourceMap[to], store)
		case "reference":
			emitReferences(parentID, resourceMap[to], store)
		default:
			childID, ok := locatorMap[to]
			if !ok {
				warnf(logger, "DanglingXLink: arc to=%q has no locator in %s", to, sourceFile)
				continue
			}
			arcrole, _ := arc.Attr(schemaextract.NSXLink, "arcrole")
			edge := buildEdge(arc, childID)
			store.AddEdge(spec.network, roleURI, parentID, sourceFile, edge)

			if spec.network == taxonomy.NetworkDefinition {
				// The edge above was already emitted to the generic
				// definition network; for an unrecognized arcrole
				// ClassifyAndRecord returns false and nothing further happens.
				dimensional.ClassifyAndRecord(store, arcrole, parentID, childID, roleURI, sourceFile)
			}
		}
	}
}

func buildEdge(arc *xmltree.Element, to string) taxonomy.Edge {
	edge := taxonomy.Edge{
		To:             to,
		Order:          parseFloatDefault(arc.AttrDefault("", "order", ""), 1.0),
		PreferredLabel: arc.AttrDefault("", "preferredLabel", ""),
	}
	if w, ok := arc.Attr("", "weight"); ok {
		if v, err := strconv.ParseFloat(w, 64); err == nil {
			edge.Weight = v
			edge.HasWeight = true
		}
	}
	edge.ContextElement, _ = arc.Attr("", "contextElement")
	edge.TypedDomainRef, _ = arc.Attr(NSXbrldt, "typedDomainRef")
	edge.TargetRole, _ = arc.Attr(NSXbrldt, "targetRole")
	return edge
}

func parseFloatDefault(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func emitLabels(conceptID string, resources []*xmltree.Element, store *taxonomy.Store) {
	for _, res := range resources {
		lang := res.AttrDefault(NSXML, "lang", taxonomy.DefaultLang)
		role := res.AttrDefault(schemaextract.NSXLink, "role", taxonomy.StandardLabelRole)
		text := normalizeText(res.TextContent())
		store.SetLabel(conceptID, lang, role, text)
	}
}

func emitReferences(conceptID string, resources []*xmltree.Element, store *taxonomy.Store) {
	for _, res := range resources {
		role := res.AttrDefault(schemaextract.NSXLink, "role", taxonomy.StandardReferenceRole)
		parts := make(map[string]string)
		for _, part := range res.Children {
			if part.Name.Space != NSRef {
				continue
			}
			parts[part.Name.Local] = normalizeText(part.TextContent())
		}
		store.AppendReference(conceptID, role, parts)
	}
}

// normalizeText applies Unicode NFC normalization and trims surrounding
// whitespace, so labels and reference parts compare equal regardless of
// the combining-character form used by the source document.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func warnf(logger *slog.Logger, format string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(fmt.Sprintf(format, args...))
}
