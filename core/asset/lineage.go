package asset

// LineageEdge is a directed dependency between two catalog objects, e.g. a
// view referencing a table. Ids that do not resolve to a known asset are
// preserved as-is; lineage routinely references external objects.
type LineageEdge struct {
	ReferencedDatabase    string `json:"REFERENCED_DATABASE,omitempty"`
	ReferencedSchema      string `json:"REFERENCED_SCHEMA,omitempty"`
	ReferencedObjectName  string `json:"REFERENCED_OBJECT_NAME,omitempty"`
	ReferencedObjectID    string `json:"REFERENCED_OBJECT_ID"`
	ReferencedDomain      string `json:"REFERENCED_OBJECT_DOMAIN,omitempty"`
	ReferencingDatabase   string `json:"REFERENCING_DATABASE,omitempty"`
	ReferencingSchema     string `json:"REFERENCING_SCHEMA,omitempty"`
	ReferencingObjectName string `json:"REFERENCING_OBJECT_NAME,omitempty"`
	ReferencingObjectID   string `json:"REFERENCING_OBJECT_ID"`
	ReferencingDomain     string `json:"REFERENCING_OBJECT_DOMAIN,omitempty"`
	DependencyType        string `json:"DEPENDENCY_TYPE,omitempty"`
}

// Touches reports whether the edge references or is referenced by the
// given object id.
func (e LineageEdge) Touches(id string) bool {
	return e.ReferencedObjectID == id || e.ReferencingObjectID == id
}

// DedupeEdges drops repeated edges while preserving the order in which
// they were first seen. An edge matching both directions of a lineage
// lookup must still appear only once.
func DedupeEdges(edges []LineageEdge) []LineageEdge {
	seen := make(map[LineageEdge]struct{}, len(edges))
	out := make([]LineageEdge, 0, len(edges))
	for _, e := range edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
