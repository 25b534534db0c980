package flatfile

import (
	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/user"
)

// tableIndexes hold the join maps for one TableSet. They are built exactly
// once per load and reused for every asset in a batch; resolving relations
// per asset is an O(1) lookup, never a repeated table scan.
type tableIndexes struct {
	assetByID       map[string]*AssetRow
	columnsByAsset  map[string][]asset.ColumnSchema
	tagNameByID     map[string]string
	tagIDsByAsset   map[string][]string
	termNameByID    map[string]string
	termIDsByAsset  map[string][]string
	lineageByObject map[string][]asset.LineageEdge
	userByID        map[string]user.User
	assetIDsByUser  map[string][]string
}

// indexes returns the join maps, building them on first use.
func (ts *TableSet) indexes() *tableIndexes {
	ts.indexOnce.Do(ts.buildIndexes)
	return &ts.idx
}

func (ts *TableSet) buildIndexes() {
	idx := tableIndexes{
		assetByID:       make(map[string]*AssetRow, len(ts.Assets)),
		columnsByAsset:  make(map[string][]asset.ColumnSchema),
		tagNameByID:     make(map[string]string, len(ts.Tags)),
		tagIDsByAsset:   make(map[string][]string),
		termNameByID:    make(map[string]string, len(ts.Terms)),
		termIDsByAsset:  make(map[string][]string),
		lineageByObject: make(map[string][]asset.LineageEdge),
		userByID:        make(map[string]user.User, len(ts.Users)),
		assetIDsByUser:  make(map[string][]string),
	}

	for i := range ts.Assets {
		idx.assetByID[ts.Assets[i].ID] = &ts.Assets[i]
	}
	for _, col := range ts.Columns {
		idx.columnsByAsset[col.AssetID] = append(idx.columnsByAsset[col.AssetID], col)
	}
	for _, tag := range ts.Tags {
		idx.tagNameByID[tag.ID] = tag.Name
	}
	for _, at := range ts.AssetTags {
		idx.tagIDsByAsset[at.AssetID] = append(idx.tagIDsByAsset[at.AssetID], at.TagID)
	}
	for _, term := range ts.Terms {
		idx.termNameByID[term.ID] = term.Name
	}
	for _, at := range ts.AssetTerms {
		idx.termIDsByAsset[at.AssetID] = append(idx.termIDsByAsset[at.AssetID], at.TermID)
	}

	// A single edge can both reference and be referenced by the same
	// object; it must still appear only once in that object's lineage.
	for _, edge := range ts.Lineage {
		idx.lineageByObject[edge.ReferencedObjectID] = append(idx.lineageByObject[edge.ReferencedObjectID], edge)
		if edge.ReferencingObjectID != edge.ReferencedObjectID {
			idx.lineageByObject[edge.ReferencingObjectID] = append(idx.lineageByObject[edge.ReferencingObjectID], edge)
		}
	}

	for _, u := range ts.Users {
		idx.userByID[u.ID] = u
	}
	for _, b := range ts.Bookmarks {
		idx.assetIDsByUser[b.UserID] = append(idx.assetIDsByUser[b.UserID], b.AssetID)
	}

	ts.idx = idx
}

// resolveTags joins the asset's tag ids to tag names, dropping unknown ids
// and case-sensitive duplicates, preserving join-table order.
func (ts *TableSet) resolveTags(assetID string) []string {
	idx := ts.indexes()
	return resolveNames(idx.tagIDsByAsset[assetID], idx.tagNameByID)
}

// resolveTerms joins the asset's glossary term ids to term names.
func (ts *TableSet) resolveTerms(assetID string) []string {
	idx := ts.indexes()
	return resolveNames(idx.termIDsByAsset[assetID], idx.termNameByID)
}

// resolveLineage returns every edge touching the object id, order
// preserved, already de-duplicated at index build time.
func (ts *TableSet) resolveLineage(objectID string) []asset.LineageEdge {
	return ts.indexes().lineageByObject[objectID]
}

func resolveNames(ids []string, nameByID map[string]string) []string {
	seen := make(map[string]struct{}, len(ids))
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := nameByID[id]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
