package asset_test

import (
	"testing"

	"github.com/sextant-data/sextant/core/asset"
	"github.com/stretchr/testify/assert"
)

func TestLineageEdge_Touches(t *testing.T) {
	edge := asset.LineageEdge{
		ReferencedObjectID:  "DB.PUBLIC.ORDERS",
		ReferencingObjectID: "DB.PUBLIC.ORDERS_VIEW",
	}

	assert.True(t, edge.Touches("DB.PUBLIC.ORDERS"))
	assert.True(t, edge.Touches("DB.PUBLIC.ORDERS_VIEW"))
	assert.False(t, edge.Touches("DB.PUBLIC.CUSTOMERS"))
}

func TestDedupeEdges(t *testing.T) {
	upstream := asset.LineageEdge{
		ReferencedObjectID:  "DB.PUBLIC.RAW_ORDERS",
		ReferencingObjectID: "DB.PUBLIC.ORDERS",
	}
	downstream := asset.LineageEdge{
		ReferencedObjectID:  "DB.PUBLIC.ORDERS",
		ReferencingObjectID: "DB.PUBLIC.ORDERS_VIEW",
	}

	// the same edge surfaces from both directions of a lineage lookup
	deduped := asset.DedupeEdges([]asset.LineageEdge{upstream, downstream, upstream})

	assert.Equal(t, []asset.LineageEdge{upstream, downstream}, deduped)
}

func TestDedupeEdges_Empty(t *testing.T) {
	assert.Empty(t, asset.DedupeEdges(nil))
}
