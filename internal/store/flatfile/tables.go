package flatfile

import (
	"sync"

	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/bookmark"
	"github.com/sextant-data/sextant/core/user"
	"github.com/sextant-data/sextant/pkg/coerce"
)

// The nine normalized tables backing the flat-file sources.
const (
	tableAssets     = "data_assets.csv"
	tableColumns    = "column_schemas.csv"
	tableTags       = "tags.csv"
	tableAssetTags  = "data_asset_tags.csv"
	tableTerms      = "business_glossary_terms.csv"
	tableAssetTerms = "data_asset_business_glossary_terms.csv"
	tableLineage    = "data_asset_lineage_raw.csv"
	tableUsers      = "users.csv"
	tableBookmarks  = "bookmarked_data_assets.csv"
)

// AssetRow is one typed row of the data_assets table. Loose string fields
// are coerced exactly once, at load time; joins downstream only ever see
// typed values.
type AssetRow struct {
	ID                string
	Source            string
	Name              string
	Location          string
	ColumnCount       int
	SampleRecordCount *int
	Description       string
	Owner             string
	IsSensitive       bool
	LastModified      string
	CreatedAt         string
	UpdatedAt         string
	RawSchemaForAI    string
	RawQuery          string
	CSVPath           string
	SampleData        []map[string]interface{}
	sampleDataBroken  bool
}

type TagRow struct {
	ID   string
	Name string
}

type AssetTagRow struct {
	AssetID string
	TagID   string
}

type TermRow struct {
	ID   string
	Name string
}

type AssetTermRow struct {
	AssetID string
	TermID  string
}

// TableSet is one immutable load of every table. It is shared between
// concurrent readers once cached, so nothing here mutates after load
// except the lazily-built join indexes guarded by indexOnce.
type TableSet struct {
	Assets     []AssetRow
	Columns    []asset.ColumnSchema
	Tags       []TagRow
	AssetTags  []AssetTagRow
	Terms      []TermRow
	AssetTerms []AssetTermRow
	Lineage    []asset.LineageEdge
	Users      []user.User
	Bookmarks  []bookmark.Bookmark

	// Problems collects the non-fatal per-table and per-row load errors.
	// A table listed here degraded to empty or lost rows; everything else
	// in the set is intact.
	Problems []error

	indexOnce sync.Once
	idx       tableIndexes
}

func newAssetRow(row map[string]string) AssetRow {
	sampleRaw := row["pg_mocked_sample_data"]
	sample := coerce.JSONRows(sampleRaw)

	return AssetRow{
		ID:                row["id"],
		Source:            row["source"],
		Name:              row["name"],
		Location:          row["location"],
		ColumnCount:       coerce.Int(row["column_count"]),
		SampleRecordCount: coerce.OptionalInt(row["sample_record_count"]),
		Description:       row["description"],
		Owner:             row["owner"],
		IsSensitive:       coerce.Bool(row["is_sensitive"]),
		LastModified:      coerce.Timestamp(row["last_modified"]),
		CreatedAt:         coerce.Timestamp(row["created_at"]),
		UpdatedAt:         coerce.Timestamp(row["updated_at"]),
		RawSchemaForAI:    row["raw_schema_for_ai"],
		RawQuery:          row["raw_query"],
		CSVPath:           row["csv_path"],
		SampleData:        sample,
		sampleDataBroken:  sample == nil && sampleRaw != "",
	}
}

func newColumnSchema(row map[string]string) asset.ColumnSchema {
	return asset.ColumnSchema{
		AssetID:     row["data_asset_id"],
		ColumnName:  row["column_name"],
		DataType:    row["data_type"],
		IsNullable:  coerce.Bool(row["is_nullable"]),
		Description: row["description"],
	}
}

func newLineageEdge(row map[string]string) asset.LineageEdge {
	return asset.LineageEdge{
		ReferencedDatabase:    row["REFERENCED_DATABASE"],
		ReferencedSchema:      row["REFERENCED_SCHEMA"],
		ReferencedObjectName:  row["REFERENCED_OBJECT_NAME"],
		ReferencedObjectID:    row["REFERENCED_OBJECT_ID"],
		ReferencedDomain:      row["REFERENCED_OBJECT_DOMAIN"],
		ReferencingDatabase:   row["REFERENCING_DATABASE"],
		ReferencingSchema:     row["REFERENCING_SCHEMA"],
		ReferencingObjectName: row["REFERENCING_OBJECT_NAME"],
		ReferencingObjectID:   row["REFERENCING_OBJECT_ID"],
		ReferencingDomain:     row["REFERENCING_OBJECT_DOMAIN"],
		DependencyType:        row["DEPENDENCY_TYPE"],
	}
}

func newUser(row map[string]string) user.User {
	return user.User{
		ID:        row["id"],
		Username:  row["username"],
		Email:     row["email"],
		CreatedAt: coerce.Timestamp(row["created_at"]),
		UpdatedAt: coerce.Timestamp(row["updated_at"]),
	}
}

func newBookmark(row map[string]string) bookmark.Bookmark {
	return bookmark.Bookmark{
		UserID:       row["user_id"],
		AssetID:      row["data_asset_id"],
		BookmarkedAt: coerce.Timestamp(row["bookmarked_at"]),
	}
}
