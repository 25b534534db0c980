package asset

import (
	"context"
	"strings"
)

// Repository reads canonical assets out of the flat-file meta store.
type Repository interface {
	GetAll(ctx context.Context, flt Filter) ([]DataAsset, error)
	GetByID(ctx context.Context, id string) (DataAsset, error)
	GetLineage(ctx context.Context, id string) ([]LineageEdge, error)
	GetSample(ctx context.Context, id string, limit int) ([]SampleRow, error)
}

// WarehouseRepository reads canonical assets live from the warehouse.
// Records are never cached; every call pays a fresh connection.
type WarehouseRepository interface {
	GetAll(ctx context.Context) ([]DataAsset, error)
	GetByRef(ctx context.Context, ref ObjectRef) (DataAsset, error)
	GetLineage(ctx context.Context, ref ObjectRef) ([]LineageEdge, error)
	GetSample(ctx context.Context, ref ObjectRef, limit int) ([]SampleRow, error)
	TestConnection(ctx context.Context) (ConnectionCheck, error)
}

// DataAsset is the canonical catalog record produced regardless of the
// originating source. Field names on the wire match the catalog UI contract.
type DataAsset struct {
	ID                    string         `json:"id"`
	Source                Source         `json:"source"`
	Name                  string         `json:"name"`
	Location              string         `json:"location"`
	ColumnCount           int            `json:"columnCount"`
	SampleRecordCount     *int           `json:"sampleRecordCount,omitempty"`
	Description           string         `json:"description,omitempty"`
	Owner                 string         `json:"owner,omitempty"`
	IsSensitive           bool           `json:"isSensitive"`
	LastModified          string         `json:"lastModified,omitempty"`
	CreatedAt             string         `json:"created_at,omitempty"`
	UpdatedAt             string         `json:"updated_at,omitempty"`
	RawSchemaForAI        string         `json:"rawSchemaForAI"`
	RawQuery              string         `json:"rawQuery,omitempty"`
	CSVPath               string         `json:"csvPath,omitempty"`
	Schema                []ColumnSchema `json:"schema"`
	Tags                  []string       `json:"tags"`
	BusinessGlossaryTerms []string       `json:"businessGlossaryTerms,omitempty"`
	Lineage               []LineageEdge  `json:"lineage,omitempty"`
	SampleData            []SampleRow    `json:"pgMockedSampleData,omitempty"`
}

// ColumnSchema describes one column of an asset, ordered by ordinal position.
type ColumnSchema struct {
	AssetID     string `json:"data_asset_id"`
	ColumnName  string `json:"column_name"`
	DataType    string `json:"data_type"`
	IsNullable  bool   `json:"is_nullable"`
	Description string `json:"description,omitempty"`
}

// SampleRow is one loosely-typed row of sample data.
type SampleRow map[string]interface{}

// ConnectionCheck is the outcome of a warehouse connectivity probe.
type ConnectionCheck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ObjectRef addresses a warehouse object by its fully qualified triple.
type ObjectRef struct {
	Database string
	Schema   string
	Table    string
}

// FQN returns the dot-delimited identifier used as the asset id.
func (r ObjectRef) FQN() string {
	return r.Database + "." + r.Schema + "." + r.Table
}

// QuotedFQN returns the identifier-quoted form used in SQL statements.
func (r ObjectRef) QuotedFQN() string {
	return `"` + r.Database + `"."` + r.Schema + `"."` + r.Table + `"`
}

// ParseObjectRef splits a dot-delimited database.schema.table id. The
// second return value reports whether the id has the warehouse shape at
// all; flat-file ids are opaque and contain no dots.
func ParseObjectRef(id string) (ObjectRef, bool) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return ObjectRef{}, false
	}
	for _, p := range parts {
		if p == "" {
			return ObjectRef{}, false
		}
	}
	return ObjectRef{Database: parts[0], Schema: parts[1], Table: parts[2]}, true
}

// BuildRawSchema encodes the column set as compact "name:type" pairs for
// the AI tag-suggestion collaborator.
func BuildRawSchema(columns []ColumnSchema) string {
	pairs := make([]string, 0, len(columns))
	for _, c := range columns {
		pairs = append(pairs, c.ColumnName+":"+c.DataType)
	}
	return strings.Join(pairs, ", ")
}
