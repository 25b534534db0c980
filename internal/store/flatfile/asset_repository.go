package flatfile

import (
	"context"
	"errors"

	"github.com/sextant-data/sextant/core/asset"
)

// AssetRepository materializes canonical records from the cached tables.
// Joins are recomputed per call against the load-time indexes, so a fresh
// load is always reflected without restarting.
type AssetRepository struct {
	store *Store
}

func NewAssetRepository(store *Store) (*AssetRepository, error) {
	if store == nil {
		return nil, errors.New("flat-file store is nil")
	}
	return &AssetRepository{store: store}, nil
}

func (r *AssetRepository) GetAll(ctx context.Context, flt asset.Filter) ([]asset.DataAsset, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	assets := make([]asset.DataAsset, 0, len(ts.Assets))
	for i := range ts.Assets {
		row := &ts.Assets[i]
		if !flt.Matches(asset.Source(row.Source)) {
			continue
		}
		assets = append(assets, materialize(ts, row))
	}
	return assets, nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id string) (asset.DataAsset, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return asset.DataAsset{}, err
	}

	row, ok := ts.indexes().assetByID[id]
	if !ok {
		return asset.DataAsset{}, asset.NotFoundError{AssetID: id}
	}
	return materialize(ts, row), nil
}

func (r *AssetRepository) GetLineage(ctx context.Context, id string) ([]asset.LineageEdge, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ts.resolveLineage(id), nil
}

func (r *AssetRepository) GetSample(ctx context.Context, id string, limit int) ([]asset.SampleRow, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	row, ok := ts.indexes().assetByID[id]
	if !ok {
		return nil, asset.NotFoundError{AssetID: id}
	}

	rows := make([]asset.SampleRow, 0, len(row.SampleData))
	for _, sr := range row.SampleData {
		if limit > 0 && len(rows) >= limit {
			break
		}
		rows = append(rows, asset.SampleRow(sr))
	}
	return rows, nil
}

// materialize resolves every relation of one asset row into the canonical
// shape. columnCount follows the joined schema when the asset has schema
// rows; otherwise the coerced column_count field stands.
func materialize(ts *TableSet, row *AssetRow) asset.DataAsset {
	schema := ts.indexes().columnsByAsset[row.ID]
	if schema == nil {
		schema = []asset.ColumnSchema{}
	}

	columnCount := row.ColumnCount
	if len(schema) > 0 {
		columnCount = len(schema)
	}
	if columnCount < 0 {
		columnCount = 0
	}

	tags := ts.resolveTags(row.ID)
	if tags == nil {
		tags = []string{}
	}

	sample := make([]asset.SampleRow, 0, len(row.SampleData))
	for _, sr := range row.SampleData {
		sample = append(sample, asset.SampleRow(sr))
	}

	return asset.DataAsset{
		ID:                    row.ID,
		Source:                asset.Source(row.Source),
		Name:                  row.Name,
		Location:              row.Location,
		ColumnCount:           columnCount,
		SampleRecordCount:     row.SampleRecordCount,
		Description:           row.Description,
		Owner:                 row.Owner,
		IsSensitive:           row.IsSensitive,
		LastModified:          row.LastModified,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
		RawSchemaForAI:        row.RawSchemaForAI,
		RawQuery:              row.RawQuery,
		CSVPath:               row.CSVPath,
		Schema:                schema,
		Tags:                  tags,
		BusinessGlossaryTerms: ts.resolveTerms(row.ID),
		Lineage:               ts.resolveLineage(row.ID),
		SampleData:            sample,
	}
}
