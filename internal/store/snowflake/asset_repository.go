package snowflake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/salt/log"
	"github.com/sextant-data/sextant/core/asset"
)

const (
	// hard cap on live sample rows; sampling is priced per row scanned
	maxSampleRows = 5

	// dependency rows fetched per lineage lookup
	lineageLimit = 20

	listSchemaPlaceholder = "Schema details not fetched in this overview."
)

// AssetRepository fetches canonical records live from the warehouse. Each
// public method is one logical request: connect, query, stream, close,
// with close guaranteed on every exit path.
type AssetRepository struct {
	config Config
	logger log.Logger

	// connect is swapped out by tests to avoid a real warehouse
	connect func(ctx context.Context) (*Client, error)
}

func NewAssetRepository(logger log.Logger, config Config) (*AssetRepository, error) {
	r := &AssetRepository{
		config: config,
		logger: logger,
	}
	r.connect = func(ctx context.Context) (*Client, error) {
		return Connect(ctx, logger, config)
	}
	return r, nil
}

// GetAll lists every base table and view of the configured database
// outside the excluded schemas. Column counts are fetched per table, one
// round-trip each; a failed count degrades that asset's count to 0.
func (r *AssetRepository) GetAll(ctx context.Context) ([]asset.DataAsset, error) {
	client, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	infos, err := r.listTables(ctx, client)
	if err != nil {
		return nil, err
	}

	assets := make([]asset.DataAsset, 0, len(infos))
	for _, info := range infos {
		ref := asset.ObjectRef{Database: info.Catalog, Schema: info.Schema, Table: info.Name}

		count, err := r.columnCount(ctx, client, ref)
		if err != nil {
			r.logger.Warn("column count query failed, defaulting to 0", "object", ref.FQN(), "err", err)
			count = 0
		}

		assets = append(assets, asset.DataAsset{
			ID:                ref.FQN(),
			Source:            asset.SourceSnowflake,
			Name:              info.Name,
			Location:          ref.FQN(),
			ColumnCount:       count,
			SampleRecordCount: info.rowCount(),
			Description:       info.Description.String,
			Owner:             info.Owner.String,
			IsSensitive:       false,
			LastModified:      isoTime(info.LastAltered),
			CreatedAt:         isoTime(info.Created),
			UpdatedAt:         isoTime(info.LastAltered),
			RawSchemaForAI:    listSchemaPlaceholder,
			RawQuery:          exampleQuery(ref),
			Schema:            []asset.ColumnSchema{},
			Tags:              []string{},
		})
	}
	return assets, nil
}

// GetByRef fetches one asset's full detail: table metadata plus the
// ordered column schema.
func (r *AssetRepository) GetByRef(ctx context.Context, ref asset.ObjectRef) (asset.DataAsset, error) {
	client, err := r.connect(ctx)
	if err != nil {
		return asset.DataAsset{}, err
	}
	defer client.Close()

	info, err := r.tableDetail(ctx, client, ref)
	if err != nil {
		return asset.DataAsset{}, err
	}

	columns, err := r.listColumns(ctx, client, ref)
	if err != nil {
		return asset.DataAsset{}, err
	}

	return asset.DataAsset{
		ID:                ref.FQN(),
		Source:            asset.SourceSnowflake,
		Name:              ref.Table,
		Location:          ref.FQN(),
		ColumnCount:       len(columns),
		SampleRecordCount: info.rowCount(),
		Description:       info.Description.String,
		Owner:             info.Owner.String,
		IsSensitive:       false,
		LastModified:      isoTime(info.LastAltered),
		CreatedAt:         isoTime(info.Created),
		UpdatedAt:         isoTime(info.LastAltered),
		RawSchemaForAI:    asset.BuildRawSchema(columns),
		RawQuery:          exampleQuery(ref),
		Schema:            columns,
		Tags:              []string{},
	}, nil
}

// GetLineage queries the dependency view in both directions and unions the
// result. Edges referencing objects outside the catalog are preserved.
func (r *AssetRepository) GetLineage(ctx context.Context, ref asset.ObjectRef) ([]asset.LineageEdge, error) {
	client, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	upper := asset.ObjectRef{
		Database: strings.ToUpper(ref.Database),
		Schema:   strings.ToUpper(ref.Schema),
		Table:    strings.ToUpper(ref.Table),
	}
	domains := []string{"TABLE", "VIEW"}

	query, args, err := sq.Select(
		"referenced_database",
		"referenced_schema_name",
		"referenced_object_name",
		"referenced_object_domain",
		"referencing_database",
		"referencing_schema_name",
		"referencing_object_name",
		"referencing_object_domain",
		"dependency_type",
	).
		From("snowflake.account_usage.object_dependencies").
		Where(sq.Or{
			sq.And{
				sq.Eq{"referenced_database": upper.Database},
				sq.Eq{"referenced_schema_name": upper.Schema},
				sq.Eq{"referenced_object_name": upper.Table},
				sq.Eq{"referenced_object_domain": domains},
			},
			sq.And{
				sq.Eq{"referencing_database": upper.Database},
				sq.Eq{"referencing_schema_name": upper.Schema},
				sq.Eq{"referencing_object_name": upper.Table},
				sq.Eq{"referencing_object_domain": domains},
			},
		}).
		Limit(lineageLimit).
		ToSql()
	if err != nil {
		return nil, asset.QueryError{Op: "build lineage query", Ref: upper.FQN(), Err: err}
	}

	rows, err := client.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, asset.QueryError{Op: "lineage", Ref: upper.FQN(), Err: err}
	}
	defer rows.Close()

	var edges []asset.LineageEdge
	for rows.Next() {
		var (
			refDB, refSchema, refName, refDomain sql.NullString
			ingDB, ingSchema, ingName, ingDomain sql.NullString
			depType                              sql.NullString
		)
		if err := rows.Scan(
			&refDB, &refSchema, &refName, &refDomain,
			&ingDB, &ingSchema, &ingName, &ingDomain,
			&depType,
		); err != nil {
			return nil, asset.StreamError{Op: "lineage", Received: len(edges), Err: err}
		}
		edges = append(edges, asset.LineageEdge{
			ReferencedDatabase:    refDB.String,
			ReferencedSchema:      refSchema.String,
			ReferencedObjectName:  refName.String,
			ReferencedObjectID:    refDB.String + "." + refSchema.String + "." + refName.String,
			ReferencedDomain:      refDomain.String,
			ReferencingDatabase:   ingDB.String,
			ReferencingSchema:     ingSchema.String,
			ReferencingObjectName: ingName.String,
			ReferencingObjectID:   ingDB.String + "." + ingSchema.String + "." + ingName.String,
			ReferencingDomain:     ingDomain.String,
			DependencyType:        depType.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, asset.StreamError{Op: "lineage", Received: len(edges), Err: err}
	}

	return asset.DedupeEdges(edges), nil
}

// GetSample streams up to limit rows of live table data, clamped to the
// hard cap. Partial results of an interrupted stream are never returned.
func (r *AssetRepository) GetSample(ctx context.Context, ref asset.ObjectRef, limit int) ([]asset.SampleRow, error) {
	if limit <= 0 || limit > maxSampleRows {
		limit = maxSampleRows
	}

	client, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	// identifiers cannot be bound; the ref is quoted, the limit is ours
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", ref.QuotedFQN(), limit)
	rows, err := client.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, asset.QueryError{Op: "sample", Ref: ref.FQN(), Err: err}
	}

	return collectRows(ctx, rows, "sample")
}

// TestConnection opens a connection and runs a trivial query. The outcome
// is reported in the check itself; an unreachable warehouse is a result
// here, not an error.
func (r *AssetRepository) TestConnection(ctx context.Context) (asset.ConnectionCheck, error) {
	client, err := r.connect(ctx)
	if err != nil {
		return asset.ConnectionCheck{
			Success: false,
			Message: "Snowflake connection failed.",
			Details: err.Error(),
		}, nil
	}
	defer client.Close()

	var now sql.NullTime
	if err := client.db.QueryRowContext(ctx, "SELECT CURRENT_TIMESTAMP()").Scan(&now); err != nil {
		return asset.ConnectionCheck{
			Success: false,
			Message: "Snowflake connection established but the probe query failed.",
			Details: err.Error(),
		}, nil
	}

	return asset.ConnectionCheck{
		Success: true,
		Message: "Snowflake connection successful.",
		Details: "server time " + isoTime(now),
	}, nil
}

type tableInfo struct {
	Catalog     string
	Schema      string
	Name        string
	TableType   string
	Description sql.NullString
	Created     sql.NullTime
	LastAltered sql.NullTime
	RowCount    sql.NullInt64
	Owner       sql.NullString
}

func (t tableInfo) rowCount() *int {
	if !t.RowCount.Valid {
		return nil
	}
	n := int(t.RowCount.Int64)
	return &n
}

func (r *AssetRepository) listTables(ctx context.Context, client *Client) ([]tableInfo, error) {
	query, args, err := sq.Select(
		"t.table_catalog",
		"t.table_schema",
		"t.table_name",
		"t.table_type",
		"t.comment",
		"t.created",
		"t.last_altered",
		"t.row_count",
		"t.table_owner",
	).
		From(fmt.Sprintf("%s.information_schema.tables t", r.config.Database)).
		Where(sq.Eq{"t.table_catalog": r.config.Database}).
		Where(sq.NotEq{"t.table_schema": r.config.excludedSchemas()}).
		Where(sq.Eq{"t.table_type": []string{"BASE TABLE", "VIEW"}}).
		OrderBy("t.table_schema", "t.table_name").
		ToSql()
	if err != nil {
		return nil, asset.QueryError{Op: "build catalog query", Err: err}
	}

	rows, err := client.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, asset.QueryError{Op: "list tables", Err: err}
	}
	defer rows.Close()

	var infos []tableInfo
	for rows.Next() {
		var info tableInfo
		if err := rows.Scan(
			&info.Catalog, &info.Schema, &info.Name, &info.TableType,
			&info.Description, &info.Created, &info.LastAltered,
			&info.RowCount, &info.Owner,
		); err != nil {
			return nil, asset.StreamError{Op: "list tables", Received: len(infos), Err: err}
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, asset.StreamError{Op: "list tables", Received: len(infos), Err: err}
	}
	return infos, nil
}

func (r *AssetRepository) tableDetail(ctx context.Context, client *Client, ref asset.ObjectRef) (tableInfo, error) {
	query, args, err := sq.Select(
		"t.table_type",
		"t.comment",
		"t.created",
		"t.last_altered",
		"t.row_count",
		"t.table_owner",
	).
		From(fmt.Sprintf("%q.information_schema.tables t", ref.Database)).
		Where(sq.Eq{
			"t.table_catalog": ref.Database,
			"t.table_schema":  ref.Schema,
			"t.table_name":    ref.Table,
		}).
		ToSql()
	if err != nil {
		return tableInfo{}, asset.QueryError{Op: "build detail query", Ref: ref.FQN(), Err: err}
	}

	info := tableInfo{Catalog: ref.Database, Schema: ref.Schema, Name: ref.Table}
	err = client.db.QueryRowContext(ctx, query, args...).Scan(
		&info.TableType, &info.Description, &info.Created,
		&info.LastAltered, &info.RowCount, &info.Owner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return tableInfo{}, asset.NotFoundError{AssetID: ref.FQN()}
	}
	if err != nil {
		return tableInfo{}, asset.QueryError{Op: "table detail", Ref: ref.FQN(), Err: err}
	}
	return info, nil
}

func (r *AssetRepository) listColumns(ctx context.Context, client *Client, ref asset.ObjectRef) ([]asset.ColumnSchema, error) {
	query, args, err := sq.Select(
		"column_name",
		"data_type",
		"is_nullable",
		"comment",
	).
		From(fmt.Sprintf("%q.information_schema.columns", ref.Database)).
		Where(sq.Eq{
			"table_catalog": ref.Database,
			"table_schema":  ref.Schema,
			"table_name":    ref.Table,
		}).
		OrderBy("ordinal_position").
		ToSql()
	if err != nil {
		return nil, asset.QueryError{Op: "build columns query", Ref: ref.FQN(), Err: err}
	}

	rows, err := client.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, asset.QueryError{Op: "list columns", Ref: ref.FQN(), Err: err}
	}
	defer rows.Close()

	columns := []asset.ColumnSchema{}
	for rows.Next() {
		var (
			name, dataType string
			nullable       sql.NullString
			comment        sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &nullable, &comment); err != nil {
			return nil, asset.StreamError{Op: "list columns", Received: len(columns), Err: err}
		}
		columns = append(columns, asset.ColumnSchema{
			AssetID:     ref.FQN(),
			ColumnName:  name,
			DataType:    dataType,
			IsNullable:  nullable.String == "YES",
			Description: comment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, asset.StreamError{Op: "list columns", Received: len(columns), Err: err}
	}
	return columns, nil
}

func (r *AssetRepository) columnCount(ctx context.Context, client *Client, ref asset.ObjectRef) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(fmt.Sprintf("%q.information_schema.columns", ref.Database)).
		Where(sq.Eq{
			"table_catalog": ref.Database,
			"table_schema":  ref.Schema,
			"table_name":    ref.Table,
		}).
		ToSql()
	if err != nil {
		return 0, asset.QueryError{Op: "build column count query", Ref: ref.FQN(), Err: err}
	}

	var count int
	if err := client.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, asset.QueryError{Op: "column count", Ref: ref.FQN(), Err: err}
	}
	return count, nil
}

func exampleQuery(ref asset.ObjectRef) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT 100;", ref.QuotedFQN())
}

func isoTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}

// compile-time interface check
var _ asset.WarehouseRepository = (*AssetRepository)(nil)
