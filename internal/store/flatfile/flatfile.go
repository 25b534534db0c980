// Package flatfile materializes catalog records from the nine normalized
// delimited tables that simulate the relational meta store. Tables are read
// once per process and cached; joins are resolved against in-memory indexes
// built once per load.
package flatfile

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/goto/salt/log"
	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/bookmark"
	"github.com/sextant-data/sextant/core/user"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	Dir string `yaml:"dir" mapstructure:"dir" default:"./db_mock_data"`
}

// Store owns the process-wide table cache. The first Load reads every
// table from disk; concurrent callers during an in-flight load share that
// one read via singleflight. ClearCache forces the next Load back to disk.
type Store struct {
	config Config
	logger log.Logger

	// readAll is swapped out in tests to observe disk reads
	readAll func() *TableSet

	group  singleflight.Group
	mu     sync.RWMutex
	cached *TableSet
}

func NewStore(logger log.Logger, config Config) *Store {
	s := &Store{
		config: config,
		logger: logger,
	}
	s.readAll = s.loadAll
	return s
}

// Load returns the cached TableSet, reading all nine tables on a cache
// miss. A table that fails to load degrades to empty and is recorded in
// TableSet.Problems; the load itself does not fail. The cache is swapped
// in whole, never partially populated.
func (s *Store) Load(ctx context.Context) (*TableSet, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		s.mu.RLock()
		cached := s.cached
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		ts := s.readAll()

		s.mu.Lock()
		s.cached = ts
		s.mu.Unlock()
		return ts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TableSet), nil
}

// ClearCache drops the cached TableSet.
func (s *Store) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	s.logger.Info("flat-file table cache cleared")
}

func (s *Store) loadAll() *TableSet {
	ts := &TableSet{}

	s.loadTable(tableAssets, ts, func(row map[string]string) {
		ar := newAssetRow(row)
		if ar.sampleDataBroken {
			s.logger.Warn("malformed embedded sample data, field dropped", "table", tableAssets, "asset", ar.ID)
		}
		ts.Assets = append(ts.Assets, ar)
	})
	s.loadTable(tableColumns, ts, func(row map[string]string) {
		ts.Columns = append(ts.Columns, newColumnSchema(row))
	})
	s.loadTable(tableTags, ts, func(row map[string]string) {
		ts.Tags = append(ts.Tags, TagRow{ID: row["id"], Name: row["name"]})
	})
	s.loadTable(tableAssetTags, ts, func(row map[string]string) {
		ts.AssetTags = append(ts.AssetTags, AssetTagRow{AssetID: row["data_asset_id"], TagID: row["tag_id"]})
	})
	s.loadTable(tableTerms, ts, func(row map[string]string) {
		ts.Terms = append(ts.Terms, TermRow{ID: row["id"], Name: row["name"]})
	})
	s.loadTable(tableAssetTerms, ts, func(row map[string]string) {
		ts.AssetTerms = append(ts.AssetTerms, AssetTermRow{AssetID: row["data_asset_id"], TermID: row["term_id"]})
	})
	s.loadTable(tableLineage, ts, func(row map[string]string) {
		ts.Lineage = append(ts.Lineage, newLineageEdge(row))
	})
	s.loadTable(tableUsers, ts, func(row map[string]string) {
		ts.Users = append(ts.Users, newUser(row))
	})
	s.loadTable(tableBookmarks, ts, func(row map[string]string) {
		ts.Bookmarks = append(ts.Bookmarks, newBookmark(row))
	})

	s.logger.Info("flat-file tables loaded",
		"assets", len(ts.Assets),
		"columns", len(ts.Columns),
		"lineage_edges", len(ts.Lineage),
		"problems", len(ts.Problems),
	)
	return ts
}

// loadTable reads one table and appends each row through collect. Table
// loads are independent: failure here records a problem and leaves the
// table empty without aborting the rest of the set.
func (s *Store) loadTable(name string, ts *TableSet, collect func(map[string]string)) {
	rows, rowErrs, err := readTable(filepath.Join(s.config.Dir, name))
	if err != nil {
		s.logger.Error("table unreadable, degrading to empty", "table", name, "err", err)
		ts.Problems = append(ts.Problems, asset.LoadError{Table: name, Err: err})
		return
	}
	for _, rerr := range rowErrs {
		s.logger.Warn("skipping malformed row", "table", name, "err", rerr)
		ts.Problems = append(ts.Problems, asset.LoadError{Table: name, Err: rerr})
	}
	for _, row := range rows {
		collect(row)
	}
}

// compile-time interface checks for the repositories built on the store
var (
	_ asset.Repository    = (*AssetRepository)(nil)
	_ user.Repository     = (*UserRepository)(nil)
	_ bookmark.Repository = (*BookmarkRepository)(nil)
	_ asset.CacheClearer  = (*Store)(nil)
)
