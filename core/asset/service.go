package asset

import (
	"context"
)

// CacheClearer invalidates the flat-file table cache so the next read
// hits disk again.
type CacheClearer interface {
	ClearCache()
}

// Service materializes canonical DataAsset records, dispatching each call
// to the cached flat-file store or the live warehouse based on the
// requested source or the shape of the asset id. It is the only entry
// point the API layer and the AI collaborators consume.
type Service struct {
	flatFileRepo  Repository
	warehouseRepo WarehouseRepository
	cache         CacheClearer
}

type ServiceDeps struct {
	FlatFileRepo  Repository
	WarehouseRepo WarehouseRepository
	Cache         CacheClearer
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		flatFileRepo:  deps.FlatFileRepo,
		warehouseRepo: deps.WarehouseRepo,
		cache:         deps.Cache,
	}
}

// GetAllAssets lists assets for the selected sources. With an empty filter
// only the flat-file sources are read; the warehouse is queried live, and
// only when explicitly asked for, since every warehouse list is a fresh
// fetch with per-table round-trips.
func (s *Service) GetAllAssets(ctx context.Context, flt Filter) ([]DataAsset, error) {
	assets := []DataAsset{}

	if flt.WantsFlatFile() {
		flatFile, err := s.flatFileRepo.GetAll(ctx, flt)
		if err != nil {
			return nil, err
		}
		assets = append(assets, flatFile...)
	}

	if flt.WantsWarehouse() {
		if s.warehouseRepo == nil {
			return nil, ErrNoWarehouse
		}
		live, err := s.warehouseRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		assets = append(assets, live...)
	}

	return assets, nil
}

// GetAssetByID fetches a single canonical record. Warehouse assets are
// addressed by a database.schema.table triple; flat-file ids are opaque.
func (s *Service) GetAssetByID(ctx context.Context, id string) (DataAsset, error) {
	if id == "" {
		return DataAsset{}, ErrEmptyID
	}

	if ref, ok := ParseObjectRef(id); ok {
		if s.warehouseRepo == nil {
			return DataAsset{}, ErrNoWarehouse
		}
		return s.warehouseRepo.GetByRef(ctx, ref)
	}

	return s.flatFileRepo.GetByID(ctx, id)
}

// GetLineage returns every dependency edge touching the asset, in both
// directions, de-duplicated, order preserved.
func (s *Service) GetLineage(ctx context.Context, id string) ([]LineageEdge, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	if ref, ok := ParseObjectRef(id); ok {
		if s.warehouseRepo == nil {
			return nil, ErrNoWarehouse
		}
		return s.warehouseRepo.GetLineage(ctx, ref)
	}

	return s.flatFileRepo.GetLineage(ctx, id)
}

// GetSample returns up to limit sample rows. The warehouse path clamps the
// limit further; sampling live tables is priced per row scanned.
func (s *Service) GetSample(ctx context.Context, id string, limit int) ([]SampleRow, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	if ref, ok := ParseObjectRef(id); ok {
		if s.warehouseRepo == nil {
			return nil, ErrNoWarehouse
		}
		return s.warehouseRepo.GetSample(ctx, ref, limit)
	}

	return s.flatFileRepo.GetSample(ctx, id, limit)
}

// TestConnection probes the live warehouse with a trivial query.
func (s *Service) TestConnection(ctx context.Context) (ConnectionCheck, error) {
	if s.warehouseRepo == nil {
		return ConnectionCheck{}, ErrNoWarehouse
	}
	return s.warehouseRepo.TestConnection(ctx)
}

// ClearCache drops the flat-file table cache. The next read re-loads every
// table from disk.
func (s *Service) ClearCache() {
	if s.cache != nil {
		s.cache.ClearCache()
	}
}
