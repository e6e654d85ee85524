package service

import (
	"context"
	"fmt"

	"github.com/car-registry/backend/internal/db"
	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/worker"
)

// BrandStore is the slice of the repository the brand service needs.
type BrandStore interface {
	CreateBrand(ctx context.Context, brand model.Brand) (*model.Brand, error)
	CreateBrands(ctx context.Context, brands []model.Brand) ([]model.Brand, error)
	GetBrandByID(ctx context.Context, id int64) (*model.Brand, bool, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, id int64, brand model.Brand) (bool, error)
	DeleteBrand(ctx context.Context, id int64) (bool, error)
}

type BrandService struct {
	store BrandStore
	pool  *worker.Pool
	log   logging.Logger
}

func NewBrandService(store BrandStore, pool *worker.Pool, log logging.Logger) *BrandService {
	return &BrandService{store: store, pool: pool, log: log}
}

func (s *BrandService) Save(ctx context.Context, req model.BrandRequest) (*model.Brand, error) {
	return s.store.CreateBrand(ctx, model.Brand{
		Name:     req.Name,
		Warranty: req.Warranty,
		Country:  req.Country,
	})
}

// SaveAll persists the whole list off the request goroutine as one
// all-or-nothing batch, preserving input order.
func (s *BrandService) SaveAll(ctx context.Context, reqs []model.BrandRequest) ([]model.Brand, error) {
	brands := make([]model.Brand, 0, len(reqs))
	for _, req := range reqs {
		brands = append(brands, model.Brand{
			Name:     req.Name,
			Warranty: req.Warranty,
			Country:  req.Country,
		})
	}

	var (
		saved   []model.Brand
		saveErr error
	)
	fut, err := s.pool.Submit(func() {
		saved, saveErr = s.store.CreateBrands(ctx, brands)
	})
	if err != nil {
		return nil, err
	}
	if err := fut.Wait(ctx); err != nil {
		return nil, err
	}
	if saveErr != nil {
		return nil, saveErr
	}

	s.log.Info(ctx, "brands saved", "count", len(saved))
	return saved, nil
}

func (s *BrandService) FindByID(ctx context.Context, id int64) (*model.Brand, bool, error) {
	return s.store.GetBrandByID(ctx, id)
}

// FindAll fetches the whole collection off the request goroutine. An empty
// store yields an empty slice, not an error.
func (s *BrandService) FindAll(ctx context.Context) ([]model.Brand, error) {
	var (
		brands  []model.Brand
		listErr error
	)
	fut, err := s.pool.Submit(func() {
		brands, listErr = s.store.ListBrands(ctx)
	})
	if err != nil {
		return nil, err
	}
	if err := fut.Wait(ctx); err != nil {
		return nil, err
	}
	return brands, listErr
}

func (s *BrandService) UpdateByID(ctx context.Context, id int64, req model.BrandRequest) (*model.Brand, bool, error) {
	brand := model.Brand{
		ID:       id,
		Name:     req.Name,
		Warranty: req.Warranty,
		Country:  req.Country,
	}
	found, err := s.store.UpdateBrand(ctx, id, brand)
	if err != nil || !found {
		return nil, found, err
	}
	return &brand, true, nil
}

// DeleteByID removes a brand. The database rejects deleting a brand that
// cars still reference; that comes back as ErrConflict.
func (s *BrandService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	found, err := s.store.DeleteBrand(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: brand %d is still referenced by cars", ErrConflict, id)
		}
		return false, err
	}
	return found, nil
}
