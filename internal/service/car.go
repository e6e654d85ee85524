package service

import (
	"context"
	"fmt"

	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/worker"
)

// CarStore is the slice of the repository the car service needs. Brand
// lookup is included because every car must resolve to an existing brand
// before it is written.
type CarStore interface {
	CreateCar(ctx context.Context, car model.Car) (*model.Car, error)
	CreateCars(ctx context.Context, cars []model.Car) ([]model.Car, error)
	GetCarByID(ctx context.Context, id int64) (*model.Car, bool, error)
	ListCars(ctx context.Context) ([]model.Car, error)
	UpdateCar(ctx context.Context, id int64, car model.Car) (bool, error)
	DeleteCar(ctx context.Context, id int64) (bool, error)
	GetBrandByID(ctx context.Context, id int64) (*model.Brand, bool, error)
}

type CarService struct {
	store CarStore
	pool  *worker.Pool
	log   logging.Logger
}

func NewCarService(store CarStore, pool *worker.Pool, log logging.Logger) *CarService {
	return &CarService{store: store, pool: pool, log: log}
}

// resolveBrand maps a brand id to its record, failing with a descriptive
// validation error when the id does not exist. Referential resolution
// failure is a hard error, never a silently nulled reference.
func (s *CarService) resolveBrand(ctx context.Context, id int64) (*model.Brand, error) {
	brand, found, err := s.store.GetBrandByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: brand not found for id %d", ErrInvalidInput, id)
	}
	return brand, nil
}

func (s *CarService) carFromRequest(req model.CarRequest, brand model.Brand) model.Car {
	return model.Car{
		Brand:       brand,
		Model:       req.Model,
		Milleage:    req.Milleage,
		Price:       req.Price,
		YearCar:     req.YearCar,
		Description: req.Description,
		Colour:      req.Colour,
		FuelType:    req.FuelType,
		NumDoors:    req.NumDoors,
	}
}

func (s *CarService) Save(ctx context.Context, req model.CarRequest) (*model.Car, error) {
	brand, err := s.resolveBrand(ctx, req.BrandID)
	if err != nil {
		return nil, err
	}

	car, err := s.store.CreateCar(ctx, s.carFromRequest(req, *brand))
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "car saved", "id", car.ID, "brand", brand.Name)
	return car, nil
}

// SaveAll resolves every brand reference first, then persists the whole
// list off the request goroutine as one all-or-nothing batch in input
// order.
func (s *CarService) SaveAll(ctx context.Context, reqs []model.CarRequest) ([]model.Car, error) {
	brands := map[int64]model.Brand{}
	cars := make([]model.Car, 0, len(reqs))
	for _, req := range reqs {
		brand, ok := brands[req.BrandID]
		if !ok {
			resolved, err := s.resolveBrand(ctx, req.BrandID)
			if err != nil {
				return nil, err
			}
			brand = *resolved
			brands[req.BrandID] = brand
		}
		cars = append(cars, s.carFromRequest(req, brand))
	}

	var (
		saved   []model.Car
		saveErr error
	)
	fut, err := s.pool.Submit(func() {
		saved, saveErr = s.store.CreateCars(ctx, cars)
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

	s.log.Info(ctx, "cars saved", "count", len(saved))
	return saved, nil
}

func (s *CarService) FindByID(ctx context.Context, id int64) (*model.Car, bool, error) {
	return s.store.GetCarByID(ctx, id)
}

// FindAll fetches the whole collection off the request goroutine. An empty
// store yields an empty slice, not an error.
func (s *CarService) FindAll(ctx context.Context) ([]model.Car, error) {
	var (
		cars    []model.Car
		listErr error
	)
	fut, err := s.pool.Submit(func() {
		cars, listErr = s.store.ListCars(ctx)
	})
	if err != nil {
		return nil, err
	}
	if err := fut.Wait(ctx); err != nil {
		return nil, err
	}
	return cars, listErr
}

// UpdateByID is a full replace of the record under id.
func (s *CarService) UpdateByID(ctx context.Context, id int64, req model.CarRequest) (*model.Car, bool, error) {
	brand, err := s.resolveBrand(ctx, req.BrandID)
	if err != nil {
		return nil, false, err
	}

	car := s.carFromRequest(req, *brand)
	found, err := s.store.UpdateCar(ctx, id, car)
	if err != nil || !found {
		return nil, found, err
	}
	car.ID = id
	return &car, true, nil
}

func (s *CarService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return s.store.DeleteCar(ctx, id)
}
