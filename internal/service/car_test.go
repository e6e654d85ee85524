package service

import (
	"context"
	"errors"
	"testing"

	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCarStore backs both the car service and CSV pipeline tests. CreateCars
// mirrors the real store's all-or-nothing transaction: on failure nothing is
// retained.
type fakeCarStore struct {
	brands    map[int64]model.Brand
	cars      []model.Car
	nextID    int64
	createErr error
}

func newFakeCarStore(brands ...model.Brand) *fakeCarStore {
	f := &fakeCarStore{brands: map[int64]model.Brand{}}
	for _, b := range brands {
		f.brands[b.ID] = b
	}
	return f
}

func (f *fakeCarStore) CreateCar(ctx context.Context, car model.Car) (*model.Car, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	car.ID = f.nextID
	f.cars = append(f.cars, car)
	return &car, nil
}

func (f *fakeCarStore) CreateCars(ctx context.Context, cars []model.Car) ([]model.Car, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		f.nextID++
		car.ID = f.nextID
		created = append(created, car)
	}
	f.cars = append(f.cars, created...)
	return created, nil
}

func (f *fakeCarStore) GetCarByID(ctx context.Context, id int64) (*model.Car, bool, error) {
	for _, car := range f.cars {
		if car.ID == id {
			return &car, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeCarStore) ListCars(ctx context.Context) ([]model.Car, error) {
	return append([]model.Car{}, f.cars...), nil
}

func (f *fakeCarStore) UpdateCar(ctx context.Context, id int64, car model.Car) (bool, error) {
	for i := range f.cars {
		if f.cars[i].ID == id {
			car.ID = id
			f.cars[i] = car
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCarStore) DeleteCar(ctx context.Context, id int64) (bool, error) {
	for i := range f.cars {
		if f.cars[i].ID == id {
			f.cars = append(f.cars[:i], f.cars[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCarStore) GetBrandByID(ctx context.Context, id int64) (*model.Brand, bool, error) {
	brand, ok := f.brands[id]
	if !ok {
		return nil, false, nil
	}
	return &brand, true, nil
}

var testBrand = model.Brand{ID: 1, Name: "Seat", Warranty: 3, Country: "Spain"}

func newTestCarService(t *testing.T, store *fakeCarStore) *CarService {
	t.Helper()
	pool, err := worker.New(2, 8)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewCarService(store, pool, logging.NewNop())
}

func TestCarSaveResolvesBrand(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)

	car, err := svc.Save(context.Background(), model.CarRequest{
		BrandID: 1, Model: "Ibiza", Milleage: 1000, Price: 12000.50,
		YearCar: 2020, Colour: "red", FuelType: "petrol", NumDoors: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), car.ID)
	assert.Equal(t, "Seat", car.Brand.Name)
}

func TestCarSaveUnknownBrand(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)

	_, err := svc.Save(context.Background(), model.CarRequest{BrandID: 99, Model: "Ghost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "99")
	assert.Empty(t, store.cars)
}

func TestCarSaveAllPreservesOrder(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)

	reqs := []model.CarRequest{
		{BrandID: 1, Model: "Ibiza"},
		{BrandID: 1, Model: "Leon"},
		{BrandID: 1, Model: "Ateca"},
	}
	cars, err := svc.SaveAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	assert.Equal(t, "Ibiza", cars[0].Model)
	assert.Equal(t, "Leon", cars[1].Model)
	assert.Equal(t, "Ateca", cars[2].Model)
	assert.Less(t, cars[0].ID, cars[1].ID)
	assert.Less(t, cars[1].ID, cars[2].ID)
}

func TestCarSaveAllEmptyList(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)

	cars, err := svc.SaveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestCarSaveAllAbortsOnStoreFailure(t *testing.T) {
	store := newFakeCarStore(testBrand)
	store.createErr = errors.New("db down")
	svc := newTestCarService(t, store)

	_, err := svc.SaveAll(context.Background(), []model.CarRequest{{BrandID: 1, Model: "Ibiza"}})
	assert.Error(t, err)
	assert.Empty(t, store.cars)
}

func TestCarFindAllEmpty(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)

	cars, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cars)
	assert.Empty(t, cars)
}

func TestCarDeleteNotFound(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)

	found, err := svc.DeleteByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCarUpdateByID(t *testing.T) {
	store := newFakeCarStore(testBrand)
	svc := newTestCarService(t, store)
	ctx := context.Background()

	saved, err := svc.Save(ctx, model.CarRequest{BrandID: 1, Model: "Ibiza"})
	require.NoError(t, err)

	updated, found, err := svc.UpdateByID(ctx, saved.ID, model.CarRequest{BrandID: 1, Model: "Leon", NumDoors: 3})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Leon", updated.Model)

	_, found, err = svc.UpdateByID(ctx, 404, model.CarRequest{BrandID: 1, Model: "Ghost"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCarSaveAllRejectedWhenPoolBusy(t *testing.T) {
	store := newFakeCarStore(testBrand)
	pool, err := worker.New(1, 1)
	require.NoError(t, err)
	defer pool.Close()
	svc := NewCarService(store, pool, logging.NewNop())

	// Occupy the single worker and fill the backlog.
	block := make(chan struct{})
	_, err = pool.Submit(func() { <-block })
	require.NoError(t, err)
	_, err = pool.Submit(func() {})
	require.NoError(t, err)

	_, err = svc.SaveAll(context.Background(), []model.CarRequest{{BrandID: 1, Model: "Ibiza"}})
	assert.ErrorIs(t, err, worker.ErrBusy)

	close(block)
}
