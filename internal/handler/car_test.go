package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/service"
	"github.com/car-registry/backend/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCarStore struct {
	brands map[int64]model.Brand
	cars   []model.Car
	nextID int64
}

func (m *memCarStore) CreateCar(ctx context.Context, car model.Car) (*model.Car, error) {
	m.nextID++
	car.ID = m.nextID
	m.cars = append(m.cars, car)
	return &car, nil
}

func (m *memCarStore) CreateCars(ctx context.Context, cars []model.Car) ([]model.Car, error) {
	created := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		c, _ := m.CreateCar(ctx, car)
		created = append(created, *c)
	}
	return created, nil
}

func (m *memCarStore) GetCarByID(ctx context.Context, id int64) (*model.Car, bool, error) {
	for _, car := range m.cars {
		if car.ID == id {
			return &car, true, nil
		}
	}
	return nil, false, nil
}

func (m *memCarStore) ListCars(ctx context.Context) ([]model.Car, error) {
	return append([]model.Car{}, m.cars...), nil
}

func (m *memCarStore) UpdateCar(ctx context.Context, id int64, car model.Car) (bool, error) {
	for i := range m.cars {
		if m.cars[i].ID == id {
			car.ID = id
			m.cars[i] = car
			return true, nil
		}
	}
	return false, nil
}

func (m *memCarStore) DeleteCar(ctx context.Context, id int64) (bool, error) {
	for i := range m.cars {
		if m.cars[i].ID == id {
			m.cars = append(m.cars[:i], m.cars[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memCarStore) GetBrandByID(ctx context.Context, id int64) (*model.Brand, bool, error) {
	brand, ok := m.brands[id]
	if !ok {
		return nil, false, nil
	}
	return &brand, true, nil
}

func newCarTestRouter(t *testing.T) (*gin.Engine, *memCarStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memCarStore{brands: map[int64]model.Brand{
		1: {ID: 1, Name: "Seat", Warranty: 3, Country: "Spain"},
	}}
	pool, err := worker.New(2, 8)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	h := NewCarHandler(service.NewCarService(store, pool, logging.NewNop()))

	router := gin.New()
	router.POST("/api/car/uploadCSV", h.UploadCSV)
	router.GET("/api/car/downloadFileCars", h.DownloadFileCars)
	router.GET("/api/car/getCars", h.GetCars)
	router.GET("/api/car/getCar/:id", h.GetCar)
	router.DELETE("/api/car/deleteCar/:id", h.DeleteCar)
	return router, store
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadCSVHappyPath(t *testing.T) {
	router, store := newCarTestRouter(t)

	content := "colour,description,fuel_type,milleage,model,num_doors,price,year_car,id_brand\n" +
		"red,nice,petrol,1000,Ibiza,5,9000,2018,1\n"
	body, contentType := multipartUpload(t, "file", "cars.csv", content)

	req := httptest.NewRequest(http.MethodPost, "/api/car/uploadCSV", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.cars, 1)
	assert.Equal(t, "Ibiza", store.cars[0].Model)
}

func TestUploadCSVRejectsNonCSVFilename(t *testing.T) {
	router, store := newCarTestRouter(t)

	body, contentType := multipartUpload(t, "file", "cars.txt", "whatever")
	req := httptest.NewRequest(http.MethodPost, "/api/car/uploadCSV", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.cars)
}

func TestUploadCSVRejectsEmptyFile(t *testing.T) {
	router, _ := newCarTestRouter(t)

	body, contentType := multipartUpload(t, "file", "cars.csv", "")
	req := httptest.NewRequest(http.MethodPost, "/api/car/uploadCSV", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCSVUnknownBrandIs400(t *testing.T) {
	router, store := newCarTestRouter(t)

	content := "colour,description,fuel_type,milleage,model,num_doors,price,year_car,id_brand\n" +
		"red,nice,petrol,1000,Ibiza,5,9000,2018,42\n"
	body, contentType := multipartUpload(t, "file", "cars.csv", content)

	req := httptest.NewRequest(http.MethodPost, "/api/car/uploadCSV", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Empty(t, store.cars)
}

func TestDownloadFileCars(t *testing.T) {
	router, store := newCarTestRouter(t)
	store.cars = []model.Car{{
		ID: 1, Brand: store.brands[1], Model: "Ibiza", Colour: "red",
		FuelType: "petrol", Milleage: 1000, NumDoors: 5, Price: 9000, YearCar: 2018,
	}}
	store.nextID = 1

	req := httptest.NewRequest(http.MethodGet, "/api/car/downloadFileCars", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cars.csv")

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestGetCarsEmptyIs404(t *testing.T) {
	router, _ := newCarTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/car/getCars", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCarNotFoundIs404(t *testing.T) {
	router, _ := newCarTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/car/deleteCar/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCarByID(t *testing.T) {
	router, store := newCarTestRouter(t)
	store.cars = []model.Car{{ID: 5, Brand: store.brands[1], Model: "Leon"}}

	req := httptest.NewRequest(http.MethodGet, "/api/car/getCar/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Leon")
}
