package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/car-registry/backend/internal/model"
)

// Required import columns. Matching is order-independent, case-insensitive
// and whitespace-trimmed; extra columns are ignored, which lets an exported
// file re-import cleanly.
var csvImportColumns = []string{
	"colour", "description", "fuel_type", "milleage",
	"model", "num_doors", "price", "year_car", "id_brand",
}

// Export column order: the import set prefixed with the assigned id and
// suffixed with the flattened brand attributes.
var csvExportHeader = []string{
	"id", "colour", "description", "fuel_type", "milleage",
	"model", "num_doors", "price", "year_car",
	"id_brand", "country", "name_brand", "warranty",
}

// ImportCSV parses an uploaded CSV, resolves every brand reference and
// persists all rows as one batch. Nothing is written until every row has
// parsed and every brand id has resolved; the first bad cell or unknown
// brand aborts the whole import.
func (s *CarService) ImportCSV(ctx context.Context, r io.Reader) ([]model.Car, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed csv: %v", ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrInvalidInput)
	}

	cols, err := mapCSVColumns(records[0])
	if err != nil {
		return nil, err
	}

	brands := map[int64]model.Brand{}
	cars := make([]model.Car, 0, len(records)-1)
	for i, row := range records[1:] {
		line := i + 2

		milleage, err := parseCSVInt(row[cols["milleage"]], "milleage", line)
		if err != nil {
			return nil, err
		}
		numDoors, err := parseCSVInt(row[cols["num_doors"]], "num_doors", line)
		if err != nil {
			return nil, err
		}
		yearCar, err := parseCSVInt(row[cols["year_car"]], "year_car", line)
		if err != nil {
			return nil, err
		}
		price, err := parseCSVFloat(row[cols["price"]], "price", line)
		if err != nil {
			return nil, err
		}
		brandID, err := parseCSVInt64(row[cols["id_brand"]], "id_brand", line)
		if err != nil {
			return nil, err
		}

		brand, ok := brands[brandID]
		if !ok {
			resolved, err := s.resolveBrand(ctx, brandID)
			if err != nil {
				return nil, err
			}
			brand = *resolved
			brands[brandID] = brand
		}

		cars = append(cars, model.Car{
			Brand:       brand,
			Model:       strings.TrimSpace(row[cols["model"]]),
			Milleage:    milleage,
			Price:       price,
			YearCar:     yearCar,
			Description: strings.TrimSpace(row[cols["description"]]),
			Colour:      strings.TrimSpace(row[cols["colour"]]),
			FuelType:    strings.TrimSpace(row[cols["fuel_type"]]),
			NumDoors:    numDoors,
		})
	}

	saved, err := s.store.CreateCars(ctx, cars)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "csv import committed", "rows", len(saved))
	return saved, nil
}

// ExportCSV serializes every car, with its brand flattened in, as CSV
// text. Fields with embedded delimiters are quoted by the writer so the
// output survives a round-trip through ImportCSV.
func (s *CarService) ExportCSV(ctx context.Context) (string, error) {
	cars, err := s.store.ListCars(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvExportHeader); err != nil {
		return "", err
	}

	for _, car := range cars {
		record := []string{
			strconv.FormatInt(car.ID, 10),
			car.Colour,
			car.Description,
			car.FuelType,
			strconv.Itoa(car.Milleage),
			car.Model,
			strconv.Itoa(car.NumDoors),
			strconv.FormatFloat(car.Price, 'f', -1, 64),
			strconv.Itoa(car.YearCar),
			strconv.FormatInt(car.Brand.ID, 10),
			car.Brand.Country,
			car.Brand.Name,
			strconv.Itoa(car.Brand.Warranty),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

func mapCSVColumns(header []string) (map[string]int, error) {
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := map[string]int{}
	for _, name := range csvImportColumns {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidInput, name)
		}
		cols[name] = i
	}
	return cols, nil
}

func parseCSVInt(value, column string, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: invalid %s %q", ErrInvalidInput, line, column, value)
	}
	return n, nil
}

func parseCSVInt64(value, column string, line int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: invalid %s %q", ErrInvalidInput, line, column, value)
	}
	return n, nil
}

func parseCSVFloat(value, column string, line int) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: invalid %s %q", ErrInvalidInput, line, column, value)
	}
	return f, nil
}
