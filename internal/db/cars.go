package db

import (
	"context"

	"github.com/car-registry/backend/internal/model"
)

const carWithBrandColumns = `
	c.id, c.model, c.milleage, c.price, c.year_car, c.description,
	c.colour, c.fuel_type, c.num_doors,
	b.id, b.name_brand, b.warranty, b.country
`

func scanCarWithBrand(row interface{ Scan(dest ...any) error }) (*model.Car, error) {
	var car model.Car
	err := row.Scan(
		&car.ID,
		&car.Model,
		&car.Milleage,
		&car.Price,
		&car.YearCar,
		&car.Description,
		&car.Colour,
		&car.FuelType,
		&car.NumDoors,
		&car.Brand.ID,
		&car.Brand.Name,
		&car.Brand.Warranty,
		&car.Brand.Country,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (db *Postgres) CreateCar(ctx context.Context, car model.Car) (*model.Car, error) {
	query := `
		INSERT INTO cars (brand_id, model, milleage, price, year_car, description, colour, fuel_type, num_doors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	created := car
	err := db.Pool.QueryRow(ctx, query,
		car.Brand.ID, car.Model, car.Milleage, car.Price, car.YearCar,
		car.Description, car.Colour, car.FuelType, car.NumDoors,
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateCars inserts every car inside one transaction, preserving input
// order. The first failing insert rolls the whole batch back; nothing is
// persisted unless every row makes it in.
func (db *Postgres) CreateCars(ctx context.Context, cars []model.Car) ([]model.Car, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		saved := car
		err := tx.QueryRow(ctx, `
			INSERT INTO cars (brand_id, model, milleage, price, year_car, description, colour, fuel_type, num_doors)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`,
			car.Brand.ID, car.Model, car.Milleage, car.Price, car.YearCar,
			car.Description, car.Colour, car.FuelType, car.NumDoors,
		).Scan(&saved.ID)
		if err != nil {
			return nil, err
		}
		created = append(created, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (db *Postgres) GetCarByID(ctx context.Context, id int64) (*model.Car, bool, error) {
	query := `
		SELECT ` + carWithBrandColumns + `
		FROM cars c
		JOIN brands b ON b.id = c.brand_id
		WHERE c.id = $1
	`
	car, err := scanCarWithBrand(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return car, true, nil
}

func (db *Postgres) ListCars(ctx context.Context) ([]model.Car, error) {
	query := `
		SELECT ` + carWithBrandColumns + `
		FROM cars c
		JOIN brands b ON b.id = c.brand_id
		ORDER BY c.id
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []model.Car{}
	for rows.Next() {
		car, err := scanCarWithBrand(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *car)
	}
	return cars, rows.Err()
}

func (db *Postgres) UpdateCar(ctx context.Context, id int64, car model.Car) (bool, error) {
	query := `
		UPDATE cars
		SET brand_id = $2, model = $3, milleage = $4, price = $5, year_car = $6,
		    description = $7, colour = $8, fuel_type = $9, num_doors = $10
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, id,
		car.Brand.ID, car.Model, car.Milleage, car.Price, car.YearCar,
		car.Description, car.Colour, car.FuelType, car.NumDoors,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) DeleteCar(ctx context.Context, id int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
