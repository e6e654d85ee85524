package db

import (
	"context"

	"github.com/car-registry/backend/internal/model"
)

func (db *Postgres) CreateBrand(ctx context.Context, brand model.Brand) (*model.Brand, error) {
	query := `
		INSERT INTO brands (name_brand, warranty, country)
		VALUES ($1, $2, $3)
		RETURNING id, name_brand, warranty, country
	`
	var created model.Brand
	err := db.Pool.QueryRow(ctx, query, brand.Name, brand.Warranty, brand.Country).Scan(
		&created.ID,
		&created.Name,
		&created.Warranty,
		&created.Country,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateBrands inserts every brand inside one transaction, preserving input
// order. Any failure rolls the whole batch back.
func (db *Postgres) CreateBrands(ctx context.Context, brands []model.Brand) ([]model.Brand, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created := make([]model.Brand, 0, len(brands))
	for _, brand := range brands {
		var b model.Brand
		err := tx.QueryRow(ctx, `
			INSERT INTO brands (name_brand, warranty, country)
			VALUES ($1, $2, $3)
			RETURNING id, name_brand, warranty, country
		`, brand.Name, brand.Warranty, brand.Country).Scan(&b.ID, &b.Name, &b.Warranty, &b.Country)
		if err != nil {
			return nil, err
		}
		created = append(created, b)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (db *Postgres) GetBrandByID(ctx context.Context, id int64) (*model.Brand, bool, error) {
	query := `
		SELECT id, name_brand, warranty, country
		FROM brands
		WHERE id = $1
	`
	var brand model.Brand
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&brand.ID,
		&brand.Name,
		&brand.Warranty,
		&brand.Country,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &brand, true, nil
}

func (db *Postgres) ListBrands(ctx context.Context) ([]model.Brand, error) {
	query := `
		SELECT id, name_brand, warranty, country
		FROM brands
		ORDER BY id
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Warranty, &b.Country); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (db *Postgres) UpdateBrand(ctx context.Context, id int64, brand model.Brand) (bool, error) {
	query := `
		UPDATE brands
		SET name_brand = $2, warranty = $3, country = $4
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, id, brand.Name, brand.Warranty, brand.Country)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) DeleteBrand(ctx context.Context, id int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
