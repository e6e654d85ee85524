package db

import (
	"context"

	"github.com/car-registry/backend/internal/model"
)

func (db *Postgres) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, surname, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, name, surname, email, password_hash, role, img, created_at, updated_at
	`
	var created model.User
	err := db.Pool.QueryRow(ctx, query, user.Name, user.Surname, user.Email, user.PasswordHash, user.Role).Scan(
		&created.ID,
		&created.Name,
		&created.Surname,
		&created.Email,
		&created.PasswordHash,
		&created.Role,
		&created.Img,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, bool, error) {
	query := `
		SELECT id, name, surname, email, password_hash, role, img, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Img,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &user, true, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, id int64) (*model.User, bool, error) {
	query := `
		SELECT id, name, surname, email, password_hash, role, img, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Img,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &user, true, nil
}

func (db *Postgres) UpdateUserImage(ctx context.Context, id int64, img string) (bool, error) {
	query := `
		UPDATE users
		SET img = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, id, img)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
