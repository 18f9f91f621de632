package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce-api/internal/domain"
)

// OwnerRepository define el contrato de persistencia para el owner.
type OwnerRepository interface {
	Create(ctx context.Context, owner domain.Owner) error
	GetByEmail(ctx context.Context, email string) (domain.Owner, error)
	Count(ctx context.Context) (int64, error)
}

// PgOwnerRepository implementa OwnerRepository usando pgxpool.
type PgOwnerRepository struct {
	pool *pgxpool.Pool
}

func NewPgOwnerRepository(pool *pgxpool.Pool) *PgOwnerRepository {
	return &PgOwnerRepository{pool: pool}
}

func (r *PgOwnerRepository) Create(ctx context.Context, owner domain.Owner) error {
	const query = `
		INSERT INTO owners (id, firstname, lastname, email, contact, password_hash, picture, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		owner.ID,
		owner.Firstname,
		owner.Lastname,
		owner.Email,
		owner.Contact,
		owner.PasswordHash,
		owner.Picture,
		owner.CreatedAt,
	)
	return err
}

func (r *PgOwnerRepository) GetByEmail(ctx context.Context, email string) (domain.Owner, error) {
	const query = `
		SELECT id, firstname, lastname, email, contact, password_hash, picture, created_at
		FROM owners
		WHERE email = $1
	`
	var o domain.Owner
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&o.ID,
		&o.Firstname,
		&o.Lastname,
		&o.Email,
		&o.Contact,
		&o.PasswordHash,
		&o.Picture,
		&o.CreatedAt,
	)
	if err != nil {
		return domain.Owner{}, err
	}
	return o, nil
}

func (r *PgOwnerRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM owners`
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
