package repository

import (
	"context"
	"errors"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) error
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type PGAdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) AdminRepository {
	return &PGAdminRepository{db: db}
}

func (r *PGAdminRepository) Create(ctx context.Context, admin domain.Admin) error {
	_, err := r.db.Exec(ctx, `INSERT INTO admins (username, password) VALUES ($1, $2)`, admin.Username, admin.PasswordHash)
	return err
}

func (r *PGAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT username, password FROM admins WHERE username=$1`, username)
	var a domain.Admin
	if err := row.Scan(&a.Username, &a.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

var _ AdminRepository = (*PGAdminRepository)(nil)
