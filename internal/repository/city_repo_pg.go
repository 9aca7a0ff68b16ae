package repository

import (
	"context"
	"errors"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CityRepository interface {
	List(ctx context.Context) ([]domain.City, error)
	GetByID(ctx context.Context, id string) (*domain.City, error)
	Create(ctx context.Context, city domain.City) error
	DeleteAll(ctx context.Context) error
}

type PGCityRepository struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) CityRepository {
	return &PGCityRepository{db: db}
}

func (r *PGCityRepository) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, `SELECT city_id, city_name FROM cities ORDER BY city_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *PGCityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	row := r.db.QueryRow(ctx, `SELECT city_id, city_name FROM cities WHERE city_id=$1`, id)
	var c domain.City
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGCityRepository) Create(ctx context.Context, city domain.City) error {
	_, err := r.db.Exec(ctx, `INSERT INTO cities (city_id, city_name) VALUES ($1, $2)`, city.ID, city.Name)
	return err
}

// DeleteAll wipes the table before reseeding. Only the seeder calls this.
func (r *PGCityRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cities`)
	return err
}

var _ CityRepository = (*PGCityRepository)(nil)
