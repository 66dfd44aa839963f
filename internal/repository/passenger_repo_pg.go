package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayszaher/airportbooking/internal/domain"
)

type PassengerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)
	Add(ctx context.Context, passenger *domain.Passenger) error
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id string) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, email, first_name, phone, created_at, updated_at`

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	err := row.Scan(&p.ID, &p.Email, &p.FirstName, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	return scanPassenger(r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE email=$1`, email))
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	return scanPassenger(r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id=$1`, id))
}

func (r *PGPassengerRepository) Add(ctx context.Context, passenger *domain.Passenger) error {
	return r.db.QueryRow(ctx, `INSERT INTO passengers (id, email, first_name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		passenger.ID, passenger.Email, passenger.FirstName, passenger.Phone).
		Scan(&passenger.CreatedAt, &passenger.UpdatedAt)
}

func (r *PGPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	res, err := r.db.Exec(ctx, `UPDATE passengers SET email=$2, first_name=$3, phone=$4, updated_at=now() WHERE id=$1`,
		passenger.ID, passenger.Email, passenger.FirstName, passenger.Phone)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
