package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayszaher/airportbooking/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetAll(ctx context.Context) ([]domain.Booking, error)
	Add(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, flight_id, passenger_id, seats, class, total_cents, cancelled, created_at, updated_at`

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.PassengerID, &b.Seats, &b.Class, &b.TotalCents, &b.Cancelled, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.FlightID, &b.PassengerID, &b.Seats, &b.Class, &b.TotalCents, &b.Cancelled, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Add(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, flight_id, passenger_id, seats, class, total_cents, cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		booking.ID, booking.FlightID, booking.PassengerID, booking.Seats, booking.Class, booking.TotalCents, booking.Cancelled).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	res, err := r.db.Exec(ctx, `UPDATE bookings SET seats=$2, class=$3, total_cents=$4, cancelled=$5, updated_at=now() WHERE id=$1`,
		booking.ID, booking.Seats, booking.Class, booking.TotalCents, booking.Cancelled)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
