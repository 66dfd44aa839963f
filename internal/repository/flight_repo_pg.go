package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mayszaher/airportbooking/internal/domain"
)

// FlightSearch holds optional filters; zero/nil fields are skipped.
type FlightSearch struct {
	DepartureCountry   string
	DestinationCountry string
	DepartureAirport   string
	ArrivalAirport     string
	DepartsAfter       *time.Time
	DepartsBefore      *time.Time
	MaxPriceCents      *int64
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Search(ctx context.Context, params FlightSearch) ([]domain.Flight, error)
	Add(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id string) error
	ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, flightID string, seats int) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, number, departure_country, destination_country, departure_airport, arrival_airport, departure_time, price_cents, available_seats, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.Number, &f.DepartureCountry, &f.DestinationCountry, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.PriceCents, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
}

func (r *PGFlightRepository) Search(ctx context.Context, params FlightSearch) ([]domain.Flight, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if params.DepartureCountry != "" {
		add("departure_country=$%d", params.DepartureCountry)
	}
	if params.DestinationCountry != "" {
		add("destination_country=$%d", params.DestinationCountry)
	}
	if params.DepartureAirport != "" {
		add("departure_airport=$%d", params.DepartureAirport)
	}
	if params.ArrivalAirport != "" {
		add("arrival_airport=$%d", params.ArrivalAirport)
	}
	if params.DepartsAfter != nil {
		add("departure_time >= $%d", *params.DepartsAfter)
	}
	if params.DepartsBefore != nil {
		add("departure_time <= $%d", *params.DepartsBefore)
	}
	if params.MaxPriceCents != nil {
		add("price_cents <= $%d", *params.MaxPriceCents)
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) Add(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (id, number, departure_country, destination_country, departure_airport, arrival_airport, departure_time, price_cents, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		flight.ID, flight.Number, flight.DepartureCountry, flight.DestinationCountry, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureTime, flight.PriceCents, flight.AvailableSeats).
		Scan(&flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET number=$2, departure_country=$3, destination_country=$4, departure_airport=$5, arrival_airport=$6, departure_time=$7, price_cents=$8, available_seats=$9, updated_at=now() WHERE id=$1`,
		flight.ID, flight.Number, flight.DepartureCountry, flight.DestinationCountry, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureTime, flight.PriceCents, flight.AvailableSeats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveSeats is a conditional decrement: it succeeds only when the flight
// still has the requested number of seats, so concurrent reservations against
// the same flight serialize at the database row.
func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error) {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`, flightID, seats)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() > 0 {
		return true, nil
	}

	// No row updated: either the flight is gone or the seats are.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, flightID).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("flight %s: %w", flightID, domain.ErrNotFound)
	}
	return false, nil
}

// ReleaseSeats trusts the caller to only return seats it previously reserved;
// there is no upper-bound check against the flight's original capacity.
func (r *PGFlightRepository) ReleaseSeats(ctx context.Context, flightID string, seats int) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2, updated_at = now() WHERE id=$1`, flightID, seats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("flight %s: %w", flightID, domain.ErrNotFound)
	}
	return nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Number, &f.DepartureCountry, &f.DestinationCountry, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.PriceCents, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
