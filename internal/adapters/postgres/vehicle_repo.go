package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"keepup/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VehicleRepository scopes every statement by user_id. The composite unique
// index on (user_id, license_plate) is the authoritative duplicate guard;
// a violation surfaces as domain.ErrDuplicateLicensePlate.
type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) domain.VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `
	id,
	license_plate,
	make,
	model,
	year,
	COALESCE(color, ''),
	type,
	user_id,
	created_at,
	updated_at
`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID,
		&v.LicensePlate,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.Color,
		&v.VehicleType,
		&v.UserID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []*domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (license_plate, make, model, year, color, type, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		vehicle.LicensePlate,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.VehicleType,
		vehicle.UserID,
		now,
		now,
	).Scan(&vehicle.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateLicensePlate
		}
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}

	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, vehicleID, userID int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND user_id = $2`

	v, err := scanVehicle(r.db.QueryRow(ctx, query, vehicleID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return v, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string, userID int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE license_plate = $1 AND user_id = $2`

	v, err := scanVehicle(r.db.QueryRow(ctx, query, plate, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return v, nil
}

func (r *VehicleRepository) List(ctx context.Context, userID int64) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, userID)
}

func (r *VehicleRepository) ListByMake(ctx context.Context, make string, userID int64) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE make = $1 AND user_id = $2 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, make, userID)
}

func (r *VehicleRepository) ListByModel(ctx context.Context, model string, userID int64) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE model = $1 AND user_id = $2 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, model, userID)
}

func (r *VehicleRepository) ListByYearRange(ctx context.Context, yearStart, yearEnd int, userID int64) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE year BETWEEN $1 AND $2 AND user_id = $3 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, yearStart, yearEnd, userID)
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET license_plate = $1, make = $2, model = $3, year = $4, color = NULLIF($5, ''), type = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`

	now := time.Now().UTC()

	ct, err := r.db.Exec(ctx, query,
		vehicle.LicensePlate,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.VehicleType,
		now,
		vehicle.ID,
		vehicle.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateLicensePlate
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	vehicle.UpdatedAt = now
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, vehicleID, userID int64) error {
	query := `DELETE FROM vehicles WHERE id = $1 AND user_id = $2`

	ct, err := r.db.Exec(ctx, query, vehicleID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *VehicleRepository) Count(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	return count, nil
}

func (r *VehicleRepository) ExistsByPlate(ctx context.Context, plate string, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vehicles WHERE license_plate = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, plate, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check license plate: %w", err)
	}

	return exists, nil
}
