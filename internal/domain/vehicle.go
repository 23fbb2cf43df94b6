package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrDuplicateLicensePlate = errors.New("license plate already registered for this user")
)

type VehicleType string

const (
	VehicleTypeSedan       VehicleType = "SEDAN"
	VehicleTypeSUV         VehicleType = "SUV"
	VehicleTypeHatchback   VehicleType = "HATCHBACK"
	VehicleTypeCoupe       VehicleType = "COUPE"
	VehicleTypeConvertible VehicleType = "CONVERTIBLE"
	VehicleTypeTruck       VehicleType = "TRUCK"
	VehicleTypeVan         VehicleType = "VAN"
	VehicleTypeMotorcycle  VehicleType = "MOTORCYCLE"
)

type Vehicle struct {
	ID           int64       `json:"id"`
	LicensePlate string      `json:"license_plate"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Year         int         `json:"year"`
	Color        string      `json:"color,omitempty"`
	VehicleType  VehicleType `json:"vehicle_type"`
	UserID       int64       `json:"user_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// VehicleRequest carries create/update input. Any owner information in the
// body is ignored; ownership always comes from the verified token.
type VehicleRequest struct {
	LicensePlate string      `json:"license_plate" validate:"required,min=5,max=10,plate"`
	Make         string      `json:"make" validate:"required,min=2,max=50"`
	Model        string      `json:"model" validate:"required,min=1,max=50"`
	Year         int         `json:"year" validate:"required,min=1900,max=2100"`
	Color        string      `json:"color" validate:"omitempty,max=30"`
	VehicleType  VehicleType `json:"vehicle_type" validate:"required,oneof=SEDAN SUV HATCHBACK COUPE CONVERTIBLE TRUCK VAN MOTORCYCLE"`
}

// VehicleRepository queries always take the owning user id as a filter so
// that no lookup can cross user boundaries.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	GetByID(ctx context.Context, vehicleID, userID int64) (*Vehicle, error)
	GetByPlate(ctx context.Context, plate string, userID int64) (*Vehicle, error)
	List(ctx context.Context, userID int64) ([]*Vehicle, error)
	ListByMake(ctx context.Context, make string, userID int64) ([]*Vehicle, error)
	ListByModel(ctx context.Context, model string, userID int64) ([]*Vehicle, error)
	ListByYearRange(ctx context.Context, yearStart, yearEnd int, userID int64) ([]*Vehicle, error)
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, vehicleID, userID int64) error
	Count(ctx context.Context, userID int64) (int64, error)
	ExistsByPlate(ctx context.Context, plate string, userID int64) (bool, error)
}

type VehicleService interface {
	Create(ctx context.Context, req VehicleRequest, ownerID int64) (*Vehicle, error)
	GetByID(ctx context.Context, vehicleID, ownerID int64) (*Vehicle, error)
	List(ctx context.Context, ownerID int64) ([]*Vehicle, error)
	GetByLicensePlate(ctx context.Context, plate string, ownerID int64) (*Vehicle, error)
	ListByMake(ctx context.Context, make string, ownerID int64) ([]*Vehicle, error)
	ListByModel(ctx context.Context, model string, ownerID int64) ([]*Vehicle, error)
	ListByYear(ctx context.Context, year int, ownerID int64) ([]*Vehicle, error)
	ListByYearRange(ctx context.Context, yearStart, yearEnd int, ownerID int64) ([]*Vehicle, error)
	Update(ctx context.Context, vehicleID int64, req VehicleRequest, ownerID int64) (*Vehicle, error)
	Delete(ctx context.Context, vehicleID, ownerID int64) error
	Count(ctx context.Context, ownerID int64) (int64, error)
	ExistsByLicensePlate(ctx context.Context, plate string, ownerID int64) (bool, error)
}
