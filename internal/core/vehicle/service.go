// Package vehicle implements the owner-scoped vehicle operations. Every call
// takes the authenticated user's id and passes it down to the repository as a
// mandatory filter; nothing here ever queries vehicles unscoped.
package vehicle

import (
	"context"
	"strings"

	"keepup/internal/domain"
)

type service struct {
	repo domain.VehicleRepository
}

func NewService(repo domain.VehicleRepository) domain.VehicleService {
	return &service{repo: repo}
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (s *service) Create(ctx context.Context, req domain.VehicleRequest, ownerID int64) (*domain.Vehicle, error) {
	plate := normalizePlate(req.LicensePlate)

	exists, err := s.repo.ExistsByPlate(ctx, plate, ownerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateLicensePlate
	}

	vehicle := &domain.Vehicle{
		LicensePlate: plate,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		VehicleType:  req.VehicleType,
		UserID:       ownerID,
	}

	// The repository is the authoritative guard: a concurrent create that
	// slips past the exists check still hits the (user_id, license_plate)
	// unique index and comes back as ErrDuplicateLicensePlate.
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (s *service) GetByID(ctx context.Context, vehicleID, ownerID int64) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, vehicleID, ownerID)
}

func (s *service) List(ctx context.Context, ownerID int64) ([]*domain.Vehicle, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *service) GetByLicensePlate(ctx context.Context, plate string, ownerID int64) (*domain.Vehicle, error) {
	return s.repo.GetByPlate(ctx, normalizePlate(plate), ownerID)
}

func (s *service) ListByMake(ctx context.Context, make string, ownerID int64) ([]*domain.Vehicle, error) {
	return s.repo.ListByMake(ctx, make, ownerID)
}

func (s *service) ListByModel(ctx context.Context, model string, ownerID int64) ([]*domain.Vehicle, error) {
	return s.repo.ListByModel(ctx, model, ownerID)
}

func (s *service) ListByYear(ctx context.Context, year int, ownerID int64) ([]*domain.Vehicle, error) {
	return s.repo.ListByYearRange(ctx, year, year, ownerID)
}

// ListByYearRange is inclusive on both ends. An inverted range is not an
// error; it matches nothing.
func (s *service) ListByYearRange(ctx context.Context, yearStart, yearEnd int, ownerID int64) ([]*domain.Vehicle, error) {
	if yearStart > yearEnd {
		return []*domain.Vehicle{}, nil
	}
	return s.repo.ListByYearRange(ctx, yearStart, yearEnd, ownerID)
}

func (s *service) Update(ctx context.Context, vehicleID int64, req domain.VehicleRequest, ownerID int64) (*domain.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, vehicleID, ownerID)
	if err != nil {
		return nil, err
	}

	plate := normalizePlate(req.LicensePlate)

	if plate != vehicle.LicensePlate {
		exists, err := s.repo.ExistsByPlate(ctx, plate, ownerID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateLicensePlate
		}
	}

	// id, owner and created_at stay as loaded; only the mutable fields are
	// taken from the request.
	vehicle.LicensePlate = plate
	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.Color = req.Color
	vehicle.VehicleType = req.VehicleType

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (s *service) Delete(ctx context.Context, vehicleID, ownerID int64) error {
	return s.repo.Delete(ctx, vehicleID, ownerID)
}

func (s *service) Count(ctx context.Context, ownerID int64) (int64, error) {
	return s.repo.Count(ctx, ownerID)
}

func (s *service) ExistsByLicensePlate(ctx context.Context, plate string, ownerID int64) (bool, error) {
	return s.repo.ExistsByPlate(ctx, normalizePlate(plate), ownerID)
}
