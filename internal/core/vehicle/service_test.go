package vehicle

import (
	"context"
	"strings"
	"testing"
	"time"

	"keepup/internal/domain"

	"github.com/stretchr/testify/require"
)

// memVehicleRepo mimics the postgres adapter: every lookup is scoped by
// user id and the (user, plate) pair is enforced as unique on write.
type memVehicleRepo struct {
	nextID   int64
	vehicles map[int64]domain.Vehicle
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{vehicles: make(map[int64]domain.Vehicle)}
}

func (r *memVehicleRepo) plateTaken(plate string, userID, excludeID int64) bool {
	for _, v := range r.vehicles {
		if v.UserID == userID && v.LicensePlate == plate && v.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *memVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) error {
	if r.plateTaken(vehicle.LicensePlate, vehicle.UserID, 0) {
		return domain.ErrDuplicateLicensePlate
	}

	r.nextID++
	now := time.Now().UTC()
	vehicle.ID = r.nextID
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *memVehicleRepo) GetByID(_ context.Context, vehicleID, userID int64) (*domain.Vehicle, error) {
	v, ok := r.vehicles[vehicleID]
	if !ok || v.UserID != userID {
		return nil, domain.ErrVehicleNotFound
	}
	return &v, nil
}

func (r *memVehicleRepo) GetByPlate(_ context.Context, plate string, userID int64) (*domain.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.UserID == userID && v.LicensePlate == plate {
			return &v, nil
		}
	}
	return nil, domain.ErrVehicleNotFound
}

func (r *memVehicleRepo) List(_ context.Context, userID int64) ([]*domain.Vehicle, error) {
	out := []*domain.Vehicle{}
	for _, v := range r.vehicles {
		if v.UserID == userID {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r *memVehicleRepo) ListByMake(_ context.Context, make string, userID int64) ([]*domain.Vehicle, error) {
	out := []*domain.Vehicle{}
	for _, v := range r.vehicles {
		if v.UserID == userID && v.Make == make {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r *memVehicleRepo) ListByModel(_ context.Context, model string, userID int64) ([]*domain.Vehicle, error) {
	out := []*domain.Vehicle{}
	for _, v := range r.vehicles {
		if v.UserID == userID && v.Model == model {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r *memVehicleRepo) ListByYearRange(_ context.Context, yearStart, yearEnd int, userID int64) ([]*domain.Vehicle, error) {
	out := []*domain.Vehicle{}
	for _, v := range r.vehicles {
		if v.UserID == userID && v.Year >= yearStart && v.Year <= yearEnd {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r *memVehicleRepo) Update(_ context.Context, vehicle *domain.Vehicle) error {
	stored, ok := r.vehicles[vehicle.ID]
	if !ok || stored.UserID != vehicle.UserID {
		return domain.ErrVehicleNotFound
	}
	if r.plateTaken(vehicle.LicensePlate, vehicle.UserID, vehicle.ID) {
		return domain.ErrDuplicateLicensePlate
	}

	vehicle.CreatedAt = stored.CreatedAt
	vehicle.UpdatedAt = time.Now().UTC()
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *memVehicleRepo) Delete(_ context.Context, vehicleID, userID int64) error {
	v, ok := r.vehicles[vehicleID]
	if !ok || v.UserID != userID {
		return domain.ErrVehicleNotFound
	}
	delete(r.vehicles, vehicleID)
	return nil
}

func (r *memVehicleRepo) Count(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, v := range r.vehicles {
		if v.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memVehicleRepo) ExistsByPlate(_ context.Context, plate string, userID int64) (bool, error) {
	return r.plateTaken(plate, userID, 0), nil
}

func testRequest(plate string) domain.VehicleRequest {
	return domain.VehicleRequest{
		LicensePlate: plate,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2020,
		VehicleType:  domain.VehicleTypeSedan,
	}
}

const (
	ownerA int64 = 1
	ownerB int64 = 2
)

func TestCreateNormalizesPlateAndForcesOwner(t *testing.T) {
	svc := NewService(newMemVehicleRepo())

	created, err := svc.Create(context.Background(), testRequest("abc-1234"), ownerA)
	require.NoError(t, err)

	require.Equal(t, "ABC-1234", created.LicensePlate)
	require.Equal(t, ownerA, created.UserID)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateDuplicatePlateSameOwner(t *testing.T) {
	svc := NewService(newMemVehicleRepo())

	_, err := svc.Create(context.Background(), testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	// the plate comparison runs on the normalized form, so a case variant
	// is still a duplicate
	_, err = svc.Create(context.Background(), testRequest("abc-1234"), ownerA)
	require.ErrorIs(t, err, domain.ErrDuplicateLicensePlate)
}

func TestCreateSamePlateDifferentOwners(t *testing.T) {
	svc := NewService(newMemVehicleRepo())

	_, err := svc.Create(context.Background(), testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), testRequest("ABC-1234"), ownerB)
	require.NoError(t, err)
	require.Equal(t, ownerB, created.UserID)
}

func TestGetByIDScopedToOwner(t *testing.T) {
	svc := NewService(newMemVehicleRepo())

	created, err := svc.Create(context.Background(), testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID, ownerA)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	// another user sees the same NotFound as for an id that does not exist
	_, err = svc.GetByID(context.Background(), created.ID, ownerB)
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)

	_, err = svc.GetByID(context.Background(), 9999, ownerA)
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestGetByLicensePlateScopedAndNormalized(t *testing.T) {
	svc := NewService(newMemVehicleRepo())

	_, err := svc.Create(context.Background(), testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	got, err := svc.GetByLicensePlate(context.Background(), "abc-1234", ownerA)
	require.NoError(t, err)
	require.Equal(t, "ABC-1234", got.LicensePlate)

	_, err = svc.GetByLicensePlate(context.Background(), "ABC-1234", ownerB)
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestListFilters(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	corolla := testRequest("AAA-1111")
	civic := domain.VehicleRequest{
		LicensePlate: "BBB-2222",
		Make:         "Honda",
		Model:        "Civic",
		Year:         2015,
		VehicleType:  domain.VehicleTypeSedan,
	}

	_, err := svc.Create(ctx, corolla, ownerA)
	require.NoError(t, err)
	_, err = svc.Create(ctx, civic, ownerA)
	require.NoError(t, err)
	_, err = svc.Create(ctx, testRequest("CCC-3333"), ownerB)
	require.NoError(t, err)

	byMake, err := svc.ListByMake(ctx, "Honda", ownerA)
	require.NoError(t, err)
	require.Len(t, byMake, 1)
	require.Equal(t, "Civic", byMake[0].Model)

	byModel, err := svc.ListByModel(ctx, "Corolla", ownerA)
	require.NoError(t, err)
	require.Len(t, byModel, 1)

	byYear, err := svc.ListByYear(ctx, 2015, ownerA)
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	require.Equal(t, 2015, byYear[0].Year)

	// no matches is an empty list, not an error
	none, err := svc.ListByMake(ctx, "Ferrari", ownerA)
	require.NoError(t, err)
	require.Empty(t, none)

	// owner B only sees their own vehicle
	all, err := svc.List(ctx, ownerB)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestListByYearRange(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	for i, year := range []int{2010, 2015, 2020} {
		req := testRequest("AAA-100" + string(rune('0'+i)))
		req.Year = year
		_, err := svc.Create(ctx, req, ownerA)
		require.NoError(t, err)
	}

	// both ends inclusive
	got, err := svc.ListByYearRange(ctx, 2010, 2015, ownerA)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = svc.ListByYearRange(ctx, 2015, 2015, ownerA)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// inverted range matches nothing
	got, err = svc.ListByYearRange(ctx, 2020, 2010, ownerA)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUpdatePreservesIdentityFields(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	req := domain.VehicleRequest{
		LicensePlate: "xyz-9999",
		Make:         "Honda",
		Model:        "Civic",
		Year:         2021,
		Color:        "Red",
		VehicleType:  domain.VehicleTypeCoupe,
	}

	updated, err := svc.Update(ctx, created.ID, req, ownerA)
	require.NoError(t, err)

	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, ownerA, updated.UserID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	require.Equal(t, "XYZ-9999", updated.LicensePlate)
	require.Equal(t, "Honda", updated.Make)
	require.Equal(t, "Civic", updated.Model)
	require.Equal(t, 2021, updated.Year)
	require.Equal(t, "Red", updated.Color)
	require.Equal(t, domain.VehicleTypeCoupe, updated.VehicleType)
}

func TestUpdatePlateCollision(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, testRequest("AAA-1111"), ownerA)
	require.NoError(t, err)
	second, err := svc.Create(ctx, testRequest("BBB-2222"), ownerA)
	require.NoError(t, err)

	req := testRequest("aaa-1111")
	_, err = svc.Update(ctx, second.ID, req, ownerA)
	require.ErrorIs(t, err, domain.ErrDuplicateLicensePlate)

	// keeping the current plate is not a collision
	req = testRequest("BBB-2222")
	req.Color = "Green"
	updated, err := svc.Update(ctx, second.ID, req, ownerA)
	require.NoError(t, err)
	require.Equal(t, "Green", updated.Color)
}

func TestUpdateNotOwned(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, testRequest("XYZ-9999"), ownerB)
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestDeleteIsScopedAndFinal(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, ownerB), domain.ErrVehicleNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID, ownerA))

	_, err = svc.GetByID(ctx, created.ID, ownerA)
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, ownerA), domain.ErrVehicleNotFound)
}

func TestCountMatchesList(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	count, err := svc.Count(ctx, ownerA)
	require.NoError(t, err)
	require.Zero(t, count)

	first, err := svc.Create(ctx, testRequest("AAA-1111"), ownerA)
	require.NoError(t, err)
	_, err = svc.Create(ctx, testRequest("BBB-2222"), ownerA)
	require.NoError(t, err)
	_, err = svc.Create(ctx, testRequest("CCC-3333"), ownerB)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, first.ID, ownerA))

	count, err = svc.Count(ctx, ownerA)
	require.NoError(t, err)

	list, err := svc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Equal(t, count, int64(len(list)))
}

func TestExistsByLicensePlate(t *testing.T) {
	svc := NewService(newMemVehicleRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, testRequest("ABC-1234"), ownerA)
	require.NoError(t, err)

	exists, err := svc.ExistsByLicensePlate(ctx, strings.ToLower("ABC-1234"), ownerA)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = svc.ExistsByLicensePlate(ctx, "ABC-1234", ownerB)
	require.NoError(t, err)
	require.False(t, exists)
}
