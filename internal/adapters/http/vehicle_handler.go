package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"keepup/internal/adapters/http/middleware"
	"keepup/internal/domain"
)

type VehicleHandler struct {
	svc domain.VehicleService
}

func NewVehicleHandler(svc domain.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

// authUser pulls the verified identity out of the request context. Vehicle
// routes sit behind the JWT middleware, so a miss means a wiring bug, not a
// client error; it is still answered with 401 rather than a panic.
func authUser(w http.ResponseWriter, r *http.Request) (*domain.AuthUser, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
	}
	return user, ok
}

func (h *VehicleHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := authUser(w, r)
	if !ok {
		return
	}

	var req domain.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	vehicle, err := h.svc.Create(r.Context(), req, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateLicensePlate) {
			JSONError(w, http.StatusBadRequest, "you already have a vehicle with this license plate")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{Data: vehicle})
}

// Index lists the caller's vehicles, optionally filtered by make, model,
// year or an inclusive year_start/year_end range.
func (h *VehicleHandler) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := authUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	var vehicles []*domain.Vehicle
	var err error

	switch {
	case q.Get("make") != "":
		vehicles, err = h.svc.ListByMake(r.Context(), q.Get("make"), user.ID)

	case q.Get("model") != "":
		vehicles, err = h.svc.ListByModel(r.Context(), q.Get("model"), user.ID)

	case q.Get("year") != "":
		var year int
		year, err = strconv.Atoi(q.Get("year"))
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid year")
			return
		}
		vehicles, err = h.svc.ListByYear(r.Context(), year, user.ID)

	case q.Get("year_start") != "" || q.Get("year_end") != "":
		var start, end int
		start, err = strconv.Atoi(q.Get("year_start"))
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid year_start")
			return
		}
		end, err = strconv.Atoi(q.Get("year_end"))
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid year_end")
			return
		}
		vehicles, err = h.svc.ListByYearRange(r.Context(), start, end, user.ID)

	default:
		vehicles, err = h.svc.List(r.Context(), user.ID)
	}

	if err != nil {
		JSONError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: vehicles})
}

func (h *VehicleHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := authUser(w, r)
	if !ok {
		return
	}

	vehicleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.svc.GetByID(r.Context(), vehicleID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			JSONError(w, http.StatusNotFound, "vehicle not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to get vehicle")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: vehicle})
}

func (h *VehicleHandler) ShowByPlate(w http.ResponseWriter, r *http.Request) {
	user, ok := authUser(w, r)
	if !ok {
		return
	}

	vehicle, err := h.svc.GetByLicensePlate(r.Context(), r.PathValue("plate"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			JSONError(w, http.StatusNotFound, "vehicle not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to get vehicle")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: vehicle})
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := authUser(w, r)
	if !ok {
		return
	}

	vehicleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req domain.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	vehicle, err := h.svc.Update(r.Context(), vehicleID, req, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			JSONError(w, http.StatusNotFound, "vehicle not found")
			return
		}

		if errors.Is(err, domain.ErrDuplicateLicensePlate) {
			JSONError(w, http.StatusBadRequest, "you already have a vehicle with this license plate")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to update vehicle")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: vehicle})
}

func (h *VehicleHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	user, ok := authUser(w, r)
	if !ok {
		return
	}

	vehicleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.svc.Delete(r.Context(), vehicleID, user.ID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			JSONError(w, http.StatusNotFound, "vehicle not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) Count(w http.ResponseWriter, r *http.Request) {
	user, ok := authUser(w, r)
	if !ok {
		return
	}

	count, err := h.svc.Count(r.Context(), user.ID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "failed to count vehicles")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: map[string]int64{"count": count}})
}

func (h *VehicleHandler) Exists(w http.ResponseWriter, r *http.Request) {
	user, ok := authUser(w, r)
	if !ok {
		return
	}

	exists, err := h.svc.ExistsByLicensePlate(r.Context(), r.PathValue("plate"), user.ID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "failed to check license plate")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: map[string]bool{"exists": exists}})
}
