package vehicle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

// Service manages vehicles and the driving log
type Service struct {
	store store.Store
}

// NewService creates a new vehicle service
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Vehicles returns registered vehicles in registration order.
func (s *Service) Vehicles(ctx context.Context) ([]Vehicle, error) {
	vehicles, err := store.LoadList[Vehicle](ctx, s.store, store.KeyVehicles)
	if err != nil {
		return nil, errors.NewInternalError("failed to load vehicles", err)
	}
	return vehicles, nil
}

// Register adds a vehicle. Plate numbers are unique.
func (s *Service) Register(ctx context.Context, v Vehicle) (*Vehicle, error) {
	v.Number = strings.TrimSpace(v.Number)
	if err := utils.ValidateRequiredString(v.Number, "number"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNonNegative(v.CurrentMileage, "currentMileage"); err != nil {
		return nil, err
	}
	if v.BusinessRatio == 0 {
		v.BusinessRatio = DefaultBusinessRatio
	}
	if v.BusinessRatio < 0 || v.BusinessRatio > 100 {
		return nil, errors.NewValidationError("businessRatio must be between 0 and 100")
	}

	vehicles, err := s.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range vehicles {
		if existing.Number == v.Number {
			return nil, errors.NewConflictError(fmt.Sprintf("vehicle %s is already registered", v.Number))
		}
	}

	v.ID = uuid.NewString()
	vehicles = append(vehicles, v)
	if err := store.SaveList(ctx, s.store, store.KeyVehicles, vehicles); err != nil {
		return nil, errors.NewInternalError("failed to save vehicles", err)
	}
	return &v, nil
}

// RemoveVehicle deletes a vehicle. Its trips stay in the log.
func (s *Service) RemoveVehicle(ctx context.Context, id string) error {
	vehicles, err := s.Vehicles(ctx)
	if err != nil {
		return err
	}
	kept := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(vehicles) {
		return errors.NewNotFoundError(fmt.Sprintf("vehicle %s not found", id))
	}
	if err := store.SaveList(ctx, s.store, store.KeyVehicles, kept); err != nil {
		return errors.NewInternalError("failed to save vehicles", err)
	}
	return nil
}

// Trips returns the driving log, newest first.
func (s *Service) Trips(ctx context.Context) ([]Trip, error) {
	trips, err := store.LoadList[Trip](ctx, s.store, store.KeyDrivingLogs)
	if err != nil {
		return nil, errors.NewInternalError("failed to load driving logs", err)
	}
	return trips, nil
}

// RecordTrip logs a trip and moves the vehicle odometer to the end mileage.
// Distance and fuel cost are always derived from the odometer readings.
func (s *Service) RecordTrip(ctx context.Context, trip Trip) (*Trip, error) {
	if err := utils.ValidateISODate(trip.Date); err != nil {
		return nil, err
	}
	if trip.Purpose == "" {
		trip.Purpose = Business
	}
	if trip.Purpose != Business && trip.Purpose != NonBusiness {
		return nil, errors.NewValidationError("purpose must be 업무용 or 비업무용")
	}
	trip.TotalDistance = Distance(trip.StartMileage, trip.EndMileage)
	if trip.TotalDistance <= 0 {
		return nil, errors.NewValidationError("end mileage must be greater than start mileage")
	}
	trip.FuelCost = FuelCost(trip.TotalDistance)

	vehicles, err := s.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range vehicles {
		if vehicles[i].Number == trip.VehicleNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NewValidationError("select a registered vehicle").WithDetail("vehicleId", trip.VehicleNumber)
	}

	trips, err := s.Trips(ctx)
	if err != nil {
		return nil, err
	}
	trip.ID = uuid.NewString()
	trips = append([]Trip{trip}, trips...)
	if err := store.SaveList(ctx, s.store, store.KeyDrivingLogs, trips); err != nil {
		return nil, errors.NewInternalError("failed to save driving logs", err)
	}

	vehicles[idx].CurrentMileage = trip.EndMileage
	if err := store.SaveList(ctx, s.store, store.KeyVehicles, vehicles); err != nil {
		return nil, errors.NewInternalError("failed to save vehicles", err)
	}
	return &trip, nil
}

// DeleteTrip removes a trip from the log.
func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	trips, err := s.Trips(ctx)
	if err != nil {
		return err
	}
	kept := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trips) {
		return errors.NewNotFoundError(fmt.Sprintf("trip %s not found", id))
	}
	if err := store.SaveList(ctx, s.store, store.KeyDrivingLogs, kept); err != nil {
		return errors.NewInternalError("failed to save driving logs", err)
	}
	return nil
}

// Summary totals the driving log.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	trips, err := s.Trips(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(trips), nil
}
