package vehicle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

func TestDistanceAndFuel(t *testing.T) {
	assert.Equal(t, int64(42), Distance(1_000, 1_042))
	assert.Zero(t, Distance(1_042, 1_000))
	assert.Equal(t, int64(6_300), FuelCost(42))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Trip{
		{Purpose: Business, TotalDistance: 10},
		{Purpose: Business, TotalDistance: 20},
		{Purpose: NonBusiness, TotalDistance: 5},
	})

	assert.Equal(t, 3, s.Trips)
	assert.Equal(t, int64(35), s.TotalDistance)
	assert.Equal(t, int64(5_250), s.FuelCost)
	assert.Equal(t, int64(67), s.BusinessShare)

	assert.Zero(t, Summarize(nil).BusinessShare)
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("register defaults the business ratio", func(t *testing.T) {
		svc := NewService(store.NewMemoryStore())

		v, err := svc.Register(ctx, Vehicle{Number: "12가 3456", CurrentMileage: 10_000})

		require.NoError(t, err)
		assert.Equal(t, DefaultBusinessRatio, v.BusinessRatio)
		assert.NotEmpty(t, v.ID)

		_, err = svc.Register(ctx, Vehicle{Number: "12가 3456"})
		assert.True(t, errors.IsCode(err, errors.CodeConflict))
	})

	t.Run("recording a trip moves the odometer", func(t *testing.T) {
		// Setup
		svc := NewService(store.NewMemoryStore())
		_, err := svc.Register(ctx, Vehicle{Number: "12가 3456", CurrentMileage: 10_000})
		require.NoError(t, err)

		// Act
		first, err := svc.RecordTrip(ctx, Trip{Date: "2026-03-02", VehicleNumber: "12가 3456", StartMileage: 10_000, EndMileage: 10_042})
		require.NoError(t, err)
		second, err := svc.RecordTrip(ctx, Trip{Date: "2026-03-03", VehicleNumber: "12가 3456", Purpose: NonBusiness, StartMileage: 10_042, EndMileage: 10_050})
		require.NoError(t, err)

		// Assert
		assert.Equal(t, Business, first.Purpose)
		assert.Equal(t, int64(6_300), first.FuelCost)

		trips, err := svc.Trips(ctx)
		require.NoError(t, err)
		require.Len(t, trips, 2)
		assert.Equal(t, second.ID, trips[0].ID)

		vehicles, err := svc.Vehicles(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10_050), vehicles[0].CurrentMileage)

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(50), summary.BusinessShare)
	})

	t.Run("rejects zero distance and unknown vehicles", func(t *testing.T) {
		svc := NewService(store.NewMemoryStore())
		_, err := svc.Register(ctx, Vehicle{Number: "12가 3456"})
		require.NoError(t, err)

		_, err = svc.RecordTrip(ctx, Trip{Date: "2026-03-02", VehicleNumber: "12가 3456", StartMileage: 100, EndMileage: 100})
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = svc.RecordTrip(ctx, Trip{Date: "2026-03-02", VehicleNumber: "99나 0000", StartMileage: 0, EndMileage: 10})
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		trips, err := svc.Trips(ctx)
		require.NoError(t, err)
		assert.Empty(t, trips)
	})

	t.Run("delete", func(t *testing.T) {
		svc := NewService(store.NewMemoryStore())
		v, err := svc.Register(ctx, Vehicle{Number: "12가 3456"})
		require.NoError(t, err)
		trip, err := svc.RecordTrip(ctx, Trip{Date: "2026-03-02", VehicleNumber: v.Number, StartMileage: 0, EndMileage: 10})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTrip(ctx, trip.ID))
		require.NoError(t, svc.RemoveVehicle(ctx, v.ID))
		assert.True(t, errors.IsCode(svc.RemoveVehicle(ctx, v.ID), errors.CodeNotFound))
	})
}
