package vehicle

import (
	"github.com/shopspring/decimal"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
)

// DefaultBusinessRatio is the business-use share assumed for a new vehicle
const DefaultBusinessRatio = 80

// FuelCostPerKm is the flat fuel estimate in won per kilometre
const FuelCostPerKm = 150

// Purpose of a trip
type Purpose string

const (
	Business    Purpose = "업무용"
	NonBusiness Purpose = "비업무용"
)

// Vehicle is a car registered for business use
type Vehicle struct {
	ID             string `json:"id"`
	Number         string `json:"number"`
	CurrentMileage int64  `json:"currentMileage"`
	BusinessRatio  int    `json:"businessRatio"`
	PurchaseYear   string `json:"purchaseYear,omitempty"`
}

// Trip is one entry of the driving log
type Trip struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	VehicleNumber string  `json:"vehicleId"`
	Purpose       Purpose `json:"purpose"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	StartMileage  int64   `json:"startMileage"`
	EndMileage    int64   `json:"endMileage"`
	TotalDistance int64   `json:"totalDistance"`
	FuelCost      int64   `json:"fuelCost"`
}

// Distance is how far a trip went; a reversed odometer reading counts as zero.
func Distance(start, end int64) int64 {
	return max(0, end-start)
}

// FuelCost estimates the fuel spent over distance kilometres.
func FuelCost(distance int64) int64 {
	return money.MulRate(distance, decimal.NewFromInt(FuelCostPerKm))
}

// Summary aggregates the driving log
type Summary struct {
	Trips         int   `json:"trips"`
	BusinessTrips int   `json:"businessTrips"`
	TotalDistance int64 `json:"totalDistance"`
	FuelCost      int64 `json:"fuelCost"`
	BusinessShare int64 `json:"businessShare"`
}

// Summarize totals trips. BusinessShare is the rounded percentage of trips
// made for business.
func Summarize(trips []Trip) Summary {
	s := Summary{Trips: len(trips)}
	for _, t := range trips {
		s.TotalDistance += t.TotalDistance
		if t.Purpose == Business {
			s.BusinessTrips++
		}
	}
	s.FuelCost = FuelCost(s.TotalDistance)
	if s.Trips > 0 {
		share := decimal.NewFromInt(int64(s.BusinessTrips)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(s.Trips)))
		s.BusinessShare = share.Round(0).IntPart()
	}
	return s
}
