package payroll

import (
	"time"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
)

// EmploymentType selects which calculation applies to a payroll entry
type EmploymentType string

const (
	Salaried   EmploymentType = "정규직"
	Freelancer EmploymentType = "프리랜서"
	PartTime   EmploymentType = "알바"
)

// WeeksPerMonth is the number of weeks entered for an hourly worker
const WeeksPerMonth = 5

// Week is the work pattern of one week for an hourly worker
type Week struct {
	Days  int     `json:"days"`
	Hours float64 `json:"hours"`
}

// Input is what the calculator needs for one payroll run. Salaried and
// freelance runs use MonthlySalary; part-time runs use HourlyWage and Weeks.
type Input struct {
	Type          EmploymentType `json:"type"`
	MonthlySalary int64          `json:"monthlySalary,omitempty"`
	HourlyWage    int64          `json:"hourlyWage,omitempty"`
	Weeks         []Week         `json:"weeks,omitempty"`
}

// BreakdownItem is one labelled deduction or component
type BreakdownItem struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// WeekResult is the per-week detail of a part-time run
type WeekResult struct {
	Week             int     `json:"week"`
	Hours            float64 `json:"hours"`
	Base             int64   `json:"base"`
	HolidayAllowance int64   `json:"holidayAllowance"`
	Eligible         bool    `json:"isEligible"`
}

// Result is the outcome of a payroll calculation. All money fields are whole won.
type Result struct {
	Type             EmploymentType  `json:"type"`
	BaseSalary       int64           `json:"baseSalary"`
	TakeHome         int64           `json:"takeHome"`
	TotalCost        int64           `json:"totalCost"`
	IncomeTax        int64           `json:"incomeTax"`
	EmployerExtra    int64           `json:"employerExtra"`
	HolidayAllowance int64           `json:"holidayAllowance"`
	TotalHours       float64         `json:"totalHours"`
	Breakdown        []BreakdownItem `json:"breakdown"`
	Weeks            []WeekResult    `json:"weeklyBreakdown"`
}

// TotalDeduction is what the worker does not take home.
func (r Result) TotalDeduction() int64 {
	return r.BaseSalary - r.TakeHome
}

// LaborEntry is a confirmed payroll record. Entries are only ever appended
// or deleted.
type LaborEntry struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ResidentID     string         `json:"residentId"`
	Type           EmploymentType `json:"type"`
	BaseSalary     int64          `json:"baseSalary"`
	TakeHome       int64          `json:"takeHome"`
	TotalCost      int64          `json:"totalCost"`
	IncomeTax      int64          `json:"incomeTax"`
	EmployerExtra  int64          `json:"employerExtra"`
	TotalDeduction int64          `json:"totalDeduction"`
	Date           string         `json:"date"`
}

// Time parses the entry date.
func (e LaborEntry) Time() (time.Time, bool) {
	t, err := time.Parse(utils.DateLayout, e.Date)
	return t, err == nil
}

// TotalCost sums the employer cost of entries.
func TotalCost(entries []LaborEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.TotalCost
	}
	return total
}
