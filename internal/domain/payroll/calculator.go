package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
)

// 2026 social insurance and withholding rates
var (
	pensionRate            = money.Rate("0.045")
	healthRate             = money.Rate("0.03545")
	longTermCareRate       = money.Rate("0.1295")
	employmentRate         = money.Rate("0.009")
	salariedIncomeTaxRate  = money.Rate("0.03")
	employerEmploymentRate = money.Rate("0.0115")
	accidentRate           = money.Rate("0.01")
	businessIncomeTaxRate  = money.Rate("0.03")
	localIncomeTaxRate     = money.Rate("0.1")

	holidayThresholdHours = decimal.NewFromInt(15)
	holidayCapHours       = decimal.NewFromInt(40)
	holidayPaidHours      = decimal.NewFromInt(8)
	two                   = decimal.NewFromInt(2)
)

// Validate checks that the input matches its employment type.
func (in Input) Validate() error {
	switch in.Type {
	case Salaried, Freelancer:
		if in.MonthlySalary < 0 {
			return errors.NewValidationError("monthlySalary must not be negative")
		}
	case PartTime:
		if in.HourlyWage < 0 {
			return errors.NewValidationError("hourlyWage must not be negative")
		}
		if len(in.Weeks) != WeeksPerMonth {
			return errors.NewValidationError(fmt.Sprintf("part-time payroll needs exactly %d weeks", WeeksPerMonth)).
				WithDetail("weeks", len(in.Weeks))
		}
		for i, w := range in.Weeks {
			if w.Days < 0 || w.Days > 7 || w.Hours < 0 || w.Hours > 24 {
				return errors.NewValidationError("week must have 0-7 days of 0-24 hours").WithDetail("week", i+1)
			}
		}
	default:
		return errors.NewValidationError("type must be one of 정규직, 프리랜서, 알바").WithDetail("type", string(in.Type))
	}
	return nil
}

// Calculate runs the payroll formulas for in. Every amount is floored to whole
// won as soon as it is derived.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	switch in.Type {
	case Freelancer:
		return calculateFreelancer(in.MonthlySalary), nil
	case PartTime:
		return calculatePartTime(in.HourlyWage, in.Weeks), nil
	default:
		return calculateSalaried(in.MonthlySalary), nil
	}
}

func calculateSalaried(gross int64) Result {
	pension := money.MulRate(gross, pensionRate)
	health := money.MulRate(gross, healthRate)
	longTermCare := money.Floor(money.Dec(health).Mul(longTermCareRate).Div(two))
	employment := money.MulRate(gross, employmentRate)
	incomeTax := money.MulRate(gross, salariedIncomeTaxRate)

	deduction := pension + health + longTermCare + employment + incomeTax
	employerContribution := pension + health + longTermCare +
		money.MulRate(gross, employerEmploymentRate) +
		money.MulRate(gross, accidentRate)

	return Result{
		Type:          Salaried,
		BaseSalary:    gross,
		TakeHome:      gross - deduction,
		TotalCost:     gross + employerContribution,
		IncomeTax:     incomeTax,
		EmployerExtra: employerContribution,
		Breakdown: []BreakdownItem{
			{Label: "국민연금", Value: pension},
			{Label: "건강보험", Value: health},
			{Label: "장기요양보험", Value: longTermCare},
			{Label: "고용보험", Value: employment},
			{Label: "근로소득세(국세)", Value: incomeTax},
		},
		Weeks: []WeekResult{},
	}
}

func calculateFreelancer(gross int64) Result {
	national := money.MulRate(gross, businessIncomeTaxRate)
	local := money.MulRate(national, localIncomeTaxRate)

	return Result{
		Type:       Freelancer,
		BaseSalary: gross,
		TakeHome:   gross - (national + local),
		TotalCost:  gross,
		IncomeTax:  national,
		Breakdown: []BreakdownItem{
			{Label: "사업소득세 (3%)", Value: national},
			{Label: "지방소득세 (0.3%)", Value: local},
		},
		Weeks: []WeekResult{},
	}
}

// HolidayAllowance is the weekly holiday pay owed for weeklyHours of work:
// nothing under 15 hours, otherwise floor(min(h,40)/40 * 8 * wage).
func HolidayAllowance(weeklyHours decimal.Decimal, hourlyWage int64) int64 {
	if weeklyHours.LessThan(holidayThresholdHours) {
		return 0
	}
	capped := decimal.Min(weeklyHours, holidayCapHours)
	return money.Floor(capped.Div(holidayCapHours).Mul(holidayPaidHours).Mul(money.Dec(hourlyWage)))
}

func calculatePartTime(hourlyWage int64, weeks []Week) Result {
	wage := money.Dec(hourlyWage)
	totalBase := decimal.Zero
	totalHours := decimal.Zero
	var totalAllowance int64
	breakdown := make([]WeekResult, 0, len(weeks))

	for i, w := range weeks {
		hours := decimal.NewFromInt(int64(w.Days)).Mul(decimal.NewFromFloat(w.Hours))
		base := hours.Mul(wage)
		allowance := HolidayAllowance(hours, hourlyWage)

		totalBase = totalBase.Add(base)
		totalAllowance += allowance
		totalHours = totalHours.Add(hours)

		h, _ := hours.Float64()
		breakdown = append(breakdown, WeekResult{
			Week:             i + 1,
			Hours:            h,
			Base:             money.Floor(base),
			HolidayAllowance: allowance,
			Eligible:         !hours.LessThan(holidayThresholdHours),
		})
	}

	salary := money.Floor(totalBase.Add(money.Dec(totalAllowance)))
	employeeInsurance := money.MulRate(salary, employmentRate)
	employerExtra := money.MulRate(salary, employerEmploymentRate) + money.MulRate(salary, accidentRate)
	hoursTotal, _ := totalHours.Float64()

	return Result{
		Type:             PartTime,
		BaseSalary:       salary,
		TakeHome:         salary - employeeInsurance,
		TotalCost:        salary + employerExtra,
		IncomeTax:        0,
		EmployerExtra:    employerExtra,
		HolidayAllowance: totalAllowance,
		TotalHours:       hoursTotal,
		Breakdown: []BreakdownItem{
			{Label: "기본급 총액", Value: money.Floor(totalBase)},
			{Label: "주휴수당 총액", Value: totalAllowance},
			{Label: "고용보험 공제 (0.9%)", Value: employeeInsurance},
		},
		Weeks: breakdown,
	}
}

// UniformWeeks repeats one pattern for every week of the month.
func UniformWeeks(days int, hours float64) []Week {
	weeks := make([]Week, WeeksPerMonth)
	for i := range weeks {
		weeks[i] = Week{Days: days, Hours: hours}
	}
	return weeks
}
