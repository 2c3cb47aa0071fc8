package tax

import (
	"fmt"
	"math"
	"time"
)

// Deadline is the next statutory filing date
type Deadline struct {
	Date     time.Time `json:"date"`
	Label    string    `json:"label"`
	DaysLeft int       `json:"daysLeft"`
}

// DDay renders the countdown the way filing calendars show it.
func (d Deadline) DDay() string {
	return fmt.Sprintf("D-%d", d.DaysLeft)
}

// NextDeadline returns the first filing deadline strictly after now among
// the second-half VAT return (Jan 25), the income tax return (May 31) and the
// first-half VAT return (Jul 25).
func NextDeadline(now time.Time) Deadline {
	year := now.Year()
	loc := now.Location()
	candidates := []Deadline{
		{Date: time.Date(year, time.January, 25, 0, 0, 0, 0, loc), Label: "부가가치세 확정신고"},
		{Date: time.Date(year, time.May, 31, 0, 0, 0, 0, loc), Label: "종합소득세 신고"},
		{Date: time.Date(year, time.July, 25, 0, 0, 0, 0, loc), Label: "부가가치세 확정신고"},
		{Date: time.Date(year+1, time.January, 25, 0, 0, 0, 0, loc), Label: "부가가치세 확정신고"},
	}
	next := candidates[0]
	for _, c := range candidates {
		if c.Date.After(now) {
			next = c
			break
		}
	}
	next.DaysLeft = int(math.Ceil(next.Date.Sub(now).Hours() / 24))
	return next
}
