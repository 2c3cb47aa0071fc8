package filing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

var now = time.Now

// Service keeps the record of filed returns
type Service struct {
	store store.Store
}

// NewService creates a new filing service
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns every filed record.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := store.LoadList[Record](ctx, s.store, store.KeyFiledRecords)
	if err != nil {
		return nil, errors.NewInternalError("failed to load filed records", err)
	}
	return records, nil
}

// Find returns the record for a return, or nil when it has not been filed.
func (s *Service) Find(ctx context.Context, year int, tab Tab, period string) (*Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].sameReturn(year, tab, period) {
			return &records[i], nil
		}
	}
	return nil, nil
}

// Record marks a return as filed, replacing any earlier record of the same
// return. Missing filing dates default to today and missing receipt numbers
// are issued as YYYY-VAT-nnnnnn.
func (s *Service) Record(ctx context.Context, r Record) (*Record, error) {
	r.Period = strings.TrimSpace(r.Period)
	if !r.Tab.Valid() {
		return nil, errors.NewValidationError("tab must be one of vat, income, labor").WithDetail("tab", string(r.Tab))
	}
	if r.Year < 2000 || r.Year > 9999 {
		return nil, errors.NewValidationError("year is out of range").WithDetail("year", r.Year)
	}
	if err := utils.ValidateRequiredString(r.Period, "period"); err != nil {
		return nil, err
	}
	if r.FiledDate == "" {
		r.FiledDate = now().Format(utils.DateLayout)
	} else if err := utils.ValidateISODate(r.FiledDate); err != nil {
		return nil, err
	}

	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]Record, 0, len(records)+1)
	for _, existing := range records {
		if existing.sameReturn(r.Year, r.Tab, r.Period) {
			if r.ReceiptNumber == "" {
				r.ReceiptNumber = existing.ReceiptNumber
			}
			continue
		}
		kept = append(kept, existing)
	}
	if r.ReceiptNumber == "" {
		r.ReceiptNumber = nextReceiptNumber(kept, r.Year, r.Tab)
	}
	kept = append(kept, r)

	if err := store.SaveList(ctx, s.store, store.KeyFiledRecords, kept); err != nil {
		return nil, errors.NewInternalError("failed to save filed records", err)
	}
	return &r, nil
}

func nextReceiptNumber(records []Record, year int, tab Tab) string {
	seq := 1
	for _, r := range records {
		if r.Year == year && r.Tab == tab {
			seq++
		}
	}
	return fmt.Sprintf("%d-%s-%06d", year, tab.receiptCode(), seq)
}
