package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

// Service manages stored labor contracts
type Service struct {
	store store.Store
}

// NewService creates a new contract service
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns stored contracts, newest first.
func (s *Service) List(ctx context.Context) ([]Contract, error) {
	contracts, err := store.LoadList[Contract](ctx, s.store, store.KeyContracts)
	if err != nil {
		return nil, errors.NewInternalError("failed to load contracts", err)
	}
	return contracts, nil
}

// Get returns one contract by ID.
func (s *Service) Get(ctx context.Context, id string) (*Contract, error) {
	contracts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		if contracts[i].ID == id {
			return &contracts[i], nil
		}
	}
	return nil, errors.NewNotFoundError(fmt.Sprintf("contract %s not found", id))
}

// Save stores c. A contract without an ID is inserted at the front; one with
// an ID replaces the stored contract with that ID.
func (s *Service) Save(ctx context.Context, c Contract) (*Contract, error) {
	c.EmployeeName = strings.TrimSpace(c.EmployeeName)
	if err := validate(c); err != nil {
		return nil, err
	}

	contracts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
		contracts = append([]Contract{c}, contracts...)
	} else {
		found := false
		for i := range contracts {
			if contracts[i].ID == c.ID {
				contracts[i] = c
				found = true
				break
			}
		}
		if !found {
			return nil, errors.NewNotFoundError(fmt.Sprintf("contract %s not found", c.ID))
		}
	}

	if err := store.SaveList(ctx, s.store, store.KeyContracts, contracts); err != nil {
		return nil, errors.NewInternalError("failed to save contracts", err)
	}
	return &c, nil
}

// Delete removes the contract with the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	contracts, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(contracts) {
		return errors.NewNotFoundError(fmt.Sprintf("contract %s not found", id))
	}
	if err := store.SaveList(ctx, s.store, store.KeyContracts, kept); err != nil {
		return errors.NewInternalError("failed to save contracts", err)
	}
	return nil
}

func validate(c Contract) error {
	switch c.LaborType {
	case Permanent, FixedTerm, ShortHours, Freelance:
	default:
		return errors.NewValidationError("unknown labor type").WithDetail("laborType", string(c.LaborType))
	}
	switch c.SalaryType {
	case Monthly, Hourly, Daily:
	default:
		return errors.NewValidationError("unknown salary type").WithDetail("salaryType", string(c.SalaryType))
	}
	if err := utils.ValidateNonNegative(c.SalaryAmount, "salaryAmount"); err != nil {
		return err
	}
	if c.StartDate != "" {
		if err := utils.ValidateISODate(c.StartDate); err != nil {
			return err
		}
	}
	if c.EndDate != "" {
		if err := utils.ValidateISODate(c.EndDate); err != nil {
			return err
		}
		if c.StartDate != "" && c.EndDate < c.StartDate {
			return errors.NewValidationError("endDate must not be before startDate")
		}
	}
	return nil
}
