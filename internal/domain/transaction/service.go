package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

// Service manages the transaction list of one book
type Service struct {
	store    store.Store
	resolver *Resolver
}

// NewService creates a new transaction service
func NewService(st store.Store, resolver *Resolver) *Service {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	return &Service{
		store:    st,
		resolver: resolver,
	}
}

// Resolver returns the account resolver used at the boundary.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// List returns all transactions, newest first.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	txs, err := store.LoadList[Transaction](ctx, s.store, store.KeyTransactions)
	if err != nil {
		return nil, errors.NewInternalError("failed to load transactions", err)
	}
	return txs, nil
}

// Get returns one transaction by ID.
func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].ID == id {
			return &txs[i], nil
		}
	}
	return nil, errors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
}

// Add validates tx and stores it at the front of the list.
func (s *Service) Add(ctx context.Context, tx Transaction) (*Transaction, error) {
	added, err := s.AddAll(ctx, []Transaction{tx})
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// AddAll validates every transaction before storing any of them. Each is
// placed in front of the previous one, so the last element ends up first.
func (s *Service) AddAll(ctx context.Context, txs []Transaction) ([]Transaction, error) {
	prepared := make([]Transaction, 0, len(txs))
	for i, tx := range txs {
		p, err := s.Prepare(tx)
		if err != nil {
			if appErr, ok := err.(errors.AppError); ok && len(txs) > 1 {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}
		prepared = append(prepared, p)
	}

	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]Transaction, 0, len(existing)+len(prepared))
	for i := len(prepared) - 1; i >= 0; i-- {
		updated = append(updated, prepared[i])
	}
	updated = append(updated, existing...)

	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return prepared, nil
}

// Update replaces the transaction with the same ID.
func (s *Service) Update(ctx context.Context, tx Transaction) (*Transaction, error) {
	if tx.ID == "" {
		return nil, errors.NewValidationError("transaction id is required")
	}
	p, err := s.Prepare(tx)
	if err != nil {
		return nil, err
	}
	txs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].ID == p.ID {
			txs[i] = p
			if err := s.save(ctx, txs); err != nil {
				return nil, err
			}
			return &p, nil
		}
	}
	return nil, errors.NewNotFoundError(fmt.Sprintf("transaction %s not found", tx.ID))
}

// Delete removes a transaction by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	txs, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		return errors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
	}
	return s.save(ctx, kept)
}

// ReplaceAll overwrites the whole list after validating each entry.
func (s *Service) ReplaceAll(ctx context.Context, txs []Transaction) error {
	prepared := make([]Transaction, 0, len(txs))
	for i, tx := range txs {
		p, err := s.Prepare(tx)
		if err != nil {
			if appErr, ok := err.(errors.AppError); ok {
				return appErr.WithDetail("index", i)
			}
			return err
		}
		prepared = append(prepared, p)
	}
	return s.save(ctx, prepared)
}

// Prepare normalizes a transaction arriving from a user, an import or the
// model and validates it against the closed vocabularies.
func (s *Service) Prepare(tx Transaction) (Transaction, error) {
	tx.Description = strings.TrimSpace(tx.Description)
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	switch tx.Type {
	case Income:
		if tx.Category == "" {
			tx.Category = CategorySales
		}
	case Expense:
		if tx.Category == "" {
			tx.Category = CategoryPurchase
		}
	default:
		return tx, errors.NewValidationError("type must be income or expense").WithDetail("type", string(tx.Type))
	}

	if err := utils.ValidateISODate(tx.Date); err != nil {
		return tx, err
	}
	if err := utils.ValidateRequiredString(tx.Description, "description"); err != nil {
		return tx, err
	}
	if err := utils.ValidateNonNegative(tx.Amount, "amount"); err != nil {
		return tx, err
	}

	if tx.SubCategory == "" {
		tx.SubCategory = SubCard
	}
	if !tx.SubCategory.ValidFor(tx.Type) {
		return tx, errors.NewValidationError("subCategory is not valid for this transaction type").
			WithDetail("subCategory", string(tx.SubCategory)).
			WithDetail("type", string(tx.Type))
	}

	if tx.Method == "" {
		tx.Method = MethodCard
	}
	switch tx.Method {
	case MethodCard, MethodAccount, MethodCash:
	default:
		return tx, errors.NewValidationError("method must be one of 카드, 계좌, 현금")
	}

	if tx.VAT != nil && (*tx.VAT < 0 || *tx.VAT > tx.Amount) {
		return tx, errors.NewValidationError("vat must be between 0 and amount")
	}
	if err := utils.ValidateBusinessNumber(tx.MerchantBizNum); err != nil {
		return tx, err
	}
	if err := utils.ValidateCardNumber(tx.CardNumber); err != nil {
		return tx, err
	}

	account, ok := s.resolver.Resolve(string(tx.AccountName))
	if !ok {
		return tx, errors.NewValidationError("unknown account").WithDetail("accountName", string(tx.AccountName))
	}
	tx.AccountName = account

	return tx, nil
}

func (s *Service) save(ctx context.Context, txs []Transaction) error {
	if err := store.SaveList(ctx, s.store, store.KeyTransactions, txs); err != nil {
		return errors.NewInternalError("failed to save transactions", err)
	}
	return nil
}
