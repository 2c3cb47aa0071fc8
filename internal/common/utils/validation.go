package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/pkg/validator"
)

var (
	// DateRegex validates ISO 8601 date strings (YYYY-MM-DD)
	DateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// CardNumberRegex accepts full or masked card numbers such as 1234-****-****-5678
	CardNumberRegex = regexp.MustCompile(`^[0-9*]{4}(-?[0-9*]{4}){2,3}$`)

	// TenantIDRegex keeps tenant IDs safe to embed in storage keys
	TenantIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.:@-]{1,128}$`)
)

// DateLayout is the layout of every stored date
const DateLayout = "2006-01-02"

// ValidateISODate validates an ISO 8601 date string (YYYY-MM-DD)
func ValidateISODate(date string) error {
	if !DateRegex.MatchString(date) {
		return errors.NewValidationError("invalid date format, should be YYYY-MM-DD")
	}

	// Parse the date to ensure it's valid
	_, err := time.Parse(DateLayout, date)
	if err != nil {
		return errors.NewValidationError("invalid date value")
	}

	return nil
}

// ValidateNonNegative validates that a won amount is not negative
func ValidateNonNegative(amount int64, fieldName string) error {
	if amount < 0 {
		return errors.NewValidationError(fieldName + " must not be negative")
	}
	return nil
}

// ValidatePositiveInt validates that a string is a positive integer
func ValidatePositiveInt(value string) (int64, error) {
	num, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("value must be a valid integer")
	}
	if num <= 0 {
		return 0, errors.NewValidationError("value must be a positive integer")
	}
	return num, nil
}

// ValidateBusinessNumber validates an optional business registration number
func ValidateBusinessNumber(bizNum string) error {
	if bizNum == "" {
		return nil
	}
	if !validator.ValidBusinessNumber(bizNum) {
		return errors.NewValidationError("invalid business registration number").WithDetail("merchantBizNum", bizNum)
	}
	return nil
}

// ValidateCardNumber validates an optional card number
func ValidateCardNumber(card string) error {
	if card == "" {
		return nil
	}
	if !CardNumberRegex.MatchString(card) {
		return errors.NewValidationError("invalid card number format")
	}
	return nil
}

// ValidateResidentID validates a resident registration number
func ValidateResidentID(id string) error {
	if !validator.ValidResidentID(id) {
		return errors.NewValidationError("invalid resident registration number, should be 000000-0000000")
	}
	return nil
}

// ValidateTenantID validates a tenant ID
func ValidateTenantID(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return errors.NewTenantError("tenant ID is required")
	}
	if !TenantIDRegex.MatchString(tenantID) {
		return errors.NewTenantError("tenant ID contains unsupported characters")
	}
	return nil
}

// ValidateRequiredString validates that a string is not empty
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(fieldName + " is required")
	}
	return nil
}
