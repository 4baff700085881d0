package service

import (
	"strconv"
	"strings"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// Validation messages returned to clients
const (
	msgRequired        = "This field is required."
	msgBlank           = "This field may not be blank."
	msgAmountPositive  = "Amount must be greater than 0."
	msgMaxDigits       = "Ensure that there are no more than 12 digits in total."
	msgMaxPlaces       = "Ensure that there are no more than 2 decimal places."
	msgDateFormat      = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgCategoryExists  = "A category with this name already exists."
	msgMonthRange      = "Invalid month. Must be between 1 and 12."
	msgYearRange       = "Invalid year. Must be between 2000 and 2100."
	msgBudgetCategory  = "Category is required for budgets."
	msgKindLocked      = "The type of a category with entries or budgets cannot be changed."
	msgNameTooLong     = "Ensure this field has no more than 100 characters."
	msgEmailTaken      = "A user with this email already exists."
	msgPasswordShort   = "This password is too short. It must contain at least 8 characters."
	msgPasswordNumeric = "This password is entirely numeric."
)

const (
	maxAmountDigits   = 12
	maxAmountPlaces   = 2
	maxCategoryName   = 100
	minPasswordLength = 8
)

// DateLayout is the wire format of entry dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date at UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// amountShapeErrors checks the digit and decimal place limits of an amount
func amountShapeErrors(d decimal.Decimal) []string {
	s := d.Abs().String() // trailing zeros are already trimmed
	whole, frac, _ := strings.Cut(s, ".")
	whole = strings.TrimLeft(whole, "0")
	var msgs []string
	if len(whole)+len(frac) > maxAmountDigits {
		msgs = append(msgs, msgMaxDigits)
	}
	if len(frac) > maxAmountPlaces {
		msgs = append(msgs, msgMaxPlaces)
	}
	return msgs
}

func invalidPK(id uint) string {
	return `Invalid pk "` + strconv.FormatUint(uint64(id), 10) + `" - object does not exist.`
}

// kindMismatch is the category_id message for an entry whose category has the other kind
func kindMismatch(kind domain.EntryKind) string {
	return "The selected category must be an " + kind.String() + " category."
}

// isAllDigits reports whether s consists only of ASCII digits
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// passwordErrors applies the registration password rules
func passwordErrors(password string) []string {
	var msgs []string
	if len(password) < minPasswordLength {
		msgs = append(msgs, msgPasswordShort)
	}
	if isAllDigits(password) {
		msgs = append(msgs, msgPasswordNumeric)
	}
	return msgs
}
