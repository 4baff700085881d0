package service

import (
	"context"
	"errors"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// EntryInput carries the writable income/expense fields; nil means "not supplied"
type EntryInput struct {
	CategoryID *uint
	Amount     *decimal.Decimal
	Date       *string
	Note       *string
}

// ListEntries returns the owner's entries of kind, newest first
func (s *Service) ListEntries(ctx context.Context, kind domain.EntryKind, ownerID uint) ([]domain.Entry, error) {
	return s.repos.Entries(kind).List(ctx, ownerID, repository.EntryFilter{})
}

// GetEntry returns one of the owner's entries of kind
func (s *Service) GetEntry(ctx context.Context, kind domain.EntryKind, ownerID, id uint) (*domain.Entry, error) {
	return s.repos.Entries(kind).Get(ctx, ownerID, id)
}

// CreateEntry validates and stores a new income or expense
func (s *Service) CreateEntry(ctx context.Context, kind domain.EntryKind, ownerID uint, in EntryInput) (*domain.Entry, error) {
	e := &domain.Entry{Kind: kind, EntryFields: domain.EntryFields{UserID: ownerID}}
	if err := s.applyEntry(ctx, e, in, false); err != nil {
		return nil, err
	}
	if err := s.repos.Entries(kind).Create(ctx, e); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"entry_id":    e.ID,
		"kind":        kind.String(),
		"category_id": e.CategoryID,
		"amount":      e.Amount.StringFixed(2),
	}).Info("Entry created")
	return e, nil
}

// UpdateEntry validates the merged record and stores it; partial keeps unsupplied fields
func (s *Service) UpdateEntry(ctx context.Context, kind domain.EntryKind, ownerID, id uint, in EntryInput, partial bool) (*domain.Entry, error) {
	e, err := s.repos.Entries(kind).Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyEntry(ctx, e, in, partial); err != nil {
		return nil, err
	}
	if err := s.repos.Entries(kind).Update(ctx, e); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{
		"user_id":  ownerID,
		"entry_id": e.ID,
		"kind":     kind.String(),
		"amount":   e.Amount.StringFixed(2),
	}).Info("Entry updated")
	return e, nil
}

// DeleteEntry removes one of the owner's entries
func (s *Service) DeleteEntry(ctx context.Context, kind domain.EntryKind, ownerID, id uint) error {
	if err := s.repos.Entries(kind).Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, ownerID)
	logrus.WithFields(logrus.Fields{"user_id": ownerID, "entry_id": id, "kind": kind.String()}).Info("Entry deleted")
	return nil
}

// applyEntry runs the shared field checks, then the owner and kind checks, and copies in onto e
func (s *Service) applyEntry(ctx context.Context, e *domain.Entry, in EntryInput, partial bool) error {
	verr := &domain.ValidationError{}

	categoryID := e.CategoryID
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
	} else if !partial {
		verr.Add("category_id", msgRequired)
	}

	amount := e.Amount
	if in.Amount != nil {
		amount = *in.Amount
		for _, msg := range amountShapeErrors(amount) {
			verr.Add("amount", msg)
		}
	} else if !partial {
		verr.Add("amount", msgRequired)
	}

	date := e.Date
	if in.Date != nil {
		d, err := ParseDate(*in.Date)
		if err != nil {
			verr.Add("date", msgDateFormat)
		}
		date = d
	} else if !partial {
		verr.Add("date", msgRequired)
	}

	var category *domain.Category
	if in.CategoryID != nil {
		c, err := s.repos.Categories.Get(ctx, e.UserID, categoryID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			verr.Add("category_id", invalidPK(categoryID))
		case err != nil:
			return err
		default:
			category = c
		}
	} else {
		category = &e.Category
	}
	if !verr.Empty() {
		return verr
	}

	if !amount.IsPositive() {
		return domain.NewValidationError("amount", msgAmountPositive)
	}
	if !e.Kind.AcceptsCategory(*category) {
		return domain.NewValidationError("category_id", kindMismatch(e.Kind))
	}

	e.CategoryID = categoryID
	e.Category = *category
	e.Amount = amount.Round(maxAmountPlaces)
	e.Date = date
	if in.Note != nil {
		e.Note = *in.Note
	}
	return nil
}
