package service

import (
	"context"
	"sort"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/repository"

	"golang.org/x/sync/errgroup"
)

// TransactionFilter narrows the merged feed; IsIncome nil returns both kinds
type TransactionFilter struct {
	repository.EntryFilter
	IsIncome *bool
}

// Transactions merges the owner's incomes and expenses, newest first.
// Incomes in the "Balance" category never appear in the feed.
func (s *Service) Transactions(ctx context.Context, ownerID uint, f TransactionFilter) ([]domain.Entry, error) {
	var incomes, expenses []domain.Entry
	g, gctx := errgroup.WithContext(ctx)
	if f.IsIncome == nil || *f.IsIncome {
		g.Go(func() error {
			filter := f.EntryFilter
			filter.ExcludeBalance = true
			var err error
			incomes, err = s.repos.Incomes.List(gctx, ownerID, filter)
			return err
		})
	}
	if f.IsIncome == nil || !*f.IsIncome {
		g.Go(func() error {
			var err error
			expenses, err = s.repos.Expenses.List(gctx, ownerID, f.EntryFilter)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feed := make([]domain.Entry, 0, len(incomes)+len(expenses))
	feed = append(feed, incomes...)
	feed = append(feed, expenses...)
	sort.SliceStable(feed, func(i, j int) bool {
		if !feed[i].Date.Equal(feed[j].Date) {
			return feed[i].Date.After(feed[j].Date)
		}
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed, nil
}
