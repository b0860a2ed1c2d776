package services

import (
	"context"
	"fmt"
	"time"

	"barberia/internal/core"
	"barberia/internal/store"
)

// ResultsView is one fully aggregated results screen: the scope-filtered
// transactions newest-first context, their totals and the calendar-month
// periods.
type ResultsView struct {
	Scope   core.ResultScope `json:"scope"`
	Totals  core.Totals      `json:"totals"`
	Periods []core.Period    `json:"periods"`
}

// ResultsService computes aggregated views from a raw store snapshot. It is
// stateless: every call re-reads the store and recomputes from scratch.
type ResultsService struct {
	lister store.RawLister
	now    func() time.Time
}

func NewResultsService(lister store.RawLister) *ResultsService {
	return &ResultsService{lister: lister, now: time.Now}
}

// Transactions returns the normalized scope-filtered snapshot, in store
// order.
func (s *ResultsService) Transactions(ctx context.Context, scope core.ResultScope) ([]core.Transaction, error) {
	raws, err := s.lister.ListRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("list raw transactions: %w", err)
	}

	txs := core.NormalizeAll(raws, s.now)
	return core.FilterByScope(txs, scope), nil
}

// Results builds the aggregated view for the scope.
func (s *ResultsService) Results(ctx context.Context, scope core.ResultScope) (ResultsView, error) {
	txs, err := s.Transactions(ctx, scope)
	if err != nil {
		return ResultsView{}, err
	}

	// Transactions already applied the scope filter.
	return ResultsView{
		Scope:   scope,
		Totals:  core.ComputeTotals(txs, core.ScopeAll),
		Periods: core.GroupByPeriod(txs),
	}, nil
}
