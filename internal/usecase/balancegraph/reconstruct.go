package balancegraph

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// BalancePoint is a reconstructed point on the balance curve.
// Value is signed since inconsistent history can walk below zero.
type BalancePoint struct {
	Value     decimal.Decimal
	Timestamp time.Time
}

// movement is one balance-changing entry, with the amount to add to the running balance
// to undo its effect
type movement struct {
	timestamp time.Time
	undo      decimal.Decimal
}

// Reconstruct walks the history backwards from the present balance.
// The result is ordered newest first; each point holds the balance immediately before its entry.
// Reversal rules:
//   - done request: running - amount
//   - incoming boost or transfer: running - amount
//   - outgoing boost: running + amount
//   - outgoing transfer: running + amount + cost
//
// Requests that are not done are skipped. Entries sharing a timestamp keep the order
// requests, boosts, transfers.
func Reconstruct(
	balance domain.Amount,
	requests []domain.RequestEntry,
	boosts []domain.BoostEntry,
	transfers []domain.TransferEntry,
) []BalancePoint {
	movements := make([]movement, 0, len(requests)+len(boosts)+len(transfers))

	for _, r := range requests {
		if r.Status != domain.RequestStatusDone {
			continue
		}
		movements = append(movements, movement{timestamp: r.Timestamp, undo: r.Amount.Decimal().Neg()})
	}

	for _, b := range boosts {
		undo := b.Amount.Decimal()
		if b.Direction == domain.DirectionIncoming {
			undo = undo.Neg()
		}
		movements = append(movements, movement{timestamp: b.Timestamp, undo: undo})
	}

	for _, t := range transfers {
		undo := t.Amount.Decimal().Neg()
		if t.Direction == domain.DirectionOutgoing {
			undo = t.Amount.Decimal().Add(t.Cost.Decimal())
		}
		movements = append(movements, movement{timestamp: t.Timestamp, undo: undo})
	}

	slices.SortStableFunc(movements, func(a, b movement) int {
		return b.timestamp.Compare(a.timestamp)
	})

	points := make([]BalancePoint, 0, len(movements))
	running := balance.Decimal()
	for _, m := range movements {
		running = running.Add(m.undo)
		points = append(points, BalancePoint{Value: running, Timestamp: m.timestamp})
	}

	return points
}

// Series clips reconstructed points to a window and patches its boundaries.
// points must be ordered newest first, as returned by Reconstruct; they are not modified.
// The result starts with the present balance at w.Max, followed by every point newer than w.Min.
// The left edge is then pinned to w.Min:
//   - if history reaches back to w.Min, the newest point at or before w.Min is appended, relabelled at w.Min
//   - otherwise the oldest in-range point is relabelled at w.Min
func Series(points []BalancePoint, balance domain.Amount, w Window) []BalancePoint {
	series := make([]BalancePoint, 0, len(points)+2)
	series = append(series, BalancePoint{Value: balance.Decimal(), Timestamp: w.Max})

	for _, p := range points {
		if p.Timestamp.After(w.Min) {
			series = append(series, p)
		}
	}
	inRange := len(series) - 1

	switch {
	case len(points) > 0 && !points[len(points)-1].Timestamp.After(w.Min):
		for _, p := range points {
			if !p.Timestamp.After(w.Min) {
				series = append(series, BalancePoint{Value: p.Value, Timestamp: w.Min})
				break
			}
		}
	case inRange > 0:
		series[len(series)-1].Timestamp = w.Min
	}

	return series
}

// ReconstructBalanceSeries reconstructs the balance history and clips it to a window
func ReconstructBalanceSeries(
	balance domain.Amount,
	requests []domain.RequestEntry,
	boosts []domain.BoostEntry,
	transfers []domain.TransferEntry,
	w Window,
) []BalancePoint {
	return Series(Reconstruct(balance, requests, boosts, transfers), balance, w)
}
