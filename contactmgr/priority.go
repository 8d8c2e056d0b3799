// Package contactmgr provides the concrete ContactManager implementations:
// EVL (residual volume), ETO (external queue occupancy), QD (booked
// volume + residual), and Segmentation (per-interval rate/delay), each
// optionally extended with per-priority accounting (P* variants) and
// per-priority budgets (PB* variants).
package contactmgr

import (
	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/metrics"
)

// priorityLedger tracks, per priority level, how much volume has been
// booked against a shared residual pool. A bundle at priority p may use any
// volume not already booked at level p or at a higher priority level
// (bookings at lower levels are not counted against it); its own booking additionally may not
// exceed budgets[p] when budgets is non-nil (the PB* variants).
//
// When levels is 0 the ledger degenades to plain, priority-blind volume
// accounting (the base EVL/ETO/QD managers).
type priorityLedger struct {
	levels  int
	booked  []asabr.Volume
	budgets []asabr.Volume // nil => unbounded (P* variants)
}

func newPriorityLedger(levels int, budgets []asabr.Volume) priorityLedger {
	if levels <= 0 {
		levels = 1
	}
	return priorityLedger{levels: levels, booked: make([]asabr.Volume, levels), budgets: budgets}
}

// usable returns how much of total remains available to priority p: the
// total pool minus whatever is booked at p and at every priority above p.
func (l *priorityLedger) usable(total asabr.Volume, p asabr.Priority) asabr.Volume {
	idx := l.index(p)
	avail := total
	for q := idx + 1; q < l.levels; q++ {
		avail -= l.booked[q]
	}
	avail -= l.booked[idx]
	if avail < 0 {
		avail = 0
	}
	return avail
}

// overBudget reports whether booking size more at priority p would exceed
// that priority's budget (always false when unbudgeted).
func (l *priorityLedger) overBudget(size asabr.Volume, p asabr.Priority) bool {
	if l.budgets == nil {
		return false
	}
	idx := l.index(p)
	if idx >= len(l.budgets) {
		return false
	}
	over := l.booked[idx]+size > l.budgets[idx]
	if over {
		metrics.OverbookedRejections.Add(1)
	}
	return over
}

func (l *priorityLedger) book(size asabr.Volume, p asabr.Priority) {
	l.booked[l.index(p)] += size
}

func (l *priorityLedger) unbook(size asabr.Volume, p asabr.Priority) {
	idx := l.index(p)
	l.booked[idx] -= size
	if l.booked[idx] < 0 {
		l.booked[idx] = 0
	}
}

func (l *priorityLedger) index(p asabr.Priority) int {
	idx := int(p)
	if idx >= l.levels {
		idx = l.levels - 1
	}
	return idx
}
