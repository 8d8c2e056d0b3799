package contactmgr

import "github.com/encodeous/asabr/asabr"

// EVLManager tracks a contact's residual volume directly: tx_start is the
// later of atTime and the contact's start, and a bundle fits iff both the
// remaining time-window capacity and the residual volume can accommodate it.
//
// Setting PriorityLevels > 1 turns this into the P*/PB* family: Budgets nil
// gives plain per-priority accounting (P*), non-nil enforces a hard cap per
// level (PB*).
type EVLManager struct {
	Rate           asabr.DataRate
	Delay          asabr.Duration
	PriorityLevels int
	Budgets        []asabr.Volume

	total   asabr.Volume
	ledger  priorityLedger
}

func NewEVLManager(rate asabr.DataRate, delay asabr.Duration) *EVLManager {
	return &EVLManager{Rate: rate, Delay: delay}
}

func NewPriorityEVLManager(rate asabr.DataRate, delay asabr.Duration, levels int, budgets []asabr.Volume) *EVLManager {
	return &EVLManager{Rate: rate, Delay: delay, PriorityLevels: levels, Budgets: budgets}
}

func (m *EVLManager) TryInit(info asabr.ContactInfo) bool {
	if m.Rate <= 0 {
		return false
	}
	m.total = m.Rate * (info.End - info.Start)
	m.ledger = newPriorityLedger(m.PriorityLevels, m.Budgets)
	return true
}

func (m *EVLManager) dryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, asabr.Volume, bool) {
	txStart := atTime
	if info.Start > txStart {
		txStart = info.Start
	}
	if txStart >= info.End {
		return asabr.TxEndHopData{}, 0, false
	}
	timeCap := (info.End - txStart) * m.Rate
	usable := m.ledger.usable(m.total, bundle.Priority)
	available := timeCap
	if usable < available {
		available = usable
	}
	if bundle.Size > available {
		return asabr.TxEndHopData{}, 0, false
	}
	if m.ledger.overBudget(bundle.Size, bundle.Priority) {
		return asabr.TxEndHopData{}, 0, false
	}
	txEnd := txStart + bundle.Size/m.Rate
	return asabr.TxEndHopData{TxStart: txStart, TxEnd: txEnd, Delay: m.Delay}, bundle.Size, true
}

func (m *EVLManager) DryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	res, _, ok := m.dryRun(info, atTime, bundle)
	return res, ok
}

func (m *EVLManager) Schedule(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	res, size, ok := m.dryRun(info, atTime, bundle)
	if !ok {
		return res, false
	}
	m.ledger.book(size, bundle.Priority)
	return res, true
}

func (m *EVLManager) OriginalVolume() asabr.Volume {
	return m.total
}
