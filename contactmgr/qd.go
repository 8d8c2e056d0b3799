package contactmgr

import "github.com/encodeous/asabr/asabr"

// QDManager (queue-delay) combines EVL's residual volume pool with ETO's
// self-maintained booked-volume delay, but keeps the booked volume B as
// internal state grown only by Schedule: there is no external
// Enqueue/Dequeue surface, since a QD contact is never the first hop of a
// path (the transmitter is remote and its queue is not independently
// observable).
type QDManager struct {
	Rate           asabr.DataRate
	Delay          asabr.Duration
	PriorityLevels int
	Budgets        []asabr.Volume

	total  asabr.Volume
	booked asabr.Volume
	ledger priorityLedger
}

func NewQDManager(rate asabr.DataRate, delay asabr.Duration) *QDManager {
	return &QDManager{Rate: rate, Delay: delay}
}

func NewPriorityQDManager(rate asabr.DataRate, delay asabr.Duration, levels int, budgets []asabr.Volume) *QDManager {
	return &QDManager{Rate: rate, Delay: delay, PriorityLevels: levels, Budgets: budgets}
}

func (m *QDManager) TryInit(info asabr.ContactInfo) bool {
	if m.Rate <= 0 {
		return false
	}
	m.total = m.Rate * (info.End - info.Start)
	m.ledger = newPriorityLedger(m.PriorityLevels, m.Budgets)
	return true
}

func (m *QDManager) dryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, asabr.Volume, bool) {
	queueDelay := m.booked / m.Rate
	txStart := atTime
	if info.Start+queueDelay > txStart {
		txStart = info.Start + queueDelay
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

func (m *QDManager) DryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	res, _, ok := m.dryRun(info, atTime, bundle)
	return res, ok
}

func (m *QDManager) Schedule(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	res, size, ok := m.dryRun(info, atTime, bundle)
	if !ok {
		return res, false
	}
	m.booked += size
	m.ledger.book(size, bundle.Priority)
	return res, true
}

func (m *QDManager) OriginalVolume() asabr.Volume {
	return m.total
}
