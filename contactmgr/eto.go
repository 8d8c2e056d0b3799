package contactmgr

import "github.com/encodeous/asabr/asabr"

// ETOManager tracks external queue occupancy Q: tx_start is delayed by
// however much is already queued ahead of this bundle at the contact's
// rate. Used only on first-hop contacts, where the transmitter is the local
// node and its outbound queue is visible.
//
// Occupancy grows automatically on Schedule (as if each commit implicitly
// enqueues); Dequeue is the explicit unwind hook a caller invokes after
// learning a previously committed transmission was aborted.
type ETOManager struct {
	Rate           asabr.DataRate
	Delay          asabr.Duration
	PriorityLevels int
	Budgets        []asabr.Volume
	QueueBound     asabr.Volume // 0 = unbounded

	queue  asabr.Volume
	ledger priorityLedger
}

func NewETOManager(rate asabr.DataRate, delay asabr.Duration) *ETOManager {
	return &ETOManager{Rate: rate, Delay: delay}
}

func NewPriorityETOManager(rate asabr.DataRate, delay asabr.Duration, levels int, budgets []asabr.Volume) *ETOManager {
	return &ETOManager{Rate: rate, Delay: delay, PriorityLevels: levels, Budgets: budgets}
}

func (m *ETOManager) TryInit(info asabr.ContactInfo) bool {
	if m.Rate <= 0 {
		return false
	}
	m.ledger = newPriorityLedger(m.PriorityLevels, m.Budgets)
	return true
}

func (m *ETOManager) dryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	if m.QueueBound > 0 && m.queue+bundle.Size > m.QueueBound {
		return asabr.TxEndHopData{}, false
	}
	txStart := atTime
	queueDelay := m.queue / m.Rate
	if info.Start+queueDelay > txStart {
		txStart = info.Start + queueDelay
	}
	if txStart >= info.End {
		return asabr.TxEndHopData{}, false
	}
	txEnd := txStart + bundle.Size/m.Rate
	if txEnd > info.End {
		return asabr.TxEndHopData{}, false
	}
	if m.ledger.overBudget(bundle.Size, bundle.Priority) {
		return asabr.TxEndHopData{}, false
	}
	return asabr.TxEndHopData{TxStart: txStart, TxEnd: txEnd, Delay: m.Delay}, true
}

func (m *ETOManager) DryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	return m.dryRun(info, atTime, bundle)
}

func (m *ETOManager) Schedule(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	res, ok := m.dryRun(info, atTime, bundle)
	if !ok {
		return res, false
	}
	m.queue += bundle.Size
	m.ledger.book(bundle.Size, bundle.Priority)
	return res, true
}

// Enqueue grows the tracked external queue occupancy without going through
// Schedule, for callers that manage the queue outside of routing commits.
func (m *ETOManager) Enqueue(size asabr.Volume) {
	m.queue += size
}

// Dequeue reverses queue occupancy after a previously committed
// transmission is learned to have been aborted.
func (m *ETOManager) Dequeue(size asabr.Volume) {
	m.queue -= size
	if m.queue < 0 {
		m.queue = 0
	}
}
