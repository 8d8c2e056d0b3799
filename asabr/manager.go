package asabr

// TxEndHopData is the result of a feasible transmission attempt on one
// contact: when transmission would start and end, the propagation delay
// applied, and the resulting arrival time at the receiver.
type TxEndHopData struct {
	TxStart Date
	TxEnd   Date
	Delay   Duration
}

// Arrival is the time the bundle reaches the receiver of the contact.
func (d TxEndHopData) Arrival() Date {
	return d.TxEnd + d.Delay
}

// ContactManager owns the resource state of one contact: residual volume,
// queue occupancy, or segmented bandwidth, depending on implementation. All
// dry-run methods must be side-effect free and idempotent; schedule methods
// commit and must agree with the immediately preceding dry-run.
type ContactManager interface {
	// TryInit validates and caches derived constants after construction.
	// Returns false if the contact/manager parameters are invalid.
	TryInit(info ContactInfo) bool

	// DryRun simulates transmitting bundle no earlier than atTime, without
	// mutating persistent state. Returns ok=false if infeasible.
	DryRun(info ContactInfo, atTime Date, bundle *Bundle) (TxEndHopData, bool)

	// Schedule commits a transmission that must match the result of an
	// immediately preceding DryRun with identical arguments.
	Schedule(info ContactInfo, atTime Date, bundle *Bundle) (TxEndHopData, bool)
}

// VolumeReporter is an optional ContactManager capability required by the
// FirstDepleted alternative pathfinding strategy.
type VolumeReporter interface {
	OriginalVolume() Volume
}

// Queueable is an optional ContactManager capability used by ETOManager-style
// externally tracked transmission queues.
type Queueable interface {
	Enqueue(size Volume)
	Dequeue(size Volume)
}

// NodeManager gates what may happen at a node: reception, transmission and
// processing. Concrete gates (NoManagement, NoRetention, Compressing, ...)
// implement this in nodemgr.
type NodeManager interface {
	DryRunRx(start, end Date, bundle *Bundle) bool
	ScheduleRx(start, end Date, bundle *Bundle) bool

	DryRunTx(waitingSince, start, end Date, bundle *Bundle) bool
	ScheduleTx(waitingSince, start, end Date, bundle *Bundle) bool

	// DryRunProcess may report a mutated bundle (the caller owns
	// clone-on-write) and returns the earliest transmission time
	// accounting for processing delay.
	DryRunProcess(atTime Date, bundle *Bundle) (Bundle, Date)
	ScheduleProcess(atTime Date, bundle *Bundle) (Bundle, Date)
}
