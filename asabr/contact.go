package asabr

import "fmt"

// ContactInfo is the static, immutable description of one scheduled
// transmission opportunity between two nodes.
type ContactInfo struct {
	Tx    NodeID
	Rx    NodeID
	Start Date
	End   Date
}

func (ci ContactInfo) valid() bool {
	return ci.Start < ci.End
}

// Contact pairs a ContactInfo with its resource manager. WorkArea is
// non-nil only while a contact-parenting Dijkstra run is in progress; it
// caches the best-known RouteStage reaching this contact plus a
// cycle-prevention marker, and is always reset to nil before a run
// finishes (see pathfinding.ContactParenting).
type Contact struct {
	Info      ContactInfo
	Manager   ContactManager
	WorkArea  *ContactWorkArea
	Suppressed bool
}

// ContactWorkArea is per-contact Dijkstra scratch state used only by
// contact-parenting pathfinding.
type ContactWorkArea struct {
	Best       *RouteStage
	VisitedTx  bool
	VisitedRx  bool
}

// NewContact constructs and validates a Contact; it returns an error if the
// contact's own interval is malformed or if the manager rejects try_init.
func NewContact(info ContactInfo, manager ContactManager) (*Contact, error) {
	if !info.valid() {
		return nil, fmt.Errorf("contact %d->%d has start %.3f >= end %.3f", info.Tx, info.Rx, info.Start, info.End)
	}
	if !manager.TryInit(info) {
		return nil, fmt.Errorf("contact %d->%d: manager rejected try_init", info.Tx, info.Rx)
	}
	return &Contact{Info: info, Manager: manager}, nil
}

// Less orders contacts by (tx, rx, start), the order the Multigraph and the
// plan parsers sort contacts by.
func (c *Contact) Less(other *Contact) bool {
	if c.Info.Tx != other.Info.Tx {
		return c.Info.Tx < other.Info.Tx
	}
	if c.Info.Rx != other.Info.Rx {
		return c.Info.Rx < other.Info.Rx
	}
	return c.Info.Start < other.Info.Start
}
