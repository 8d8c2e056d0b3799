// Package contactplan ingests a contact plan — the node and contact list
// describing a network's schedule — from one of several source formats
// into the domain types the router operates on.
package contactplan

import (
	"fmt"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
)

// ManagerDispatcher maps a contact plan's per-line manager marker token
// (e.g. "EVL", "ETO") to a constructor building a ContactManager from the
// line's remaining fields. Plans that use a single manager kind throughout
// (ION, TVG-Util) bypass dispatch entirely and call one constructor
// directly.
type ManagerDispatcher[T any] map[string]func(fields []string) (T, error)

// Plan is the parsed result: a dense, ID-ordered node list and the
// contacts between them.
type Plan struct {
	Nodes    []asabr.Node
	Contacts []*asabr.Contact
}

// duplicateTracker enforces the invariants the native lexer and
// RawPlan.Resolve check: node IDs and names must be unique, and the highest node ID
// referenced by a contact must match the highest node ID declared.
type duplicateTracker struct {
	knownIDs       map[asabr.NodeID]bool
	knownNames     map[string]bool
	maxIDInNodes   int
	maxIDInContact int
}

func newDuplicateTracker() *duplicateTracker {
	return &duplicateTracker{knownIDs: map[asabr.NodeID]bool{}, knownNames: map[string]bool{}}
}

func (t *duplicateTracker) addNode(info asabr.NodeInfo) error {
	if t.knownIDs[info.ID] {
		return fmt.Errorf("duplicate node id %d: %w", info.ID, asabrerr.ParseError)
	}
	if info.Name != "" && t.knownNames[info.Name] {
		return fmt.Errorf("duplicate node name %q: %w", info.Name, asabrerr.ParseError)
	}
	t.knownIDs[info.ID] = true
	if info.Name != "" {
		t.knownNames[info.Name] = true
	}
	if int(info.ID) > t.maxIDInNodes {
		t.maxIDInNodes = int(info.ID)
	}
	return nil
}

func (t *duplicateTracker) addContact(info asabr.ContactInfo) {
	if m := max(int(info.Tx), int(info.Rx)); m > t.maxIDInContact {
		t.maxIDInContact = m
	}
}

func (t *duplicateTracker) validate(nodeCount int) error {
	if t.maxIDInContact != t.maxIDInNodes {
		return fmt.Errorf("max node id in contacts (%d) does not match max node id in node declarations (%d): %w", t.maxIDInContact, t.maxIDInNodes, asabrerr.ParseError)
	}
	if nodeCount-1 != t.maxIDInNodes {
		return fmt.Errorf("some node declarations are missing: %w", asabrerr.ParseError)
	}
	return nil
}
