package contactplan

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/nodemgr"
)

// TVGUtil reads the JSON graph format produced by the tvg-util generator:
// a "vertices" object mapping name to metadata, and an "edges" array of
// per-node-pair contact lists. Each contact entry nests a list of
// confidence-tagged rate/delay generations; TVGUtil takes only the first
// generation of each, matching the teacher corpus's own tvg-util reader.
// TVGUtil forces a single contact-manager type, built by NewManager.
type TVGUtil struct {
	NewManager func(rate asabr.DataRate, delay asabr.Duration) (asabr.ContactManager, error)
}

type tvgUtilDoc struct {
	Vertices map[string]json.RawMessage `json:"vertices"`
	Edges    []tvgUtilEdge              `json:"edges"`
}

type tvgUtilEdge struct {
	Vertices []string        `json:"vertices"`
	Contacts [][]json.RawMessage `json:"contacts"`
}

func (p TVGUtil) Parse(r io.Reader) (Plan, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Plan{}, err
	}
	var doc tvgUtilDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Plan{}, fmt.Errorf("malformed tvg-util document: %w", asabrerr.ParseError)
	}

	aliasID := map[string]asabr.NodeID{}
	var nodes []asabr.Node
	for name := range doc.Vertices {
		id := asabr.NodeID(len(aliasID))
		aliasID[name] = id
		nodes = append(nodes, asabr.NewNode(asabr.NodeInfo{ID: id, Name: name}, nodemgr.NoManagement{}))
	}
	// Rebuild in ID order: Go map iteration is unordered, but nodes were
	// appended in assignment order above, so a stable sort by ID suffices.
	ordered := make([]asabr.Node, len(nodes))
	for _, n := range nodes {
		ordered[n.Info.ID] = n
	}
	nodes = ordered

	plan := Plan{Nodes: nodes}
	for _, edge := range doc.Edges {
		if len(edge.Vertices) != 2 {
			return Plan{}, fmt.Errorf("edge missing a vertex pair: %w", asabrerr.ParseError)
		}
		tx, ok1 := aliasID[edge.Vertices[0]]
		rx, ok2 := aliasID[edge.Vertices[1]]
		if !ok1 || !ok2 {
			return Plan{}, fmt.Errorf("edge references unknown vertex: %w", asabrerr.ParseError)
		}
		for _, entry := range edge.Contacts {
			contact, err := p.parseContact(tx, rx, entry)
			if err != nil {
				return Plan{}, err
			}
			plan.Contacts = append(plan.Contacts, contact)
		}
	}
	return plan, nil
}

// parseContact decodes one [_, _, start, end, [[_, confidence, [[_, rate,
// delay]]]]] contact array, using only the first rate/delay generation.
func (p TVGUtil) parseContact(tx, rx asabr.NodeID, entry []json.RawMessage) (*asabr.Contact, error) {
	if len(entry) < 5 {
		return nil, fmt.Errorf("truncated tvg-util contact entry: %w", asabrerr.ParseError)
	}
	var start, end float64
	if err := json.Unmarshal(entry[2], &start); err != nil {
		return nil, fmt.Errorf("malformed contact start: %w", asabrerr.ParseError)
	}
	if err := json.Unmarshal(entry[3], &end); err != nil {
		return nil, fmt.Errorf("malformed contact end: %w", asabrerr.ParseError)
	}

	var firstLevel [][]json.RawMessage
	if err := json.Unmarshal(entry[4], &firstLevel); err != nil || len(firstLevel) == 0 {
		return nil, fmt.Errorf("malformed contact generation list: %w", asabrerr.ParseError)
	}
	secondLevel := firstLevel[0]
	if len(secondLevel) < 3 {
		return nil, fmt.Errorf("malformed contact confidence entry: %w", asabrerr.ParseError)
	}

	var thirdLevel [][]json.RawMessage
	if err := json.Unmarshal(secondLevel[2], &thirdLevel); err != nil || len(thirdLevel) == 0 {
		return nil, fmt.Errorf("malformed rate/delay generation list: %w", asabrerr.ParseError)
	}
	fourthLevel := thirdLevel[0]
	if len(fourthLevel) < 3 {
		return nil, fmt.Errorf("malformed rate/delay entry: %w", asabrerr.ParseError)
	}
	var rate, delay float64
	if err := json.Unmarshal(fourthLevel[1], &rate); err != nil {
		return nil, fmt.Errorf("malformed data rate: %w", asabrerr.ParseError)
	}
	if err := json.Unmarshal(fourthLevel[2], &delay); err != nil {
		return nil, fmt.Errorf("malformed delay: %w", asabrerr.ParseError)
	}

	manager, err := p.NewManager(asabr.DataRate(rate), asabr.Duration(delay))
	if err != nil {
		return nil, err
	}
	info := asabr.ContactInfo{Tx: tx, Rx: rx, Start: asabr.Date(start), End: asabr.Date(end)}
	contact, err := asabr.NewContact(info, manager)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, asabrerr.ParseError)
	}
	return contact, nil
}
