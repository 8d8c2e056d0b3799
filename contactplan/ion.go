package contactplan

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/nodemgr"
)

type ionContact struct {
	txStart, txEnd  asabr.Date
	tx, rx          asabr.NodeID
	rate            asabr.DataRate
	delay           asabr.Duration
	delayAssigned   bool
}

// ION is the read-only ION contact-plan adapter: it reads `a contact` lines
// (tx/rx/start/end/rate) and `a range` lines (tx/rx/start/end/delay),
// pairing each contact with exactly one covering range — no coalescing,
// and a contact left without a covering range is a parse error. ION plans
// force a single contact-manager type, built by NewManager for every
// parsed contact.
type ION struct {
	NewManager func(rate asabr.DataRate, delay asabr.Duration) (asabr.ContactManager, error)
}

func (p ION) Parse(r io.Reader) (Plan, error) {
	scanner := bufio.NewScanner(r)
	aliasID := map[string]asabr.NodeID{}
	var nodes []asabr.Node

	nodeIDFor := func(alias string) asabr.NodeID {
		if id, ok := aliasID[alias]; ok {
			return id
		}
		id := asabr.NodeID(len(nodes))
		aliasID[alias] = id
		nodes = append(nodes, asabr.NewNode(asabr.NodeInfo{ID: id, Name: alias}, nodemgr.NoManagement{}))
		return id
	}

	byPair := map[asabr.NodeID]map[asabr.NodeID][]*ionContact{}
	var contactCount int

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || words[0] != "a" {
			continue
		}
		switch words[1] {
		case "contact":
			if len(words) < 7 {
				return Plan{}, fmt.Errorf("truncated ion contact line: %w", asabrerr.ParseError)
			}
			start, err1 := strconv.ParseFloat(words[2], 64)
			end, err2 := strconv.ParseFloat(words[3], 64)
			rate, err3 := strconv.ParseFloat(words[6], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return Plan{}, fmt.Errorf("malformed ion contact line: %w", asabrerr.ParseError)
			}
			tx, rx := nodeIDFor(words[4]), nodeIDFor(words[5])
			contactCount++
			if byPair[tx] == nil {
				byPair[tx] = map[asabr.NodeID][]*ionContact{}
			}
			byPair[tx][rx] = append(byPair[tx][rx], &ionContact{
				txStart: asabr.Date(start), txEnd: asabr.Date(end),
				tx: tx, rx: rx, rate: asabr.DataRate(rate),
			})
		case "range":
			if len(words) < 7 {
				return Plan{}, fmt.Errorf("truncated ion range line: %w", asabrerr.ParseError)
			}
			start, err1 := strconv.ParseFloat(words[2], 64)
			end, err2 := strconv.ParseFloat(words[3], 64)
			delay, err3 := strconv.ParseFloat(words[6], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return Plan{}, fmt.Errorf("malformed ion range line: %w", asabrerr.ParseError)
			}
			tx, rx := nodeIDFor(words[4]), nodeIDFor(words[5])
			matched := false
			for _, c := range byPair[tx][rx] {
				if asabr.Date(start) <= c.txStart && c.txEnd <= asabr.Date(end) {
					if c.delayAssigned {
						return Plan{}, fmt.Errorf("ion parser only supports one range per contact: %w", asabrerr.ParseError)
					}
					c.delay = asabr.Duration(delay)
					c.delayAssigned = true
					matched = true
				}
			}
			_ = matched
		}
	}
	if err := scanner.Err(); err != nil {
		return Plan{}, err
	}

	var allContacts []*ionContact
	for _, byRx := range byPair {
		for _, list := range byRx {
			sort.Slice(list, func(i, j int) bool { return list[i].txStart < list[j].txStart })
			allContacts = append(allContacts, list...)
		}
	}

	plan := Plan{Nodes: nodes}
	for _, c := range allContacts {
		if !c.delayAssigned {
			return Plan{}, fmt.Errorf("contact %d->%d has no covering range: %w", c.tx, c.rx, asabrerr.ParseError)
		}
		manager, err := p.NewManager(c.rate, c.delay)
		if err != nil {
			return Plan{}, err
		}
		info := asabr.ContactInfo{Tx: c.tx, Rx: c.rx, Start: c.txStart, End: c.txEnd}
		contact, err := asabr.NewContact(info, manager)
		if err != nil {
			return Plan{}, fmt.Errorf("%v: %w", err, asabrerr.ParseError)
		}
		plan.Contacts = append(plan.Contacts, contact)
	}
	if len(plan.Contacts) != contactCount {
		return Plan{}, fmt.Errorf("at least one contact has no range: %w", asabrerr.ParseError)
	}
	return plan, nil
}
