package contactplan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/contactmgr"
	"github.com/encodeous/asabr/nodemgr"
)

// tokenize strips '#' comment lines and splits the remainder on whitespace
// (including newlines), matching the native format's free-form layout.
func tokenize(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var tokens []string
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens, scanner.Err()
}

func isKeyword(tok string) bool {
	return tok == "node" || tok == "contact"
}

// ASABRLexer parses the native A-SABR contact plan format: `node <id>
// <name>` and `contact <from> <to> <start> <end> [<marker>]
// <manager-specific tokens>` records.
type ASABRLexer struct {
	// ContactManagers dispatches a contact line's trailing tokens to a
	// manager constructor by marker. Required when a plan mixes manager
	// kinds; a plan with a single manager kind may omit the marker token
	// and register it under the empty-string key.
	ContactManagers ManagerDispatcher[asabr.ContactManager]
}

// NewASABRLexer returns a lexer preloaded with the standard manager
// constructors (EVL/ETO/QD/Segmentation and their priority/budget
// variants), keyed by the markers documented in the external-interfaces
// section of the contact plan format.
func NewASABRLexer() *ASABRLexer {
	return &ASABRLexer{ContactManagers: defaultContactManagers()}
}

func defaultContactManagers() ManagerDispatcher[asabr.ContactManager] {
	return ManagerDispatcher[asabr.ContactManager]{
		"":             parseEVLFields,
		"EVL":          parseEVLFields,
		"ETO":          parseETOFields,
		"QD":           parseQDFields,
		"Segmentation": parseSegmentationFields,
	}
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d numeric fields, got %d: %w", n, len(fields), asabrerr.ParseError)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed numeric field %q: %w", fields[i], asabrerr.ParseError)
		}
		out[i] = v
	}
	return out, nil
}

func parseBudgets(fields []string) []asabr.Volume {
	if len(fields) == 0 {
		return nil
	}
	budgets := make([]asabr.Volume, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		budgets[i] = asabr.Volume(v)
	}
	return budgets
}

func parseEVLFields(fields []string) (asabr.ContactManager, error) {
	vals, err := parseFloats(fields, 2)
	if err != nil {
		return nil, err
	}
	budgets := parseBudgets(fields[2:])
	if budgets != nil {
		return contactmgr.NewPriorityEVLManager(asabr.DataRate(vals[0]), asabr.Duration(vals[1]), len(budgets), budgets), nil
	}
	return contactmgr.NewEVLManager(asabr.DataRate(vals[0]), asabr.Duration(vals[1])), nil
}

func parseETOFields(fields []string) (asabr.ContactManager, error) {
	vals, err := parseFloats(fields, 2)
	if err != nil {
		return nil, err
	}
	budgets := parseBudgets(fields[2:])
	if budgets != nil {
		return contactmgr.NewPriorityETOManager(asabr.DataRate(vals[0]), asabr.Duration(vals[1]), len(budgets), budgets), nil
	}
	return contactmgr.NewETOManager(asabr.DataRate(vals[0]), asabr.Duration(vals[1])), nil
}

func parseQDFields(fields []string) (asabr.ContactManager, error) {
	vals, err := parseFloats(fields, 2)
	if err != nil {
		return nil, err
	}
	budgets := parseBudgets(fields[2:])
	if budgets != nil {
		return contactmgr.NewPriorityQDManager(asabr.DataRate(vals[0]), asabr.Duration(vals[1]), len(budgets), budgets), nil
	}
	return contactmgr.NewQDManager(asabr.DataRate(vals[0]), asabr.Duration(vals[1])), nil
}

// parseSegmentationFields reads a flat sequence of "rate <s> <e> <r>" and
// "delay <s> <e> <d>" groups, in any order and any count.
func parseSegmentationFields(fields []string) (asabr.ContactManager, error) {
	var rates, delays []contactmgr.RateDelayInterval
	i := 0
	for i < len(fields) {
		switch fields[i] {
		case "rate":
			vals, err := parseFloats(fields[i+1:], 3)
			if err != nil {
				return nil, err
			}
			rates = append(rates, contactmgr.RateDelayInterval{Start: asabr.Date(vals[0]), Rate: asabr.DataRate(vals[2])})
			i += 4
		case "delay":
			vals, err := parseFloats(fields[i+1:], 3)
			if err != nil {
				return nil, err
			}
			delays = append(delays, contactmgr.RateDelayInterval{Start: asabr.Date(vals[0]), Delay: asabr.Duration(vals[2])})
			i += 4
		default:
			return nil, fmt.Errorf("unexpected segmentation token %q: %w", fields[i], asabrerr.ParseError)
		}
	}
	return contactmgr.NewSegmentationManager(rates, delays), nil
}

// Parse reads a complete native-format contact plan from r.
func (l *ASABRLexer) Parse(r io.Reader) (Plan, error) {
	tokens, err := tokenize(r)
	if err != nil {
		return Plan{}, err
	}
	dispatch := l.ContactManagers
	if dispatch == nil {
		dispatch = defaultContactManagers()
	}

	var plan Plan
	tracker := newDuplicateTracker()

	pos := 0
	for pos < len(tokens) {
		switch tokens[pos] {
		case "node":
			pos++
			if pos+1 >= len(tokens) {
				return Plan{}, fmt.Errorf("truncated node record: %w", asabrerr.ParseError)
			}
			id, err := strconv.Atoi(tokens[pos])
			if err != nil {
				return Plan{}, fmt.Errorf("malformed node id %q: %w", tokens[pos], asabrerr.ParseError)
			}
			name := tokens[pos+1]
			pos += 2
			info := asabr.NodeInfo{ID: asabr.NodeID(id), Name: name}
			if err := tracker.addNode(info); err != nil {
				return Plan{}, err
			}
			plan.Nodes = append(plan.Nodes, asabr.NewNode(info, nodemgr.NoManagement{}))

		case "contact":
			pos++
			if pos+4 > len(tokens) {
				return Plan{}, fmt.Errorf("truncated contact record: %w", asabrerr.ParseError)
			}
			vals, err := parseFloats(tokens[pos:pos+4], 4)
			if err != nil {
				return Plan{}, err
			}
			pos += 4
			marker := ""
			if pos < len(tokens) {
				if _, ok := dispatch[tokens[pos]]; ok && !isKeyword(tokens[pos]) {
					marker = tokens[pos]
					pos++
				}
			}
			end := pos
			for end < len(tokens) && !isKeyword(tokens[end]) {
				end++
			}
			fields := tokens[pos:end]
			pos = end

			ctor, ok := dispatch[marker]
			if !ok {
				return Plan{}, fmt.Errorf("unrecognized contact manager marker %q: %w", marker, asabrerr.ParseError)
			}
			manager, err := ctor(fields)
			if err != nil {
				return Plan{}, err
			}
			info := asabr.ContactInfo{
				Tx:    asabr.NodeID(vals[0]),
				Rx:    asabr.NodeID(vals[1]),
				Start: asabr.Date(vals[2]),
				End:   asabr.Date(vals[3]),
			}
			tracker.addContact(info)
			contact, err := asabr.NewContact(info, manager)
			if err != nil {
				return Plan{}, fmt.Errorf("%v: %w", err, asabrerr.ParseError)
			}
			plan.Contacts = append(plan.Contacts, contact)

		default:
			return Plan{}, fmt.Errorf("unrecognized contact plan element %q: %w", tokens[pos], asabrerr.ParseError)
		}
	}

	if err := tracker.validate(len(plan.Nodes)); err != nil {
		return Plan{}, err
	}
	return plan, nil
}
