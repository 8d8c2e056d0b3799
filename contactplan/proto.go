package contactplan

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/nodemgr"
)

func uint64FromFloat(f float64) uint64 { return math.Float64bits(f) }
func floatFromUint64(v uint64) float64 { return math.Float64frombits(v) }
func formatFloat(f float64) string     { return strconv.FormatFloat(f, 'g', -1, 64) }

// RawNode and RawContact mirror one "node"/"contact" record from the native
// lexer before a manager is constructed from its fields — this is the level
// the binary export operates at, so a plan can cross a process boundary
// without the sender and receiver agreeing on anything beyond the marker
// dispatch table.
type RawNode struct {
	ID   asabr.NodeID
	Name string
}

type RawContact struct {
	Tx, Rx     asabr.NodeID
	Start, End asabr.Date
	Marker     string
	Fields     []float64
}

// RawPlan is the wire-level analogue of Plan: contacts are still markers
// plus numeric fields, not yet resolved into live ContactManagers.
type RawPlan struct {
	Nodes    []RawNode
	Contacts []RawContact
}

// ParseRaw tokenizes a native-format contact plan the same way Parse does,
// but records each contact's marker and numeric fields instead of invoking
// a manager constructor — the result can be shipped with EncodeRawPlan and
// resolved into a Plan later, possibly by a different process.
func (l *ASABRLexer) ParseRaw(r io.Reader) (RawPlan, error) {
	tokens, err := tokenize(r)
	if err != nil {
		return RawPlan{}, err
	}
	dispatch := l.ContactManagers
	if dispatch == nil {
		dispatch = defaultContactManagers()
	}

	var raw RawPlan
	pos := 0
	for pos < len(tokens) {
		switch tokens[pos] {
		case "node":
			pos++
			if pos+1 >= len(tokens) {
				return RawPlan{}, fmt.Errorf("truncated node record: %w", asabrerr.ParseError)
			}
			id, err := parseFloats(tokens[pos:pos+1], 1)
			if err != nil {
				return RawPlan{}, err
			}
			raw.Nodes = append(raw.Nodes, RawNode{ID: asabr.NodeID(id[0]), Name: tokens[pos+1]})
			pos += 2

		case "contact":
			pos++
			if pos+4 > len(tokens) {
				return RawPlan{}, fmt.Errorf("truncated contact record: %w", asabrerr.ParseError)
			}
			vals, err := parseFloats(tokens[pos:pos+4], 4)
			if err != nil {
				return RawPlan{}, err
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
			fields, err := parseRawFields(tokens[pos:end])
			if err != nil {
				return RawPlan{}, err
			}
			pos = end
			raw.Contacts = append(raw.Contacts, RawContact{
				Tx: asabr.NodeID(vals[0]), Rx: asabr.NodeID(vals[1]),
				Start: asabr.Date(vals[2]), End: asabr.Date(vals[3]),
				Marker: marker, Fields: fields,
			})

		default:
			return RawPlan{}, fmt.Errorf("unrecognized contact plan element %q: %w", tokens[pos], asabrerr.ParseError)
		}
	}
	return raw, nil
}

func parseRawFields(fields []string) ([]float64, error) {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseFloats([]string{f}, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, v[0])
	}
	return out, nil
}

// Resolve dispatches every raw contact's marker and fields through dispatch,
// producing a Plan the same way ASABRLexer.Parse would have.
func (raw RawPlan) Resolve(dispatch ManagerDispatcher[asabr.ContactManager]) (Plan, error) {
	if dispatch == nil {
		dispatch = defaultContactManagers()
	}
	var plan Plan
	tracker := newDuplicateTracker()
	for _, n := range raw.Nodes {
		info := asabr.NodeInfo{ID: n.ID, Name: n.Name}
		if err := tracker.addNode(info); err != nil {
			return Plan{}, err
		}
		plan.Nodes = append(plan.Nodes, asabr.NewNode(info, nodemgr.NoManagement{}))
	}
	for _, c := range raw.Contacts {
		ctor, ok := dispatch[c.Marker]
		if !ok {
			return Plan{}, fmt.Errorf("unrecognized contact manager marker %q: %w", c.Marker, asabrerr.ParseError)
		}
		fields := make([]string, len(c.Fields))
		for i, f := range c.Fields {
			fields[i] = formatFloat(f)
		}
		manager, err := ctor(fields)
		if err != nil {
			return Plan{}, err
		}
		info := asabr.ContactInfo{Tx: c.Tx, Rx: c.Rx, Start: c.Start, End: c.End}
		tracker.addContact(info)
		contact, err := asabr.NewContact(info, manager)
		if err != nil {
			return Plan{}, fmt.Errorf("%v: %w", err, asabrerr.ParseError)
		}
		plan.Contacts = append(plan.Contacts, contact)
	}
	if err := tracker.validate(len(plan.Nodes)); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Wire layout (hand-encoded against the protobuf wire format, since this
// module never invokes protoc): RawPlan{ nodes=1 (repeated, embedded),
// contacts=2 (repeated, embedded) }, RawNode{ id=1 (varint), name=2 (bytes) },
// RawContact{ tx=1, rx=2 (varint), start=3, end=4 (fixed64 double),
// marker=5 (bytes), fields=6 (repeated fixed64 double) }.

const (
	fieldPlanNodes    = protowire.Number(1)
	fieldPlanContacts = protowire.Number(2)

	fieldNodeID   = protowire.Number(1)
	fieldNodeName = protowire.Number(2)

	fieldContactTx     = protowire.Number(1)
	fieldContactRx     = protowire.Number(2)
	fieldContactStart  = protowire.Number(3)
	fieldContactEnd    = protowire.Number(4)
	fieldContactMarker = protowire.Number(5)
	fieldContactFields = protowire.Number(6)
)

// EncodeRawPlan serializes a RawPlan to its wire form.
func EncodeRawPlan(p RawPlan) []byte {
	var b []byte
	for _, n := range p.Nodes {
		b = protowire.AppendTag(b, fieldPlanNodes, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeRawNode(n))
	}
	for _, c := range p.Contacts {
		b = protowire.AppendTag(b, fieldPlanContacts, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeRawContact(c))
	}
	return b
}

func encodeRawNode(n RawNode) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldNodeID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.ID))
	b = protowire.AppendTag(b, fieldNodeName, protowire.BytesType)
	b = protowire.AppendString(b, n.Name)
	return b
}

func encodeRawContact(c RawContact) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldContactTx, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Tx))
	b = protowire.AppendTag(b, fieldContactRx, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Rx))
	b = protowire.AppendTag(b, fieldContactStart, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, uint64FromFloat(float64(c.Start)))
	b = protowire.AppendTag(b, fieldContactEnd, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, uint64FromFloat(float64(c.End)))
	if c.Marker != "" {
		b = protowire.AppendTag(b, fieldContactMarker, protowire.BytesType)
		b = protowire.AppendString(b, c.Marker)
	}
	for _, f := range c.Fields {
		b = protowire.AppendTag(b, fieldContactFields, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, uint64FromFloat(f))
	}
	return b
}

// DecodeRawPlan parses the wire form produced by EncodeRawPlan.
func DecodeRawPlan(b []byte) (RawPlan, error) {
	var p RawPlan
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return RawPlan{}, fmt.Errorf("malformed raw plan tag: %w", asabrerr.ParseError)
		}
		b = b[n:]
		switch num {
		case fieldPlanNodes:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return RawPlan{}, fmt.Errorf("malformed raw node: %w", asabrerr.ParseError)
			}
			b = b[n:]
			node, err := decodeRawNode(msg)
			if err != nil {
				return RawPlan{}, err
			}
			p.Nodes = append(p.Nodes, node)
		case fieldPlanContacts:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return RawPlan{}, fmt.Errorf("malformed raw contact: %w", asabrerr.ParseError)
			}
			b = b[n:]
			contact, err := decodeRawContact(msg)
			if err != nil {
				return RawPlan{}, err
			}
			p.Contacts = append(p.Contacts, contact)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return RawPlan{}, fmt.Errorf("malformed raw plan field: %w", asabrerr.ParseError)
			}
			b = b[n:]
		}
	}
	return p, nil
}

func decodeRawNode(b []byte) (RawNode, error) {
	var n RawNode
	for len(b) > 0 {
		num, typ, tn := protowire.ConsumeTag(b)
		if tn < 0 {
			return RawNode{}, fmt.Errorf("malformed raw node tag: %w", asabrerr.ParseError)
		}
		b = b[tn:]
		switch num {
		case fieldNodeID:
			v, vn := protowire.ConsumeVarint(b)
			if vn < 0 {
				return RawNode{}, fmt.Errorf("malformed node id: %w", asabrerr.ParseError)
			}
			n.ID = asabr.NodeID(v)
			b = b[vn:]
		case fieldNodeName:
			v, vn := protowire.ConsumeBytes(b)
			if vn < 0 {
				return RawNode{}, fmt.Errorf("malformed node name: %w", asabrerr.ParseError)
			}
			n.Name = string(v)
			b = b[vn:]
		default:
			vn := protowire.ConsumeFieldValue(num, typ, b)
			if vn < 0 {
				return RawNode{}, fmt.Errorf("malformed node field: %w", asabrerr.ParseError)
			}
			b = b[vn:]
		}
	}
	return n, nil
}

func decodeRawContact(b []byte) (RawContact, error) {
	var c RawContact
	for len(b) > 0 {
		num, typ, tn := protowire.ConsumeTag(b)
		if tn < 0 {
			return RawContact{}, fmt.Errorf("malformed raw contact tag: %w", asabrerr.ParseError)
		}
		b = b[tn:]
		switch num {
		case fieldContactTx:
			v, vn := protowire.ConsumeVarint(b)
			c.Tx, b = asabr.NodeID(v), b[vn:]
		case fieldContactRx:
			v, vn := protowire.ConsumeVarint(b)
			c.Rx, b = asabr.NodeID(v), b[vn:]
		case fieldContactStart:
			v, vn := protowire.ConsumeFixed64(b)
			c.Start, b = asabr.Date(floatFromUint64(v)), b[vn:]
		case fieldContactEnd:
			v, vn := protowire.ConsumeFixed64(b)
			c.End, b = asabr.Date(floatFromUint64(v)), b[vn:]
		case fieldContactMarker:
			v, vn := protowire.ConsumeBytes(b)
			c.Marker, b = string(v), b[vn:]
		case fieldContactFields:
			v, vn := protowire.ConsumeFixed64(b)
			c.Fields, b = append(c.Fields, floatFromUint64(v)), b[vn:]
		default:
			vn := protowire.ConsumeFieldValue(num, typ, b)
			if vn < 0 {
				return RawContact{}, fmt.Errorf("malformed contact field: %w", asabrerr.ParseError)
			}
			b = b[vn:]
		}
	}
	return c, nil
}
