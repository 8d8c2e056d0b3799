package contactplan

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRawPlanEncodeDecodeRoundTrip(t *testing.T) {
	raw := RawPlan{
		Nodes: []RawNode{{ID: 0, Name: "a"}, {ID: 1, Name: "b"}},
		Contacts: []RawContact{
			{Tx: 0, Rx: 1, Start: 0, End: 10, Marker: "EVL", Fields: []float64{100, 2}},
			{Tx: 1, Rx: 0, Start: 0, End: 10, Fields: []float64{50, 1}},
		},
	}

	encoded := EncodeRawPlan(raw)
	decoded, err := DecodeRawPlan(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(raw, decoded); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}

func TestRawPlanParseAndResolveMatchesDirectParse(t *testing.T) {
	src := `
node 0 a
node 1 b
contact 0 1 0 10 EVL 100 2
`
	lexer := NewASABRLexer()
	want, err := lexer.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := lexer.ParseRaw(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error parsing raw: %v", err)
	}
	got, err := raw.Resolve(nil)
	if err != nil {
		t.Fatalf("unexpected error resolving: %v", err)
	}
	if len(got.Nodes) != len(want.Nodes) || len(got.Contacts) != len(want.Contacts) {
		t.Fatalf("expected Resolve to reproduce the directly-parsed plan's shape, got nodes=%d contacts=%d want nodes=%d contacts=%d",
			len(got.Nodes), len(got.Contacts), len(want.Nodes), len(want.Contacts))
	}
	if got.Contacts[0].Info != want.Contacts[0].Info {
		t.Fatalf("expected matching contact info, got %+v want %+v", got.Contacts[0].Info, want.Contacts[0].Info)
	}
}

func TestDecodeRawPlanRejectsTruncatedData(t *testing.T) {
	if _, err := DecodeRawPlan([]byte{0xFF}); err == nil {
		t.Fatalf("expected an error decoding truncated/malformed wire data")
	}
}
