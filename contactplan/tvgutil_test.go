package contactplan

import (
	"strings"
	"testing"
)

const tvgUtilDocument = `{
	"vertices": {"a": {}, "b": {}},
	"edges": [
		{
			"vertices": ["a", "b"],
			"contacts": [
				[0, 0, 0, 10, [[0, 1.0, [[0, 100, 2]]]]]
			]
		}
	]
}`

func TestTVGUtilParseValidPlan(t *testing.T) {
	plan, err := TVGUtil{NewManager: evlNewManager}.Parse(strings.NewReader(tvgUtilDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(plan.Nodes))
	}
	if len(plan.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(plan.Contacts))
	}
	c := plan.Contacts[0]
	if c.Info.Start != 0 || c.Info.End != 10 {
		t.Fatalf("expected contact interval [0,10), got [%v,%v)", c.Info.Start, c.Info.End)
	}
}

func TestTVGUtilParseUnknownVertexIsError(t *testing.T) {
	doc := `{
		"vertices": {"a": {}},
		"edges": [{"vertices": ["a", "b"], "contacts": []}]
	}`
	if _, err := (TVGUtil{NewManager: evlNewManager}).Parse(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected an error for an edge referencing an unknown vertex")
	}
}

func TestTVGUtilParseMalformedDocumentIsError(t *testing.T) {
	if _, err := (TVGUtil{NewManager: evlNewManager}).Parse(strings.NewReader("not json")); err == nil {
		t.Fatalf("expected an error for a malformed document")
	}
}
