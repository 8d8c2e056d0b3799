package config

import "testing"

func TestParseScenarioYAML(t *testing.T) {
	doc := []byte(`
node_count: 3
contact_plan:
  path: plan.txt
  format: native
router:
  mainframe: cgr
  distance: sabr
  parenting: node
`)
	s, err := parseScenarioYAML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.NodeCount != 3 {
		t.Fatalf("expected node_count 3, got %d", s.NodeCount)
	}
	if s.ContactPlan.Path != "plan.txt" || s.ContactPlan.Format != "native" {
		t.Fatalf("unexpected contact plan config: %+v", s.ContactPlan)
	}
	if s.Router.Mainframe != "cgr" {
		t.Fatalf("unexpected router config: %+v", s.Router)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected the parsed scenario to validate cleanly: %v", err)
	}
}

func TestParseScenarioYAMLRejectsMalformedDocument(t *testing.T) {
	if _, err := parseScenarioYAML([]byte("not: [valid")); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
