package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/encodeous/asabr/asabr"
)

func writePlanFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}

func TestScenarioBuildAndRouteCgr(t *testing.T) {
	path := writePlanFile(t, `
node 0 a
node 1 b
node 2 c
contact 0 1 0 100 EVL 10 1
contact 1 2 0 100 EVL 10 1
`)
	s := Scenario{
		NodeCount:   3,
		ContactPlan: ContactPlanCfg{Path: path, Format: "native"},
		Router:      RouterCfg{Mainframe: "cgr", Distance: "sabr", Parenting: "node"},
	}
	built, err := s.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if built.Multigraph.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", built.Multigraph.NodeCount())
	}

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{2}, Size: 5, Expiration: asabr.MaxDate}
	out, err := built.Router.Route(context.Background(), 0, &bundle, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Destinations[0].Reached {
		t.Fatalf("expected node 2 to be reachable via node 1")
	}
}

func TestScenarioBuildRejectsInvalidScenario(t *testing.T) {
	s := Scenario{}
	if _, err := s.Build(); err == nil {
		t.Fatalf("expected Build to fail validation on an empty scenario")
	}
}

func TestScenarioBuildSpsn(t *testing.T) {
	path := writePlanFile(t, `
node 0 a
node 1 b
node 2 c
contact 0 1 0 100 EVL 10 1
contact 0 2 0 100 EVL 10 1
`)
	s := Scenario{
		NodeCount:   3,
		ContactPlan: ContactPlanCfg{Path: path, Format: "native"},
		Router:      RouterCfg{Mainframe: "spsn", Distance: "sabr", Parenting: "node"},
	}
	built, err := s.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{1, 2}, Size: 5, Expiration: asabr.MaxDate}
	out, err := built.Router.Route(context.Background(), 0, &bundle, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range out.Destinations {
		if !d.Reached {
			t.Fatalf("expected destination %d to be reached", d.Node)
		}
	}
}
