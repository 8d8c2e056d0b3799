package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/encodeous/asabr/asabr"
)

func TestAddBundleFlagsRegistersExpectedFlags(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addBundleFlags(c)

	for _, name := range []string{"from", "to", "size", "priority", "expires", "now", "exclude"} {
		if c.Flags().Lookup(name) == nil {
			t.Fatalf("expected a %q flag to be registered", name)
		}
	}
}

func TestBuildExcludedNodesReflectsParsedFlagValues(t *testing.T) {
	bundleExclude = []int{4, 7}

	got := buildExcludedNodes()

	want := []asabr.NodeID{4, 7}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected excluded nodes %v, got %v", want, got)
	}
}

func TestBuildBundleReflectsParsedFlagValues(t *testing.T) {
	bundleSource = 1
	bundleDestination = []int{2, 3}
	bundleSize = 42
	bundlePriority = 5
	bundleExpiration = 1000

	b := buildBundle()

	if b.Source != 1 {
		t.Fatalf("expected source 1, got %d", b.Source)
	}
	want := []asabr.NodeID{2, 3}
	if len(b.Destinations) != len(want) || b.Destinations[0] != want[0] || b.Destinations[1] != want[1] {
		t.Fatalf("expected destinations %v, got %v", want, b.Destinations)
	}
	if b.Size != 42 {
		t.Fatalf("expected size 42, got %v", b.Size)
	}
	if b.Priority != 5 {
		t.Fatalf("expected priority 5, got %v", b.Priority)
	}
	if b.Expiration != 1000 {
		t.Fatalf("expected expiration 1000, got %v", b.Expiration)
	}
}
