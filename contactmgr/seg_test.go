package contactmgr

import (
	"testing"

	"github.com/encodeous/asabr/asabr"
)

func TestSegmentationManagerTryInitBuildsSegments(t *testing.T) {
	m := NewSegmentationManager(
		[]RateDelayInterval{{Start: 0, Rate: 10}, {Start: 5, Rate: 20}},
		[]RateDelayInterval{{Start: 0, Delay: 1}},
	)
	info := asabr.ContactInfo{Start: 0, End: 10}
	if !m.TryInit(info) {
		t.Fatalf("expected TryInit to succeed")
	}
	// [0,5) at rate 10 = 50, [5,10) at rate 20 = 100; total 150
	if m.OriginalVolume() != 150 {
		t.Fatalf("expected original volume 150, got %v", m.OriginalVolume())
	}
}

func TestSegmentationManagerTryInitRejectsZeroRateSegment(t *testing.T) {
	m := NewSegmentationManager(
		[]RateDelayInterval{{Start: 0, Rate: 0}},
		nil,
	)
	if m.TryInit(asabr.ContactInfo{Start: 0, End: 10}) {
		t.Fatalf("expected TryInit to reject a segment with zero rate")
	}
}

func TestSegmentationManagerDryRunSpansSegments(t *testing.T) {
	m := NewSegmentationManager(
		[]RateDelayInterval{{Start: 0, Rate: 10}, {Start: 5, Rate: 20}},
		[]RateDelayInterval{{Start: 0, Delay: 1}, {Start: 5, Delay: 2}},
	)
	info := asabr.ContactInfo{Start: 0, End: 10}
	m.TryInit(info)

	// first segment alone carries 50 volume; ask for 70 so it must spill into the second.
	bundle := &asabr.Bundle{Size: 70}
	res, ok := m.DryRun(info, 0, bundle)
	if !ok {
		t.Fatalf("expected a 70-volume bundle to fit across both segments (150 total)")
	}
	// consumes all 50 of segment one (0..5) then 20 more of segment two's 100 at rate 20 -> 1 more unit of time
	if res.TxEnd != 6 {
		t.Fatalf("expected TxEnd 6, got %v", res.TxEnd)
	}
	if res.Delay != 2 {
		t.Fatalf("expected delay from the final segment used (2), got %v", res.Delay)
	}
}

func TestSegmentationManagerScheduleConsumesVolume(t *testing.T) {
	m := NewSegmentationManager(
		[]RateDelayInterval{{Start: 0, Rate: 10}},
		nil,
	)
	info := asabr.ContactInfo{Start: 0, End: 10}
	m.TryInit(info)

	first := &asabr.Bundle{Size: 60}
	if _, ok := m.Schedule(info, 0, first); !ok {
		t.Fatalf("expected first 60-volume booking to succeed out of 100")
	}
	second := &asabr.Bundle{Size: 60}
	if _, ok := m.Schedule(info, 0, second); ok {
		t.Fatalf("expected second 60-volume booking to fail: only 40 volume remains")
	}
}
