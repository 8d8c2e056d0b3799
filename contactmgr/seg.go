package contactmgr

import "github.com/encodeous/asabr/asabr"

// RateDelayInterval describes one piece of a contact's piecewise-constant
// rate/delay profile, starting at Start and running until the next
// interval's Start (or the contact's end, for the last one).
type RateDelayInterval struct {
	Start asabr.Date
	Rate  asabr.DataRate
	Delay asabr.Duration
}

// segment is a live, mutable slice of a SegmentationManager's schedule:
// [Start, End) of volume capacity at Rate/Delay, shrunk or removed as
// bundles consume it.
type segment struct {
	Start, End asabr.Date
	Rate       asabr.DataRate
	Delay      asabr.Duration
}

// SegmentationManager models a contact whose rate and delay vary over its
// lifetime, built from independently-specified rate and delay interval
// lists merged into one sorted timeline. Each bundle is dry-run or
// scheduled by walking forward through segments, pro-rating volume out of
// each until the bundle's size is fully accounted for; Schedule performs
// the identical walk and then mutates the segment list, removing
// fully-consumed segments and advancing the start of partially-consumed
// ones.
type SegmentationManager struct {
	RateIntervals  []RateDelayInterval // Rate entries only; Delay ignored
	DelayIntervals []RateDelayInterval // Delay entries only; Rate ignored

	original asabr.Volume
	segments []segment
}

func NewSegmentationManager(rateIntervals, delayIntervals []RateDelayInterval) *SegmentationManager {
	return &SegmentationManager{RateIntervals: rateIntervals, DelayIntervals: delayIntervals}
}

func mergeBoundaries(info asabr.ContactInfo, rate, delay []RateDelayInterval) []asabr.Date {
	bounds := map[asabr.Date]bool{info.Start: true, info.End: true}
	for _, r := range rate {
		if r.Start > info.Start && r.Start < info.End {
			bounds[r.Start] = true
		}
	}
	for _, d := range delay {
		if d.Start > info.Start && d.Start < info.End {
			bounds[d.Start] = true
		}
	}
	out := make([]asabr.Date, 0, len(bounds))
	for b := range bounds {
		out = append(out, b)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func rateAt(t asabr.Date, intervals []RateDelayInterval) asabr.DataRate {
	var rate asabr.DataRate
	for _, r := range intervals {
		if r.Start <= t {
			rate = r.Rate
		}
	}
	return rate
}

func delayAt(t asabr.Date, intervals []RateDelayInterval) asabr.Duration {
	var delay asabr.Duration
	for _, d := range intervals {
		if d.Start <= t {
			delay = d.Delay
		}
	}
	return delay
}

func (m *SegmentationManager) TryInit(info asabr.ContactInfo) bool {
	bounds := mergeBoundaries(info, m.RateIntervals, m.DelayIntervals)
	if len(bounds) < 2 {
		return false
	}
	m.segments = m.segments[:0]
	var total asabr.Volume
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		rate := rateAt(start, m.RateIntervals)
		delay := delayAt(start, m.DelayIntervals)
		if rate <= 0 {
			return false
		}
		m.segments = append(m.segments, segment{Start: start, End: end, Rate: rate, Delay: delay})
		total += rate * (end - start)
	}
	m.original = total
	return true
}

// walkSegments pro-rates volume consumption across segs starting no earlier than
// atTime, returning the resulting transmission end time, the delay of the final
// segment used, whether the whole bundle fit, and (for Schedule) the
// mutated segment list.
func walkSegments(segs []segment, atTime asabr.Date, size asabr.Volume, mutate bool) ([]segment, asabr.Date, asabr.Duration, bool) {
	remaining := size
	txStart := asabr.MaxDate
	txEnd := atTime
	var lastDelay asabr.Duration
	out := make([]segment, 0, len(segs))
	i := 0
	for ; i < len(segs); i++ {
		s := segs[i]
		if s.End <= atTime {
			out = append(out, s)
			continue
		}
		segStart := s.Start
		if atTime > segStart {
			segStart = atTime
		}
		if remaining <= 0 {
			out = append(out, s)
			continue
		}
		if txStart == asabr.MaxDate {
			txStart = segStart
		}
		capVol := (s.End - segStart) * s.Rate
		lastDelay = s.Delay
		if remaining <= capVol {
			consumedEnd := segStart + remaining/s.Rate
			txEnd = consumedEnd
			if mutate {
				if consumedEnd < s.End {
					out = append(out, segment{Start: consumedEnd, End: s.End, Rate: s.Rate, Delay: s.Delay})
				}
			} else {
				out = append(out, s)
			}
			remaining = 0
			i++
			break
		}
		remaining -= capVol
		txEnd = s.End
		if !mutate {
			out = append(out, s)
		}
	}
	for ; i < len(segs); i++ {
		out = append(out, segs[i])
	}
	if remaining > 0 {
		return segs, 0, 0, false
	}
	if txStart == asabr.MaxDate {
		txStart = atTime
	}
	if mutate {
		return out, txEnd, lastDelay, true
	}
	return segs, txEnd, lastDelay, true
}

func (m *SegmentationManager) DryRun(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	_, txEnd, delay, ok := walkSegments(m.segments, atTime, bundle.Size, false)
	if !ok {
		return asabr.TxEndHopData{}, false
	}
	txStart := atTime
	if len(m.segments) > 0 && m.segments[0].Start > txStart {
		txStart = m.segments[0].Start
	}
	return asabr.TxEndHopData{TxStart: txStart, TxEnd: txEnd, Delay: delay}, true
}

func (m *SegmentationManager) Schedule(info asabr.ContactInfo, atTime asabr.Date, bundle *asabr.Bundle) (asabr.TxEndHopData, bool) {
	newSegs, txEnd, delay, ok := walkSegments(m.segments, atTime, bundle.Size, true)
	if !ok {
		return asabr.TxEndHopData{}, false
	}
	txStart := atTime
	if len(m.segments) > 0 && m.segments[0].Start > txStart {
		txStart = m.segments[0].Start
	}
	m.segments = newSegs
	return asabr.TxEndHopData{TxStart: txStart, TxEnd: txEnd, Delay: delay}, true
}

func (m *SegmentationManager) OriginalVolume() asabr.Volume {
	return m.original
}
