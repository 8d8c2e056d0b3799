package distance

import "github.com/encodeous/asabr/asabr"

// SABRCost orders first by earliest arrival, then by fewest hops, with
// expiration as a final tie-break (a smaller expiration is worse).
type SABRCost struct {
	AtTime     asabr.Date
	HopCount   asabr.HopCount
	Expiration asabr.Date
}

func (c SABRCost) Compare(other asabr.Cost) int {
	o := other.(SABRCost)
	if c.AtTime != o.AtTime {
		return compareFloat(c.AtTime, o.AtTime)
	}
	if c.HopCount != o.HopCount {
		return compareFloat(float64(c.HopCount), float64(o.HopCount))
	}
	return compareFloat(o.Expiration, c.Expiration)
}

// SABR is the SABR blue-book distance strategy: earliest delivery time
// first, fewest hops as tie-break.
type SABR struct{}

func (SABR) Initial(now asabr.Date) asabr.Cost {
	return SABRCost{AtTime: now, HopCount: 0, Expiration: asabr.MaxDate}
}

func (SABR) Combine(prev asabr.Cost, contact *asabr.Contact, hop asabr.TxEndHopData, hopCount asabr.HopCount) asabr.Cost {
	p := prev.(SABRCost)
	expiration := p.Expiration
	if contact.Info.End < expiration {
		expiration = contact.Info.End
	}
	return SABRCost{
		AtTime:     hop.Arrival(),
		HopCount:   hopCount,
		Expiration: expiration,
	}
}

// CanRetain implements asabr.HybridOrd: in the SABR/hybrid-parenting
// combination, a proposal can join the Pareto set when it strictly
// improves on hop count over a known candidate (arrival is already the
// Dijkstra pop order, so hops is the remaining useful axis of diversity).
func (SABR) CanRetain(proposed, known asabr.Cost) bool {
	return proposed.(SABRCost).HopCount < known.(SABRCost).HopCount
}

func (SABR) MustPrune(proposed, known asabr.Cost) bool {
	p, k := proposed.(SABRCost), known.(SABRCost)
	return p.AtTime <= k.AtTime && p.HopCount <= k.HopCount
}
