package distance

import "github.com/encodeous/asabr/asabr"

// HopCost orders first by fewest hops, then by earliest arrival, with
// expiration as a final tie-break (a smaller expiration is worse, i.e.
// sorts as "greater").
type HopCost struct {
	HopCount   asabr.HopCount
	AtTime     asabr.Date
	Expiration asabr.Date
}

func (c HopCost) Compare(other asabr.Cost) int {
	o := other.(HopCost)
	if c.HopCount != o.HopCount {
		return compareFloat(float64(c.HopCount), float64(o.HopCount))
	}
	if c.AtTime != o.AtTime {
		return compareFloat(c.AtTime, o.AtTime)
	}
	// smaller expiration is worse: reverse the comparison.
	return compareFloat(o.Expiration, c.Expiration)
}

// Hop is the fewest-hops distance strategy.
type Hop struct{}

func (Hop) Initial(now asabr.Date) asabr.Cost {
	return HopCost{HopCount: 0, AtTime: now, Expiration: asabr.MaxDate}
}

func (Hop) Combine(prev asabr.Cost, contact *asabr.Contact, hop asabr.TxEndHopData, hopCount asabr.HopCount) asabr.Cost {
	p := prev.(HopCost)
	expiration := p.Expiration
	if contact.Info.End < expiration {
		expiration = contact.Info.End
	}
	return HopCost{
		HopCount:   hopCount,
		AtTime:     hop.Arrival(),
		Expiration: expiration,
	}
}

func (Hop) CanRetain(proposed, known asabr.Cost) bool {
	return proposed.(HopCost).AtTime < known.(HopCost).AtTime
}

func (Hop) MustPrune(proposed, known asabr.Cost) bool {
	p, k := proposed.(HopCost), known.(HopCost)
	return p.AtTime <= k.AtTime && p.HopCount <= k.HopCount
}
