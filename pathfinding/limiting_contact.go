package pathfinding

import "github.com/encodeous/asabr/asabr"

// BetterForSuppression reports whether a is a more limiting contact to
// suppress next than b.
type BetterForSuppression func(a, b *asabr.Contact) bool

// EndsEarlierThan favours suppressing the contact with the earliest end
// time — the basis of FirstEnding.
func EndsEarlierThan(a, b *asabr.Contact) bool {
	return a.Info.End < b.Info.End
}

// HadLessVolumeThan favours suppressing the contact with the smallest
// original transmission volume — the basis of FirstDepleted. The contact
// managers must implement asabr.VolumeReporter.
func HadLessVolumeThan(a, b *asabr.Contact) bool {
	av := a.Manager.(asabr.VolumeReporter).OriginalVolume()
	bv := b.Manager.(asabr.VolumeReporter).OriginalVolume()
	return av < bv
}

// getNextToSuppress walks the via-chain of route back to the source,
// returning whichever contact along it is most limiting per better.
func getNextToSuppress(route *asabr.RouteStage, better BetterForSuppression) *asabr.Contact {
	var toSuppress *asabr.Contact
	curr := route
	for curr != nil {
		via := curr.Via
		if via == nil {
			break
		}
		if toSuppress == nil || better(via.Contact, toSuppress) {
			toSuppress = via.Contact
		}
		curr = via.Parent
	}
	return toSuppress
}

// LimitingContact wraps an inner Pathfinding with iterative suppression: on
// each call for a given destination, the contact that limited the previous
// route to that destination stays suppressed (unless expired), so the next
// call is forced onto a different path. FirstEnding and FirstDepleted are
// instances of this wrapper with different suppression preferences.
type LimitingContact struct {
	inner          Pathfinding
	better         BetterForSuppression
	suppressionMap [][]*asabr.Contact // indexed by destination NodeID
}

// NewFirstEnding wraps inner so each successive path to the same
// destination suppresses the previous route's earliest-ending contact.
func NewFirstEnding(inner Pathfinding) *LimitingContact {
	return newLimitingContact(inner, EndsEarlierThan)
}

// NewFirstDepleted wraps inner so each successive path to the same
// destination suppresses the previous route's smallest-original-volume
// contact.
func NewFirstDepleted(inner Pathfinding) *LimitingContact {
	return newLimitingContact(inner, HadLessVolumeThan)
}

func newLimitingContact(inner Pathfinding, better BetterForSuppression) *LimitingContact {
	return &LimitingContact{
		inner:          inner,
		better:         better,
		suppressionMap: make([][]*asabr.Contact, inner.Multigraph().NodeCount()),
	}
}

func (p *LimitingContact) Multigraph() *asabr.Multigraph { return p.inner.Multigraph() }

func (p *LimitingContact) GetNext(currentTime asabr.Date, source asabr.NodeID, bundle *asabr.Bundle, excludedNodes []asabr.NodeID) PathFindingOutput {
	if len(bundle.Destinations) == 0 {
		return p.inner.GetNext(currentTime, source, bundle, excludedNodes)
	}
	dest := bundle.Destinations[0]

	suppressed := p.suppressionMap[dest][:0]
	for _, c := range p.suppressionMap[dest] {
		if c.Info.End < currentTime {
			continue
		}
		c.Suppressed = true
		suppressed = append(suppressed, c)
	}
	p.suppressionMap[dest] = suppressed

	tree := p.inner.GetNext(currentTime, source, bundle, excludedNodes)

	if route := tree.ByDestination[dest]; route != nil {
		if toSuppress := getNextToSuppress(route, p.better); toSuppress != nil {
			p.suppressionMap[dest] = append(p.suppressionMap[dest], toSuppress)
		}
	}
	for _, c := range p.suppressionMap[dest] {
		c.Suppressed = false
	}

	return tree
}
