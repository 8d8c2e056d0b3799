package config

import (
	"fmt"
	"io"
	"os"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/contactmgr"
	"github.com/encodeous/asabr/contactplan"
	"github.com/encodeous/asabr/distance"
	"github.com/encodeous/asabr/nodemgr"
	"github.com/encodeous/asabr/pathfinding"
	"github.com/encodeous/asabr/router"
	"github.com/encodeous/asabr/routestorage"
)

// Built is everything assembled from a Scenario: the parsed plan, the
// multigraph derived from it, and the router mainframe ready to route.
type Built struct {
	Plan      contactplan.Plan
	Multigraph *asabr.Multigraph
	Router    router.Router
}

func (c ContactManagerCfg) newManager(rate asabr.DataRate, delay asabr.Duration) (asabr.ContactManager, error) {
	budgets := c.budgets()
	switch c.Kind {
	case "evl":
		if budgets != nil {
			return contactmgr.NewPriorityEVLManager(rate, delay, len(budgets), budgets), nil
		}
		return contactmgr.NewEVLManager(rate, delay), nil
	case "eto":
		if budgets != nil {
			return contactmgr.NewPriorityETOManager(rate, delay, len(budgets), budgets), nil
		}
		return contactmgr.NewETOManager(rate, delay), nil
	case "qd":
		if budgets != nil {
			return contactmgr.NewPriorityQDManager(rate, delay, len(budgets), budgets), nil
		}
		return contactmgr.NewQDManager(rate, delay), nil
	default:
		return nil, fmt.Errorf("contact manager kind %q cannot be built from a bare rate/delay pair: %w", c.Kind, asabrerr.ParseError)
	}
}

func (n NodeManagerCfg) build() asabr.NodeManager {
	switch n.Kind {
	case "no_retention":
		return nodemgr.NoRetention{MaxProcTime: asabr.Duration(n.MaxProcTime)}
	case "compressing":
		return nodemgr.Compressing{
			MaxPriority: asabr.Priority(n.MaxPriority),
			Ratio:       n.Ratio,
			ProcTime:    asabr.Duration(n.ProcTime),
		}
	default:
		return nodemgr.NoManagement{}
	}
}

func (s *Scenario) parsePlan() (contactplan.Plan, error) {
	f, err := os.Open(s.ContactPlan.Path)
	if err != nil {
		return contactplan.Plan{}, err
	}
	defer f.Close()

	var plan contactplan.Plan
	switch s.ContactPlan.Format {
	case "native":
		plan, err = contactplan.NewASABRLexer().Parse(f)
	case "ion":
		plan, err = contactplan.ION{NewManager: s.ContactManager.newManager}.Parse(f)
	case "tvgutil":
		plan, err = contactplan.TVGUtil{NewManager: s.ContactManager.newManager}.Parse(f)
	default:
		return contactplan.Plan{}, fmt.Errorf("unknown contact plan format %q: %w", s.ContactPlan.Format, asabrerr.ParseError)
	}
	if err != nil {
		return contactplan.Plan{}, err
	}

	manager := s.NodeManager.build()
	for i := range plan.Nodes {
		plan.Nodes[i].Manager = manager
	}
	return plan, nil
}

func (s *Scenario) distance() (asabr.Distance, error) {
	switch s.Router.Distance {
	case "hop":
		return distance.Hop{}, nil
	case "sabr":
		return distance.SABR{}, nil
	default:
		return nil, fmt.Errorf("unknown distance metric %q: %w", s.Router.Distance, asabrerr.ParseError)
	}
}

func (s *Scenario) pathfinder(mg *asabr.Multigraph, dist asabr.Distance, treeOutput bool) (pathfinding.Pathfinding, error) {
	var pf pathfinding.Pathfinding
	switch s.Router.Parenting {
	case "node":
		pf = pathfinding.NewNodeParenting(mg, dist, treeOutput)
	case "contact":
		pf = pathfinding.NewContactParenting(mg, dist, treeOutput)
	case "hybrid":
		hybridDist, ok := dist.(interface {
			asabr.Distance
			asabr.HybridOrd
		})
		if !ok {
			return nil, fmt.Errorf("distance %q does not implement HybridOrd, required for hybrid parenting: %w", s.Router.Distance, asabrerr.ParseError)
		}
		pf = pathfinding.NewHybridParenting(mg, hybridDist)
	default:
		return nil, fmt.Errorf("unknown parenting strategy %q: %w", s.Router.Parenting, asabrerr.ParseError)
	}
	switch s.Router.Alternative {
	case "", "none":
	case "first_ending":
		pf = pathfinding.NewFirstEnding(pf)
	case "first_depleted":
		pf = pathfinding.NewFirstDepleted(pf)
	default:
		return nil, fmt.Errorf("unknown alternative-path strategy %q: %w", s.Router.Alternative, asabrerr.ParseError)
	}
	return pf, nil
}

// Build parses the scenario's contact plan, assembles a multigraph, and
// wires the configured distance/parenting/storage into the configured
// router mainframe.
func (s *Scenario) Build() (*Built, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	plan, err := s.parsePlan()
	if err != nil {
		return nil, err
	}
	mg := asabr.NewMultigraph(plan.Nodes, plan.Contacts)
	dist, err := s.distance()
	if err != nil {
		return nil, err
	}

	var r router.Router
	switch s.Router.Mainframe {
	case "cgr", "volcgr":
		pf, err := s.pathfinder(mg, dist, false)
		if err != nil {
			return nil, err
		}
		storage := routestorage.NewRoutingTable(dist)
		if s.Router.Mainframe == "volcgr" {
			r = router.NewVolCgr(pf, storage)
		} else {
			r = router.NewCgr(pf, storage)
		}
	case "spsn":
		pf, err := s.pathfinder(mg, dist, true)
		if err != nil {
			return nil, err
		}
		storage := routestorage.NewTreeCache(true, true, s.Router.CacheCapacity(), s.Router.CacheTTL())
		guard := router.NewGuard(s.Router.WithPriorities)
		r = router.NewSpsn(pf, storage, guard)
	default:
		return nil, fmt.Errorf("unknown router mainframe %q: %w", s.Router.Mainframe, asabrerr.ParseError)
	}

	return &Built{Plan: plan, Multigraph: mg, Router: r}, nil
}

// LoadScenario reads and parses a YAML scenario document.
func LoadScenario(r io.Reader) (Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Scenario{}, err
	}
	return parseScenarioYAML(data)
}
