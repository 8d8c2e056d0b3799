// Package nodemgr provides concrete NodeManager gates: NoManagement (an
// always-permissive pass-through), NoRetention (a processing-time cutoff),
// and Compressing (a processing step that shrinks eligible bundles).
package nodemgr

import "github.com/encodeous/asabr/asabr"

// NoManagement permits every reception, transmission and processing
// request unconditionally, and never delays or mutates a bundle. It is the
// default node manager for nodes with no local resource constraints.
type NoManagement struct{}

func (NoManagement) DryRunRx(start, end asabr.Date, bundle *asabr.Bundle) bool    { return true }
func (NoManagement) ScheduleRx(start, end asabr.Date, bundle *asabr.Bundle) bool  { return true }
func (NoManagement) DryRunTx(waitingSince, start, end asabr.Date, bundle *asabr.Bundle) bool {
	return true
}
func (NoManagement) ScheduleTx(waitingSince, start, end asabr.Date, bundle *asabr.Bundle) bool {
	return true
}
func (NoManagement) DryRunProcess(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	return *bundle, atTime
}
func (NoManagement) ScheduleProcess(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	return *bundle, atTime
}

// NoRetention rejects any transmission that would have the bundle wait at
// the node longer than MaxProcTime before departing: start - waitingSince
// must stay under the limit. Reception and processing are unconstrained.
type NoRetention struct {
	MaxProcTime asabr.Duration
}

func (NoRetention) DryRunRx(start, end asabr.Date, bundle *asabr.Bundle) bool   { return true }
func (NoRetention) ScheduleRx(start, end asabr.Date, bundle *asabr.Bundle) bool { return true }

func (n NoRetention) DryRunTx(waitingSince, start, end asabr.Date, bundle *asabr.Bundle) bool {
	return start-waitingSince < n.MaxProcTime
}

func (n NoRetention) ScheduleTx(waitingSince, start, end asabr.Date, bundle *asabr.Bundle) bool {
	return n.DryRunTx(waitingSince, start, end, bundle)
}

func (NoRetention) DryRunProcess(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	return *bundle, atTime
}

func (NoRetention) ScheduleProcess(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	return *bundle, atTime
}

// Compressing models a node capable of shrinking low-priority bundles
// during processing: any bundle at or below MaxPriority is reduced to
// Ratio of its original size, after ProcTime has elapsed.
type Compressing struct {
	MaxPriority asabr.Priority
	Ratio       float64
	ProcTime    asabr.Duration
}

func (Compressing) DryRunRx(start, end asabr.Date, bundle *asabr.Bundle) bool   { return true }
func (Compressing) ScheduleRx(start, end asabr.Date, bundle *asabr.Bundle) bool { return true }

func (Compressing) DryRunTx(waitingSince, start, end asabr.Date, bundle *asabr.Bundle) bool {
	return true
}

func (Compressing) ScheduleTx(waitingSince, start, end asabr.Date, bundle *asabr.Bundle) bool {
	return true
}

func (c Compressing) process(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	out := bundle.Clone()
	if bundle.Priority <= c.MaxPriority {
		out.Size = bundle.Size * c.Ratio
	}
	return out, atTime + c.ProcTime
}

func (c Compressing) DryRunProcess(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	return c.process(atTime, bundle)
}

func (c Compressing) ScheduleProcess(atTime asabr.Date, bundle *asabr.Bundle) (asabr.Bundle, asabr.Date) {
	return c.process(atTime, bundle)
}
