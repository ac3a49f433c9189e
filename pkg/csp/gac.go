package csp

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// arc is a (constraint, variable) pair queued for revision — the unit of
// work of the generic-arc-consistency queue. Grounded in
// original_source/src/solver/gac/arc.rs and restyled after the Go-idiom
// AC3 struct in the broader example pack (a queue of pending revisions
// rather than a recursive propagate call).
type arc[T Ordered] struct {
	con      Constraint[T]
	variable *Variable[T]
}

// EnforceGAC drives every constraint in c to generalized arc consistency,
// stamping every value removal at lvl so a caller can undo the whole pass
// with a single CSP.Pop()/Domain.RestoreUpTo(lvl). events names the
// variables whose domains just changed (a fresh assignment, a prior
// revision's removals, …): the initial queue seeds only arcs (c, x) where
// x is not already in c.Past() and some other scope variable y of c is
// in events — the same seeding rule as enforce_gac_arc in
// original_source/src/solver/gac/arc.rs:32-51. EnforceGACAll is the
// common case of seeding from every registered variable.
//
// Returns ErrDomainWipeout (wrapped with the offending variable's label)
// the moment any domain empties — the trail is left exactly as it stood
// at that point, so the caller can restore to lvl and try a different
// branch.
func EnforceGAC[T Ordered](c *CSP[T], lvl int, events []string) error {
	eventSet := make(map[string]struct{}, len(events))
	for _, e := range events {
		eventSet[e] = struct{}{}
	}
	pastSet := make(map[string]struct{}, len(c.past))
	for _, label := range c.past {
		pastSet[label] = struct{}{}
	}

	queue := make([]arc[T], 0, len(c.constraints)*2)
	seen := make(map[arc[T]]struct{})

	enqueue := func(con Constraint[T], v *Variable[T]) {
		if _, inPast := pastSet[v.Label()]; inPast {
			return
		}
		a := arc[T]{con: con, variable: v}
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		queue = append(queue, a)
	}

	for _, con := range c.constraints {
		for _, x := range con.Scope() {
			for _, y := range con.Scope() {
				if y.Label() == x.Label() {
					continue
				}
				if _, ok := eventSet[y.Label()]; ok {
					enqueue(con, x)
					break
				}
			}
		}
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		delete(seen, a)

		changed, err := revise(a, lvl)
		if err != nil {
			return err
		}
		if !changed {
			continue
		}

		Log.WithFields(logrus.Fields{
			"constraint": a.con.Label(),
			"variable":   a.variable.Label(),
			"level":      lvl,
		}).Debug("gac: domain reduced, re-queuing dependent arcs")

		for _, con := range c.constraints {
			if con == a.con {
				continue
			}
			if !scopeContains(con.Scope(), a.variable.Label()) {
				continue
			}
			for _, x := range con.Scope() {
				if x.Label() == a.variable.Label() {
					continue
				}
				enqueue(con, x)
			}
		}
	}
	return nil
}

// EnforceGACAll runs EnforceGAC seeded from every registered variable —
// the full, from-scratch propagation pass used by a fresh problem load
// or a standalone consistency check, mirroring the source's standalone
// callers that pass csp.vars().keys() as events.
func EnforceGACAll[T Ordered](c *CSP[T], lvl int) error {
	events := make([]string, 0, len(c.vars))
	for label := range c.vars {
		events = append(events, label)
	}
	return EnforceGAC(c, lvl, events)
}

func scopeContains[T Ordered](scope []*Variable[T], label string) bool {
	for _, v := range scope {
		if v.Label() == label {
			return true
		}
	}
	return false
}

// revise removes every value from a.variable's active domain that has no
// supporting extension under a.con, stamping removals at lvl. Returns
// whether any value was removed, and ErrDomainWipeout if the domain
// emptied.
func revise[T Ordered](a arc[T], lvl int) (bool, error) {
	changed := false
	for _, val := range a.variable.Domain().ActiveValues() {
		if !existsExtension(a.con, a.variable.Label(), val) {
			if err := a.variable.Domain().RemoveValue(val, lvl); err != nil {
				return changed, err
			}
			changed = true
		}
	}
	if a.variable.Domain().IsEmpty() {
		return changed, errors.Wrapf(ErrDomainWipeout, "variable %q wiped out while revising constraint %q", a.variable.Label(), a.con.Label())
	}
	return changed, nil
}

// existsExtension bridges to base[T]'s ExistsExtension, which every
// concrete constraint exposes by embedding base[T]. Constraint[T] itself
// doesn't declare ExistsExtension (it's a propagation-only concern, not
// part of the derived-operations surface search/consistency queries use),
// so this does a one-time type assertion per call.
func existsExtension[T Ordered](con Constraint[T], label string, value T) bool {
	type extender[T Ordered] interface {
		ExistsExtension(label string, value T) bool
	}
	if e, ok := con.(extender[T]); ok {
		return e.ExistsExtension(label, value)
	}
	return true
}
