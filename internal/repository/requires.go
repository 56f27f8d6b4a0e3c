// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"github.com/consigliere/components/internal/dag"
)

// MissingRequirement is a "requires" entry that matches no discovered component.
type MissingRequirement struct {
	Component string
	Requires  string
}

// RequirementOrder returns every component placed after the components its
// manifest "requires". Requirements resolve like Find (name or alias, any
// case); unresolved entries are returned as missing and otherwise ignored.
// A cycle returns *dag.CycleError with the missing entries still reported.
func (r *Repository) RequirementOrder() (Collection, []MissingRequirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.result().Components
	byName := make(map[string]int, len(all))
	g := dag.New()
	var missing []MissingRequirement

	for i, c := range all {
		name := c.Name().String()
		byName[name] = i
		g.Add(name)
		for _, req := range c.Requires() {
			dep := r.find(req)
			if dep == nil {
				missing = append(missing, MissingRequirement{Component: name, Requires: req})
				continue
			}
			g.Require(name, dep.Name().String())
		}
	}

	names, err := g.Order()
	if err != nil {
		return nil, missing, err
	}

	ordered := make(Collection, 0, len(names))
	for _, n := range names {
		ordered = append(ordered, all[byName[n]])
	}
	return ordered, missing, nil
}
