// SPDX-License-Identifier: MPL-2.0

// Package dag orders components so that each one follows the components it
// requires. Nodes are plain names; the repository decides how names resolve.
package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel error wrapped by CycleError.
var ErrCycle = errors.New("requirement cycle")

type (
	// CycleError reports the nodes left unordered because they sit on, or
	// behind, a requirement cycle.
	CycleError struct {
		Nodes []string
	}

	// Graph records "requires" relationships between named nodes.
	Graph struct {
		// dependents maps a node to the nodes that require it.
		dependents map[string][]string
		// edges deduplicates Require calls.
		edges map[[2]string]bool
		nodes []string
		known map[string]bool
	}
)

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("requirement cycle between %s", strings.Join(e.Nodes, ", "))
}

// Unwrap returns ErrCycle for errors.Is() compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string][]string),
		edges:      make(map[[2]string]bool),
		known:      make(map[string]bool),
	}
}

// Add registers node. Adding a node twice keeps its first position.
func (g *Graph) Add(node string) {
	if g.known[node] {
		return
	}
	g.known[node] = true
	g.nodes = append(g.nodes, node)
}

// Require records that node requires requirement. Both are added if missing.
func (g *Graph) Require(node, requirement string) {
	g.Add(node)
	g.Add(requirement)
	key := [2]string{requirement, node}
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.dependents[requirement] = append(g.dependents[requirement], node)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Order returns every node after all of its requirements. Nodes that are free
// to go at the same time keep the order they were added in. A cycle yields
// *CycleError naming the nodes that could not be placed.
func (g *Graph) Order() ([]string, error) {
	pending := make(map[string]int, len(g.nodes))
	for _, deps := range g.dependents {
		for _, d := range deps {
			pending[d]++
		}
	}

	ready := make([]string, 0, len(g.nodes))
	for _, n := range g.nodes {
		if pending[n] == 0 {
			ready = append(ready, n)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, d := range g.dependents[n] {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) == len(g.nodes) {
		return order, nil
	}

	var stuck []string
	for _, n := range g.nodes {
		if pending[n] > 0 {
			stuck = append(stuck, n)
		}
	}
	return nil, &CycleError{Nodes: stuck}
}
