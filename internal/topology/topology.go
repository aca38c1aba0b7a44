// Package topology describes which LEDs of the sign are physically adjacent.
package topology

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalid is wrapped by every construction error.
var ErrInvalid = errors.New("invalid topology")

// Table lists explicit neighbors per node. Nodes without an entry fall back
// to their linear neighbors node-1 and node+1.
type Table map[int][]int

// Topology is an immutable adjacency graph over nodes 0..n-1.
type Topology struct {
	adj [][]int
}

// New validates table against n nodes and builds the graph.
func New(n int, table Table) (*Topology, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: led count %d", ErrInvalid, n)
	}
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if k < 0 || k >= n {
			return nil, fmt.Errorf("%w: node %d out of range [0,%d)", ErrInvalid, k, n)
		}
		for _, nb := range table[k] {
			if nb < 0 || nb >= n {
				return nil, fmt.Errorf("%w: node %d neighbor %d out of range [0,%d)", ErrInvalid, k, nb, n)
			}
			if nb == k {
				return nil, fmt.Errorf("%w: node %d lists itself as neighbor", ErrInvalid, k)
			}
		}
	}

	t := &Topology{adj: make([][]int, n)}
	for i := 0; i < n; i++ {
		if nbs, ok := table[i]; ok {
			t.adj[i] = append([]int(nil), nbs...)
			continue
		}
		t.adj[i] = linear(i, n)
	}
	return t, nil
}

// Linear returns a plain string topology where every node touches node-1 and node+1.
func Linear(n int) (*Topology, error) { return New(n, nil) }

func linear(i, n int) []int {
	out := make([]int, 0, 2)
	if i > 0 {
		out = append(out, i-1)
	}
	if i < n-1 {
		out = append(out, i+1)
	}
	return out
}

// Len returns the node count.
func (t *Topology) Len() int { return len(t.adj) }

// Neighbors returns the ordered neighbors of node, or nil when node is out of
// range. The slice is shared and must not be modified.
func (t *Topology) Neighbors(node int) []int {
	if node < 0 || node >= len(t.adj) {
		return nil
	}
	return t.adj[node]
}

// Valid reports whether node is a node of the graph.
func (t *Topology) Valid(node int) bool { return node >= 0 && node < len(t.adj) }
