package topology

import "fmt"

// Mask is a set of nodes stored as one flag per node, e.g. the LEDs that
// form one letter.
type Mask []bool

// MaskOf builds a mask over n nodes from a node list.
func MaskOf(n int, nodes ...int) (Mask, error) {
	m := make(Mask, n)
	for _, v := range nodes {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("%w: mask node %d out of range [0,%d)", ErrInvalid, v, n)
		}
		m[v] = true
	}
	return m, nil
}

// Has reports whether node is in the mask.
func (m Mask) Has(node int) bool { return node >= 0 && node < len(m) && m[node] }

// Count returns the number of nodes in the mask.
func (m Mask) Count() int {
	c := 0
	for _, v := range m {
		if v {
			c++
		}
	}
	return c
}

// Nodes lists the masked nodes in ascending order.
func (m Mask) Nodes() []int {
	out := make([]int, 0, len(m))
	for i, v := range m {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// And returns the intersection of m and o.
func (m Mask) And(o Mask) Mask {
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] && o.Has(i)
	}
	return out
}
