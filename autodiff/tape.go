// Package autodiff implements reverse-mode automatic differentiation of
// scalar-valued expressions.
//
// A Tape is an append-only log of elementary operations. Variables are
// value-carrying handles bound to a slot on a Tape; arithmetic and
// transcendental methods on Variable record themselves onto the Tape and
// return a new Variable. Calling Accumulate on a terminal Variable walks
// the Tape backward once and produces the partial derivative of that
// Variable's value with respect to every node on the Tape, exposed
// through a GradientView.
package autodiff

import "sync"

// node is one elementary-operation record: up to two parent indices and
// the local partial derivative with respect to each. Leaves use a
// self-referential sentinel (parent == own index, partial == 0) for both
// parents so the reverse sweep can treat every node uniformly.
type node struct {
	parent0 int
	d0      float64
	parent1 int
	d1      float64
}

// Tape is a growable, append-only sequence of nodes recording a forward
// computation. The zero value is not usable; construct one with NewTape.
//
// A Tape is a sink shared by every Variable minted from it, so its
// storage is guarded by a mutex. That guards individual appends against
// corruption; it does not make the *order* of appends from multiple
// goroutines meaningful. A Tape is fundamentally single-writer: build one
// expression graph per tape on a single logical thread (see the
// goroutine-scoped registry in scope.go for a convenience layer that
// gives each goroutine its own Tape).
type Tape struct {
	mu    sync.Mutex
	nodes []node
}

// NewTape returns an empty Tape.
func NewTape() *Tape {
	return &Tape{}
}

// Len returns the current node count.
func (t *Tape) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

// pushLeaf appends a leaf node and returns its index.
func (t *Tape) pushLeaf() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := len(t.nodes)
	t.nodes = append(t.nodes, node{parent0: i, parent1: i})
	return i
}

// pushUnary appends a node with a single contributing parent.
func (t *Tape) pushUnary(parent int, d float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := len(t.nodes)
	t.nodes = append(t.nodes, node{
		parent0: parent, d0: d,
		parent1: i, d1: 0,
	})
	return i
}

// pushBinary appends a node with two contributing parents.
func (t *Tape) pushBinary(p0 int, d0 float64, p1 int, d1 float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := len(t.nodes)
	t.nodes = append(t.nodes, node{parent0: p0, d0: d0, parent1: p1, d1: d1})
	return i
}

// snapshot copies the current node slice. The backward pass (Accumulate)
// takes one snapshot up front rather than re-locking per node: the tape
// may keep growing after the snapshot (accumulation is append-free and
// may be repeated at successive forward-evaluation moments), but nodes
// added after the snapshot cannot have contributed to a terminal value
// that was itself computed before them, so they are irrelevant to this
// particular backward sweep.
func (t *Tape) snapshot(upTo int) []node {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]node, upTo)
	copy(out, t.nodes[:upTo])
	return out
}
