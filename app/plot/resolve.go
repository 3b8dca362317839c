package plot

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"graphplot/app/lang"
)

// maxSubstitutions bounds the references expanded in a single slot.
const maxSubstitutions = 64

// CycleError reports a reference that would close a dependency cycle.
// Slots lists every slot found on the cycle, in ascending order.
type CycleError struct {
	Slot  int
	Slots []int
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Slots))
	for i, s := range e.Slots {
		parts[i] = fmt.Sprint(s)
	}
	return fmt.Sprintf("%v: slot %d through slots [%s]", ErrCycle, e.Slot, strings.Join(parts, " "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Resolver substitutes references to other slots and tracks the
// dependency graph. An edge i→j means slot i references slot j.
type Resolver struct {
	reg *Registry
	g   *simple.DirectedGraph
	log *slog.Logger
}

// NewResolver returns a resolver over reg with an empty dependency graph.
func NewResolver(reg *Registry, cfg Config) *Resolver {
	g := simple.NewDirectedGraph()
	for i := 0; i < SlotCount; i++ {
		g.AddNode(simple.Node(i))
	}
	return &Resolver{reg: reg, g: g, log: cfg.logger("resolver")}
}

// Resolve expands every reference to another slot in text, on behalf of
// slot. References are expanded right to left so nested calls such as
// f(g(x)) substitute the inner reference first. The outgoing edges of slot
// are rebuilt as a side effect.
//
// The result still has to be normalized and compiled. A *CycleError is
// returned when a reference would close a cycle; the edge is recorded
// anyway so that breaking the cycle later re-resolves slot.
func (r *Resolver) Resolve(slot int, text string) (string, error) {
	if err := r.reg.check(slot); err != nil {
		return "", err
	}
	r.clearEdges(slot)

	s := lang.Prepare(text)
	for n := 0; ; n++ {
		at, ref := r.lastReference(s)
		if at < 0 {
			return s, nil
		}
		if n == maxSubstitutions {
			return "", fmt.Errorf("%w: slot %d", ErrTooManyReferences, slot)
		}

		if ref == slot {
			return "", &CycleError{Slot: slot, Slots: []int{slot}}
		}
		if topo.PathExistsIn(r.g, simple.Node(ref), simple.Node(slot)) {
			r.g.SetEdge(r.g.NewEdge(simple.Node(slot), simple.Node(ref)))
			err := &CycleError{Slot: slot, Slots: r.cycleSlots(slot, ref)}
			r.log.Warn("circular reference",
				slog.Int("slot", slot),
				slog.String("reference", string(r.reg.Name(ref))),
				slog.Any("slots", err.Slots))
			return "", err
		}

		closing := lang.MatchingBracket(s, at+1)
		if closing < 0 {
			return "", fmt.Errorf("%w: unterminated call to %c", ErrInvalidReference, r.reg.Name(ref))
		}
		r.g.SetEdge(r.g.NewEdge(simple.Node(slot), simple.Node(ref)))

		if !r.reg.IsValid(ref) {
			return "", fmt.Errorf("%w: %c", ErrInvalidReference, r.reg.Name(ref))
		}
		arg := s[at+2 : closing]
		body := lang.ReplaceVariable(r.reg.SourceString(ref), r.reg.variable[0], "("+arg+")")
		s = s[:at] + "(" + body + ")" + s[closing+1:]
	}
}

// lastReference finds the rightmost standalone slot letter followed by '('.
func (r *Resolver) lastReference(s string) (at, slot int) {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i+1] != '(' || !lang.IsStandalone(s, i) {
			continue
		}
		if idx, ok := r.reg.Index(s[i]); ok {
			return i, idx
		}
	}
	return -1, 0
}

func (r *Resolver) clearEdges(slot int) {
	for _, to := range graph.NodesOf(r.g.From(int64(slot))) {
		r.g.RemoveEdge(int64(slot), to.ID())
	}
}

// cycleSlots returns slot plus every slot on a simple path from ref back
// to slot.
func (r *Resolver) cycleSlots(slot, ref int) []int {
	on := map[int]bool{slot: true}
	var path []int
	visited := make(map[int]bool)
	var walk func(n int)
	walk = func(n int) {
		if len(path) > SlotCount {
			return
		}
		if n == slot {
			for _, p := range path {
				on[p] = true
			}
			return
		}
		visited[n] = true
		path = append(path, n)
		for _, next := range graph.NodesOf(r.g.From(int64(n))) {
			if id := int(next.ID()); !visited[id] {
				walk(id)
			}
		}
		path = path[:len(path)-1]
		visited[n] = false
	}
	walk(ref)

	slots := make([]int, 0, len(on))
	for s := range on {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	return slots
}

// Dependencies returns the slots slot references, ascending.
func (r *Resolver) Dependencies(slot int) []int {
	return sortedIDs(r.g.From(int64(slot)))
}

// Dependents returns the slots that reference slot, ascending.
func (r *Resolver) Dependents(slot int) []int {
	return sortedIDs(r.g.To(int64(slot)))
}

// PropagationOrder returns every slot that transitively depends on one of
// origins, excluding the origins, ordered so that a slot comes after the
// slots it depends on. Members of a cycle are ordered by index.
func (r *Resolver) PropagationOrder(origins ...int) []int {
	done := make(map[int]bool)
	for _, o := range origins {
		done[o] = true
	}
	pending := make(map[int]bool)
	queue := append([]int(nil), origins...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, d := range r.Dependents(n) {
			if !done[d] && !pending[d] {
				pending[d] = true
				queue = append(queue, d)
			}
		}
	}

	var order []int
	for len(pending) > 0 {
		next := -1
		for _, n := range sortedKeys(pending) {
			if r.ready(n, pending) {
				next = n
				break
			}
		}
		if next < 0 {
			next = sortedKeys(pending)[0]
		}
		delete(pending, next)
		order = append(order, next)
	}
	return order
}

func (r *Resolver) ready(n int, pending map[int]bool) bool {
	for _, dep := range r.Dependencies(n) {
		if pending[dep] {
			return false
		}
	}
	return true
}

// Cycles lists the dependency cycles currently recorded in the graph.
func (r *Resolver) Cycles() [][]int {
	var cycles [][]int
	for _, c := range topo.DirectedCyclesIn(r.g) {
		if len(c) > 1 && c[0].ID() == c[len(c)-1].ID() {
			c = c[:len(c)-1]
		}
		ids := make([]int, 0, len(c))
		for _, n := range c {
			ids = append(ids, int(n.ID()))
		}
		cycles = append(cycles, ids)
	}
	return cycles
}

func sortedIDs(it graph.Nodes) []int {
	var ids []int
	for it.Next() {
		ids = append(ids, int(it.Node().ID()))
	}
	sort.Ints(ids)
	return ids
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
