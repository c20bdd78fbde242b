package crn

import (
	"sort"
	"strconv"
	"strings"
)

// NameTable is the species index/name bijection. The index-ordered name
// slice is authoritative; the name-to-index map is derived from it.
type NameTable struct {
	names []string
	index map[string]int
}

func NewNameTable() *NameTable {
	return &NameTable{index: make(map[string]int)}
}

// Add returns the index of name, assigning the next free index if the
// name is new.
func (t *NameTable) Add(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = i
	return i
}

// Index returns the index of name, if present.
func (t *NameTable) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Name returns the name at index i.
func (t *NameTable) Name(i int) string { return t.names[i] }

func (t *NameTable) Len() int { return len(t.names) }

// Names returns a copy of the index-ordered name list.
func (t *NameTable) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

func (t *NameTable) Clone() *NameTable {
	c := NewNameTable()
	for _, name := range t.names {
		c.Add(name)
	}
	return c
}

// Network bundles a reaction set with its current and initial states.
// It is created by the parser; an engine mutates State in place, and
// Reset reverts to the parse-time snapshot. A Network has exactly one
// logical caller at a time.
type Network[T Abundance] struct {
	Reactions []Reaction
	State     State[T]
	Init      State[T]
	Names     *NameTable
}

// Reset reverts the current state to the initial snapshot: abundances
// to their declared values, time to zero.
func (n *Network[T]) Reset() {
	n.State = n.Init.Clone()
}

func (n *Network[T]) Clone() *Network[T] {
	rxns := make([]Reaction, len(n.Reactions))
	copy(rxns, n.Reactions)
	return &Network[T]{
		Reactions: rxns,
		State:     n.State.Clone(),
		Init:      n.Init.Clone(),
		Names:     n.Names.Clone(),
	}
}

// Snapshot returns a copy of the current state that does not alias any
// engine buffer.
func (n *Network[T]) Snapshot() State[T] {
	return n.State.Clone()
}

// String renders the network in the textual grammar accepted by the
// parser: one declaration per species in index order, then one line per
// reaction with reactant and product lists in index order, coefficient
// 1 omitted and the rate always present. Declarations carry the current
// abundances, which equal the initial ones for a freshly parsed or
// reset network.
func (n *Network[T]) String() string {
	var b strings.Builder
	for i, ct := range n.State.Species {
		b.WriteString(n.Names.Name(i))
		b.WriteString(" = ")
		b.WriteString(formatAbundance(ct))
		b.WriteString(";\n")
	}
	for _, rxn := range n.Reactions {
		n.writeSide(&b, rxn.reactants)
		b.WriteString(" -> ")
		n.writeSide(&b, rxn.products)
		b.WriteString(" : ")
		b.WriteString(strconv.FormatFloat(rxn.rate, 'g', -1, 64))
		b.WriteString(";\n")
	}
	return b.String()
}

func (n *Network[T]) writeSide(b *strings.Builder, side map[int]int64) {
	species := make([]int, 0, len(side))
	for s := range side {
		species = append(species, s)
	}
	sort.Ints(species)
	for i, s := range species {
		if i > 0 {
			b.WriteString(" + ")
		}
		if count := side[s]; count != 1 {
			b.WriteString(strconv.FormatInt(count, 10))
		}
		b.WriteString(n.Names.Name(s))
	}
}

func formatAbundance[T Abundance](v T) string {
	switch n := any(v).(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return ""
}

// Result is a recorded trajectory: one sampled time per row of species
// abundances, with the species names for labeling.
type Result struct {
	Names   []string
	Times   []float64
	Species [][]float64
}

func NewResult(names []string) *Result {
	return &Result{Names: names}
}

// Record appends one sample. The row is copied.
func (r *Result) Record(t float64, row []float64) {
	sample := make([]float64, len(row))
	copy(sample, row)
	r.Times = append(r.Times, t)
	r.Species = append(r.Species, sample)
}

func (r *Result) Len() int { return len(r.Times) }

// Column returns the series of species i across all samples.
func (r *Result) Column(i int) []float64 {
	col := make([]float64, len(r.Species))
	for j, row := range r.Species {
		col[j] = row[i]
	}
	return col
}

// System is the behavior shared by the two engines. The CLI and tests
// drive either one through it; the stochastic engine reports its
// integer counts as floats.
type System interface {
	Reactions() []Reaction
	State() State[float64]
	SimulateHistory(t, dt float64) (*Result, error)
	Reset()
}
