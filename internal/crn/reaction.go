package crn

// Reaction is one mass-action reaction: reactant and product
// stoichiometries keyed by species index, a rate constant, and the
// precomputed net delta (products minus reactants) applied to a state
// when the reaction fires. Reactions are immutable after construction.
type Reaction struct {
	reactants map[int]int64
	products  map[int]int64
	delta     map[int]int64
	rate      float64
}

// NewReaction builds a reaction from its stoichiometries. The delta map
// is computed once here; both input maps are copied.
func NewReaction(reactants, products map[int]int64, rate float64) Reaction {
	delta := make(map[int]int64, len(products)+len(reactants))
	for species, count := range products {
		delta[species] = count
	}
	for species, count := range reactants {
		delta[species] -= count
	}
	return Reaction{
		reactants: copyStoich(reactants),
		products:  copyStoich(products),
		delta:     delta,
		rate:      rate,
	}
}

// Reactants returns a copy of the reactant stoichiometry.
func (r Reaction) Reactants() map[int]int64 { return copyStoich(r.reactants) }

// Products returns a copy of the product stoichiometry.
func (r Reaction) Products() map[int]int64 { return copyStoich(r.products) }

// Delta returns a copy of the net per-species change.
func (r Reaction) Delta() map[int]int64 { return copyStoich(r.delta) }

// Rate returns the rate constant.
func (r Reaction) Rate() float64 { return r.rate }

func copyStoich(m map[int]int64) map[int]int64 {
	c := make(map[int]int64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
