package crn

// Abundance is the numeric representation of a species amount: integer
// counts for stochastic simulation, real concentrations for
// deterministic simulation.
type Abundance interface {
	~int64 | ~float64
}

// State is a snapshot of a network: one abundance per species index
// plus the current simulation time.
type State[T Abundance] struct {
	Species []T
	Time    float64
}

func (s State[T]) Clone() State[T] {
	species := make([]T, len(s.Species))
	copy(species, s.Species)
	return State[T]{Species: species, Time: s.Time}
}

// Add returns the element-wise sum of the species vectors. The
// receiver's time is kept; the operand's time is ignored.
func (s State[T]) Add(other State[T]) State[T] {
	result := make([]T, len(s.Species))
	for i := range s.Species {
		result[i] = s.Species[i] + other.Species[i]
	}
	return State[T]{Species: result, Time: s.Time}
}

// Scale returns the species vector multiplied by factor. Time is not
// rescaled.
func (s State[T]) Scale(factor float64) State[T] {
	result := make([]T, len(s.Species))
	for i, v := range s.Species {
		result[i] = T(float64(v) * factor)
	}
	return State[T]{Species: result, Time: s.Time}
}

// Apply adds the reaction's net delta to the species vector in place.
func (s State[T]) Apply(rxn Reaction) {
	for i, d := range rxn.delta {
		s.Species[i] += T(d)
	}
}

// Propensity is the combinatorial mass-action rate of rxn in an integer
// state: the rate constant times the falling factorial of each
// reactant's count down its coefficient. If any reactant count is below
// its coefficient the reaction cannot fire and the propensity is
// exactly zero.
func Propensity(s State[int64], rxn Reaction) float64 {
	rate := rxn.rate
	for species, count := range rxn.reactants {
		have := s.Species[species]
		if have < count {
			return 0
		}
		for i := have - count + 1; i <= have; i++ {
			rate *= float64(i)
		}
	}
	return rate
}

// MassActionRate is the continuous mass-action rate of rxn in a real
// state: the rate constant times each reactant concentration raised to
// its coefficient. Unlike Propensity there is no applicability clamp.
func MassActionRate(s State[float64], rxn Reaction) float64 {
	rate := rxn.rate
	for species, count := range rxn.reactants {
		rate *= pow(s.Species[species], count)
	}
	return rate
}

// SpeciesRates is the instantaneous net flux of every species: each
// reaction's mass-action rate scales its delta vector, summed over all
// reactions. This is the right-hand side of the deterministic ODE.
func SpeciesRates(s State[float64], rxns []Reaction) State[float64] {
	result := State[float64]{Species: make([]float64, len(s.Species))}
	for _, rxn := range rxns {
		rate := MassActionRate(s, rxn)
		for species, change := range rxn.delta {
			result.Species[species] += float64(change) * rate
		}
	}
	return result
}

// pow computes x^n for small non-negative integer n.
func pow(x float64, n int64) float64 {
	result := 1.0
	for ; n > 0; n-- {
		result *= x
	}
	return result
}
