// Package det integrates a real-concentration reaction network with
// the classical fixed-step fourth-order Runge-Kutta scheme. It is the
// continuous limit of the stochastic engine: the state evolves under
// dx/dt = sum of rate(x, rxn) * delta(rxn) over all reactions.
package det

import (
	"math"

	"github.com/san-kum/crnsim/internal/crn"
)

// maxPoints caps the number of samples retained by RunSteps.
const maxPoints = 100000

// Simulator drives one network. Stepping cannot fail; numerical
// blow-up on stiff systems shows up in the trace, not as an error.
type Simulator struct {
	Net *crn.Network[float64]
}

func New(net *crn.Network[float64]) *Simulator {
	return &Simulator{Net: net}
}

// Step advances the state by one RK4 step of size dt.
func (s *Simulator) Step(dt float64) {
	x := s.Net.State
	rxns := s.Net.Reactions

	k1 := crn.SpeciesRates(x, rxns)
	k2 := crn.SpeciesRates(x.Add(k1.Scale(dt/2)), rxns)
	k3 := crn.SpeciesRates(x.Add(k2.Scale(dt/2)), rxns)
	k4 := crn.SpeciesRates(x.Add(k3.Scale(dt)), rxns)

	delta := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(dt / 6)
	s.Net.State = x.Add(delta)
	s.Net.State.Time += dt
}

// RunFor integrates up to target in ceil(target/dt) fixed steps,
// recording the state before each one. The last recorded point is
// strictly before target; the boundary state is never included.
func (s *Simulator) RunFor(target, dt float64) *crn.Result {
	return s.RunSteps(int(math.Ceil(target/dt)), dt)
}

// RunSteps integrates a fixed number of steps, recording the state
// before each one. When steps exceeds the retention cap only every
// (steps/cap)-th state is kept; every step still advances the state,
// so sampling never perturbs the dynamics.
func (s *Simulator) RunSteps(steps int, dt float64) *crn.Result {
	res := crn.NewResult(s.Net.Names.Names())
	ratio := 1
	if steps > maxPoints {
		ratio = steps / maxPoints
	}
	for i := 0; i < steps; i++ {
		if i%ratio == 0 {
			res.Record(s.Net.State.Time, s.Net.State.Species)
		}
		s.Step(dt)
	}
	return res
}

// Reactions implements crn.System.
func (s *Simulator) Reactions() []crn.Reaction {
	rxns := make([]crn.Reaction, len(s.Net.Reactions))
	copy(rxns, s.Net.Reactions)
	return rxns
}

// State implements crn.System.
func (s *Simulator) State() crn.State[float64] {
	return s.Net.Snapshot()
}

// SimulateHistory implements crn.System.
func (s *Simulator) SimulateHistory(t, dt float64) (*crn.Result, error) {
	return s.RunFor(t, dt), nil
}

// Reset implements crn.System.
func (s *Simulator) Reset() { s.Net.Reset() }
