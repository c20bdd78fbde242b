// Package sto advances an integer-count reaction network one firing at
// a time with Gillespie's stochastic simulation algorithm.
package sto

import (
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/crnsim/internal/crn"
)

// maxPoints caps the number of samples retained by RunSteps so very
// long runs do not grow the trace without bound.
const maxPoints = 100000

var (
	// ErrTerminalState indicates no reaction is applicable. Expected and
	// common; time-bounded runs end early and successfully on it.
	ErrTerminalState = errors.New("sto: network reached terminal state")

	// ErrInsufficientPrecision indicates round-off exhausted the
	// propensity scan without selecting a reaction. Rare; the run should
	// be treated as suspect rather than silently continued.
	ErrInsufficientPrecision = errors.New("sto: insufficient precision to select a reaction")
)

// Simulator drives one network with a caller-seeded random source, so
// trajectories are reproducible under a fixed seed.
type Simulator struct {
	Net *crn.Network[int64]

	rng   *rand.Rand
	rates []float64
}

func New(net *crn.Network[int64], seed int64) *Simulator {
	return &Simulator{Net: net, rng: rand.New(rand.NewSource(seed))}
}

// Step fires exactly one reaction: it computes every propensity,
// advances time by an exponentially distributed waiting interval, and
// selects the firing reaction by linear scan over the partial sums. On
// error the state is unchanged.
func (s *Simulator) Step() error {
	if len(s.rates) != len(s.Net.Reactions) {
		s.rates = make([]float64, len(s.Net.Reactions))
	}

	total := 0.0
	for i, rxn := range s.Net.Reactions {
		rate := crn.Propensity(s.Net.State, rxn)
		s.rates[i] = rate
		total += rate
	}
	if total == 0 {
		return ErrTerminalState
	}

	// rng.Float64 is in [0,1), so 1-u is in (0,1] and the log term is a
	// non-positive number; subtracting it advances time.
	s.Net.State.Time -= math.Log(1-s.rng.Float64()) / total

	threshold := s.rng.Float64() * total
	sum := 0.0
	for i, rate := range s.rates {
		sum += rate
		if threshold < sum {
			s.Net.State.Apply(s.Net.Reactions[i])
			return nil
		}
	}
	return ErrInsufficientPrecision
}

// Steps advances n firings, stopping at the first error.
func (s *Simulator) Steps(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunSteps records the state before each of up to steps firings. When
// steps exceeds the retention cap only every (steps/cap)-th state is
// kept, though every step still advances the simulation. Reaching a
// terminal state ends the run successfully with the history so far;
// any other failure returns the partial history alongside the error.
func (s *Simulator) RunSteps(steps int) (*crn.Result, error) {
	res := crn.NewResult(s.Net.Names.Names())
	ratio := 1
	if steps > maxPoints {
		ratio = steps / maxPoints
	}
	for i := 0; i < steps; i++ {
		if i%ratio == 0 {
			s.record(res)
		}
		if err := s.Step(); err != nil {
			if errors.Is(err, ErrTerminalState) {
				return res, nil
			}
			return res, err
		}
	}
	return res, nil
}

// RunFor records the state before every firing until the simulation
// time reaches target. A terminal state ends the run successfully with
// the history collected so far.
func (s *Simulator) RunFor(target float64) (*crn.Result, error) {
	res := crn.NewResult(s.Net.Names.Names())
	for s.Net.State.Time < target {
		s.record(res)
		if err := s.Step(); err != nil {
			if errors.Is(err, ErrTerminalState) {
				return res, nil
			}
			return res, err
		}
	}
	return res, nil
}

func (s *Simulator) record(res *crn.Result) {
	row := make([]float64, len(s.Net.State.Species))
	for i, ct := range s.Net.State.Species {
		row[i] = float64(ct)
	}
	res.Record(s.Net.State.Time, row)
}

// Reactions implements crn.System.
func (s *Simulator) Reactions() []crn.Reaction {
	rxns := make([]crn.Reaction, len(s.Net.Reactions))
	copy(rxns, s.Net.Reactions)
	return rxns
}

// State implements crn.System, reporting the integer counts as floats.
func (s *Simulator) State() crn.State[float64] {
	species := make([]float64, len(s.Net.State.Species))
	for i, ct := range s.Net.State.Species {
		species[i] = float64(ct)
	}
	return crn.State[float64]{Species: species, Time: s.Net.State.Time}
}

// SimulateHistory implements crn.System. The timestep is meaningless
// for a discrete-event simulation and is ignored.
func (s *Simulator) SimulateHistory(t, dt float64) (*crn.Result, error) {
	return s.RunFor(t)
}

// Reset implements crn.System.
func (s *Simulator) Reset() { s.Net.Reset() }
