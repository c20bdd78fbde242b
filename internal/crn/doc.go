// Package crn models chemical reaction networks: named species with
// integer or real-valued abundances evolving under a fixed set of
// mass-action reactions.
//
// The package holds the data model and textual format shared by both
// simulation engines:
//
//   - [State]: per-species abundances plus the current simulation time
//   - [Reaction]: immutable stoichiometry with a precomputed net delta
//   - [Network]: reactions, current and initial state, species names
//   - [ParseStochastic] / [ParseDeterministic]: text to network
//   - [Result]: a recorded (time, abundances) trajectory
//
// Networks are described in a small text format. Initial abundances are
// declared first, then reactions, each terminated by a semicolon:
//
//	a = 100;
//	b = 100;
//	a + b -> 2b : 0.005;
//	a -> 2a;
//	b -> ;
//
// A reaction side lists species with optional integer coefficients
// ("2b"), either side may be empty, and an optional ": rate" sets the
// rate constant (1 when omitted). Species first mentioned inside a
// reaction are created with abundance zero. [Network.String] renders a
// network back into this format.
//
// Abundances are integer counts for stochastic simulation and real
// concentrations for deterministic simulation. The two interpretations
// use different mass-action laws, implemented by [Propensity] and
// [MassActionRate]; this asymmetry is the usual discrete/continuous
// limit pair and both forms are kept side by side on purpose.
package crn
