// Package presets ships a handful of named reaction networks, used as
// CLI starting points and as test fixtures.
package presets

import "sort"

// RockPaperScissors: the molecules play rock paper scissors. The winner
// transforms the loser into a copy of itself.
const RockPaperScissors = `
	r = 50;
	p = 50;
	s = 50;
	r + p -> 2p;
	p + s -> 2s;
	s + r -> 2r;
	`

// PredatorPrey: a is the prey and b is the predator.
const PredatorPrey = `
	a = 100;
	b = 100;
	a + b -> 2b : 0.005;
	a -> 2a;
	b -> ;
	`

// Polya: Polya's urn. Draw a marble from the urn, then put two marbles
// of the same color back in.
const Polya = `
	A = 1;
	B = 1;
	A -> 2A;
	B -> 2B;
	`

// RPSLS: rock paper scissors with two more players.
const RPSLS = `
	a = 100;
	b = 100;
	c = 100;
	d = 100;
	e = 100;
	a + b -> 2a;
	b + c -> 2b;
	c + d -> 2c;
	d + e -> 2d;
	e + a -> 2e;
	a + d -> 2a;
	b + e -> 2b;
	c + a -> 2c;
	d + b -> 2d;
	e + c -> 2e;
	`

// Majority determines which of A and B is more abundant.
const Majority = `
	A = 30;
	B = 20;
	2A + B -> 3A;
	A + 2B -> 3B;
	`

// MajorityCatalyzed is the majority network with catalysts that
// transform into one another.
const MajorityCatalyzed = `
	A = 5120;
	B = 4880;
	C = 100;
	D = 100;
	2A + B + C -> 3A + C;
	A + 2B + D -> 3B + D;
	C -> D : 1000000000;
	D -> C : 1000000000;
	`

// Multiply approximately calculates the product of A and B. A
// deterministic simulation approaches it asymptotically.
const Multiply = `
	A = 30;
	B = 20;
	C = 0;
	A + B -> A + B + C;
	C -> ;
	`

// MultiplyCatalyzed calculates the product with some random
// perturbations of catalysts.
const MultiplyCatalyzed = `
	A = 30;
	B = 20;
	C = 0;
	D = 5;
	E = 5;
	A + B + D -> A + B + C + D;
	C + E -> E;
	D -> E : 1000000000;
	E -> D : 1000000000;
	`

// Equilibrium is a basic network with two reactions that reach
// equilibrium.
const Equilibrium = `
	A = 10000;
	B = 10000;
	C = 10000;
	D = 10000;
	A + 2B -> 4C + 3D;
	4C + 3D -> A + 2B;
	`

// Chain relays an initial population down a line of species.
const Chain = `
	A = 100;
	A -> B;
	B -> C;
	C -> D;
	D -> E;
	E -> F;
	F -> G;
	G -> H;
	H -> I;
	I -> J;
	J -> K;
	K -> L;
	`

// Other is a found network of gated oscillators; provenance unknown.
const Other = `
	a = 50;
	b = 40;
	c = 100;
	ga = 1;
	gb = 1;
	gc = 1;
	gob = 1;
	goc = 1;
	goa = 1;
	a + b -> 2b;
	b + c -> 2c;
	c + a -> 2a;
	a + gb -> iab;
	iab + gob -> 2b;
	b + lb -> gb + lgb;
	gb + lgb -> b + lb;
	ibc + goc -> 2c;
	c + lc -> gc + lgc;
	gc + lgc -> c + lc;
	c + ga -> ica;
	ica + goa -> 2a;
	a + la -> ga + lga;
	ga + lga -> a + la;
	-> ga : 0.00001;
	-> gb : 0.00001;
	-> gc : 0.00001;
	-> gob : 0.00001;
	-> goc : 0.00001;
	-> goa : 0.00001;
	`

type preset struct {
	text        string
	description string
}

var registry = map[string]preset{
	"rock-paper-scissors": {RockPaperScissors, "three species transform each other cyclically"},
	"predator-prey":       {PredatorPrey, "Lotka-Volterra prey/predator oscillation"},
	"polya":               {Polya, "Polya's urn: two self-replicating colors"},
	"rpsls":               {RPSLS, "rock paper scissors lizard spock, five-way cycle"},
	"majority":            {Majority, "amplifies whichever of A and B starts ahead"},
	"majority-catalyzed":  {MajorityCatalyzed, "majority vote gated by fast-flipping catalysts"},
	"multiply":            {Multiply, "C converges to the product of A and B"},
	"multiply-catalyzed":  {MultiplyCatalyzed, "multiplication perturbed by catalyst noise"},
	"equilibrium":         {Equilibrium, "one reversible reaction pair settling to balance"},
	"chain":               {Chain, "population cascading down a chain of species"},
	"other":               {Other, "found network of gated oscillators"},
}

// Get returns the network text registered under name.
func Get(name string) (string, bool) {
	p, ok := registry[name]
	return p.text, ok
}

// Describe returns the one-line description registered under name.
func Describe(name string) (string, bool) {
	p, ok := registry[name]
	return p.description, ok
}

// Names lists all preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
