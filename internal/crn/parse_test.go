package crn

import (
	"errors"
	"testing"
)

func TestParse_Declarations(t *testing.T) {
	net, err := ParseStochastic("a = 5; b = 10; a -> b;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if net.Names.Len() != 2 {
		t.Fatalf("expected 2 species, got %d", net.Names.Len())
	}
	if net.Names.Name(0) != "a" || net.Names.Name(1) != "b" {
		t.Errorf("indices out of declaration order: %v", net.Names.Names())
	}
	if net.Init.Species[0] != 5 || net.Init.Species[1] != 10 {
		t.Errorf("initial abundances wrong: %v", net.Init.Species)
	}
	if net.Init.Time != 0 {
		t.Errorf("initial time should be 0, got %f", net.Init.Time)
	}
}

func TestParse_UndeclaredSpeciesDefaultsToZero(t *testing.T) {
	net, err := ParseStochastic("a = 5; a -> b; c -> a;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if net.Names.Len() != 3 {
		t.Fatalf("expected 3 species, got %d", net.Names.Len())
	}
	// First-occurrence order: a from the declaration, then b, then c.
	if net.Names.Name(1) != "b" || net.Names.Name(2) != "c" {
		t.Errorf("reaction species indexed out of order: %v", net.Names.Names())
	}
	if net.Init.Species[1] != 0 || net.Init.Species[2] != 0 {
		t.Errorf("undeclared species must start at zero: %v", net.Init.Species)
	}
}

func TestParse_Coefficients(t *testing.T) {
	net, err := ParseStochastic("A = 1; 2A + B -> 3A;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	rxn := net.Reactions[0]
	a, _ := net.Names.Index("A")
	b, _ := net.Names.Index("B")

	if rxn.Reactants()[a] != 2 || rxn.Reactants()[b] != 1 {
		t.Errorf("reactants wrong: %v", rxn.Reactants())
	}
	if rxn.Products()[a] != 3 {
		t.Errorf("products wrong: %v", rxn.Products())
	}
	if rxn.Delta()[a] != 1 || rxn.Delta()[b] != -1 {
		t.Errorf("delta wrong: %v", rxn.Delta())
	}
}

func TestParse_RepeatedSpeciesAccumulate(t *testing.T) {
	net, err := ParseStochastic("A = 2; A + A -> B;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a, _ := net.Names.Index("A")
	if net.Reactions[0].Reactants()[a] != 2 {
		t.Errorf("A + A should accumulate to coefficient 2, got %d", net.Reactions[0].Reactants()[a])
	}
}

func TestParse_Rates(t *testing.T) {
	net, err := ParseDeterministic("a = 1; a -> ; a -> : 0.005; -> a : 1e-5;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(net.Reactions) != 3 {
		t.Fatalf("expected 3 reactions, got %d", len(net.Reactions))
	}
	if net.Reactions[0].Rate() != 1.0 {
		t.Errorf("omitted rate must default to 1, got %g", net.Reactions[0].Rate())
	}
	if net.Reactions[1].Rate() != 0.005 {
		t.Errorf("expected rate 0.005, got %g", net.Reactions[1].Rate())
	}
	if net.Reactions[2].Rate() != 1e-5 {
		t.Errorf("expected rate 1e-5, got %g", net.Reactions[2].Rate())
	}
}

func TestParse_EmptySides(t *testing.T) {
	net, err := ParseStochastic("a = 1; -> a; a -> ; -> ;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(net.Reactions) != 3 {
		t.Fatalf("expected 3 reactions, got %d", len(net.Reactions))
	}
	if len(net.Reactions[0].Reactants()) != 0 {
		t.Error("birth reaction should have no reactants")
	}
	if len(net.Reactions[1].Products()) != 0 {
		t.Error("death reaction should have no products")
	}
	// The inert reaction is legal.
	if len(net.Reactions[2].Reactants()) != 0 || len(net.Reactions[2].Products()) != 0 {
		t.Error("inert reaction should be empty on both sides")
	}
}

func TestParse_WhitespaceInsignificant(t *testing.T) {
	compact, err := ParseStochastic("a=5;b=3;a+b->2b:0.5;")
	if err != nil {
		t.Fatalf("compact parse failed: %v", err)
	}
	spaced, err := ParseStochastic("\n  a = 5 ;\n  b = 3 ;\n  a + b -> 2 b : 0.5 ;\n")
	if err != nil {
		t.Fatalf("spaced parse failed: %v", err)
	}
	if compact.String() != spaced.String() {
		t.Errorf("whitespace changed the parse:\n%q\nvs\n%q", compact.String(), spaced.String())
	}
}

func TestParse_DuplicateDefinition(t *testing.T) {
	_, err := ParseStochastic("a = 1; a = 2; a -> ;")
	if err == nil {
		t.Fatal("expected an error for a duplicate declaration")
	}

	var dup *DuplicateDefinitionError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateDefinitionError, got %T: %v", err, err)
	}
	if dup.Name != "a" {
		t.Errorf("expected duplicate name a, got %q", dup.Name)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing semicolon", "a = 1; a -> b"},
		{"missing arrow", "a = 1; a b;"},
		{"dangling coefficient", "a = 1; 2 -> a;"},
		{"bad declaration value", "a = x;"},
		{"declaration after reaction", "a = 1; a -> b; c = 2;"},
		{"garbage", "!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStochastic(tt.text)
			if err == nil {
				t.Fatalf("expected a parse failure for %q", tt.text)
			}
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Errorf("expected SyntaxError, got %T: %v", err, err)
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	net, err := ParseStochastic("")
	if err != nil {
		t.Fatalf("empty input should parse to an empty network: %v", err)
	}
	if net.Names.Len() != 0 || len(net.Reactions) != 0 {
		t.Error("empty input should produce no species or reactions")
	}
}

func TestParse_BothRepresentations(t *testing.T) {
	text := "a = 2.5; a -> ;"

	detNet, err := ParseDeterministic(text)
	if err != nil {
		t.Fatalf("deterministic parse failed: %v", err)
	}
	if detNet.Init.Species[0] != 2.5 {
		t.Errorf("expected concentration 2.5, got %g", detNet.Init.Species[0])
	}

	stoNet, err := ParseStochastic(text)
	if err != nil {
		t.Fatalf("stochastic parse failed: %v", err)
	}
	if stoNet.Init.Species[0] != 2 {
		t.Errorf("expected count 2, got %d", stoNet.Init.Species[0])
	}
}
