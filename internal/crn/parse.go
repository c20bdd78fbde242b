package crn

import (
	"fmt"
	"strconv"
)

// DuplicateDefinitionError reports a species declared with an explicit
// initial abundance more than once.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("crn: duplicate definition of species %q", e.Name)
}

// SyntaxError reports malformed input at a byte offset. No partial
// network is ever produced.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("crn: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// ParseStochastic parses a network description into an integer-count
// network for stochastic simulation. Declared abundances are truncated
// to integers.
func ParseStochastic(text string) (*Network[int64], error) {
	names, init, rxns, err := parseText(text)
	if err != nil {
		return nil, err
	}
	species := make([]int64, len(init))
	for i, v := range init {
		species[i] = int64(v)
	}
	net := &Network[int64]{
		Reactions: rxns,
		Init:      State[int64]{Species: species},
		Names:     names,
	}
	net.State = net.Init.Clone()
	return net, nil
}

// ParseDeterministic parses a network description into a
// real-concentration network for deterministic simulation.
func ParseDeterministic(text string) (*Network[float64], error) {
	names, init, rxns, err := parseText(text)
	if err != nil {
		return nil, err
	}
	net := &Network[float64]{
		Reactions: rxns,
		Init:      State[float64]{Species: init},
		Names:     names,
	}
	net.State = net.Init.Clone()
	return net, nil
}

// parseText is the single parse pass shared by both representations.
// Declarations come first and fix the leading indices; species first
// seen inside a reaction are appended with abundance zero.
func parseText(text string) (*NameTable, []float64, []Reaction, error) {
	p := &parser{src: text, names: NewNameTable()}

	for {
		ok, err := p.declaration()
		if err != nil {
			return nil, nil, nil, err
		}
		if !ok {
			break
		}
	}

	var rxns []Reaction
	p.skipSpace()
	for !p.eof() {
		rxn, err := p.reaction()
		if err != nil {
			return nil, nil, nil, err
		}
		rxns = append(rxns, rxn)
		p.skipSpace()
	}

	return p.names, p.init, rxns, nil
}

type parser struct {
	src      string
	pos      int
	names    *NameTable
	init     []float64
	declared map[string]bool
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// expect consumes the literal tok or fails.
func (p *parser) expect(tok string) error {
	p.skipSpace()
	if p.pos+len(tok) > len(p.src) || p.src[p.pos:p.pos+len(tok)] != tok {
		return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf("expected %q", tok)}
	}
	p.pos += len(tok)
	return nil
}

// ident consumes a species name: a letter followed by letters or
// digits. Returns false without consuming if none is present.
func (p *parser) ident() (string, bool) {
	p.skipSpace()
	start := p.pos
	if p.eof() || !isLetter(p.src[p.pos]) {
		return "", false
	}
	p.pos++
	for p.pos < len(p.src) && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos], true
}

// number consumes a signed floating-point literal.
func (p *parser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	if p.peek() == '+' || p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		p.pos++
		if p.peek() == '+' || p.peek() == '-' {
			p.pos++
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, &SyntaxError{Offset: start, Msg: "expected a number"}
	}
	return v, nil
}

// declaration parses one "name = number ;" line. Returns false with
// the position restored when the input no longer looks like a
// declaration, which hands off to reaction parsing.
func (p *parser) declaration() (bool, error) {
	save := p.pos
	name, ok := p.ident()
	if !ok {
		p.pos = save
		return false, nil
	}
	p.skipSpace()
	if p.peek() != '=' {
		p.pos = save
		return false, nil
	}
	p.pos++
	value, err := p.number()
	if err != nil {
		return false, err
	}
	if err := p.expect(";"); err != nil {
		return false, err
	}

	if p.declared == nil {
		p.declared = make(map[string]bool)
	}
	if p.declared[name] {
		return false, &DuplicateDefinitionError{Name: name}
	}
	p.declared[name] = true
	p.names.Add(name)
	p.init = append(p.init, value)
	return true, nil
}

// reaction parses one "reactants -> products (: rate)? ;" line.
func (p *parser) reaction() (Reaction, error) {
	reactants, err := p.side()
	if err != nil {
		return Reaction{}, err
	}
	if err := p.expect("->"); err != nil {
		return Reaction{}, err
	}
	products, err := p.side()
	if err != nil {
		return Reaction{}, err
	}

	rate := 1.0
	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		rate, err = p.number()
		if err != nil {
			return Reaction{}, err
		}
	}
	if err := p.expect(";"); err != nil {
		return Reaction{}, err
	}
	return NewReaction(reactants, products, rate), nil
}

// side parses a possibly empty "+"-separated list of coefficient and
// species pairs. Repeated species accumulate.
func (p *parser) side() (map[int]int64, error) {
	side := make(map[int]int64)
	p.skipSpace()
	if !isDigit(p.peek()) && !isLetter(p.peek()) {
		return side, nil
	}
	for {
		count, name, err := p.term()
		if err != nil {
			return nil, err
		}
		side[p.species(name)] += count
		p.skipSpace()
		if p.peek() != '+' {
			return side, nil
		}
		p.pos++
	}
}

// term parses an optional integer coefficient followed by a species
// name; a missing coefficient means 1.
func (p *parser) term() (int64, string, error) {
	p.skipSpace()
	count := int64(1)
	if isDigit(p.peek()) {
		start := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		v, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
		if err != nil {
			return 0, "", &SyntaxError{Offset: start, Msg: "bad coefficient"}
		}
		count = v
	}
	name, ok := p.ident()
	if !ok {
		return 0, "", &SyntaxError{Offset: p.pos, Msg: "expected a species name"}
	}
	return count, name, nil
}

// species resolves a name to its index, creating it with a zero initial
// abundance on first reference.
func (p *parser) species(name string) int {
	if i, ok := p.names.Index(name); ok {
		return i
	}
	i := p.names.Add(name)
	p.init = append(p.init, 0)
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
