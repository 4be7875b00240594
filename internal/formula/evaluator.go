// Package formula evaluates catalog-authored arithmetic formulas over named
// variables. The grammar is closed: numbers, + - * /, parentheses and
// identifiers resolved case-insensitively against the supplied variable map.
// Nothing else parses, so catalog data can never execute code.
package formula

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Evaluate computes a formula with fail-soft semantics: a blank formula, a
// syntax error, an unknown variable, NaN/Inf or a negative result all yield
// 0. Errors are logged so bad catalog formulas stay visible.
func Evaluate(f string, vars map[string]float64) float64 {
	v, err := EvaluateErr(f, vars)
	if err != nil {
		log.Printf("formula: %q: %v (treated as 0)", f, err)
		return 0
	}
	return v
}

// EvaluateErr computes a formula and returns the underlying error for
// callers that surface evaluation problems. A blank formula is 0 with no
// error. Results are clamped to be non-negative.
func EvaluateErr(f string, vars map[string]float64) (float64, error) {
	if strings.TrimSpace(f) == "" {
		return 0, nil
	}
	toks, err := tokenize(f)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks, vars: lowerKeys(vars)}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, fmt.Errorf("unexpected token %q", p.toks[p.pos].text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite result")
	}
	if v < 0 {
		return 0, nil
	}
	return v, nil
}

func lowerKeys(vars map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(vars))
	for k, v := range vars {
		out[strings.ToLower(k)] = v
	}
	return out
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokIdent
	tokOp // + - * / ( )
)

type token struct {
	kind tokKind
	text string
	num  float64
}

func tokenize(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')':
			toks = append(toks, token{kind: tokOp, text: string(r)})
			i++
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			n, err := strconv.ParseFloat(string(runes[i:j]), 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", string(runes[i:j]))
			}
			toks = append(toks, token{kind: tokNumber, num: n, text: string(runes[i:j])})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
	vars map[string]float64
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	t, ok := p.peek()
	if !ok || t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return v, nil
		}
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("*", "/")
		if !ok {
			return v, nil
		}
		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		}
	}
}

func (p *parser) factor() (float64, error) {
	if op, ok := p.acceptOp("-", "+"); ok {
		v, err := p.factor()
		if err != nil {
			return 0, err
		}
		if op == "-" {
			return -v, nil
		}
		return v, nil
	}
	t, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of formula")
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		return t.num, nil
	case tokIdent:
		p.pos++
		v, found := p.vars[strings.ToLower(t.text)]
		if !found {
			return 0, fmt.Errorf("unknown variable %q", t.text)
		}
		return v, nil
	case tokOp:
		if t.text == "(" {
			p.pos++
			v, err := p.expr()
			if err != nil {
				return 0, err
			}
			if _, ok := p.acceptOp(")"); !ok {
				return 0, fmt.Errorf("missing closing parenthesis")
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("unexpected token %q", t.text)
}
