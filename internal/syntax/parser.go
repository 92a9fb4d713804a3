package syntax

import (
	"strconv"

	"github.com/gnoswap-labs/fitch/internal/fitch"
)

// Parser consumes tokens produced by the lexer.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a parser over tokens, which must end with TokenEOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProp parses a complete formula.
func ParseProp(input string) (fitch.Prop, error) {
	return parseFragment(input, 0, (*Parser).Prop)
}

// parseFragment lexes input located at base and runs parse over it,
// requiring all tokens to be consumed.
func parseFragment[T any](input string, base int, parse func(*Parser) (T, error)) (T, error) {
	var zero T
	tokens, err := NewLexer(input, base).Tokenize()
	if err != nil {
		return zero, err
	}
	p := NewParser(tokens)
	v, err := parse(p)
	if err != nil {
		return zero, err
	}
	if err := p.expectEnd(); err != nil {
		return zero, err
	}
	return v, nil
}

// Prop parses a formula starting at the current token.
func (p *Parser) Prop() (fitch.Prop, error) {
	return p.parseImply()
}

// Index parses a step index.
func (p *Parser) Index() (fitch.StepIndex, error) {
	tok := p.peek()
	if tok.Type != TokenInt {
		return 0, errorAt(tok, "expected step index but got %s", describe(tok))
	}
	n, err := strconv.ParseUint(tok.Value, 10, 32)
	if err != nil {
		return 0, errorAt(tok, "step index %s is out of range", tok.Value)
	}
	p.next()
	return fitch.StepIndex(n), nil
}

// separator skips an optional comma between arguments.
func (p *Parser) separator() {
	if p.peek().Type == TokenComma {
		p.next()
	}
}

func (p *Parser) parseImply() (fitch.Prop, error) {
	lhs, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenImply {
		return lhs, nil
	}
	p.next()
	rhs, err := p.parseImply()
	if err != nil {
		return nil, err
	}
	return fitch.Imply{Lhs: lhs, Rhs: rhs}, nil
}

func (p *Parser) parseOr() (fitch.Prop, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for isOr(p.peek()) {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = fitch.Or{Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (fitch.Prop, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenAnd {
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = fitch.And{Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (fitch.Prop, error) {
	if p.peek().Type != TokenNot {
		return p.parseAtom()
	}
	p.next()
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return fitch.Negated(inner), nil
}

func (p *Parser) parseAtom() (fitch.Prop, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenBottom:
		p.next()
		return fitch.Bottom{}, nil
	case TokenIdent:
		p.next()
		return fitch.Symbol{Name: tok.Value}, nil
	case TokenLParen:
		p.next()
		inner, err := p.parseImply()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != TokenRParen {
			return nil, errorAt(closing, "expected ')' but got %s", describe(closing))
		}
		p.next()
		return inner, nil
	default:
		return nil, errorAt(tok, "expected formula but got %s", describe(tok))
	}
}

func (p *Parser) expectEnd() error {
	if tok := p.peek(); tok.Type != TokenEOF {
		return errorAt(tok, "unexpected %s", describe(tok))
	}
	return nil
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

// isOr reports whether tok is a disjunction. A lone "v" in operator
// position also reads as one.
func isOr(tok Token) bool {
	return tok.Type == TokenOr || (tok.Type == TokenIdent && tok.Value == "v")
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return tok.Type.String()
	case TokenIdent, TokenInt:
		return strconv.Quote(tok.Value)
	default:
		return tok.Type.String() + " " + strconv.Quote(tok.Value)
	}
}
