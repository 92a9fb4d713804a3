package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType defines the kinds of tokens produced by the lexer.
type TokenType int

const (
	TokenEOF    TokenType = iota // end of input
	TokenIdent                   // p, q, foo_1
	TokenInt                     // step index
	TokenBottom                  // bottom or ⊥
	TokenNot                     // - ¬ ~
	TokenAnd                     // & ∧ ^ *
	TokenOr                      // | ∨ +
	TokenImply                   // -> → ⇒
	TokenLParen                  // (
	TokenRParen                  // )
	TokenComma                   // ,
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenInt:
		return "index"
	case TokenBottom:
		return "bottom"
	case TokenNot:
		return "negation"
	case TokenAnd:
		return "conjunction"
	case TokenOr:
		return "disjunction"
	case TokenImply:
		return "implication"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	default:
		return "unknown"
	}
}

// Token is a single lexical token. Offset is the byte offset of the token
// in the complete input line.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

// Lexer scans a fragment of an input line. base is the offset of the
// fragment within the line, so that token offsets always refer to the
// line as typed.
type Lexer struct {
	input    string
	base     int
	position int
	tokens   []Token
}

// NewLexer returns a lexer for input starting at offset base.
func NewLexer(input string, base int) *Lexer {
	return &Lexer{
		input:  input,
		base:   base,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the whole input. The returned slice always ends with
// a TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		start := l.position
		r, size := utf8.DecodeRuneInString(l.input[start:])

		switch {
		case unicode.IsSpace(r):
			l.position += size
		case r == '(':
			l.emit(TokenLParen, size)
		case r == ')':
			l.emit(TokenRParen, size)
		case r == ',':
			l.emit(TokenComma, size)
		case r == '-':
			if strings.HasPrefix(l.input[start:], "->") {
				l.emit(TokenImply, 2)
			} else {
				l.emit(TokenNot, size)
			}
		case r == '¬' || r == '~':
			l.emit(TokenNot, size)
		case r == '&' || r == '∧' || r == '^' || r == '*':
			l.emit(TokenAnd, size)
		case r == '|' || r == '∨' || r == '+':
			l.emit(TokenOr, size)
		case r == '→' || r == '⇒':
			l.emit(TokenImply, size)
		case r == '⊥':
			l.emit(TokenBottom, size)
		case isDigit(r):
			l.lexWhile(TokenInt, isDigit)
		case isIdentStart(r):
			l.lexIdent()
		default:
			return nil, &SyntaxError{
				Offset: l.base + start,
				Msg:    fmt.Sprintf("unexpected character %q", r),
			}
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Offset: l.base + len(l.input)})
	return l.tokens, nil
}

// emit adds a token for the next size bytes.
func (l *Lexer) emit(typ TokenType, size int) {
	l.tokens = append(l.tokens, Token{
		Type:   typ,
		Value:  l.input[l.position : l.position+size],
		Offset: l.base + l.position,
	})
	l.position += size
}

func (l *Lexer) lexWhile(typ TokenType, accept func(rune) bool) {
	start := l.position
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if !accept(r) {
			break
		}
		l.position += size
	}
	l.tokens = append(l.tokens, Token{
		Type:   typ,
		Value:  l.input[start:l.position],
		Offset: l.base + start,
	})
}

// lexIdent scans an identifier. The word "bottom" is reserved for ⊥.
func (l *Lexer) lexIdent() {
	l.lexWhile(TokenIdent, isIdentPart)
	last := &l.tokens[len(l.tokens)-1]
	if last.Value == "bottom" {
		last.Type = TokenBottom
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }
