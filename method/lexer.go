package method

import (
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
	"golang.org/x/text/unicode/norm"
)

// TokenKind lexical class of a token
type TokenKind int

const (
	EOF TokenKind = iota
	Word
	Number
	Underscore
	Illegal
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Underscore:
		return "Underscore"
	default:
		return "Illegal"
	}
}

// Token lexical token, Pos is the byte offset in the normalized method name
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// Is reports whether the token is the word keyword
func (t Token) Is(keyword string) bool {
	return t.Kind == Word && t.Text == keyword
}

// Lexer splits a method name on camel case boundaries
type Lexer struct {
	input  string
	tokens []Token
	next   int
}

// NewLexer create lexer for method name
func NewLexer(name string) *Lexer {
	input := norm.NFC.String(name)
	return &Lexer{input: input, tokens: tokenize(input)}
}

// Input normalized method name
func (l *Lexer) Input() string {
	return l.input
}

// Tokens all tokens, terminated by an EOF token
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

// Next returns the next token, EOF once exhausted
func (l *Lexer) Next() Token {
	tok := l.tokens[l.next]
	if tok.Kind != EOF {
		l.next++
	}
	return tok
}

func tokenize(input string) []Token {
	var (
		tokens []Token
		pos    int
	)

	if input != "" {
		for _, part := range camelcase.Split(input) {
			for _, text := range splitUnderscores(part) {
				tokens = append(tokens, Token{Kind: classify(text), Text: text, Pos: pos})
				pos += len(text)
			}
		}
	}

	return append(tokens, Token{Kind: EOF, Pos: len(input)})
}

// splitUnderscores keeps every underscore as its own token, camelcase groups
// consecutive punctuation together
func splitUnderscores(part string) []string {
	if len(part) < 2 || part[0] != '_' {
		return []string{part}
	}

	parts := make([]string, 0, len(part))
	for i := 0; i < len(part); i++ {
		if part[i] != '_' {
			return append(parts, part[i:])
		}
		parts = append(parts, "_")
	}
	return parts
}

func classify(text string) TokenKind {
	if text == "_" {
		return Underscore
	}

	r, _ := utf8.DecodeRuneInString(text)
	switch {
	case unicode.IsLetter(r):
		return Word
	case unicode.IsDigit(r):
		return Number
	default:
		return Illegal
	}
}
