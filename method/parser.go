package method

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/jdql/utils"
)

var actionKeywords = map[string]Action{
	"find":   Find,
	"delete": Delete,
	"update": Update,
	"count":  Count,
	"exists": Exists,
}

type keywordSeq struct {
	words    []string
	operator Operator
}

// longest sequences first so GreaterThanEqual wins over GreaterThan
var operatorKeywords = []keywordSeq{
	{[]string{"Greater", "Than", "Equal"}, GreaterThanEqual},
	{[]string{"Less", "Than", "Equal"}, LessThanEqual},
	{[]string{"Greater", "Than"}, GreaterThan},
	{[]string{"Less", "Than"}, LessThan},
	{[]string{"Starts", "With"}, StartsWith},
	{[]string{"Ends", "With"}, EndsWith},
	{[]string{"Between"}, Between},
	{[]string{"Contains"}, Contains},
	{[]string{"Like"}, Like},
	{[]string{"In"}, In},
	{[]string{"Null"}, Null},
	{[]string{"Empty"}, Empty},
	{[]string{"True"}, True},
	{[]string{"False"}, False},
}

// Parser recursive descent parser for Query by Method Name
type Parser struct {
	name     string
	tokens   []Token
	pos      int
	listener Listener
}

// NewParser create parser that reports to listener
func NewParser(lexer *Lexer, listener Listener) *Parser {
	if listener == nil {
		listener = BaseListener{}
	}
	return &Parser{name: lexer.Input(), tokens: lexer.Tokens(), listener: listener}
}

// Parse decode a method name, e.g. findByNameLikeAndPriceLessThanEqual
func Parse(name string) (*QueryDescriptor, error) {
	desc := &QueryDescriptor{Method: name}
	if err := Walk(name, &descriptorBuilder{desc: desc}); err != nil {
		return nil, err
	}
	return desc, nil
}

// Walk parse a method name and stream the events to listener
func Walk(name string, listener Listener) error {
	return NewParser(NewLexer(name), listener).Parse()
}

// Parse run the parser over all tokens
func (p *Parser) Parse() error {
	action, err := p.parseAction()
	if err != nil {
		return err
	}
	p.listener.EnterAction(action)

	// First is free text on actions other than find
	if action == Find && p.peek().Is("First") {
		n, err := p.parseFirst()
		if err != nil {
			return err
		}
		p.listener.EnterFirst(n)
	}

	// free text between the action and the By or OrderBy clause is ignored
	for !p.atEOF() && !p.peek().Is("By") && !p.atOrderBy() {
		if tok := p.peek(); tok.Kind == Illegal {
			return p.errorf(tok, "unexpected %q", tok.Text)
		}
		p.pos++
	}

	if p.peek().Is("By") {
		p.pos++
		if err := p.parseRestriction(); err != nil {
			return err
		}
	}

	if p.atOrderBy() {
		if action != Find {
			return p.errorf(p.peek(), "OrderBy is only allowed on find")
		}
		p.pos += 2
		if err := p.parseOrder(); err != nil {
			return err
		}
	}

	if !p.atEOF() {
		return p.errorf(p.peek(), "unexpected %q", p.peek().Text)
	}

	p.listener.ExitMethod()
	return nil
}

func (p *Parser) parseAction() (Action, error) {
	tok := p.peek()
	if tok.Kind == EOF {
		return 0, p.errorf(tok, "empty method name")
	}

	action, ok := actionKeywords[tok.Text]
	if !ok || tok.Kind != Word {
		return 0, p.errorf(tok, "unknown action %q", tok.Text)
	}
	p.pos++
	return action, nil
}

func (p *Parser) parseFirst() (int, error) {
	p.pos++
	tok := p.peek()
	if tok.Kind != Number {
		return 1, nil
	}

	n, err := strconv.Atoi(tok.Text)
	if err != nil || n < 1 {
		return 0, p.errorf(tok, "invalid First count %q", tok.Text)
	}
	p.pos++
	return n, nil
}

// parseRestriction parse conditions joined by And/Or up to OrderBy or EOF
func (p *Parser) parseRestriction() error {
	var (
		index   int
		and     = true
		segment []Token
		start   = p.peek()
	)

	flush := func(connector Token) error {
		if len(segment) == 0 {
			if index == 0 {
				return p.errorf(connector, "missing condition after By")
			}
			return p.errorf(connector, "missing condition")
		}

		condition, err := p.parseCondition(segment)
		if err != nil {
			return err
		}
		condition.And = and
		p.listener.EnterCondition(index, condition)
		index++
		segment = segment[:0]
		return nil
	}

	for !p.atEOF() && !p.atOrderBy() {
		tok := p.peek()
		switch {
		case tok.Is("And"), tok.Is("Or"):
			if err := flush(tok); err != nil {
				return err
			}
			and = tok.Is("And")
		default:
			segment = append(segment, tok)
		}
		p.pos++
	}

	if index == 0 && len(segment) == 0 {
		return p.errorf(start, "missing condition after By")
	}
	return flush(p.peek())
}

// parseCondition strips operator, Not and IgnoreCase from the end, the rest is the property
func (p *Parser) parseCondition(tokens []Token) (Condition, error) {
	condition := Condition{Operator: Equal}
	rest := tokens

	for _, seq := range operatorKeywords {
		if hasSuffix(rest, seq.words) {
			condition.Operator = seq.operator
			rest = rest[:len(rest)-len(seq.words)]
			break
		}
	}

	if hasSuffix(rest, []string{"Not"}) {
		condition.Negate = true
		rest = rest[:len(rest)-1]
	}

	if hasSuffix(rest, []string{"Ignore", "Case"}) {
		condition.IgnoreCase = true
		rest = rest[:len(rest)-2]
	}

	if len(rest) == 0 {
		return condition, p.errorf(tokens[0], "missing property")
	}

	property, err := p.property(rest)
	if err != nil {
		return condition, err
	}
	condition.Property = property
	return condition, nil
}

// parseOrder parse order items, every item but the last needs a direction
func (p *Parser) parseOrder() error {
	var (
		index   int
		pending []Token
		start   = p.peek()
	)

	for !p.atEOF() {
		tok := p.peek()
		if tok.Is("And") || tok.Is("Or") {
			return p.errorf(tok, "unexpected %q in OrderBy", tok.Text)
		}

		if tok.Is("Asc") || tok.Is("Desc") {
			if len(pending) == 0 {
				return p.errorf(tok, "missing property before %s", tok.Text)
			}

			property, err := p.property(pending)
			if err != nil {
				return err
			}

			direction := Asc
			if tok.Is("Desc") {
				direction = Desc
			}
			p.listener.EnterOrderBy(index, OrderBy{Property: property, Direction: direction})
			index++
			pending = nil
		} else {
			pending = append(pending, tok)
		}
		p.pos++
	}

	if len(pending) > 0 {
		property, err := p.property(pending)
		if err != nil {
			return err
		}
		p.listener.EnterOrderBy(index, OrderBy{Property: property, Direction: None})
		index++
	}

	if index == 0 {
		return p.errorf(start, "missing property after OrderBy")
	}
	return nil
}

// property joins tokens into a dotted path, each segment starts lower-cased
func (p *Parser) property(tokens []Token) (string, error) {
	var (
		segments []string
		segment  strings.Builder
	)

	for idx, tok := range tokens {
		switch tok.Kind {
		case Underscore:
			if segment.Len() == 0 {
				return "", p.errorf(tok, "empty property segment")
			}
			segments = append(segments, segment.String())
			segment.Reset()
		case Word, Number:
			if segment.Len() == 0 && tok.Kind == Number {
				return "", p.errorf(tok, "property segment can't start with %q", tok.Text)
			}
			segment.WriteString(tok.Text)
		default:
			return "", p.errorf(tokens[idx], "unexpected %q", tok.Text)
		}
	}

	if segment.Len() == 0 {
		return "", p.errorf(tokens[len(tokens)-1], "empty property segment")
	}
	segments = append(segments, segment.String())

	for idx, s := range segments {
		segments[idx] = utils.Decapitalize(s)
	}
	return strings.Join(segments, "."), nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == EOF
}

func (p *Parser) atOrderBy() bool {
	return p.peek().Is("Order") && p.tokens[p.pos+1].Is("By")
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	return &SyntaxError{Method: p.name, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func hasSuffix(tokens []Token, words []string) bool {
	if len(tokens) < len(words) {
		return false
	}

	offset := len(tokens) - len(words)
	for idx, word := range words {
		if !tokens[offset+idx].Is(word) {
			return false
		}
	}
	return true
}
