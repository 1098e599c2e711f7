package queryast

import "fmt"

// ParseError is a parse/lex failure: spec.md 7 requires it to surface
// location and message, fatal to the current query only.
type ParseError struct {
	Pos     string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parse parses one `SELECT ... FROM ... WHERE ... ;` statement.
func Parse(src string) (*Query, error) {
	p := &parser{lx: newLexer(src)}
	p.advance()
	return p.parseQuery()
}

type parser struct {
	lx  *lexer
	cur token
}

func (p *parser) advance() {
	p.cur = p.lx.next()
}

func (p *parser) fail(format string, args ...any) error {
	return &ParseError{Pos: p.cur.Position(), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expectKeyword(word string) error {
	if p.cur.kind != tokKeyword || p.cur.text != word {
		return p.fail("expected %s, got %q", word, p.cur.text)
	}
	p.advance()
	return nil
}

func (p *parser) parseQuery() (*Query, error) {
	if p.cur.kind == tokInvalid {
		return nil, p.fail("%s", p.cur.text)
	}
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	selectList, err := p.parseIdList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	fromList, err := p.parseIdList()
	if err != nil {
		return nil, err
	}

	var where []Predicate
	if p.cur.kind == tokKeyword && p.cur.text == "WHERE" {
		p.advance()
		where, err = p.parsePredicates()
		if err != nil {
			return nil, err
		}
	}

	if p.cur.kind != tokSemicolon {
		return nil, p.fail("expected ';', got %q", p.cur.text)
	}
	p.advance()

	if p.cur.kind != tokEOF {
		return nil, p.fail("unexpected trailing input %q", p.cur.text)
	}

	return &Query{SelectList: selectList, FromList: fromList, Where: where}, nil
}

func (p *parser) parseIdList() ([]string, error) {
	var ids []string
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	ids = append(ids, id)
	for p.cur.kind == tokComma {
		p.advance()
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (p *parser) parseIdent() (string, error) {
	if p.cur.kind != tokIdent {
		return "", p.fail("expected identifier, got %q", p.cur.text)
	}
	text := p.cur.text
	p.advance()
	return text, nil
}

func (p *parser) parsePredicates() ([]Predicate, error) {
	var preds []Predicate
	pred, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}
	preds = append(preds, pred)
	for p.cur.kind == tokKeyword && p.cur.text == "AND" {
		p.advance()
		pred, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	return preds, nil
}

func (p *parser) parsePredicate() (Predicate, error) {
	lhs, err := p.parseIdent()
	if err != nil {
		return Predicate{}, err
	}
	if p.cur.kind != tokEquals {
		return Predicate{}, p.fail("expected '=', got %q", p.cur.text)
	}
	p.advance()

	switch p.cur.kind {
	case tokInt:
		text := p.cur.text
		p.advance()
		return Predicate{LHS: lhs, RHS: text, Kind: IntConstant}, nil
	case tokString:
		text := p.cur.text
		p.advance()
		return Predicate{LHS: lhs, RHS: text, Kind: StringConstant}, nil
	case tokIdent:
		text := p.cur.text
		p.advance()
		return Predicate{LHS: lhs, RHS: text, Kind: ColumnRef}, nil
	case tokInvalid:
		return Predicate{}, p.fail("%s", p.cur.text)
	default:
		return Predicate{}, p.fail("expected a constant or column reference, got %q", p.cur.text)
	}
}
