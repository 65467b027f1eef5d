package filter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Pagerous/scimpler-sub000/errors"
	"github.com/Pagerous/scimpler-sub000/schema"
)

// maxNestingDepth bounds parser recursion; nesting deeper than any sane
// filter is rejected instead of exhausting the stack.
const maxNestingDepth = 64

// placeholderRe matches the positional tokens that stand in for parsed
// sub-expressions while the logical structure is split.
var placeholderRe = regexp.MustCompile(`\|&PLACE_HOLDER_(\d+)&\|`)

// placeholder records a parsed sub-expression and the original text it
// replaced, so error messages can reconstitute the input.
type placeholder struct {
	op   Operator
	text string
}

type parser struct {
	placeholders map[int]*placeholder
	nextID       int
	errs         []errors.ValidationError
}

// Parse parses a SCIM filter expression into an operator tree. The tree is
// nil whenever any error was recorded, even if a partial tree could have
// been built.
func Parse(expression string) (Operator, []errors.ValidationError) {
	p := &parser{placeholders: make(map[int]*placeholder)}

	substituted := p.extractComplexFilters(expression)
	op := p.parseExpression(substituted, 0)
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return op, nil
}

func (p *parser) newPlaceholder(op Operator, text string) string {
	id := p.nextID
	p.nextID++
	p.placeholders[id] = &placeholder{op: op, text: text}
	return fmt.Sprintf("|&PLACE_HOLDER_%d&|", id)
}

// reconstitute substitutes placeholder tokens back into their original
// text, repeatedly, since group text may itself contain earlier tokens.
func (p *parser) reconstitute(s string) string {
	for range p.placeholders {
		replaced := placeholderRe.ReplaceAllStringFunc(s, func(token string) string {
			id, err := strconv.Atoi(placeholderRe.FindStringSubmatch(token)[1])
			if err != nil {
				return token
			}
			if ph, ok := p.placeholders[id]; ok {
				return ph.text
			}
			return token
		})
		if replaced == s {
			break
		}
		s = replaced
	}
	return strings.TrimSpace(s)
}

// resolvePlaceholder returns the sub-expression a lone placeholder token
// stands for. The second result is false when the token is not a
// placeholder at all.
func (p *parser) resolvePlaceholder(token string) (Operator, bool) {
	m := placeholderRe.FindStringSubmatch(token)
	if m == nil || m[0] != token {
		return nil, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	ph, ok := p.placeholders[id]
	if !ok {
		return nil, false
	}
	return ph.op, true
}

// extractComplexFilters is pass 1: scan for attr[...] complex attribute
// filters, parse each bracket interior as a self-contained sub-filter, and
// replace the whole name[...] span with a placeholder token. Quote-aware:
// brackets inside string literals are text.
func (p *parser) extractComplexFilters(expr string) string {
	var out strings.Builder
	inString := false
	bracketOpen := -1 // position of the current '['
	attrStart := -1   // start of the attribute name preceding it
	runStart, runEnd := -1, -1
	segStart := 0

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch {
		case c == '[':
			if bracketOpen >= 0 {
				p.errs = append(p.errs, errors.NestedComplexFilter(strings.TrimSpace(expr)))
				continue
			}
			bracketOpen = i
			if runStart >= 0 && runEnd == i {
				attrStart = runStart
			} else {
				attrStart = -1
			}

		case c == ']':
			if bracketOpen < 0 {
				p.errs = append(p.errs, errors.NoOpeningComplexBracket(i))
				continue
			}
			spanStart := bracketOpen
			name := ""
			if attrStart >= 0 {
				name = expr[attrStart:bracketOpen]
				spanStart = attrStart
			}
			op := p.parseComplexFilter(name, expr[bracketOpen+1:i], expr[spanStart:i+1])
			out.WriteString(expr[segStart:spanStart])
			out.WriteString(p.newPlaceholder(op, expr[spanStart:i+1]))
			segStart = i + 1
			bracketOpen = -1
			attrStart = -1

		case isNameChar(c):
			if runEnd != i {
				runStart = i
			}
			runEnd = i + 1

		default:
			runStart, runEnd = -1, -1
		}
	}
	if bracketOpen >= 0 {
		p.errs = append(p.errs, errors.NoClosingComplexBracket(bracketOpen))
	}
	out.WriteString(expr[segStart:])
	return out.String()
}

// parseComplexFilter validates one attr[...] occurrence and parses its
// body. Returns nil after recording errors.
func (p *parser) parseComplexFilter(name, body, original string) Operator {
	failed := false
	var attrName schema.AttributeName
	if name == "" {
		p.errs = append(p.errs, errors.EmptyComplexAttrName(original))
		failed = true
	} else {
		var ok bool
		attrName, ok = schema.ParseAttrName(name)
		if !ok {
			p.errs = append(p.errs, errors.BadAttributeName(name))
			failed = true
		}
	}
	if strings.TrimSpace(body) == "" {
		p.errs = append(p.errs, errors.EmptyComplexFilterBody(original))
		return nil
	}
	sub := p.parseExpression(body, 1)
	if sub == nil || failed {
		return nil
	}
	return Complex{AttrName: attrName, Sub: sub}
}

// parseExpression is pass 2: extract balanced parenthesized groups into
// placeholders, then split the flat remainder by the logical keywords.
func (p *parser) parseExpression(expr string, depth int) Operator {
	if depth > maxNestingDepth {
		p.errs = append(p.errs, errors.UnknownExpression(p.reconstitute(expr)))
		return nil
	}

	substituted, balanced := p.extractGroups(expr, depth)
	if !balanced {
		return nil
	}
	if strings.TrimSpace(substituted) == "" {
		p.errs = append(p.errs, errors.EmptyExpression())
		return nil
	}

	parts := splitKeyword(substituted, "or")
	if len(parts) == 1 {
		return p.parseAndLevel(parts[0], depth)
	}
	var subs []Operator
	failed := false
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			p.errs = append(p.errs, errors.MissingOperand("or", p.reconstitute(substituted)))
			failed = true
			continue
		}
		sub := p.parseAndLevel(part, depth)
		if sub == nil {
			failed = true
			continue
		}
		subs = append(subs, sub)
	}
	if failed {
		return nil
	}
	return Or{Sub: subs}
}

func (p *parser) parseAndLevel(expr string, depth int) Operator {
	parts := splitKeyword(expr, "and")
	if len(parts) == 1 {
		return p.parseOperand(parts[0], depth)
	}
	var subs []Operator
	failed := false
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			p.errs = append(p.errs, errors.MissingOperand("and", p.reconstitute(expr)))
			failed = true
			continue
		}
		sub := p.parseOperand(part, depth)
		if sub == nil {
			failed = true
			continue
		}
		subs = append(subs, sub)
	}
	if failed {
		return nil
	}
	return And{Sub: subs}
}

// parseOperand parses one leaf operand: an optional leading not, then a
// placeholder, a unary expression, or a binary expression.
func (p *parser) parseOperand(expr string, depth int) Operator {
	t := strings.TrimSpace(expr)

	if len(t) >= 3 && strings.EqualFold(t[:3], "not") && (len(t) == 3 || !isWordChar(t[3])) {
		rest := strings.TrimSpace(t[3:])
		if rest == "" {
			p.errs = append(p.errs, errors.MissingOperand("not", p.reconstitute(t)))
			return nil
		}
		sub := p.parseOperand(rest, depth)
		if sub == nil {
			return nil
		}
		return Not{Sub: sub}
	}

	tokens := tokenize(t)
	switch len(tokens) {
	case 1:
		if op, ok := p.resolvePlaceholder(tokens[0]); ok {
			// A nil operator means the sub-expression already failed.
			return op
		}
		p.errs = append(p.errs, errors.UnknownExpression(p.reconstitute(t)))
		return nil

	case 2:
		failed := false
		attrName, ok := schema.ParseAttrName(p.reconstitute(tokens[0]))
		if !ok {
			p.errs = append(p.errs, errors.BadAttributeName(p.reconstitute(tokens[0])))
			failed = true
		}
		if !strings.EqualFold(tokens[1], "pr") {
			p.errs = append(p.errs, errors.UnknownOperator("unary", tokens[1], p.reconstitute(t)))
			failed = true
		}
		if failed {
			return nil
		}
		return Present{AttrName: attrName}

	case 3:
		failed := false
		attrName, ok := schema.ParseAttrName(p.reconstitute(tokens[0]))
		if !ok {
			p.errs = append(p.errs, errors.BadAttributeName(p.reconstitute(tokens[0])))
			failed = true
		}
		op, ok := binaryOps[strings.ToLower(tokens[1])]
		if !ok {
			p.errs = append(p.errs, errors.UnknownOperator("binary", tokens[1], p.reconstitute(t)))
			failed = true
		}
		value, ok := parseLiteral(tokens[2])
		if !ok {
			p.errs = append(p.errs, errors.BadLiteral(tokens[2]))
			failed = true
		}
		if failed {
			return nil
		}
		return Comparison{AttrName: attrName, Op: op, Value: value}

	default:
		p.errs = append(p.errs, errors.UnknownExpression(p.reconstitute(t)))
		return nil
	}
}

// extractGroups replaces each balanced top-level (...) group with a
// placeholder for its recursively parsed interior. Unbalanced brackets are
// reported one error per bracket, in left-to-right order, and abort this
// level.
func (p *parser) extractGroups(expr string, depth int) (string, bool) {
	var out strings.Builder
	inString := false
	level := 0
	groupStart := -1
	segStart := 0
	var unmatched []bracketError
	var openPositions []int

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '(':
			openPositions = append(openPositions, i)
			if level == 0 {
				groupStart = i
			}
			level++
		case ')':
			if level == 0 {
				unmatched = append(unmatched, bracketError{position: i, closing: true})
				continue
			}
			level--
			openPositions = openPositions[:len(openPositions)-1]
			if level == 0 {
				inner := expr[groupStart+1 : i]
				op := p.parseExpression(inner, depth+1)
				out.WriteString(expr[segStart:groupStart])
				out.WriteString(p.newPlaceholder(op, expr[groupStart:i+1]))
				segStart = i + 1
			}
		}
	}
	for _, pos := range openPositions {
		unmatched = append(unmatched, bracketError{position: pos})
	}
	if len(unmatched) > 0 {
		sort.Slice(unmatched, func(i, j int) bool {
			return unmatched[i].position < unmatched[j].position
		})
		for _, b := range unmatched {
			if b.closing {
				p.errs = append(p.errs, errors.NoOpeningBracket(b.position))
			} else {
				p.errs = append(p.errs, errors.NoClosingBracket(b.position))
			}
		}
		return "", false
	}
	out.WriteString(expr[segStart:])
	return out.String(), true
}

type bracketError struct {
	position int
	closing  bool
}

// splitKeyword splits s on the logical keyword at word boundaries, outside
// string literals.
func splitKeyword(s, keyword string) []string {
	var parts []string
	inString := false
	last := 0
	for i := 0; i+len(keyword) <= len(s); i++ {
		if s[i] == '"' {
			inString = !inString
			continue
		}
		if inString || !strings.EqualFold(s[i:i+len(keyword)], keyword) {
			continue
		}
		if i > 0 && isWordChar(s[i-1]) {
			continue
		}
		if end := i + len(keyword); end < len(s) && isWordChar(s[end]) {
			continue
		}
		parts = append(parts, s[last:i])
		last = i + len(keyword)
		i = last - 1
	}
	return append(parts, s[last:])
}

// tokenize splits a leaf expression on whitespace, keeping double-quoted
// spans intact.
func tokenize(s string) []string {
	var tokens []string
	inString := false
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inString = !inString
		}
		if !inString && (c == ' ' || c == '\t' || c == '\n' || c == '\r') {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// parseLiteral parses a comparison value: quoted string, boolean, null, or
// number (integer preferred).
func parseLiteral(token string) (any, bool) {
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return token[1 : len(token)-1], true
	}
	switch strings.ToLower(token) {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return int(i), true
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, true
	}
	return nil, false
}

// isNameChar matches the characters an attribute name run may contain
// ahead of a complex filter bracket.
func isNameChar(c byte) bool {
	return isWordChar(c) || c == '.' || c == ':' || c == '-'
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
