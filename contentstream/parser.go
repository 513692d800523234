package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Operation is an operator together with the operands that preceded it
type Operation struct {
	Operator string
	Operands []Object
	Image    *InlineImage // set for BI
}

// InlineImage is the payload of a BI ... ID ... EI sequence. Abbreviated
// keys and values in Params are expanded to their full names.
type InlineImage struct {
	Params Dict
	Data   []byte
}

// Token is one element of a content stream: either an operand or an
// operator. Inline images are returned as a single BI operator token.
type Token struct {
	Operand  Object
	Operator string
	Image    *InlineImage
}

// IsOperator reports whether the token is an operator
func (t Token) IsOperator() bool {
	return t.Operator != ""
}

// ErrSyntax is wrapped by every tokenizer error
var ErrSyntax = errors.New("content stream syntax error")

// Parser tokenizes a decoded content stream. It keeps no state outside the
// Parser value, so independent parsers can run concurrently.
type Parser struct {
	data []byte
	pos  int
}

// NewParser creates a new content stream parser for the given data
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Offset returns the current byte offset
func (p *Parser) Offset() int {
	return p.pos
}

// Next returns the next token. It returns io.EOF once the stream is exhausted.
func (p *Parser) Next() (Token, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return Token{}, io.EOF
	}

	start := p.pos
	c := p.data[p.pos]
	if isRegular(c) && !isNumberStart(c) {
		kw := p.readKeyword()
		switch kw {
		case "true":
			return Token{Operand: Bool(true)}, nil
		case "false":
			return Token{Operand: Bool(false)}, nil
		case "null":
			return Token{Operand: Null{}}, nil
		case "BI":
			img, err := p.parseInlineImage()
			if err != nil {
				return Token{}, p.errorf(start, "%v", err)
			}
			return Token{Operator: "BI", Image: img}, nil
		}
		return Token{Operator: kw}, nil
	}

	obj, err := p.parseOperand()
	if err != nil {
		return Token{}, p.errorf(start, "%v", err)
	}
	return Token{Operand: obj}, nil
}

// Parse tokenizes the whole stream and groups operands with their operator.
// Operands left over at the end of the stream are discarded.
func (p *Parser) Parse() ([]Operation, error) {
	ops := make([]Operation, 0)
	var operands []Object
	for {
		tok, err := p.Next()
		if err == io.EOF {
			return ops, nil
		}
		if err != nil {
			return nil, err
		}
		if !tok.IsOperator() {
			operands = append(operands, tok.Operand)
			continue
		}
		ops = append(ops, Operation{Operator: tok.Operator, Operands: operands, Image: tok.Image})
		operands = nil
	}
}

func (p *Parser) errorf(offset int, format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, offset, fmt.Sprintf(format, args...))
}

// parseOperand parses a number, string, name, array, dictionary, boolean
// or null.
func (p *Parser) parseOperand() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]
	switch {
	case isNumberStart(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.peek(1) == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName(), nil
	case c == '[':
		return p.parseArray()
	case isRegular(c):
		switch kw := p.readKeyword(); kw {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null{}, nil
		default:
			return nil, fmt.Errorf("unexpected keyword %q inside operand", kw)
		}
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) parseNumber() (Object, error) {
	start := p.pos
	hasDecimal := false

	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	numStr := string(p.data[start:p.pos])
	if hasDecimal {
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			// "-." and "." occur in sloppy producers and mean zero
			if numStr == "." || numStr == "-." || numStr == "+." {
				return Real(0), nil
			}
			return nil, fmt.Errorf("invalid real number %q", numStr)
		}
		return Real(val), nil
	}
	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", numStr)
	}
	return Int(val), nil
}

// parseString parses a literal string with escapes and balanced parentheses
func (p *Parser) parseString() (Object, error) {
	p.pos++ // (

	var result bytes.Buffer
	depth := 1
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '\\':
			if p.pos >= len(p.data) {
				return nil, fmt.Errorf("unclosed string")
			}
			p.readEscape(&result)
		case '(':
			depth++
			result.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return String(result.String()), nil
			}
			result.WriteByte(c)
		default:
			result.WriteByte(c)
		}
	}
	return nil, fmt.Errorf("unclosed string")
}

func (p *Parser) readEscape(out *bytes.Buffer) {
	next := p.data[p.pos]
	p.pos++
	switch next {
	case 'n':
		out.WriteByte('\n')
	case 'r':
		out.WriteByte('\r')
	case 't':
		out.WriteByte('\t')
	case 'b':
		out.WriteByte('\b')
	case 'f':
		out.WriteByte('\f')
	case '\r':
		if p.pos < len(p.data) && p.data[p.pos] == '\n' {
			p.pos++
		}
	case '\n':
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(next - '0')
		for i := 0; i < 2 && p.pos < len(p.data); i++ {
			d := p.data[p.pos]
			if d < '0' || d > '7' {
				break
			}
			v = v*8 + int(d-'0')
			p.pos++
		}
		out.WriteByte(byte(v))
	default:
		// \( \) \\ and unknown escapes keep the character
		out.WriteByte(next)
	}
}

func (p *Parser) parseHexString() (Object, error) {
	p.pos++ // <

	var result bytes.Buffer
	var hi byte
	odd := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch {
		case c == '>':
			if odd {
				result.WriteByte(hi << 4)
			}
			return String(result.String()), nil
		case isWhitespace(c):
		case isHexDigit(c):
			if odd {
				result.WriteByte(hi<<4 | hexValue(c))
			} else {
				hi = hexValue(c)
			}
			odd = !odd
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return nil, fmt.Errorf("unclosed hex string")
}

// parseName parses /Name, decoding #xx escapes
func (p *Parser) parseName() Name {
	p.pos++ // /

	var result bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			result.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		result.WriteByte(c)
		p.pos++
	}
	return Name(result.String())
}

func (p *Parser) parseArray() (Object, error) {
	p.pos++ // [

	arr := Array{}
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) parseDict() (Object, error) {
	p.pos += 2 // <<

	dict := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.peek(1) == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}
		key := p.parseName()
		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = value
	}
}

// readKeyword reads a run of regular characters
func (p *Parser) readKeyword() string {
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

func (p *Parser) peek(n int) byte {
	if p.pos+n < len(p.data) {
		return p.data[p.pos+n]
	}
	return 0
}

// skipWhitespace advances past whitespace and comments
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		return
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
