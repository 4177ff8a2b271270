// Package tokenizer converts Jack source text into the flat token sequence
// the compiler consumes.
package tokenizer

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"

	"github.com/libklein/nand2tetris/jackcompiler/internal/token"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidToken is returned for source text that forms no valid token.
var ErrInvalidToken = errors.New("invalid token")

var (
	symbolRegex          = regexp.MustCompile(`^[{}\[\]().,;+\-*/&|<>=~]`)
	integerConstantRegex = regexp.MustCompile(`^[0-9]+`)
	identifierRegex      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// Tokenizer scans tokens one at a time, in the manner of bufio.Scanner.
type Tokenizer struct {
	scanner   *bufio.Scanner
	nextToken token.Token
	line      int
	err       error
}

func NewTokenizer(r io.Reader) *Tokenizer {
	t := &Tokenizer{line: 1}
	t.scanner = bufio.NewScanner(r)
	t.scanner.Split(t.splitToken)
	return t
}

// Tokenize reads r to the end and returns every token in source order.
func Tokenize(r io.Reader) ([]token.Token, error) {
	t := NewTokenizer(r)
	var tokens []token.Token
	for t.Scan() {
		tokens = append(tokens, t.Token())
	}
	if err := t.Err(); err != nil {
		return nil, err
	}
	log.Debugf("tokenized %d tokens over %d lines", len(tokens), t.line)
	return tokens, nil
}

func (t *Tokenizer) Err() error {
	return t.err
}

func (t *Tokenizer) Token() token.Token {
	return t.nextToken
}

// Line is the source line the scanner has advanced to.
func (t *Tokenizer) Line() int {
	return t.line
}

func (t *Tokenizer) Scan() bool {
	if t.err != nil {
		return false
	}
	if !t.scanner.Scan() {
		t.err = t.scanner.Err()
		return false
	}
	tok, err := t.parseToken(t.scanner.Text())
	if err != nil {
		t.err = err
		return false
	}
	t.nextToken = tok
	return true
}

func (t *Tokenizer) parseToken(text string) (token.Token, error) {
	switch {
	case text[0] == '"':
		return token.NewString(text[1 : len(text)-1]), nil
	case symbolRegex.MatchString(text):
		return token.NewSymbol(text[0]), nil
	case integerConstantRegex.MatchString(text):
		value, err := strconv.Atoi(text)
		// < 0 cannot happen as - is an operator
		if err != nil || value > token.MaxInteger {
			return token.Token{}, errors.Wrapf(ErrInvalidToken, "line %d: integer constant %s out of range", t.line, text)
		}
		return token.NewInteger(value), nil
	default:
		if kw, ok := token.LookupKeyword(text); ok {
			return token.NewKeyword(kw), nil
		}
		return token.NewIdentifier(text), nil
	}
}

// advance counts the newlines consumed so errors can name a line.
func (t *Tokenizer) advance(data []byte, n int) int {
	t.line += bytes.Count(data[:n], []byte{'\n'})
	return n
}

// splitToken skips whitespace and comments and cuts the next raw token from
// data. It asks for more input whenever a token or comment may continue past
// the end of the buffer.
func (t *Tokenizer) splitToken(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for {
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		rest := data[i:]
		switch {
		case len(rest) == 0:
			return t.advance(data, i), nil, nil
		case bytes.HasPrefix(rest, []byte("//")):
			end := bytes.IndexByte(rest, '\n')
			if end < 0 {
				if atEOF {
					return t.advance(data, len(data)), nil, nil
				}
				return t.advance(data, i), nil, nil
			}
			i += end + 1
			continue
		case bytes.HasPrefix(rest, []byte("/*")):
			end := bytes.Index(rest[2:], []byte("*/"))
			if end < 0 {
				if atEOF {
					return 0, nil, errors.Wrapf(ErrInvalidToken, "line %d: unterminated comment", t.line+bytes.Count(data[:i], []byte{'\n'}))
				}
				return t.advance(data, i), nil, nil
			}
			i += end + 4
			continue
		case len(rest) == 1 && rest[0] == '/' && !atEOF:
			// Might be the start of a comment.
			return t.advance(data, i), nil, nil
		}
		break
	}

	rest := data[i:]
	line := t.line + bytes.Count(data[:i], []byte{'\n'})
	var n int
	switch {
	case rest[0] == '"':
		end := bytes.IndexAny(rest[1:], "\"\n")
		if end < 0 {
			if atEOF {
				return 0, nil, errors.Wrapf(ErrInvalidToken, "line %d: unterminated string constant", line)
			}
			return t.advance(data, i), nil, nil
		}
		if rest[1+end] == '\n' {
			return 0, nil, errors.Wrapf(ErrInvalidToken, "line %d: newline in string constant", line)
		}
		n = end + 2
	case symbolRegex.Match(rest):
		n = 1
	case integerConstantRegex.Match(rest):
		n = len(integerConstantRegex.Find(rest))
	case identifierRegex.Match(rest):
		n = len(identifierRegex.Find(rest))
	default:
		return 0, nil, errors.Wrapf(ErrInvalidToken, "line %d: unknown character %q", line, rest[0])
	}
	if n == len(rest) && !atEOF && (identifierRegex.Match(rest) || integerConstantRegex.Match(rest)) {
		// An identifier or number may continue in the next read.
		return t.advance(data, i), nil, nil
	}
	return t.advance(data, i+n), rest[:n], nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
