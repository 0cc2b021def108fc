package wire

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// scanner is a minimal recursive-descent parser for the grammar the trade
// server actually emits: object, array, string, number, true/false/null.
// The server's envelopes are loosely structured (fields may be omitted,
// envelope keys vary per endpoint), so decoding works over generic values
// instead of a fixed schema.
type scanner struct {
	data string
	pos  int
}

// parseDocument parses text as a single value followed only by whitespace.
func parseDocument(text string) (any, error) {
	s := &scanner{data: text}
	value, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.pos != len(s.data) {
		return nil, s.errorf("trailing data after value")
	}
	return value, nil
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) parseValue() (any, error) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return nil, s.errorf("unexpected end of input")
	}
	switch c := s.data[s.pos]; {
	case c == '{':
		return s.parseObject()
	case c == '[':
		return s.parseArray()
	case c == '"':
		return s.parseString()
	case c == '-' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	default:
		return s.parseLiteral()
	}
}

func (s *scanner) parseObject() (map[string]any, error) {
	s.pos++ // consume '{'
	object := map[string]any{}
	s.skipSpace()
	if s.pos < len(s.data) && s.data[s.pos] == '}' {
		s.pos++
		return object, nil
	}
	for {
		s.skipSpace()
		if s.pos >= len(s.data) || s.data[s.pos] != '"' {
			return nil, s.errorf("expected object key")
		}
		key, err := s.parseString()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.pos >= len(s.data) || s.data[s.pos] != ':' {
			return nil, s.errorf("expected ':' after object key %q", key)
		}
		s.pos++
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		object[key] = value
		s.skipSpace()
		if s.pos >= len(s.data) {
			return nil, s.errorf("unterminated object")
		}
		switch s.data[s.pos] {
		case ',':
			s.pos++
		case '}':
			s.pos++
			return object, nil
		default:
			return nil, s.errorf("expected ',' or '}' in object")
		}
	}
}

func (s *scanner) parseArray() ([]any, error) {
	s.pos++ // consume '['
	array := []any{}
	s.skipSpace()
	if s.pos < len(s.data) && s.data[s.pos] == ']' {
		s.pos++
		return array, nil
	}
	for {
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		array = append(array, value)
		s.skipSpace()
		if s.pos >= len(s.data) {
			return nil, s.errorf("unterminated array")
		}
		switch s.data[s.pos] {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return array, nil
		default:
			return nil, s.errorf("expected ',' or ']' in array")
		}
	}
}

func (s *scanner) parseString() (string, error) {
	s.pos++ // consume opening quote
	var builder strings.Builder
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case c == '"':
			s.pos++
			return builder.String(), nil
		case c == '\\':
			s.pos++
			if s.pos >= len(s.data) {
				return "", s.errorf("unterminated escape sequence")
			}
			switch esc := s.data[s.pos]; esc {
			case '"', '\\', '/':
				builder.WriteByte(esc)
				s.pos++
			case 'b':
				builder.WriteByte('\b')
				s.pos++
			case 'f':
				builder.WriteByte('\f')
				s.pos++
			case 'n':
				builder.WriteByte('\n')
				s.pos++
			case 'r':
				builder.WriteByte('\r')
				s.pos++
			case 't':
				builder.WriteByte('\t')
				s.pos++
			case 'u':
				r, err := s.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				builder.WriteRune(r)
			default:
				return "", s.errorf("unknown escape %q", esc)
			}
		case c < 0x20:
			return "", s.errorf("unescaped control character in string")
		default:
			r, size := utf8.DecodeRuneInString(s.data[s.pos:])
			builder.WriteRune(r)
			s.pos += size
		}
	}
	return "", s.errorf("unterminated string")
}

func (s *scanner) parseUnicodeEscape() (rune, error) {
	s.pos++ // consume 'u'
	if s.pos+4 > len(s.data) {
		return 0, s.errorf("truncated \\u escape")
	}
	code, err := strconv.ParseUint(s.data[s.pos:s.pos+4], 16, 32)
	if err != nil {
		return 0, s.errorf("invalid \\u escape")
	}
	s.pos += 4
	r := rune(code)
	if utf16.IsSurrogate(r) && s.pos+6 <= len(s.data) && s.data[s.pos] == '\\' && s.data[s.pos+1] == 'u' {
		low, err := strconv.ParseUint(s.data[s.pos+2:s.pos+6], 16, 32)
		if err == nil {
			if combined := utf16.DecodeRune(r, rune(low)); combined != utf8.RuneError {
				s.pos += 6
				return combined, nil
			}
		}
	}
	if utf16.IsSurrogate(r) {
		return utf8.RuneError, nil
	}
	return r, nil
}

func (s *scanner) parseNumber() (float64, error) {
	start := s.pos
	if s.data[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.data) {
		switch c := s.data[s.pos]; {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E', c == '+', c == '-':
			s.pos++
		default:
			goto done
		}
	}
done:
	number, err := strconv.ParseFloat(s.data[start:s.pos], 64)
	if err != nil {
		return 0, s.errorf("invalid number %q", s.data[start:s.pos])
	}
	return number, nil
}

func (s *scanner) parseLiteral() (any, error) {
	for _, literal := range []struct {
		text  string
		value any
	}{
		{"true", true},
		{"false", false},
		{"null", nil},
	} {
		if strings.HasPrefix(s.data[s.pos:], literal.text) {
			s.pos += len(literal.text)
			return literal.value, nil
		}
	}
	return nil, s.errorf("unexpected character %q", s.data[s.pos])
}
