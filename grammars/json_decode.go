package grammars

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/shibukawa/pairtree/pairs"
	"github.com/shopspring/decimal"
)

// Sentinel errors
var (
	ErrUnexpectedRule = errors.New("unexpected rule")
	ErrInvalidEscape  = errors.New("invalid escape sequence")
)

// DecodeJSON converts the pairs produced by JSON into Go values: objects
// become map[string]any, arrays []any, numbers decimal.Decimal so that no
// precision is lost, and null becomes nil.
func DecodeJSON(p *pairs.Pairs[JSONRule]) (any, error) {
	document, ok := p.Next()
	if !ok || document.Rule() != JSONDocument {
		return nil, fmt.Errorf("%w: expected %s", ErrUnexpectedRule, JSONDocument)
	}

	value, ok := document.Inner().Next()
	if !ok {
		return nil, fmt.Errorf("%w: empty document", ErrUnexpectedRule)
	}

	return decodeValue(value)
}

func decodeValue(p pairs.Pair[JSONRule]) (any, error) {
	if p.Rule() == JSONValue {
		inner, ok := p.Inner().Next()
		if !ok {
			return nil, fmt.Errorf("%w: empty value at %s", ErrUnexpectedRule, position(p))
		}

		p = inner
	}

	switch p.Rule() {
	case JSONObject:
		result := make(map[string]any)

		for member := range p.Inner().All() {
			children := member.Inner()

			key, _ := children.Next()
			value, _ := children.Next()

			name, err := unquote(key.Text())
			if err != nil {
				return nil, fmt.Errorf("%w at %s", err, position(key))
			}

			v, err := decodeValue(value)
			if err != nil {
				return nil, err
			}

			result[name] = v
		}

		return result, nil
	case JSONArray:
		result := make([]any, 0, p.Inner().Len())

		for element := range p.Inner().All() {
			v, err := decodeValue(element)
			if err != nil {
				return nil, err
			}

			result = append(result, v)
		}

		return result, nil
	case JSONString:
		s, err := unquote(p.Text())
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, position(p))
		}

		return s, nil
	case JSONNumber:
		return decimal.NewFromString(p.Text())
	case JSONBool:
		return p.Text() == "true", nil
	case JSONNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s at %s", ErrUnexpectedRule, p.Rule(), position(p))
	}
}

func position(p pairs.Pair[JSONRule]) string {
	line, col := p.LineCol()
	return fmt.Sprintf("%d:%d", line, col)
}

// unquote decodes a JSON string literal, quotes included
func unquote(quoted string) (string, error) {
	body := quoted[1 : len(quoted)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var builder strings.Builder

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			builder.WriteByte(c)
			continue
		}

		i++
		switch body[i] {
		case '"', '\\', '/':
			builder.WriteByte(body[i])
		case 'b':
			builder.WriteByte('\b')
		case 'f':
			builder.WriteByte('\f')
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 't':
			builder.WriteByte('\t')
		case 'u':
			r, err := hex4(body, i+1)
			if err != nil {
				return "", err
			}
			i += 4

			if utf16.IsSurrogate(r) && i+6 < len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
				low, err := hex4(body, i+3)
				if err == nil {
					if decoded := utf16.DecodeRune(r, low); decoded != unicode.ReplacementChar {
						r = decoded
						i += 6
					}
				}
			}

			builder.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, body[i])
		}
	}

	return builder.String(), nil
}

func hex4(s string, at int) (rune, error) {
	if at+4 > len(s) {
		return 0, fmt.Errorf("%w: truncated \\u escape", ErrInvalidEscape)
	}

	v, err := strconv.ParseUint(s[at:at+4], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidEscape, err)
	}

	return rune(v), nil
}
