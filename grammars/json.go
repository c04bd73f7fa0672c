package grammars

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/pairtree/peg"
)

// JSONRule tags the pairs of the JSON grammar
type JSONRule int

const (
	JSONDocument JSONRule = iota
	JSONObject
	JSONMember
	JSONArray
	JSONValue
	JSONString
	JSONNumber
	JSONBool
	JSONNull
)

// String returns the string representation of JSONRule
func (r JSONRule) String() string {
	switch r {
	case JSONDocument:
		return "json"
	case JSONObject:
		return "object"
	case JSONMember:
		return "pair"
	case JSONArray:
		return "array"
	case JSONValue:
		return "value"
	case JSONString:
		return "string"
	case JSONNumber:
		return "number"
	case JSONBool:
		return "bool"
	case JSONNull:
		return "null"
	default:
		return "UNKNOWN"
	}
}

type jsonParser = pc.Parser[peg.Entity[JSONRule]]

// JSON parses one JSON document (RFC 8259). Every alternative starts with a
// different character, so the grammar never needs to compare alternatives.
func JSON() jsonParser {
	lit := peg.Literal[JSONRule]
	ws := pc.Drop(pc.ZeroOrMore("whitespace", peg.OneOf[JSONRule](" \t\r\n")))
	digit := peg.Range[JSONRule]('0', '9')
	hex := peg.Char[JSONRule]("hex digit", func(r rune) bool {
		return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
	})

	escape := pc.Seq(
		lit(`\`),
		pc.Or(
			peg.OneOf[JSONRule](`"\/bfnrt`),
			pc.Seq(lit("u"), hex, hex, hex, hex),
		),
	)
	plain := peg.Char[JSONRule]("string character", func(r rune) bool {
		return r != '"' && r != '\\' && r >= 0x20
	})
	str := peg.Rule(JSONString, pc.Seq(
		lit(`"`),
		pc.ZeroOrMore("string body", pc.Or(plain, escape)),
		lit(`"`),
	))

	digits := pc.Seq(digit, pc.ZeroOrMore("digits", digit))
	number := peg.Rule(JSONNumber, pc.Seq(
		pc.Optional(lit("-")),
		pc.Or(lit("0"), pc.Seq(peg.Range[JSONRule]('1', '9'), pc.ZeroOrMore("digits", digit))),
		pc.Optional(pc.Seq(lit("."), digits)),
		pc.Optional(pc.Seq(peg.OneOf[JSONRule]("eE"), pc.Optional(peg.OneOf[JSONRule]("+-")), digits)),
	))

	boolean := peg.Rule(JSONBool, pc.Or(lit("true"), lit("false")))
	null := peg.Rule(JSONNull, lit("null"))

	var value jsonParser

	lazyValue := pc.Lazy(func() jsonParser { return value })

	member := peg.Rule(JSONMember, pc.Seq(str, ws, lit(":"), ws, lazyValue))
	object := peg.Rule(JSONObject, pc.Seq(
		lit("{"), ws,
		pc.Optional(pc.Seq(member, pc.ZeroOrMore("members", pc.Seq(ws, lit(","), ws, member)))),
		ws, lit("}"),
	))
	array := peg.Rule(JSONArray, pc.Seq(
		lit("["), ws,
		pc.Optional(pc.Seq(lazyValue, pc.ZeroOrMore("elements", pc.Seq(ws, lit(","), ws, lazyValue)))),
		ws, lit("]"),
	))

	value = peg.Rule(JSONValue, pc.Or(str, number, object, array, boolean, null))

	return peg.Rule(JSONDocument, pc.Seq(ws, value, ws, peg.EOI[JSONRule]()))
}
