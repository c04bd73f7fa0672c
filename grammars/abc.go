package grammars

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/pairtree/peg"
)

// AbcRule tags the pairs of the Abc grammar
type AbcRule int

const (
	AbcA AbcRule = iota
	AbcB
	AbcC
	AbcD
)

// String returns the string representation of AbcRule
func (r AbcRule) String() string {
	switch r {
	case AbcA:
		return "a"
	case AbcB:
		return "b"
	case AbcC:
		return "c"
	case AbcD:
		return "d"
	default:
		return "UNKNOWN"
	}
}

// Abc is a small fixture grammar. On "abc\nefgh" it yields a("abc") holding
// b("b"), followed by c("e") and d("fgh"):
//
//	a = { ANY ~ b ~ ANY }
//	b = { ANY }
//	c = { "e" }
//	d = { "fgh" }
//	abc = { a ~ ANY ~ c ~ d? }
func Abc() pc.Parser[peg.Entity[AbcRule]] {
	anyChar := peg.AnyChar[AbcRule]()

	b := peg.Rule(AbcB, anyChar)
	a := peg.Rule(AbcA, pc.Seq(anyChar, b, anyChar))
	c := peg.Rule(AbcC, peg.Literal[AbcRule]("e"))
	d := peg.Rule(AbcD, peg.Literal[AbcRule]("fgh"))

	return pc.Seq(a, anyChar, c, pc.Optional(d))
}
