package grammars

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/pairtree/peg"
)

// OtherRule tags the pairs of the repetition grammar
type OtherRule int

const (
	OtherRepExact OtherRule = iota
	OtherRepMinMax
	OtherRepMinMaxLarge
)

// String returns the string representation of OtherRule
func (r OtherRule) String() string {
	switch r {
	case OtherRepExact:
		return "rep_exact"
	case OtherRepMinMax:
		return "rep_min_max"
	case OtherRepMinMaxLarge:
		return "rep_min_max_large"
	default:
		return "UNKNOWN"
	}
}

func digits(rule OtherRule, lo uint, hi int) pc.Parser[peg.Entity[OtherRule]] {
	return peg.Rule(rule, pc.Repeat(rule.String(), lo, hi, peg.Range[OtherRule]('0', '9')))
}

// RepExact matches exactly three digits
func RepExact() pc.Parser[peg.Entity[OtherRule]] {
	return digits(OtherRepExact, 3, 3)
}

// RepMinMax matches two to four digits
func RepMinMax() pc.Parser[peg.Entity[OtherRule]] {
	return digits(OtherRepMinMax, 2, 4)
}

// RepMinMaxLarge matches two to a thousand digits
func RepMinMaxLarge() pc.Parser[peg.Entity[OtherRule]] {
	return digits(OtherRepMinMaxLarge, 2, 1000)
}
