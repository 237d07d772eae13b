package model

import (
	"math/big"
	"strconv"
	"strings"
)

// Amount is a transacted value. The snapshot format distinguishes integer
// amounts from float amounts, so Amount remembers which lexical class the
// caller supplied and reproduces it on serialization and hashing. Integer
// amounts keep their original base 10 literal, so values wider than a
// float64 mantissa survive a round-trip without losing digits.
type Amount struct {
	// Numeric value. For integers wider than 53 bits this is approximate;
	// Literal holds the exact digits.
	Value float64
	// Original base 10 literal of an integer amount. Empty for floats.
	Literal string
	// Whether the amount was supplied as an integer.
	Integer bool
}

// IntAmount creates an Amount from an integer value.
func IntAmount(v int64) Amount {
	return Amount{Value: float64(v), Literal: strconv.FormatInt(v, 10), Integer: true}
}

// FloatAmount creates an Amount from a float value.
func FloatAmount(v float64) Amount {
	return Amount{Value: v, Integer: false}
}

// ParseAmount parses a JSON number literal into an Amount. Literals containing
// a fraction or exponent part are floats, everything else is an integer of
// any width.
func ParseAmount(literal string) (Amount, error) {
	if strings.ContainsAny(literal, ".eE") {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Amount{}, NewValidationError("amount", "an int or float")
		}
		return FloatAmount(v), nil
	}
	if _, ok := new(big.Int).SetString(literal, 10); !ok {
		return Amount{}, NewValidationError("amount", "an int or float")
	}
	// The approximate value is enough for display; the literal is the source
	// of truth for serialization and hashing.
	v, _ := strconv.ParseFloat(literal, 64)
	return Amount{Value: v, Literal: literal, Integer: true}, nil
}

// String renders the amount the way it entered the system: integers keep
// their original literal, floats use Go's shortest exact form. Whole-valued
// floats keep a ".0" marker so the lexical class survives a serialization
// round-trip.
func (a Amount) String() string {
	if a.Integer {
		return a.Literal
	}
	s := strconv.FormatFloat(a.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// canonical renders the amount for block hashing. Integers keep their base 10
// literal, floats use the pinned scientific notation shared by all hashed
// floats.
func (a Amount) canonical() string {
	if a.Integer {
		return a.Literal
	}
	return canonicalFloat(a.Value)
}

// MarshalJSON writes the amount as a bare JSON number of its lexical class.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON restores an Amount from a JSON number literal.
func (a *Amount) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
