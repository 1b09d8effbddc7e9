package signature

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Wild marks a wildcard position in Pat.
const Wild = -1

// Byte is a single pattern position: a literal byte or a wildcard
type Byte struct {
	value byte
	wild  bool
}

// Wildcard matches any byte
var Wildcard = Byte{wild: true}

// Lit returns a position that must equal v
func Lit(v byte) Byte {
	return Byte{value: v}
}

// Value returns the literal byte and true, or 0 and false for a wildcard
func (b Byte) Value() (byte, bool) {
	return b.value, !b.wild
}

// IsWildcard reports whether b matches any byte
func (b Byte) IsWildcard() bool {
	return b.wild
}

// Matches reports whether the buffer byte c satisfies this position
func (b Byte) Matches(c byte) bool {
	return b.wild || b.value == c
}

// Pattern is a fixed-length sequence of literal and wildcard positions.
type Pattern []Byte

// Bytes builds a pattern made only of literal bytes
func Bytes(b ...byte) Pattern {
	p := make(Pattern, len(b))
	for i, v := range b {
		p[i] = Lit(v)
	}
	return p
}

// Pat builds a pattern from ints in 0..255, with Wild for wildcard positions.
// It panics on any other value; it is meant for catalog literals.
func Pat(values ...int) Pattern {
	p := make(Pattern, len(values))
	for i, v := range values {
		switch {
		case v == Wild:
			p[i] = Wildcard
		case v >= 0 && v <= 0xFF:
			p[i] = Lit(byte(v))
		default:
			panic(fmt.Sprintf("signature: pattern value %d out of range", v))
		}
	}
	return p
}

// ParsePattern parses the textual form produced by Pattern.String: hex byte
// pairs separated by spaces, with "??" for a wildcard.
// Separators are optional, so "25504446" and "25 50 44 46" are equivalent.
func ParsePattern(s string) (Pattern, error) {
	compact := strings.Join(strings.Fields(s), "")
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("signature: odd number of hex digits in pattern %q", s)
	}

	p := make(Pattern, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		pair := compact[i : i+2]
		if pair == "??" {
			p = append(p, Wildcard)
			continue
		}
		b, err := hex.DecodeString(pair)
		if err != nil {
			return nil, fmt.Errorf("signature: invalid pattern byte %q: %w", pair, err)
		}
		p = append(p, Lit(b[0]))
	}
	return p, nil
}

// String renders the pattern as upper-case hex pairs, "??" for wildcards
func (p Pattern) String() string {
	var sb strings.Builder
	for i, b := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if b.wild {
			sb.WriteString("??")
			continue
		}
		fmt.Fprintf(&sb, "%02X", b.value)
	}
	return sb.String()
}

// Clone returns a copy of p that shares no memory with it
func (p Pattern) Clone() Pattern {
	out := make(Pattern, len(p))
	copy(out, p)
	return out
}

// Equal reports whether two patterns have the same positions
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// MatchAt reports whether every position of p matches buf starting at offset.
// A window that does not fit in buf is a non-match.
func (p Pattern) MatchAt(buf []byte, offset int) bool {
	if offset < 0 || offset+len(p) > len(buf) {
		return false
	}
	window := buf[offset : offset+len(p)]
	for i, b := range p {
		if !b.Matches(window[i]) {
			return false
		}
	}
	return true
}
