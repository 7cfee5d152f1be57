package dat

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxCodepoint is one past the highest assignable Unicode scalar
// value.
const MaxCodepoint = 0x110000

// String is a finite ordered sequence of Unicode scalar values,
// ordered lexicographically by codepoint.
type String struct {
	Header
	runes []rune
}

func (v *String) Size() int { return len(v.runes) }

// Nth returns the codepoint at i, or (0, false) if i is out of
// [0,size) — the value-model's "void" result, surfaced here as ok=false
// since dat has no standalone Void value (see record.go's handling of
// absence at the evaluator layer).
func (v *String) Nth(i int) (rune, bool) {
	if i < 0 || i >= len(v.runes) {
		return 0, false
	}
	return v.runes[i], true
}

// Slice returns the codepoints in [s,e). Requires 0 <= s <= e <= size.
func (v *String) Slice(a Allocator, u *Universe, s, e int) *String {
	if s < 0 || e < s || e > len(v.runes) {
		raiseRange("String.Slice indices out of range")
	}
	out := make([]rune, e-s)
	copy(out, v.runes[s:e])
	return newStringFromRunes(a, u, out)
}

func (v *String) GCMark(func(Value))  {}
func (v *String) DebugString() string { return string(v.runes) }

// CompareSameClass orders two Strings lexicographically by codepoint.
func (v *String) CompareSameClass(other Value) int {
	o := other.(*String)
	for i := 0; i < len(v.runes) && i < len(o.runes); i++ {
		if v.runes[i] != o.runes[i] {
			if v.runes[i] < o.runes[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(v.runes) < len(o.runes):
		return -1
	case len(v.runes) > len(o.runes):
		return 1
	default:
		return 0
	}
}

func validateCodepoint(r rune) bool {
	if r < 0 || r >= MaxCodepoint {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF { // surrogates, never valid scalar values
		return false
	}
	if r == 0xFFFE || r == 0xFFFF { // reserved non-characters
		return false
	}
	return true
}

func newStringFromRunes(a Allocator, u *Universe, runes []rune) *String {
	if len(runes) == 1 && runes[0] >= 0 && runes[0] < 128 {
		return u.asciiStrings[runes[0]]
	}
	v := &String{runes: runes}
	return allocAs[*String](a, u.classString, v)
}

// NewStringFromCodepoints builds a String from an explicit codepoint
// sequence. Surrogates, the FFFE/FFFF non-characters, and anything at
// or beyond MaxCodepoint are rejected.
func NewStringFromCodepoints(a Allocator, u *Universe, codepoints []rune) *String {
	out := make([]rune, len(codepoints))
	for i, r := range codepoints {
		if !validateCodepoint(r) {
			raiseRange("invalid Unicode codepoint in String construction")
		}
		out[i] = r
	}
	return newStringFromRunes(a, u, out)
}

// NewStringFromUTF8 decodes a UTF-8 byte slice into a String. Decoding
// is strict: overlong encodings, encoded surrogates, and codepoints
// beyond the scalar-value range are rejected, using
// golang.org/x/text/encoding rather than a hand-rolled decoder loop.
func NewStringFromUTF8(a Allocator, u *Universe, b []byte) *String {
	dec := unicode.UTF8.NewDecoder()
	decoded, _, err := transform.Bytes(dec, b)
	if err != nil {
		raiseRange("invalid UTF-8 in String construction: " + err.Error())
	}
	if !bytes.Equal(decoded, b) {
		// The strict decoder only reports an error for truly
		// malformed input; any further divergence (e.g. replacement
		// characters it silently inserted) is itself invalid input
		// for our boundary contract.
		raiseRange("UTF-8 input does not round-trip under strict decoding")
	}
	runes := []rune(string(decoded))
	for _, r := range runes {
		if !validateCodepoint(r) {
			raiseRange("invalid Unicode codepoint in UTF-8 input")
		}
	}
	return newStringFromRunes(a, u, runes)
}

// Cat concatenates two Strings.
func (v *String) Cat(a Allocator, u *Universe, other *String) *String {
	out := make([]rune, len(v.runes)+len(other.runes))
	copy(out, v.runes)
	copy(out[len(v.runes):], other.runes)
	return newStringFromRunes(a, u, out)
}

// ToUTF8 encodes the String as UTF-8 bytes, including a terminating
// zero byte for callers handing the buffer to zero-terminated
// consumers.
func (v *String) ToUTF8() []byte {
	s := string(v.runes)
	out := make([]byte, len(s)+1)
	copy(out, s)
	out[len(s)] = 0
	return out
}
