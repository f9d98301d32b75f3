package ir

import (
	"encoding/hex"
	"slices"
	"strings"
	"unicode/utf16"
)

// IRValue is a sealed interface representing the value types allowed in
// canonical records: IRString, IRInt, IRBool, IRArray and IRObject.
// There is no float and no null; both break byte-identical hashing.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value. Always int64.
type IRInt int64

func (IRInt) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an array of IRValue elements.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to IRValue elements.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// HexBytes encodes raw program, input or output bytes as a lowercase hex
// string. Tape bytes are arbitrary and need not be valid UTF-8.
func HexBytes(b []byte) IRString {
	return IRString(hex.EncodeToString(b))
}

// IntArray converts a slice of integers to an IRArray.
func IntArray[T ~int | ~int64 | ~uint8](vals []T) IRArray {
	arr := make(IRArray, len(vals))
	for i, v := range vals {
		arr[i] = IRInt(v)
	}
	return arr
}

// SortedKeys returns object keys sorted by RFC 8785 rules (UTF-16 code
// units), which differs from a plain byte sort for supplementary-plane
// characters.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	// ASCII keys (the common case) compare identically either way.
	if isASCII(a) && isASCII(b) {
		return strings.Compare(a, b)
	}
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
