// Package bitutil contains integer helpers shared by the codec.
package bitutil

import (
	"math"
	"math/bits"
)

var (
	decimalFactorTable = [...]uint32{ // up to 1e9
		1, 10, 100, 1000, 10000,
		100000, 1000000, 10000000, 100000000, 1000000000,
	}

	digitsHelper = [...]int{
		0, 0, 0, 0, 1, 1, 1, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 5, 5, 5,
		6, 6, 6, 6, 7, 7, 7, 8, 8, 8,
		9, 9, 9,
	}
)

// Mask returns a value with the n lowest bits set.
// For n >= 32 all bits are set.
func Mask(n uint) uint32 {
	if n >= 32 {
		return math.MaxUint32
	}
	return 1<<n - 1
}

// Field extracts width bits of v, starting at bit shift.
func Field(v uint32, shift, width uint) uint32 {
	return v >> shift & Mask(width)
}

// Sticky reports whether any of the n lowest bits of v are set,
// i.e. whether v>>n loses information.
func Sticky(v uint32, n uint) bool {
	return v&Mask(n) != 0
}

// AppendBinary appends the n lowest bits of v to dst as '0' and '1' characters,
// most significant bit first.
func AppendBinary(dst []byte, v uint32, n uint) []byte {
	for i := n; i > 0; i-- {
		dst = append(dst, '0'+byte(v>>(i-1)&1))
	}
	return dst
}

// BinaryDigits returns the number of bits needed to represent value.
func BinaryDigits(value uint32) int {
	return bits.Len32(value)
}

// DecimalDigits returns the number of decimal digits in 'value'.
// see https://stackoverflow.com/a/25934909
func DecimalDigits(value uint32) int {
	if value == 0 {
		return 1
	}
	digits := digitsHelper[BinaryDigits(value)]
	if digits < len(decimalFactorTable) && value >= decimalFactorTable[digits] {
		digits++
	}
	return digits
}

// DecimalLen returns the length of the base 10 representation of value,
// including the minus sign.
func DecimalLen(value int) int {
	if value < 0 {
		return 1 + DecimalDigits(uint32(-int64(value)))
	}
	return DecimalDigits(uint32(value))
}
