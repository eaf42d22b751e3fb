// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"strconv"

	"github.com/avdva/fpbits/internal/bitutil"
)

const (
	delim  = '.'
	expSep = " 2^"
	infStr = "INF"
	nanStr = "NaN"

	// maxInfoLen is enough for any supported format: sign, leading digit, delimiter,
	// 23 significand bits, separator and a 4-character exponent.
	maxInfoLen = 64
)

func signChar(neg bool) byte {
	if neg {
		return '-'
	}
	return '+'
}

// AppendInfo appends the description of d to dst.
// The description is
//   - "+INF" or "-INF" for infinities;
//   - "NaN" for not-a-numbers, regardless of the sign;
//   - "+0" or "-0" for zeros;
//   - sign, leading bit, delimiter, all significand bits, and the power of two otherwise,
//     like "+1.00000000000000000000000 2^-1" for 0.5.
//
// Subnormals have a leading 0 and the minimum normal exponent.
func AppendInfo(dst []byte, d Decomposed) []byte {
	class := d.Class()
	switch class {
	case NaN:
		return append(dst, nanStr...)
	case Infinity:
		return append(append(dst, signChar(d.Neg)), infStr...)
	case Zero:
		return append(dst, signChar(d.Neg), '0')
	}
	lead := byte('1')
	if class == Subnormal {
		lead = '0'
	}
	dst = append(dst, signChar(d.Neg), lead, delim)
	dst = bitutil.AppendBinary(dst, d.Mant, d.MantBits)
	dst = append(dst, expSep...)
	return strconv.AppendInt(dst, int64(d.Exponent()), 10)
}

// Info returns the untruncated description of d. See AppendInfo.
func Info(d Decomposed) string {
	var buf [maxInfoLen]byte
	return string(AppendInfo(buf[:0], d))
}

// InfoLen returns the length of the untruncated description of d.
// Callers can compare it with a buffer size to detect truncation.
func InfoLen(d Decomposed) int {
	switch d.Class() {
	case NaN:
		return len(nanStr)
	case Infinity:
		return 1 + len(infStr)
	case Zero:
		return 2
	default:
		return 3 + int(d.MantBits) + len(expSep) + bitutil.DecimalLen(d.Exponent())
	}
}

// DecodeInto writes the description of d into dst, truncating it if dst is too short.
// Returns the number of bytes written. The description is ASCII, so any prefix is well-formed.
func DecodeInto(dst []byte, d Decomposed) int {
	if len(dst) == 0 {
		return 0
	}
	var buf [maxInfoLen]byte
	return copy(dst, AppendInfo(buf[:0], d))
}

// Decode describes a binary32 pattern, using at most maxLen bytes.
// maxLen <= 0 gives an empty string.
func Decode(bits uint32, maxLen int) string {
	return decode(Decompose32(bits), maxLen)
}

// Decode16 describes a binary16 pattern, using at most maxLen bytes.
// maxLen <= 0 gives an empty string.
func Decode16(bits uint16, maxLen int) string {
	return decode(Decompose16(bits), maxLen)
}

func decode(d Decomposed, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s := Info(d)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
