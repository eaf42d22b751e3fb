// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"github.com/avdva/fpbits/internal/bitutil"
)

const (
	// dropBits is the number of significand bits lost when going from binary32 to binary16.
	dropBits = 13
	dropMask = 1<<dropBits - 1
	// halfULP is the dropped part, which is exactly a half of binary16's unit in the last place.
	halfULP = 1 << (dropBits - 1)

	singleImplicit = 1 << 23
	halfImplicit   = 1 << 10
	// halfMainMax is the largest 11-bit significand with the implicit bit.
	halfMainMax = 1<<11 - 1

	halfMinExp = -14
	halfMaxExp = 15

	// halfNaN is the encoding of a positive not-a-number produced by Narrow.
	halfNaN   = 0x7fff
	signBit16 = 0x8000
)

// Narrow converts a binary32 pattern to the nearest binary16 pattern.
// Ties are rounded to even. Values beyond the binary16 range become infinities of the same sign,
// values below the smallest subnormal become zeros of the same sign.
// NaNs keep their sign and get an all-one significand.
func Narrow(bits uint32) uint16 {
	d := Decompose32(bits)
	if d.Class() == NaN {
		if d.Neg {
			return signBit16 | halfNaN
		}
		return halfNaN
	}

	e := d.UnbiasedExp()
	main := d.Mant>>dropBits | halfImplicit
	rem := d.Mant & dropMask
	// sticky is set, if non-zero bits were shifted out while aligning a subnormal,
	// so that a remainder, which looks like a tie, is actually above it.
	var sticky bool

	if e < halfMinExp {
		// for binary32 zeros and subnormals the shift exceeds the width, and everything flushes to zero.
		shift := uint(halfMinExp - e)
		sticky = bitutil.Sticky(d.Mant, shift)
		aligned := (d.Mant | singleImplicit) >> shift
		main, rem = aligned>>dropBits, aligned&dropMask
		e = halfMinExp
	}

	if rem > halfULP || rem == halfULP && (main&1 != 0 || sticky) {
		main++
	}
	// rounding carried into the 12th bit.
	if main > halfMainMax {
		e++
		main >>= 1
	}

	h := Decomposed{Format: Binary16, Neg: d.Neg, Mant: main & Binary16.MantMask()}
	switch {
	case e > halfMaxExp:
		h.Exp, h.Mant = Binary16.ExpMask(), 0
	case main < halfImplicit && e == halfMinExp:
		// subnormal. A subnormal rounded up to halfImplicit falls through to the smallest normal.
	default:
		h.Exp = uint32(e+Binary16.Bias) & Binary16.ExpMask()
	}
	return uint16(h.Bits())
}

// NarrowFloat32 converts f to half precision. See Narrow.
func NarrowFloat32(f float32) Half {
	return Half(Narrow(Float32Bits(f)))
}

// NarrowSlice narrows src into dst element-wise.
// Returns the number of converted elements, which is the minimum of len(dst) and len(src).
func NarrowSlice(dst []uint16, src []uint32) int {
	n := min(len(dst), len(src))
	for i, b := range src[:n] {
		dst[i] = Narrow(b)
	}
	return n
}
