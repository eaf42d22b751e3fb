// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fpbits inspects and converts the bit patterns of IEEE-754 binary floating-point values.
// It renders binary32 and binary16 patterns as sign/significand/exponent strings,
// and narrows binary32 patterns to binary16 with round-to-nearest, ties-to-even.
// All operations work on integers only, once a float has been reinterpreted
// with Float32Bits.
package fpbits

import (
	"math"

	"github.com/avdva/fpbits/internal/bitutil"
)

// Class is the IEEE-754 category of a bit pattern.
type Class uint8

const (
	// Zero has all-zero exponent and significand fields.
	Zero Class = iota
	// Subnormal has an all-zero exponent field and a non-zero significand.
	Subnormal
	// Normal has an exponent field, which is neither all-zero nor all-one.
	Normal
	// Infinity has an all-one exponent field and a zero significand.
	Infinity
	// NaN has an all-one exponent field and a non-zero significand.
	NaN
)

var classNames = [...]string{
	Zero:      "zero",
	Subnormal: "subnormal",
	Normal:    "normal",
	Infinity:  "infinity",
	NaN:       "nan",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Format describes the layout of a binary floating-point encoding:
//
//	Width-1  Width-2       MantBits  MantBits-1        0
//	______|__________________|___________________________
//	s      eeeeeeeeeeeeeeeeeeee  mmmmmmmmmmmmmmmmmmmmmmmmm
type Format struct {
	Name     string
	Width    uint
	ExpBits  uint
	MantBits uint
	Bias     int
}

var (
	// Binary32 is the IEEE-754 single precision format.
	Binary32 = Format{Name: "binary32", Width: 32, ExpBits: 8, MantBits: 23, Bias: 127}
	// Binary16 is the IEEE-754 half precision format.
	Binary16 = Format{Name: "binary16", Width: 16, ExpBits: 5, MantBits: 10, Bias: 15}
)

// ExpMask returns the all-one exponent field.
func (f Format) ExpMask() uint32 {
	return bitutil.Mask(f.ExpBits)
}

// MantMask returns the all-one significand field.
func (f Format) MantMask() uint32 {
	return bitutil.Mask(f.MantBits)
}

// MinNormalExp returns the smallest unbiased exponent of a normal value.
// Subnormals share it.
func (f Format) MinNormalExp() int {
	return 1 - f.Bias
}

// MaxNormalExp returns the largest unbiased exponent of a normal value.
func (f Format) MaxNormalExp() int {
	return int(f.ExpMask()) - 1 - f.Bias
}

// Decomposed holds the fields of a bit pattern.
// Exp is the biased exponent field, Mant is the significand field without the implicit bit.
type Decomposed struct {
	Format
	Neg  bool
	Exp  uint32
	Mant uint32
}

// Decompose splits the lowest f.Width bits of 'bits' into sign, exponent, and significand fields.
// Every pattern is valid.
func Decompose(f Format, bits uint32) Decomposed {
	bits &= bitutil.Mask(f.Width)
	return Decomposed{
		Format: f,
		Neg:    bitutil.Field(bits, f.Width-1, 1) != 0,
		Exp:    bitutil.Field(bits, f.MantBits, f.ExpBits),
		Mant:   bitutil.Field(bits, 0, f.MantBits),
	}
}

// Decompose32 decomposes a binary32 pattern.
func Decompose32(bits uint32) Decomposed {
	return Decompose(Binary32, bits)
}

// Decompose16 decomposes a binary16 pattern.
func Decompose16(bits uint16) Decomposed {
	return Decompose(Binary16, uint32(bits))
}

// Class returns the category of d.
func (d Decomposed) Class() Class {
	switch d.Exp {
	case 0:
		if d.Mant == 0 {
			return Zero
		}
		return Subnormal
	case d.ExpMask():
		if d.Mant == 0 {
			return Infinity
		}
		return NaN
	default:
		return Normal
	}
}

// UnbiasedExp returns the exponent field minus the bias.
func (d Decomposed) UnbiasedExp() int {
	return int(d.Exp) - d.Bias
}

// Exponent returns the power of two that scales the significand.
// For subnormals it is the minimum normal exponent rather than the stored field.
func (d Decomposed) Exponent() int {
	if d.Class() == Subnormal {
		return d.MinNormalExp()
	}
	return d.UnbiasedExp()
}

// Bits encodes d back into a bit pattern.
func (d Decomposed) Bits() uint32 {
	var sign uint32
	if d.Neg {
		sign = 1 << (d.Width - 1)
	}
	return sign | (d.Exp&d.ExpMask())<<d.MantBits | d.Mant&d.MantMask()
}

// Float32Bits reinterprets the memory of f as an unsigned integer.
// It is the only place, where the package looks at a float value.
func Float32Bits(f float32) uint32 {
	return math.Float32bits(f)
}

// Float32FromBits reinterprets a binary32 pattern as a float32.
func Float32FromBits(b uint32) float32 {
	return math.Float32frombits(b)
}
