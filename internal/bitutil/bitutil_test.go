package bitutil

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		n    uint
		mask uint32
	}{
		{0, 0},
		{1, 1},
		{10, 0x3ff},
		{23, 0x7fffff},
		{31, 0x7fffffff},
		{32, math.MaxUint32},
		{113, math.MaxUint32},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.mask, Mask(test.n))
		})
	}
}

func TestFieldAndSticky(t *testing.T) {
	a := assert.New(t)
	a.Equal(uint32(0x7e), Field(0x3f000000, 23, 8))
	a.Equal(uint32(0), Field(0x3f000000, 0, 23))
	a.Equal(uint32(1), Field(0x80000000, 31, 1))
	a.Equal(uint32(0), Field(0x80000000, 32, 1))

	a.False(Sticky(0x2000, 13))
	a.True(Sticky(0x2001, 13))
	a.True(Sticky(0x2000, 14))
	a.False(Sticky(0, 200))
	a.True(Sticky(1, 200))
}

func TestAppendBinary(t *testing.T) {
	a := assert.New(t)
	a.Equal("", string(AppendBinary(nil, 0xffff, 0)))
	a.Equal("0000000001", string(AppendBinary(nil, 1, 10)))
	a.Equal("10010010000111111011011", string(AppendBinary(nil, 0x490fdb, 23)))
	a.Equal("x101", string(AppendBinary([]byte("x"), 0xd, 3)))
}

func TestDecimalLen(t *testing.T) {
	a := assert.New(t)
	for _, v := range []int{0, 1, 9, 10, 99, 100, -1, -9, -10, -126, -149, 127, 128, 999999999, 1000000000, math.MaxUint32 >> 1} {
		a.Equal(len(strconv.Itoa(v)), DecimalLen(v), "%d", v)
	}
	a.Equal(10, DecimalDigits(math.MaxUint32))
	a.Equal(32, BinaryDigits(math.MaxUint32))
	a.Equal(0, BinaryDigits(0))
}

func BenchmarkDecimalLen(b *testing.B) {
	var dummy int
	for i := 0; i < b.N; i++ {
		dummy += DecimalLen(i - b.N/2)
	}
	// this metric is just to prevent unwanted optimisations in calculations of `dummy.`
	b.ReportMetric(float64(dummy), "dummy_metric")
}

func BenchmarkItoaLen(b *testing.B) {
	var dummy int
	for i := 0; i < b.N; i++ {
		dummy += len(strconv.Itoa(i - b.N/2))
	}
	// this metric is just to prevent unwanted optimisations in calculations of `dummy.`
	b.ReportMetric(float64(dummy), "dummy_metric")
}
