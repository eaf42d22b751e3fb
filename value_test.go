// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withJSONMode(mode int, f func()) {
	old := JSONMode
	JSONMode = mode
	defer func() { JSONMode = old }()
	f()
}

func TestMarshalJSON(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v    interface{}
		mode int
		json string
	}{
		{Single(0x3f800000), JSONModeHex, `"0x3f800000"`},
		{Single(0x00000001), JSONModeHex, `"0x00000001"`},
		{Single(0x3f800000), JSONModeBits, `1065353216`},
		{Single(0x3f000000), JSONModeInfo, `"+1.00000000000000000000000 2^-1"`},
		{Single(0xff800000), JSONModeInfo, `"-INF"`},
		{Half(0x3c00), JSONModeHex, `"0x3c00"`},
		{Half(0x0001), JSONModeHex, `"0x0001"`},
		{Half(0x3c00), JSONModeBits, `15360`},
		{Half(0x3c00), JSONModeInfo, `"+1.0000000000 2^0"`},
		{Half(0x7e00), JSONModeInfo, `"NaN"`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			withJSONMode(test.mode, func() {
				data, err := json.Marshal(test.v)
				if a.NoError(err) {
					a.Equal(test.json, string(data))
				}
			})
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		json   string
		single Single
		half   Half
		err    error
	}{
		{`"0x3c00"`, 0x3c00, 0x3c00, nil},
		{`"0X3C00"`, 0x3c00, 0x3c00, nil},
		{`15360`, 0x3c00, 0x3c00, nil},
		{` 0 `, 0, 0, nil},
		{`"0x3f800000"`, 0x3f800000, 0, ErrRange},
		{`1065353216`, 0x3f800000, 0, ErrRange},
		{`"0x100000000"`, 0, 0, ErrRange},
		{`"+1.0000000000 2^0"`, 0, 0, ErrSyntax},
		{`"0x"`, 0, 0, ErrSyntax},
		{`"0xzz"`, 0, 0, ErrSyntax},
		{`-1`, 0, 0, ErrSyntax},
		{`1.5`, 0, 0, ErrSyntax},
		{`""`, 0, 0, ErrSyntax},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			var s Single
			err := s.UnmarshalJSON([]byte(test.json))
			if test.err == nil || test.single != 0 {
				if a.NoError(err) {
					a.Equal(test.single, s)
				}
			} else {
				a.ErrorIs(err, test.err)
			}

			var h Half
			err = h.UnmarshalJSON([]byte(test.json))
			if test.err == nil {
				if a.NoError(err) {
					a.Equal(test.half, h)
				}
			} else {
				a.ErrorIs(err, test.err)
			}
		})
	}
}

func TestUnmarshalJSONNull(t *testing.T) {
	a := assert.New(t)
	v := struct {
		S Single
		H Half
	}{S: 0x3f800000, H: 0x3c00}
	a.NoError(json.Unmarshal([]byte(`{"S":null,"H":null}`), &v))
	a.Equal(Single(0x3f800000), v.S)
	a.Equal(Half(0x3c00), v.H)
	a.Error(v.S.UnmarshalJSON(nil))
}

func TestJSONRoundTrip(t *testing.T) {
	type pair struct {
		S Single `json:"s"`
		H Half   `json:"h"`
	}
	for _, mode := range []int{JSONModeHex, JSONModeBits} {
		withJSONMode(mode, func() {
			in := pair{S: 0xc0490fdb, H: 0xc248}
			data, err := json.Marshal(in)
			require.NoError(t, err)
			var out pair
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestValueStrings(t *testing.T) {
	a := assert.New(t)
	s := FromFloat32(0.5)
	a.Equal(Single(0x3f000000), s)
	a.Equal(uint32(0x3f000000), s.Bits())
	a.Equal(Normal, s.Class())
	a.Equal(float32(0.5), s.Float32())
	a.Equal("+1.00000000000000000000000 2^-1 {0x3f000000}", s.GoString())
	a.Equal("+1.00000000000000000000000 2^-1", fmt.Sprint(s))

	h := s.Half()
	a.Equal(Half(0x3800), h)
	a.Equal(uint16(0x3800), h.Bits())
	a.Equal(Normal, h.Class())
	a.Equal("+1.0000000000 2^-1", h.String())
	a.Equal("+1.0000000000 2^-1 {0x3800}", fmt.Sprintf("%#v", h))
	a.Equal(Subnormal, Half(1).Class())
}
