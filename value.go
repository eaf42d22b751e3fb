// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpbits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeHex
)

const (
	// JSONModeHex marshals values as hex strings, like `"0x3c00"`.
	JSONModeHex = iota
	// JSONModeBits marshals values as numbers, like `15360`.
	JSONModeBits
	// JSONModeInfo marshals values as their descriptions, like `"+1.0000000000 2^0"`.
	// Such json can not be unmarshaled back.
	JSONModeInfo
)

var (
	// ErrRange is returned when a pattern does not fit the format's width.
	ErrRange = errors.New("value out of range")
	// ErrSyntax is returned for json, which is neither a number nor a hex string.
	ErrSyntax = errors.New("invalid syntax")

	zeros = "00000000"
)

// Single is a binary32 bit pattern.
type Single uint32

// Half is a binary16 bit pattern.
type Half uint16

// FromFloat32 returns the bit pattern of f.
func FromFloat32(f float32) Single {
	return Single(Float32Bits(f))
}

// Bits returns the raw pattern.
func (s Single) Bits() uint32 {
	return uint32(s)
}

// Decompose splits s into fields.
func (s Single) Decompose() Decomposed {
	return Decompose32(uint32(s))
}

// Class returns the category of s.
func (s Single) Class() Class {
	return s.Decompose().Class()
}

// Float32 reinterprets s as a float32.
func (s Single) Float32() float32 {
	return Float32FromBits(uint32(s))
}

// Half narrows s to half precision. See Narrow.
func (s Single) Half() Half {
	return Half(Narrow(uint32(s)))
}

// String returns the description of s. See AppendInfo.
func (s Single) String() string {
	return Info(s.Decompose())
}

// GoString returns the description of s along with its pattern.
func (s Single) GoString() string {
	return s.String() + fmt.Sprintf(" {0x%08x}", uint32(s))
}

// MarshalJSON marshals s according to current JSONMode.
func (s Single) MarshalJSON() ([]byte, error) {
	return toJSON(s.Decompose(), JSONMode), nil
}

// UnmarshalJSON accepts a number or a hex string.
func (s *Single) UnmarshalJSON(data []byte) error {
	u, null, err := fromJSON(data, Binary32.Width)
	if err == nil && !null {
		*s = Single(u)
	}
	return err
}

// Bits returns the raw pattern.
func (h Half) Bits() uint16 {
	return uint16(h)
}

// Decompose splits h into fields.
func (h Half) Decompose() Decomposed {
	return Decompose16(uint16(h))
}

// Class returns the category of h.
func (h Half) Class() Class {
	return h.Decompose().Class()
}

// String returns the description of h. See AppendInfo.
func (h Half) String() string {
	return Info(h.Decompose())
}

// GoString returns the description of h along with its pattern.
func (h Half) GoString() string {
	return h.String() + fmt.Sprintf(" {0x%04x}", uint16(h))
}

// MarshalJSON marshals h according to current JSONMode.
func (h Half) MarshalJSON() ([]byte, error) {
	return toJSON(h.Decompose(), JSONMode), nil
}

// UnmarshalJSON accepts a number or a hex string.
func (h *Half) UnmarshalJSON(data []byte) error {
	u, null, err := fromJSON(data, Binary16.Width)
	if err == nil && !null {
		*h = Half(u)
	}
	return err
}

func toJSON(d Decomposed, mode int) []byte {
	switch mode {
	case JSONModeBits:
		return strconv.AppendUint(nil, uint64(d.Bits()), 10)
	case JSONModeInfo:
		b := make([]byte, 0, 2+InfoLen(d))
		b = append(b, '"')
		b = AppendInfo(b, d)
		return append(b, '"')
	default:
		var builder strings.Builder
		hex := strconv.FormatUint(uint64(d.Bits()), 16)
		builder.WriteString(`"0x`)
		if pad := int(d.Width/4) - len(hex); pad > 0 {
			builder.WriteString(zeros[:pad])
		}
		builder.WriteString(hex)
		builder.WriteRune('"')
		return []byte(builder.String())
	}
}

// fromJSON parses a number or a hex string into a pattern of given width.
// null is true for json null, which leaves the value unchanged.
func fromJSON(data []byte, width uint) (u uint32, null bool, err error) {
	s := strings.TrimSpace(string(data))
	if len(s) == 0 {
		return 0, false, fmt.Errorf("empty json: %w", ErrSyntax)
	}
	if s == "null" {
		return 0, true, nil
	}
	base := 10
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		if len(unquoted) < 3 || !strings.EqualFold(unquoted[:2], "0x") {
			return 0, false, fmt.Errorf("%w: %q is not a hex pattern", ErrSyntax, unquoted)
		}
		s, base = unquoted[2:], 16
	}
	parsed, err := strconv.ParseUint(s, base, int(width))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, false, fmt.Errorf("%w: %s for %d bits", ErrRange, s, width)
		}
		return 0, false, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return uint32(parsed), false, nil
}
