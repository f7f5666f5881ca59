package wire

import "fmt"

// VarSizeWidth is the number of bytes used to encode a variable-width
// field's size: 0, 1, 2, or 4.
type VarSizeWidth int

const (
	VarSize0 VarSizeWidth = 0
	VarSize1 VarSizeWidth = 1
	VarSize2 VarSizeWidth = 2
	VarSize4 VarSizeWidth = 4
)

// varSizeCodes maps the two-bit wire code to the VarSizeWidth it denotes.
// Code 3 means 4 bytes, not 3 — there's no 3-byte size on the wire.
var varSizeCodes = [4]VarSizeWidth{VarSize0, VarSize1, VarSize2, VarSize4}

func varSizeToCode(w VarSizeWidth) (byte, error) {
	switch w {
	case VarSize0:
		return 0, nil
	case VarSize1:
		return 1, nil
	case VarSize2:
		return 2, nil
	case VarSize4:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: invalid variable-size width %d", ErrMalformedEnvelope, w)
	}
}

// Prefix is the decoded form of a field's one-byte prefix.
type Prefix struct {
	FixedWidth bool
	VarSize    VarSizeWidth // meaningful only when !FixedWidth
	HasOrdinal bool
	HasName    bool
}

// Encode packs p into the wire's one-byte field prefix:
//
//	bit 7:   fixed-width (1) vs variable-width (0)
//	bits 6-5: variable-size-width code (0,1,2,3 -> 0,1,2,4 bytes)
//	bit 4:   has-ordinal
//	bit 3:   has-name
//	bits 2-0: reserved, zero
func (p Prefix) Encode() (byte, error) {
	var b byte
	if p.FixedWidth {
		b |= 1 << 7
	} else {
		code, err := varSizeToCode(p.VarSize)
		if err != nil {
			return 0, err
		}
		b |= code << 5
	}
	if p.HasOrdinal {
		b |= 1 << 4
	}
	if p.HasName {
		b |= 1 << 3
	}
	return b, nil
}

// DecodePrefix unpacks the one-byte field prefix. The two-bit varsize code
// is exhaustively mapped by varSizeCodes, so decoding itself never fails;
// the error return exists for symmetry with Encode and for callers that
// validate the code against a stricter table of their own.
func DecodePrefix(b byte) (Prefix, error) {
	p := Prefix{
		FixedWidth: b&(1<<7) != 0,
		HasOrdinal: b&(1<<4) != 0,
		HasName:    b&(1<<3) != 0,
	}
	code := ((b << 1) >> 6) & 0x3
	p.VarSize = varSizeCodes[code]
	return p, nil
}
