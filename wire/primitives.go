package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Fixed sizes, in bytes, of the seven primitive types.
const (
	sizeBool    = 1
	sizeInt8    = 1
	sizeInt16   = 2
	sizeInt32   = 4
	sizeInt64   = 8
	sizeFloat32 = 4
	sizeFloat64 = 8
)

// registerPrimitiveTypes installs descriptors for the seven fast-pathed
// primitives. The encoder and decoder bypass these descriptors on the hot
// path (spec §4.4), but the dictionary still needs entries for them so
// that generic lookups (e.g. the object-graph layer picking a type-id for
// a bool-typed field) resolve consistently with the fast path's encoding.
//
// The raw big-endian layout these helpers produce can't be delegated to
// a general-purpose third-party codec: every such library (msgpack, CBOR,
// protobuf varints) interleaves its own type tags into the primitive
// encoding, which would silently change the bytes this wire format
// requires. encoding/binary and math.Float*bits are the only way to
// produce exactly the mandated layout.
func registerPrimitiveTypes(d *TypeDictionary) {
	d.Register(FieldType{TypeID: TypeIDBool, FixedWidth: true, FixedSize: sizeBool,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readBool(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("wire: bool type value must be bool, got %T", v)
			}
			return encodeBool(b), nil
		},
	})
	d.Register(FieldType{TypeID: TypeIDInt8, FixedWidth: true, FixedSize: sizeInt8,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readInt8(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			n, ok := v.(int8)
			if !ok {
				return nil, fmt.Errorf("wire: int8 type value must be int8, got %T", v)
			}
			return []byte{byte(n)}, nil
		},
	})
	d.Register(FieldType{TypeID: TypeIDInt16, FixedWidth: true, FixedSize: sizeInt16,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readInt16(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			n, ok := v.(int16)
			if !ok {
				return nil, fmt.Errorf("wire: int16 type value must be int16, got %T", v)
			}
			return encodeInt16(n), nil
		},
	})
	d.Register(FieldType{TypeID: TypeIDInt32, FixedWidth: true, FixedSize: sizeInt32,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readInt32(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			n, ok := v.(int32)
			if !ok {
				return nil, fmt.Errorf("wire: int32 type value must be int32, got %T", v)
			}
			return encodeInt32(n), nil
		},
	})
	d.Register(FieldType{TypeID: TypeIDInt64, FixedWidth: true, FixedSize: sizeInt64,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readInt64(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			n, ok := v.(int64)
			if !ok {
				return nil, fmt.Errorf("wire: int64 type value must be int64, got %T", v)
			}
			return encodeInt64(n), nil
		},
	})
	d.Register(FieldType{TypeID: TypeIDFloat32, FixedWidth: true, FixedSize: sizeFloat32,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readFloat32(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			f, ok := v.(float32)
			if !ok {
				return nil, fmt.Errorf("wire: float32 type value must be float32, got %T", v)
			}
			return encodeFloat32(f), nil
		},
	})
	d.Register(FieldType{TypeID: TypeIDFloat64, FixedWidth: true, FixedSize: sizeFloat64,
		Read: func(r io.Reader, _ int, _ *TypeDictionary) (any, error) { return readFloat64(r) },
		Write: func(v any, _ *TypeDictionary) ([]byte, error) {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("wire: float64 type value must be float64, got %T", v)
			}
			return encodeFloat64(f), nil
		},
	})
}

func encodeBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func readBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, fmt.Errorf("%w: reading bool: %w", ErrTruncatedInput, err)
	}
	return buf[0] != 0, nil
}

func readInt8(r io.Reader) (int8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading int8: %w", ErrTruncatedInput, err)
	}
	return int8(buf[0]), nil
}

func encodeInt16(n int16) []byte {
	buf := make([]byte, sizeInt16)
	binary.BigEndian.PutUint16(buf, uint16(n))
	return buf
}

func readInt16(r io.Reader) (int16, error) {
	var buf [sizeInt16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading int16: %w", ErrTruncatedInput, err)
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func encodeInt32(n int32) []byte {
	buf := make([]byte, sizeInt32)
	binary.BigEndian.PutUint32(buf, uint32(n))
	return buf
}

func readInt32(r io.Reader) (int32, error) {
	var buf [sizeInt32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading int32: %w", ErrTruncatedInput, err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func encodeInt64(n int64) []byte {
	buf := make([]byte, sizeInt64)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func readInt64(r io.Reader) (int64, error) {
	var buf [sizeInt64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading int64: %w", ErrTruncatedInput, err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func encodeFloat32(f float32) []byte {
	buf := make([]byte, sizeFloat32)
	binary.BigEndian.PutUint32(buf, math.Float32bits(f))
	return buf
}

func readFloat32(r io.Reader) (float32, error) {
	var buf [sizeFloat32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading float32: %w", ErrTruncatedInput, err)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:])), nil
}

func encodeFloat64(f float64) []byte {
	buf := make([]byte, sizeFloat64)
	binary.BigEndian.PutUint64(buf, math.Float64bits(f))
	return buf
}

func readFloat64(r io.Reader) (float64, error) {
	var buf [sizeFloat64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading float64: %w", ErrTruncatedInput, err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

// encodeVarSize encodes n (a variable-width field's byte length) in w
// bytes of big-endian unsigned integer, per the prefix's declared width.
func encodeVarSize(n int, w VarSizeWidth) ([]byte, error) {
	switch w {
	case VarSize0:
		if n != 0 {
			return nil, fmt.Errorf("wire: value of length %d needs a non-zero size width", n)
		}
		return nil, nil
	case VarSize1:
		if n > math.MaxUint8 {
			return nil, fmt.Errorf("wire: value of length %d doesn't fit in 1 size byte", n)
		}
		return []byte{byte(n)}, nil
	case VarSize2:
		if n > math.MaxUint16 {
			return nil, fmt.Errorf("wire: value of length %d doesn't fit in 2 size bytes", n)
		}
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(n))
		return buf, nil
	case VarSize4:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(n))
		return buf, nil
	default:
		return nil, fmt.Errorf("%w: invalid variable-size width %d", ErrMalformedEnvelope, w)
	}
}

// decodeVarSize reads w bytes of big-endian unsigned size from r.
func decodeVarSize(r io.Reader, w VarSizeWidth) (int, error) {
	switch w {
	case VarSize0:
		return 0, nil
	case VarSize1:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: reading 1-byte size: %w", ErrTruncatedInput, err)
		}
		return int(buf[0]), nil
	case VarSize2:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: reading 2-byte size: %w", ErrTruncatedInput, err)
		}
		return int(binary.BigEndian.Uint16(buf[:])), nil
	case VarSize4:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: reading 4-byte size: %w", ErrTruncatedInput, err)
		}
		return int(binary.BigEndian.Uint32(buf[:])), nil
	default:
		return 0, fmt.Errorf("%w: invalid variable-size width %d", ErrMalformedEnvelope, w)
	}
}

// smallestVarSize picks the narrowest VarSizeWidth that can represent n.
func smallestVarSize(n int) VarSizeWidth {
	switch {
	case n == 0:
		return VarSize0
	case n <= math.MaxUint8:
		return VarSize1
	case n <= math.MaxUint16:
		return VarSize2
	default:
		return VarSize4
	}
}
