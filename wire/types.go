package wire

import (
	"fmt"
	"io"
)

// Primitive type-ids. These seven are fast-pathed directly by the encoder
// and decoder (spec §4.4); the dictionary still carries descriptors for
// them so generic code (e.g. the object-graph layer picking a type-id for
// a Go value) can look them up uniformly.
const (
	TypeIDBool    uint8 = 1
	TypeIDInt8    uint8 = 2
	TypeIDInt16   uint8 = 3
	TypeIDInt32   uint8 = 4
	TypeIDInt64   uint8 = 5
	TypeIDFloat32 uint8 = 6
	TypeIDFloat64 uint8 = 7

	// TypeIDString is a general-purpose variable-width string value,
	// encoded as modified UTF-8 like a field name but sized by the
	// field's variable-size bytes rather than the name slot's one-byte
	// length prefix.
	TypeIDString uint8 = 8

	// TypeIDMessage marks a variable-width field whose value is a
	// nested sub-message.
	TypeIDMessage uint8 = 9
)

// ReadFunc decodes a value of a descriptor's type from r. varSize is the
// declared size in bytes for variable-width types, or the descriptor's
// fixed size for fixed-width ones. dict lets a reader resolve nested
// type-ids (used by the sub-message descriptor).
type ReadFunc func(r io.Reader, varSize int, dict *TypeDictionary) (any, error)

// WriteFunc encodes value to its wire bytes. For fixed-width types the
// returned slice must be exactly FieldType.FixedSize bytes long; for
// variable-width types its length becomes the field's on-wire size. dict
// lets a writer resolve nested type-ids (used by the sub-message
// descriptor).
type WriteFunc func(value any, dict *TypeDictionary) ([]byte, error)

// FieldType is an immutable field type descriptor (spec §3).
type FieldType struct {
	TypeID     uint8
	FixedWidth bool
	FixedSize  int // meaningful only when FixedWidth
	Read       ReadFunc
	Write      WriteFunc
}

// TypeDictionary maps type-ids to descriptors. The zero value is not
// usable; construct one with NewTypeDictionary.
type TypeDictionary struct {
	byID map[uint8]FieldType
}

// NewTypeDictionary returns an empty dictionary. Use Register to add
// descriptors, or start from DefaultTypeDictionary for one preloaded with
// the primitives, string, and message types.
func NewTypeDictionary() *TypeDictionary {
	return &TypeDictionary{byID: make(map[uint8]FieldType)}
}

// Register adds or replaces the descriptor for t.TypeID.
func (d *TypeDictionary) Register(t FieldType) {
	d.byID[t.TypeID] = t
}

// GetByTypeID looks up the descriptor for id. The bool result reports
// whether one was registered.
func (d *TypeDictionary) GetByTypeID(id uint8) (FieldType, bool) {
	t, ok := d.byID[id]
	return t, ok
}

// GetUnknownType returns a placeholder descriptor for a variable-width
// type-id with no registration: its value round-trips as opaque bytes,
// so re-encoding a decoded message reproduces the original bytes exactly
// even though their meaning is unknown to this dictionary (spec §9, Open
// Question: "opaque-bytes round-trip").
func (d *TypeDictionary) GetUnknownType(id uint8) FieldType {
	return FieldType{
		TypeID:     id,
		FixedWidth: false,
		Read: func(r io.Reader, varSize int, _ *TypeDictionary) (any, error) {
			buf := make([]byte, varSize)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: reading unknown-type payload: %w", ErrTruncatedInput, err)
			}
			return buf, nil
		},
		Write: func(value any, _ *TypeDictionary) ([]byte, error) {
			b, ok := value.([]byte)
			if !ok {
				return nil, fmt.Errorf("wire: unknown type value must be []byte, got %T", value)
			}
			return b, nil
		},
	}
}

// DefaultTypeDictionary returns a dictionary registered with the seven
// primitives plus a general string type and a sub-message type. Callers
// needing additional concrete types (arrays, date/time, ...) register
// them directly — their registration mechanics are outside this
// package's scope.
func DefaultTypeDictionary() *TypeDictionary {
	d := NewTypeDictionary()
	registerPrimitiveTypes(d)
	d.Register(FieldType{
		TypeID:     TypeIDString,
		FixedWidth: false,
		Read: func(r io.Reader, varSize int, _ *TypeDictionary) (any, error) {
			buf := make([]byte, varSize)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: reading string payload: %w", ErrTruncatedInput, err)
			}
			return DecodeMUTF8(buf)
		},
		Write: func(value any, _ *TypeDictionary) ([]byte, error) {
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("wire: string type value must be string, got %T", value)
			}
			return EncodeMUTF8(s), nil
		},
	})
	d.Register(FieldType{
		TypeID:     TypeIDMessage,
		FixedWidth: false,
		Read: func(r io.Reader, varSize int, dict *TypeDictionary) (any, error) {
			return readMessageBody(r, varSize, dict)
		},
		Write: func(value any, dict *TypeDictionary) ([]byte, error) {
			msg, ok := value.(*Message)
			if !ok {
				return nil, fmt.Errorf("wire: message type value must be *Message, got %T", value)
			}
			return writeMessageBody(msg, dict)
		},
	})
	return d
}
