package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// envelopeHeaderSize is the fixed 8-byte envelope header (spec §6).
const envelopeHeaderSize = 8

// WriteEnvelope writes msg to sink, wrapped in an envelope addressed by
// taxonomyID (0 = none) and tagged with version. When resolver maps
// taxonomyID to a Taxonomy, fields have their ordinal derived from their
// name (or their name dropped when the taxonomy already covers the pair)
// before being emitted — spec §4.3, step 2.
func WriteEnvelope(sink io.Writer, msg *Message, taxonomyID int16, version byte, dict *TypeDictionary, resolver TaxonomyResolver) error {
	var tax *Taxonomy
	if resolver != nil {
		tax, _ = resolver.Resolve(taxonomyID)
	}

	encoded := applyTaxonomyForEncode(msg, tax)

	body, err := writeMessageBody(encoded, dict)
	if err != nil {
		return err
	}

	var header [envelopeHeaderSize]byte
	header[0] = 0 // processing-directives, reserved
	header[1] = version
	binary.BigEndian.PutUint16(header[2:4], uint16(taxonomyID))
	binary.BigEndian.PutUint32(header[4:8], uint32(envelopeHeaderSize+len(body)))

	if _, err := sink.Write(header[:]); err != nil {
		return err
	}
	_, err = sink.Write(body)
	return err
}

// applyTaxonomyForEncode returns a copy of msg with each field's
// name/ordinal rewritten against tax. The source message is left
// untouched so callers may reuse it across encodes with different
// taxonomies.
func applyTaxonomyForEncode(msg *Message, tax *Taxonomy) *Message {
	if tax == nil {
		return msg
	}
	out := NewMessage()
	for _, f := range msg.Fields() {
		switch {
		case f.Ordinal == nil && f.Name != nil:
			if ord, ok := tax.OrdinalFor(*f.Name); ok {
				f.Ordinal = &ord
			}
		case f.Name != nil && f.Ordinal != nil:
			if name, ok := tax.NameFor(*f.Ordinal); ok && name == *f.Name {
				f.Name = nil
			}
		}
		if f.TypeID == TypeIDMessage {
			if sub, ok := f.Value.(*Message); ok {
				f.Value = applyTaxonomyForEncode(sub, tax)
			}
		}
		out.Add(f)
	}
	return out
}

// writeMessageBody encodes msg's fields, in order, with no envelope
// header — this is the recursive building block both WriteEnvelope and
// the sub-message field type use.
func writeMessageBody(msg *Message, dict *TypeDictionary) ([]byte, error) {
	buf := &bytes.Buffer{}
	for _, f := range msg.Fields() {
		if err := writeField(buf, f, dict); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeField(w io.Writer, f Field, dict *TypeDictionary) error {
	typ, ok := dict.GetByTypeID(f.TypeID)
	if !ok {
		if f.FixedWidth {
			return fmt.Errorf("%w: no descriptor registered for type-id %d", ErrUnknownType, f.TypeID)
		}
		typ = dict.GetUnknownType(f.TypeID)
	}

	var valueBytes []byte
	var err error
	if typ.TypeID >= TypeIDBool && typ.TypeID <= TypeIDFloat64 && typ.FixedWidth {
		valueBytes, err = writePrimitiveFast(typ.TypeID, f.Value)
	} else {
		valueBytes, err = typ.Write(f.Value, dict)
	}
	if err != nil {
		return err
	}

	var varSize VarSizeWidth
	if !typ.FixedWidth {
		varSize = smallestVarSize(len(valueBytes))
	}

	prefix := Prefix{
		FixedWidth: typ.FixedWidth,
		VarSize:    varSize,
		HasOrdinal: f.Ordinal != nil,
		HasName:    f.Name != nil,
	}
	prefixByte, err := prefix.Encode()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte{prefixByte, typ.TypeID}); err != nil {
		return err
	}

	if f.Ordinal != nil {
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(*f.Ordinal))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	if f.Name != nil {
		if err := WriteName(w, *f.Name); err != nil {
			return err
		}
	}
	if !typ.FixedWidth {
		sizeBytes, err := encodeVarSize(len(valueBytes), varSize)
		if err != nil {
			return err
		}
		if _, err := w.Write(sizeBytes); err != nil {
			return err
		}
	}
	_, err = w.Write(valueBytes)
	return err
}

// writePrimitiveFast encodes one of the seven primitive type-ids directly,
// bypassing the dictionary's descriptor lookup (spec §4.4's "direct fast
// path" applied symmetrically on the encode side).
func writePrimitiveFast(typeID uint8, value any) ([]byte, error) {
	switch typeID {
	case TypeIDBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("wire: bool field value must be bool, got %T", value)
		}
		return encodeBool(b), nil
	case TypeIDInt8:
		n, ok := value.(int8)
		if !ok {
			return nil, fmt.Errorf("wire: int8 field value must be int8, got %T", value)
		}
		return []byte{byte(n)}, nil
	case TypeIDInt16:
		n, ok := value.(int16)
		if !ok {
			return nil, fmt.Errorf("wire: int16 field value must be int16, got %T", value)
		}
		return encodeInt16(n), nil
	case TypeIDInt32:
		n, ok := value.(int32)
		if !ok {
			return nil, fmt.Errorf("wire: int32 field value must be int32, got %T", value)
		}
		return encodeInt32(n), nil
	case TypeIDInt64:
		n, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("wire: int64 field value must be int64, got %T", value)
		}
		return encodeInt64(n), nil
	case TypeIDFloat32:
		f, ok := value.(float32)
		if !ok {
			return nil, fmt.Errorf("wire: float32 field value must be float32, got %T", value)
		}
		return encodeFloat32(f), nil
	case TypeIDFloat64:
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("wire: float64 field value must be float64, got %T", value)
		}
		return encodeFloat64(f), nil
	default:
		return nil, fmt.Errorf("wire: %d is not a fast-path primitive type-id", typeID)
	}
}
