package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ReadEnvelope reads one envelope from source: header, then fields until
// the declared size is exactly consumed (spec §4.4). When resolver maps
// the envelope's taxonomy-id to a Taxonomy, every field in the resulting
// message tree has its missing name or ordinal back-filled from the
// other — an existing name or ordinal is never overwritten.
func ReadEnvelope(source io.Reader, dict *TypeDictionary, resolver TaxonomyResolver) (*Envelope, error) {
	var header [envelopeHeaderSize]byte
	if _, err := io.ReadFull(source, header[:]); err != nil {
		return nil, fmt.Errorf("%w: reading envelope header: %v", ErrTruncatedInput, err)
	}

	version := header[1]
	taxonomyID := int16(binary.BigEndian.Uint16(header[2:4]))
	totalSize := int(int32(binary.BigEndian.Uint32(header[4:8])))

	bodySize := totalSize - envelopeHeaderSize
	if bodySize < 0 {
		return nil, fmt.Errorf("%w: declared size %d is smaller than the header", ErrMalformedEnvelope, totalSize)
	}

	msg, err := readMessageBody(source, bodySize, dict)
	if err != nil {
		return nil, err
	}

	var tax *Taxonomy
	if resolver != nil {
		tax, _ = resolver.Resolve(taxonomyID)
	}
	if tax != nil {
		applyTaxonomyForDecode(msg, tax)
	}

	return &Envelope{
		ProcessingDirectives: header[0],
		Version:              version,
		TaxonomyID:           taxonomyID,
		Message:              msg,
	}, nil
}

// applyTaxonomyForDecode walks msg, populating each field's missing name
// from its ordinal (or vice versa) via tax, recursing into sub-messages.
// Spec's Design Notes call this a post-pass; an equivalent implementation
// could apply it during field emission instead, provided the end state is
// identical — this module takes the post-pass approach because it keeps
// readField independent of any particular taxonomy.
func applyTaxonomyForDecode(msg *Message, tax *Taxonomy) {
	for i, f := range msg.Fields() {
		switch {
		case f.Name == nil && f.Ordinal != nil:
			if name, ok := tax.NameFor(*f.Ordinal); ok {
				f.Name = &name
				msg.Set(i, f)
			}
		case f.Ordinal == nil && f.Name != nil:
			if ord, ok := tax.OrdinalFor(*f.Name); ok {
				f.Ordinal = &ord
				msg.Set(i, f)
			}
		}
		if f.TypeID == TypeIDMessage {
			if sub, ok := f.Value.(*Message); ok {
				applyTaxonomyForDecode(sub, tax)
			}
		}
	}
}

// errDeclaredSizeTooSmall is boundedReader's signal that a field tried to
// read past the byte window its enclosing message declared, as opposed
// to the underlying source itself running out. It never escapes this
// file unwrapped: readMessageBody translates it into ErrMalformedEnvelope
// before returning.
var errDeclaredSizeTooSmall = errors.New("wire: field read past declared message size")

// boundedReader reads at most limit bytes from the wrapped reader. Once
// that many have been read, any further read fails with
// errDeclaredSizeTooSmall instead of silently falling through to
// whatever data happens to follow in the wrapped reader — data that may
// belong to a sibling field, the next message, or (at the envelope's
// outermost call) an entirely separate concatenated envelope.
type boundedReader struct {
	r     io.Reader
	limit int
	read  int
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.read >= b.limit {
		return 0, errDeclaredSizeTooSmall
	}
	if remaining := b.limit - b.read; len(p) > remaining {
		p = p[:remaining]
	}
	n, err := b.r.Read(p)
	b.read += n
	return n, err
}

// readMessageBody parses size bytes of r as a sequence of fields — the
// recursive building block for both the envelope body and nested
// sub-messages (spec §4.4: "Loop ReadField until bytes_read == size; any
// shortfall or overrun is a hard error"). Fields are read directly off a
// boundedReader scoped to size rather than off a pre-sliced buffer, so a
// field whose own declared length would run past this message's window —
// a corrupted or tampered size, not mere end-of-stream — is caught and
// reported as ErrMalformedEnvelope even when the real underlying source
// has plenty of bytes left (e.g. a sibling field, or the next envelope in
// a concatenated stream) to satisfy the read.
func readMessageBody(r io.Reader, size int, dict *TypeDictionary) (*Message, error) {
	br := &boundedReader{r: r, limit: size}
	msg := NewMessage()
	for br.read < br.limit {
		f, err := readField(br, dict)
		if err != nil {
			if errors.Is(err, errDeclaredSizeTooSmall) {
				return nil, fmt.Errorf("%w: declared size %d is too small for its fields", ErrMalformedEnvelope, size)
			}
			return nil, err
		}
		msg.Add(f)
	}
	if br.read != size {
		return nil, fmt.Errorf("%w: fields consumed %d bytes, declared size was %d", ErrMalformedEnvelope, br.read, size)
	}
	return msg, nil
}

func readField(r io.Reader, dict *TypeDictionary) (Field, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Field{}, fmt.Errorf("%w: reading field prefix: %w", ErrTruncatedInput, err)
	}
	prefix, err := DecodePrefix(head[0])
	if err != nil {
		return Field{}, err
	}
	typeID := head[1]

	f := Field{TypeID: typeID, FixedWidth: prefix.FixedWidth}

	if prefix.HasOrdinal {
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Field{}, fmt.Errorf("%w: reading field ordinal: %w", ErrTruncatedInput, err)
		}
		ord := int16(binary.BigEndian.Uint16(buf[:]))
		f.Ordinal = &ord
	}
	if prefix.HasName {
		name, err := ReadName(r)
		if err != nil {
			return Field{}, err
		}
		f.Name = &name
	}

	typ, ok := dict.GetByTypeID(typeID)
	if !ok {
		if prefix.FixedWidth {
			return Field{}, fmt.Errorf("%w: type-id %d", ErrUnknownType, typeID)
		}
		typ = dict.GetUnknownType(typeID)
	}

	var varSize int
	if !prefix.FixedWidth {
		varSize, err = decodeVarSize(r, prefix.VarSize)
		if err != nil {
			return Field{}, err
		}
	} else {
		varSize = typ.FixedSize
	}

	var value any
	if typeID >= TypeIDBool && typeID <= TypeIDFloat64 && prefix.FixedWidth {
		value, err = readPrimitiveFast(typeID, r)
	} else {
		value, err = typ.Read(r, varSize, dict)
	}
	if err != nil {
		return Field{}, err
	}
	f.Value = value
	return f, nil
}

// readPrimitiveFast decodes one of the seven primitive type-ids directly,
// bypassing the dictionary's descriptor lookup (spec §4.4).
func readPrimitiveFast(typeID uint8, r io.Reader) (any, error) {
	switch typeID {
	case TypeIDBool:
		return readBool(r)
	case TypeIDInt8:
		return readInt8(r)
	case TypeIDInt16:
		return readInt16(r)
	case TypeIDInt32:
		return readInt32(r)
	case TypeIDInt64:
		return readInt64(r)
	case TypeIDFloat32:
		return readFloat32(r)
	case TypeIDFloat64:
		return readFloat64(r)
	default:
		return nil, fmt.Errorf("wire: %d is not a fast-path primitive type-id", typeID)
	}
}
