package wire

// Field is a leaf of a Message. Name and Ordinal are both optional — a
// taxonomy may derive whichever is missing from the other at decode time,
// or the encoder may drop one of them before writing when a taxonomy maps
// the pair (spec §3, §4.3).
type Field struct {
	Name       *string
	Ordinal    *int16
	TypeID     uint8
	FixedWidth bool
	Value      any
}

// HasName reports whether f carries a name.
func (f Field) HasName() bool { return f.Name != nil }

// HasOrdinal reports whether f carries an ordinal.
func (f Field) HasOrdinal() bool { return f.Ordinal != nil }

// Message is an ordered sequence of fields. Insertion order is preserved
// on the wire; fields may repeat a name or ordinal.
type Message struct {
	fields []Field
}

// NewMessage returns an empty message.
func NewMessage() *Message {
	return &Message{}
}

// Add appends a field, preserving order.
func (m *Message) Add(f Field) {
	m.fields = append(m.fields, f)
}

// AddNamed appends a field by name only.
func (m *Message) AddNamed(name string, typeID uint8, fixedWidth bool, value any) {
	m.Add(Field{Name: &name, TypeID: typeID, FixedWidth: fixedWidth, Value: value})
}

// AddOrdinal appends a field by ordinal only.
func (m *Message) AddOrdinal(ordinal int16, typeID uint8, fixedWidth bool, value any) {
	m.Add(Field{Ordinal: &ordinal, TypeID: typeID, FixedWidth: fixedWidth, Value: value})
}

// Len returns the number of fields.
func (m *Message) Len() int { return len(m.fields) }

// At returns the field at the given positional index.
func (m *Message) At(i int) Field { return m.fields[i] }

// Fields returns the underlying field slice. Callers must not mutate it
// except through Add/Set.
func (m *Message) Fields() []Field { return m.fields }

// Set replaces the field at index i, used by the taxonomy name/ordinal
// back-fill pass (spec §4.4, step 4).
func (m *Message) Set(i int, f Field) { m.fields[i] = f }

// ByName returns the first field with the given name.
func (m *Message) ByName(name string) (Field, bool) {
	for _, f := range m.fields {
		if f.Name != nil && *f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// AllByName returns every field with the given name, in wire order.
func (m *Message) AllByName(name string) []Field {
	var out []Field
	for _, f := range m.fields {
		if f.Name != nil && *f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// ByOrdinal returns the first field with the given ordinal.
func (m *Message) ByOrdinal(ordinal int16) (Field, bool) {
	for _, f := range m.fields {
		if f.Ordinal != nil && *f.Ordinal == ordinal {
			return f, true
		}
	}
	return Field{}, false
}

// AllByOrdinal returns every field with the given ordinal, in wire order.
func (m *Message) AllByOrdinal(ordinal int16) []Field {
	var out []Field
	for _, f := range m.fields {
		if f.Ordinal != nil && *f.Ordinal == ordinal {
			out = append(out, f)
		}
	}
	return out
}

// Envelope wraps a Message with the small header described in spec §6.
type Envelope struct {
	ProcessingDirectives byte
	Version              byte
	TaxonomyID           int16
	Message              *Message
}
