// Package record implements the field concatenation that turns a raw
// bibliographic record into a (doc_id, text) document.
package record

import (
	"fmt"
	"strings"
)

// DefaultIDField is the name of the identifier field in the IR Anthology
// dump.
const DefaultIDField = "id"

// Value is either a single string or an ordered sequence of strings.
type Value struct {
	scalar string
	seq    []string
	isSeq  bool
}

// Scalar returns a single string value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// Sequence returns a sequence value, elements are kept in order.
func Sequence(ss ...string) Value {
	if ss == nil {
		ss = []string{}
	}
	return Value{seq: ss, isSeq: true}
}

// IsSequence reports whether the value is a sequence.
func (v Value) IsSequence() bool { return v.isSeq }

// Strings returns the sequence elements, or a single element slice for a
// scalar.
func (v Value) Strings() []string {
	if v.isSeq {
		return v.seq
	}
	return []string{v.scalar}
}

// String returns the scalar, or the sequence elements separated by a space.
func (v Value) String() string {
	if v.isSeq {
		return strings.Join(v.seq, " ")
	}
	return v.scalar
}

// Field is a named value.
type Field struct {
	Name  string
	Value Value
}

// RawRecord is an ordered mapping from field name to value. Order is the
// order in which fields were first set.
type RawRecord struct {
	fields []Field
}

// NewRawRecord builds a record from fields, later duplicates replace the
// value of earlier ones.
func NewRawRecord(fields ...Field) RawRecord {
	var r RawRecord
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set sets the value for a name. An existing field keeps its position.
func (r *RawRecord) Set(name string, v Value) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value for a name.
func (r RawRecord) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Fields returns the fields in order. The slice must not be modified.
func (r RawRecord) Fields() []Field { return r.fields }

// Len returns the number of fields.
func (r RawRecord) Len() int { return len(r.fields) }

// NormalizedRecord is the document shape registered with the dataset.
type NormalizedRecord struct {
	DocID string `json:"doc_id"`
	Text  string `json:"text"`
}

// MissingIdentifierError is returned when a record lacks the identifier
// field.
type MissingIdentifierError struct {
	Field string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("missing identifier field: %q", e.Field)
}

// MalformedRecordError is returned when input cannot be parsed into a field
// mapping.
type MalformedRecordError struct {
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return "malformed record: " + e.Reason
}

// Normalize concatenates every field except idField into a single text,
// each contribution followed by one space. The trailing space is kept.
func Normalize(raw RawRecord, idField string) (NormalizedRecord, error) {
	id, ok := raw.Get(idField)
	if !ok {
		return NormalizedRecord{}, &MissingIdentifierError{Field: idField}
	}
	var sb strings.Builder
	for _, f := range raw.fields {
		if f.Name == idField {
			continue
		}
		if f.Value.isSeq {
			for _, s := range f.Value.seq {
				sb.WriteString(s)
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(f.Value.scalar)
		sb.WriteByte(' ')
	}
	return NormalizedRecord{
		DocID: id.String(),
		Text:  sb.String(),
	}, nil
}
