// Package datum implements the editor's tagged value model: a small
// dynamic type used by the expression evaluator, variable storage, and
// the script preprocessor/executor. Values are 8-bit opaque byte
// strings, 64-bit signed integers, arrays of Datum, nil, the two
// boolean constants, and typed blobs (used to carry buffer/mode
// handles through arrays and variables).
package datum

import (
	"fmt"
	"strconv"
)

// Kind is the tag of a Datum.
type Kind uint8

const (
	KindNil Kind = iota
	KindFalse
	KindTrue
	KindInt
	KindString
	KindArray
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindBlob:
		return "blob"
	default:
		return "?"
	}
}

// Blob is an opaque handle carried inside a Datum, e.g. a buffer or
// mode reference. Callers type-assert Blob.Value() to their own type.
type Blob struct {
	Tag   string // "buffer", "mode", "window" ...
	Value any
}

// Datum is the tagged variant. The zero value is KindNil.
type Datum struct {
	kind Kind
	i    int64
	s    []byte
	a    []*Datum
	b    Blob
}

// Nil is a shared immutable nil Datum.
var Nil = &Datum{kind: KindNil}

// False and True are shared immutable boolean Datums.
var (
	False = &Datum{kind: KindFalse}
	True  = &Datum{kind: KindTrue}
)

// NewBool returns False or True.
func NewBool(b bool) *Datum {
	if b {
		return True
	}
	return False
}

// NewInt wraps an integer.
func NewInt(n int64) *Datum {
	return &Datum{kind: KindInt, i: n}
}

// NewString wraps a byte string. The bytes are not copied; callers
// that continue to mutate the slice must pass a copy.
func NewString(s []byte) *Datum {
	return &Datum{kind: KindString, s: s}
}

// NewStringFrom wraps a Go string as a Datum string.
func NewStringFrom(s string) *Datum {
	return &Datum{kind: KindString, s: []byte(s)}
}

// NewArray wraps a slice of Datums. The slice is not copied.
func NewArray(a []*Datum) *Datum {
	return &Datum{kind: KindArray, a: a}
}

// NewBlob wraps an opaque handle.
func NewBlob(tag string, v any) *Datum {
	return &Datum{kind: KindBlob, b: Blob{Tag: tag, Value: v}}
}

// Kind returns the Datum's tag.
func (d *Datum) Kind() Kind {
	if d == nil {
		return KindNil
	}
	return d.kind
}

// Truthy implements the evaluator's truth test: only nil and false are
// falsy; every other Datum, including the integer 0 and the empty
// string, is truthy.
func (d *Datum) Truthy() bool {
	switch d.Kind() {
	case KindNil, KindFalse:
		return false
	default:
		return true
	}
}

// Int returns the Datum's integer value, or 0 if it is not KindInt.
func (d *Datum) Int() int64 {
	if d == nil || d.kind != KindInt {
		return 0
	}
	return d.i
}

// Bytes returns the Datum's raw bytes, or nil if it is not KindString.
func (d *Datum) Bytes() []byte {
	if d == nil || d.kind != KindString {
		return nil
	}
	return d.s
}

// Str returns the Datum's string value as a Go string (valid for
// KindString only; other kinds return "").
func (d *Datum) Str() string {
	return string(d.Bytes())
}

// Array returns the Datum's elements, or nil if it is not KindArray.
func (d *Datum) Array() []*Datum {
	if d == nil || d.kind != KindArray {
		return nil
	}
	return d.a
}

// BlobValue returns the Datum's blob payload, or a zero Blob.
func (d *Datum) BlobValue() Blob {
	if d == nil || d.kind != KindBlob {
		return Blob{}
	}
	return d.b
}

// Repr renders the Datum the way it would print in the message line or
// in a script's string-interpolation context: strings verbatim,
// everything else in a readable literal form.
func (d *Datum) Repr() string {
	switch d.Kind() {
	case KindNil:
		return "nil"
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindInt:
		return strconv.FormatInt(d.i, 10)
	case KindString:
		return string(d.s)
	case KindArray:
		out := "["
		for i, e := range d.a {
			if i > 0 {
				out += ", "
			}
			out += e.Quoted()
		}
		return out + "]"
	case KindBlob:
		return fmt.Sprintf("#<%s>", d.b.Tag)
	default:
		return ""
	}
}

// Quoted is like Repr but quotes strings, for use inside array Repr.
func (d *Datum) Quoted() string {
	if d.Kind() == KindString {
		return strconv.Quote(d.Str())
	}
	return d.Repr()
}

// Equal reports whether two Datums compare equal under the evaluator's
// "==" operator: same kind and same payload, with int/string cross
// comparison never equal (no implicit coercion in equality).
func Equal(a, b *Datum) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNil, KindFalse, KindTrue:
		return true
	case KindInt:
		return a.i == b.i
	case KindString:
		return string(a.s) == string(b.s)
	case KindArray:
		if len(a.a) != len(b.a) {
			return false
		}
		for i := range a.a {
			if !Equal(a.a[i], b.a[i]) {
				return false
			}
		}
		return true
	case KindBlob:
		return a.b.Tag == b.b.Tag && a.b.Value == b.b.Value
	}
	return false
}
