package storage

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// ValueKind tags which variant a Value carries.
type ValueKind int

const (
	Null ValueKind = iota
	Int
	String
	Bool
	Float
)

// Value is a single stored cell: an INT, STRING, BOOLEAN, FLOAT, or NULL.
// This mirrors ast.Value in shape but is kept a distinct type, the same
// way the on-disk Data and the evaluator's NodeValue are kept distinct
// and converted explicitly at the txn boundary.
type Value struct {
	Kind  ValueKind
	Int   int32
	Str   string
	Bool  bool
	Float float64
}

func NullValue() Value           { return Value{Kind: Null} }
func IntValue(i int32) Value     { return Value{Kind: Int, Int: i} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func BoolValue(b bool) Value     { return Value{Kind: Bool, Bool: b} }
func FloatValue(f float64) Value { return Value{Kind: Float, Float: f} }

func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Int:
		return v.Int == other.Int
	case String:
		return v.Str == other.Str
	case Bool:
		return v.Bool == other.Bool
	case Float:
		return v.Float == other.Float
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "NULL"
	case Int:
		return fmt.Sprintf("%d", v.Int)
	case String:
		return v.Str
	case Bool:
		return fmt.Sprintf("%v", v.Bool)
	case Float:
		return fmt.Sprintf("%v", v.Float)
	}
	return "?"
}

// IsValidForType reports whether v can be stored in a column of type dt.
// NULL is always valid, regardless of declared type.
func (v Value) IsValidForType(dt DataType) bool {
	switch v.Kind {
	case Null:
		return true
	case Int:
		return dt.Kind == IntType
	case String:
		return dt.Kind == StringType
	case Bool:
		return dt.Kind == BoolType
	case Float:
		return dt.Kind == FloatType
	}
	return false
}

// Hash returns a bucket key for this value, used by the secondary index.
// Floats hash on their integer and fractional parts rather than their bit
// pattern, so that values which print the same (after float error has
// nudged their low bits) still land in the same bucket.
func (v Value) Hash() uint64 {
	h := fnv.New64a()
	switch v.Kind {
	case Int:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v.Int))
		h.Write([]byte{1})
		h.Write(b[:])
	case String:
		h.Write([]byte{2})
		h.Write([]byte(v.Str))
	case Null:
		h.Write([]byte{0})
	case Bool:
		h.Write([]byte{3})
		if v.Bool {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case Float:
		intPart, fracPart := floatHashParts(v.Float)
		var ib, fb [8]byte
		binary.BigEndian.PutUint64(ib[:], uint64(intPart))
		binary.BigEndian.PutUint64(fb[:], fracPart)
		h.Write([]byte{4})
		h.Write(ib[:])
		h.Write(fb[:])
	}
	return h.Sum64()
}

// floatHashParts splits f into an integer part and a normalized
// fractional part, scaling the fraction by powers of ten until it settles
// within epsilon of a whole number. This makes equal-looking floats (e.g.
// 45.675 computed two different ways) hash identically even though their
// bit patterns might differ by an ulp.
func floatHashParts(f float64) (int64, uint64) {
	const eps = 1e-4

	intPart := int64(f)
	frac := math.Abs(f - math.Trunc(f))
	if frac == 0 {
		return intPart, 0
	}

	for math.Abs(math.Round(frac)-frac) <= eps {
		frac *= 10
	}
	for math.Abs(math.Round(frac)-frac) > eps {
		frac *= 10
	}

	return intPart, uint64(math.Round(frac))
}

// ToBytes encodes v to its fixed-width wire form for a column of size
// maxSize and type dt. NULL is encoded as a type-specific sentinel. The
// INT and BOOLEAN sentinels never arise from a non-NULL value; the STRING
// and FLOAT sentinel (all zero bytes) is also the encoding of the empty
// string and of FLOAT 0.0.
func (v Value) ToBytes(maxSize int, dt DataType) ([]byte, error) {
	switch v.Kind {
	case Int:
		out := make([]byte, 8)
		binary.BigEndian.PutUint32(out[4:8], uint32(v.Int))
		return out, nil
	case String:
		raw := []byte(v.Str)
		if len(raw) > maxSize {
			return nil, fmt.Errorf("string value %q exceeds column width %d", v.Str, maxSize)
		}
		out := make([]byte, maxSize)
		copy(out, raw)
		return out, nil
	case Bool:
		out := make([]byte, 8)
		out[0] = 1
		out[1] = 1
		if v.Bool {
			out[2] = 1
		}
		return out, nil
	case Float:
		out := make([]byte, 8)
		binary.BigEndian.PutUint64(out, math.Float64bits(v.Float))
		return out, nil
	case Null:
		switch dt.Kind {
		case IntType:
			return []byte{1, 0, 0, 0, 0, 0, 0, 0}, nil
		default:
			return make([]byte, maxSize), nil
		}
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

var intNullSentinel = []byte{1, 0, 0, 0, 0, 0, 0, 0}

// ValueFromBytes decodes the bytes stored for a column of type dt. An
// all-zero STRING, BOOLEAN or FLOAT cell decodes as NULL, so a stored empty
// string or FLOAT 0.0 reads back as NULL.
func ValueFromBytes(b []byte, dt DataType) (Value, error) {
	switch dt.Kind {
	case IntType:
		if bytesEqual(b, intNullSentinel) {
			return NullValue(), nil
		}
		return IntValue(int32(binary.BigEndian.Uint32(b[4:8]))), nil
	case StringType:
		if allZero(b) {
			return NullValue(), nil
		}
		end := 0
		for end < len(b) && b[end] != 0 {
			end++
		}
		return StringValue(string(b[:end])), nil
	case BoolType:
		if allZero(b) {
			return NullValue(), nil
		}
		return BoolValue(b[2] != 0), nil
	case FloatType:
		if allZero(b) {
			return NullValue(), nil
		}
		return FloatValue(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	}
	return Value{}, fmt.Errorf("unknown data type kind %d", dt.Kind)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func allZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
