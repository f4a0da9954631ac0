// Package storage implements the on-disk table, row, and index file
// formats: one fixed-width binary file per table's rows, a small header
// file per table, and one hash-bucket file per indexed column.
package storage

import (
	"encoding/binary"
	"fmt"
)

// DataTypeKind identifies which of the four column types a DataType is.
type DataTypeKind int

const (
	IntType DataTypeKind = iota
	StringType
	BoolType
	FloatType
)

// DataType is a column's declared type. Size is only meaningful for
// StringType, where it is the fixed byte width reserved for the column.
type DataType struct {
	Kind DataTypeKind
	Size int32
}

func NewIntType() DataType              { return DataType{Kind: IntType} }
func NewStringType(size int32) DataType { return DataType{Kind: StringType, Size: size} }
func NewBoolType() DataType             { return DataType{Kind: BoolType} }
func NewFloatType() DataType            { return DataType{Kind: FloatType} }

// ParseDataType maps a lexed data-type keyword onto a DataType. varchar
// always reserves 255 bytes; there is no syntax
// in this grammar for specifying a narrower size.
func ParseDataType(name string) (DataType, error) {
	switch name {
	case "int":
		return NewIntType(), nil
	case "varchar":
		return NewStringType(255), nil
	case "boolean":
		return NewBoolType(), nil
	case "float":
		return NewFloatType(), nil
	default:
		return DataType{}, fmt.Errorf("unknown data type %q", name)
	}
}

func (d DataType) String() string {
	switch d.Kind {
	case IntType:
		return "INT"
	case StringType:
		return "STRING"
	case BoolType:
		return "BOOLEAN"
	case FloatType:
		return "FLOAT"
	default:
		return "UNKNOWN"
	}
}

// Size is the fixed number of bytes a value of this type occupies in a
// row: 8 for everything but strings, where it is the declared width.
func (d DataType) Size() int {
	if d.Kind == StringType {
		return int(d.Size)
	}
	return 8
}

// ToBytes encodes the type descriptor to its fixed 8-byte wire form: a
// one-byte tag followed by the size (only populated for strings).
func (d DataType) ToBytes() []byte {
	out := make([]byte, 8)
	switch d.Kind {
	case IntType:
		out[0] = 0
	case StringType:
		out[0] = 1
		binary.BigEndian.PutUint32(out[4:8], uint32(d.Size))
	case BoolType:
		out[0] = 2
	case FloatType:
		out[0] = 3
	}
	return out
}

// DataTypeFromBytes decodes the 8-byte form written by ToBytes.
func DataTypeFromBytes(b []byte) (DataType, error) {
	if len(b) < 8 {
		return DataType{}, fmt.Errorf("short data-type bytes: %d", len(b))
	}
	switch b[0] {
	case 0:
		return NewIntType(), nil
	case 1:
		size := int32(binary.BigEndian.Uint32(b[4:8]))
		return NewStringType(size), nil
	case 2:
		return NewBoolType(), nil
	case 3:
		return NewFloatType(), nil
	default:
		return DataType{}, fmt.Errorf("unknown data-type tag %d", b[0])
	}
}
