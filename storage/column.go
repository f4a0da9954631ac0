package storage

import (
	"encoding/binary"
	"fmt"
)

// Column describes one column of a table: its name, declared type, and
// whether a secondary hash index is maintained for it.
type Column struct {
	Name      string
	DataType  DataType
	IsIndexed bool
}

// Size is the fixed number of bytes a value of this column occupies in a
// row file.
func (c Column) Size() int { return c.DataType.Size() }

// ToBytes encodes the column descriptor: a u32 name length, the name
// bytes, the 8-byte data-type descriptor, then a single is-indexed byte.
func (c Column) ToBytes() []byte {
	nameLen := make([]byte, 4)
	binary.BigEndian.PutUint32(nameLen, uint32(len(c.Name)))

	out := make([]byte, 0, 4+len(c.Name)+8+1)
	out = append(out, nameLen...)
	out = append(out, []byte(c.Name)...)
	out = append(out, c.DataType.ToBytes()...)
	if c.IsIndexed {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	return out
}

// ColumnFromBytes decodes a single column descriptor written by ToBytes.
func ColumnFromBytes(b []byte) (Column, error) {
	if len(b) < 4 {
		return Column{}, fmt.Errorf("short column bytes")
	}
	nameSize := int(binary.BigEndian.Uint32(b[0:4]))
	if len(b) < 4+nameSize+8+1 {
		return Column{}, fmt.Errorf("short column bytes for name of size %d", nameSize)
	}
	name := string(b[4 : 4+nameSize])

	dtBeg := 4 + nameSize
	dtEnd := dtBeg + 8
	dataType, err := DataTypeFromBytes(b[dtBeg:dtEnd])
	if err != nil {
		return Column{}, err
	}
	isIndexed := b[dtEnd]&1 == 1

	return Column{Name: name, DataType: dataType, IsIndexed: isIndexed}, nil
}

// encodedSize returns how many bytes ColumnFromBytes would consume
// starting at b, without fully decoding the column -- used by Table's
// header parser to step over columns one at a time.
func encodedSize(b []byte) (int, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("short column bytes")
	}
	nameSize := int(binary.BigEndian.Uint32(b[0:4]))
	return 4 + nameSize + 8 + 1, nil
}
