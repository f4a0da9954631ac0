package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// IndexEntry pairs an indexed value with the row number it was found at.
type IndexEntry struct {
	Value     Value
	RowNumber uint64
}

// IndexRow is one hash bucket: every (value, row number) pair that
// hashed to Hash. Collisions are resolved by linear scan over Values.
type IndexRow struct {
	Hash   uint64
	Values []IndexEntry
}

func (r IndexRow) toBytes(column Column) []byte {
	var entries []byte
	for _, e := range r.Values {
		valueBytes, _ := e.Value.ToBytes(column.Size(), column.DataType)
		entries = append(entries, valueBytes...)
		rowBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(rowBytes, e.RowNumber)
		entries = append(entries, rowBytes...)
	}

	length := uint64(len(r.Values)) * uint64(column.Size()+8)
	lengthBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(lengthBytes, length)

	hashBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(hashBytes, r.Hash)

	out := make([]byte, 0, 16+len(entries))
	out = append(out, lengthBytes...)
	out = append(out, hashBytes...)
	out = append(out, entries...)
	return out
}

func parseU64(b []byte, cursor int) uint64 {
	return binary.BigEndian.Uint64(b[cursor : cursor+8])
}

func indexRowFromBytes(b []byte, column Column) (IndexRow, error) {
	valuesLength := parseU64(b, 0)
	cursor := 8
	hash := parseU64(b, cursor)
	cursor += 8

	columnSize := column.Size()
	var values []IndexEntry
	for valuesLength != 0 {
		if cursor+columnSize > len(b) {
			return IndexRow{}, fmt.Errorf("truncated index row")
		}
		v, err := ValueFromBytes(b[cursor:cursor+columnSize], column.DataType)
		if err != nil {
			return IndexRow{}, err
		}
		cursor += columnSize
		rowNumber := parseU64(b, cursor)
		cursor += 8
		values = append(values, IndexEntry{Value: v, RowNumber: rowNumber})
		valuesLength -= uint64(columnSize) + 8
	}

	return IndexRow{Hash: hash, Values: values}, nil
}

// Index is a full secondary index for one column: every row keyed by the
// hash of its value in that column, with collisions resolved at lookup
// time by scanning the bucket's Values.
type Index struct {
	Rows map[uint64]IndexRow
}

// NewIndex returns an empty index.
func NewIndex() Index {
	return Index{Rows: make(map[uint64]IndexRow)}
}

func (idx Index) toBytes(column Column) []byte {
	var out []byte
	for _, row := range idx.Rows {
		out = append(out, row.toBytes(column)...)
	}
	return out
}

func indexFromBytes(b []byte, column Column) (Index, error) {
	rows := make(map[uint64]IndexRow)
	cursor := 0
	for cursor < len(b) {
		length := int(parseU64(b, cursor)) + 16
		if cursor+length > len(b) {
			return Index{}, fmt.Errorf("truncated index file")
		}
		row, err := indexRowFromBytes(b[cursor:cursor+length], column)
		if err != nil {
			return Index{}, err
		}
		rows[row.Hash] = row
		cursor += length
	}
	return Index{Rows: rows}, nil
}

// WriteToFile persists idx to fileName atomically: it writes to a
// temp file in the same directory, then renames it into place, so a
// reader never observes a half-written index file.
func (idx Index) WriteToFile(fileName string, column Column) error {
	return atomicWriteFile(fileName, idx.toBytes(column))
}

// LoadIndex reads the index file written for column.
func LoadIndex(fileName string, column Column) (Index, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return Index{}, err
	}
	return indexFromBytes(b, column)
}

func atomicWriteFile(fileName string, data []byte) error {
	dir := filepath.Dir(fileName)
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fileName)
}
