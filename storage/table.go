package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Table is the on-disk layout for one table: a small header file (this
// struct's own encoding) at baseDir/name, a flat row file at
// baseDir/name_rows, and one hash-bucket file per indexed column at
// baseDir/name<column>_index.
type Table struct {
	BaseDir string
	Name    string
	Columns []Column
}

func (t Table) headerPath() string   { return filepath.Join(t.BaseDir, t.Name) }
func (t Table) RowsFileName() string { return filepath.Join(t.BaseDir, t.Name+"_rows") }

func (t Table) indexFileName(column Column) string {
	return filepath.Join(t.BaseDir, t.Name+column.Name+"_index")
}

// RowSize is the fixed byte width of one encoded row.
func (t Table) RowSize() int {
	size := 0
	for _, c := range t.Columns {
		size += c.Size()
	}
	return size
}

// Create writes the table header and an empty row file, plus an empty
// index file for every column declared indexed at creation time.
func (t Table) Create() error {
	if err := t.writeHeader(); err != nil {
		return err
	}
	if err := atomicWriteFile(t.RowsFileName(), nil); err != nil {
		return fmt.Errorf("creating rows file: %w", err)
	}
	for _, c := range t.Columns {
		if c.IsIndexed {
			if err := os.WriteFile(t.indexFileName(c), nil, 0o644); err != nil {
				return fmt.Errorf("creating index file for %s: %w", c.Name, err)
			}
		}
	}
	return nil
}

func (t Table) writeHeader() error {
	return atomicWriteFile(t.headerPath(), t.ToBytes())
}

// Drop removes the header, row file, and every index file belonging to
// the table.
func (t Table) Drop() error {
	if err := os.Remove(t.headerPath()); err != nil {
		return fmt.Errorf("dropping table header: %w", err)
	}
	if err := os.Remove(t.RowsFileName()); err != nil {
		return fmt.Errorf("dropping rows file: %w", err)
	}
	for _, c := range t.Columns {
		if c.IsIndexed {
			if err := os.Remove(t.indexFileName(c)); err != nil {
				return fmt.Errorf("dropping index file for %s: %w", c.Name, err)
			}
		}
	}
	return nil
}

// InsertRow appends row to the row file and regenerates every index.
func (t Table) InsertRow(row Row) error {
	f, err := os.OpenFile(t.RowsFileName(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening rows file for insert: %w", err)
	}
	defer f.Close()

	encoded, err := row.ToBytes(t.Columns)
	if err != nil {
		return err
	}
	if _, err := f.Write(encoded); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}

	return t.GenerateIndexes()
}

// SeekRow reads the single row at rowNumber directly, without scanning
// the rows before it.
func (t Table) SeekRow(rowNumber uint64) (Row, error) {
	f, err := os.Open(t.RowsFileName())
	if err != nil {
		return Row{}, fmt.Errorf("seeking row: %w", err)
	}
	defer f.Close()

	rowSize := t.RowSize()
	offset := int64(rowNumber) * int64(rowSize)
	buf := make([]byte, rowSize)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return Row{}, fmt.Errorf("seeking row %d: %w", rowNumber, err)
	}
	return RowFromBytes(buf, t.Columns)
}

// ReadRowsBytes returns the full row file contents.
func (t Table) ReadRowsBytes() ([]byte, error) {
	b, err := os.ReadFile(t.RowsFileName())
	if err != nil {
		return nil, fmt.Errorf("reading rows file: %w", err)
	}
	return b, nil
}

// DeleteRows rewrites the row file with every row number in rowNumbers
// excluded, then regenerates every index.
func (t Table) DeleteRows(rowNumbers []uint64) error {
	toDelete := make(map[uint64]bool, len(rowNumbers))
	for _, n := range rowNumbers {
		toDelete[n] = true
	}

	rowsBytes, err := t.ReadRowsBytes()
	if err != nil {
		return err
	}
	rowSize := t.RowSize()
	rowCount := len(rowsBytes) / rowSize

	newRowsBytes := make([]byte, 0, len(rowsBytes))
	for rowNumber := 0; rowNumber < rowCount; rowNumber++ {
		if toDelete[uint64(rowNumber)] {
			continue
		}
		start := rowNumber * rowSize
		newRowsBytes = append(newRowsBytes, rowsBytes[start:start+rowSize]...)
	}

	if err := atomicWriteFile(t.RowsFileName(), newRowsBytes); err != nil {
		return fmt.Errorf("deleting rows: %w", err)
	}
	return t.GenerateIndexes()
}

// AddIndex builds and persists a hash index for the column at
// columnIndex, and marks that column indexed in the header.
func (t *Table) AddIndex(columnIndex int) error {
	if columnIndex < 0 || columnIndex >= len(t.Columns) {
		return fmt.Errorf("no column at index %d", columnIndex)
	}
	t.Columns[columnIndex].IsIndexed = true

	if err := t.generateIndexForColumn(columnIndex); err != nil {
		return err
	}
	return t.writeHeader()
}

// RemoveIndex drops the hash index file for the column at columnIndex
// and marks it un-indexed in the header.
func (t *Table) RemoveIndex(columnIndex int) error {
	if columnIndex < 0 || columnIndex >= len(t.Columns) {
		return fmt.Errorf("no column at index %d", columnIndex)
	}
	column := t.Columns[columnIndex]
	t.Columns[columnIndex].IsIndexed = false

	if err := t.writeHeader(); err != nil {
		return err
	}
	if err := os.Remove(t.indexFileName(column)); err != nil {
		return fmt.Errorf("removing index file for %s: %w", column.Name, err)
	}
	return nil
}

// GenerateIndexes rebuilds every indexed column's hash index from the
// current row file contents.
func (t Table) GenerateIndexes() error {
	for i, c := range t.Columns {
		if c.IsIndexed {
			if err := t.generateIndexForColumn(i); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t Table) generateIndexForColumn(columnIndex int) error {
	column := t.Columns[columnIndex]

	it, err := NewRowsIterator(t)
	if err != nil {
		return err
	}

	buckets := make(map[uint64][]IndexEntry)
	rowNumber := uint64(0)
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		value := row.Values[columnIndex]
		h := value.Hash()
		buckets[h] = append(buckets[h], IndexEntry{Value: value, RowNumber: rowNumber})
		rowNumber++
	}

	index := NewIndex()
	for hash, entries := range buckets {
		index.Rows[hash] = IndexRow{Hash: hash, Values: entries}
	}

	return index.WriteToFile(t.indexFileName(column), column)
}

// GetIndex loads the hash index for column from disk.
func (t Table) GetIndex(column Column) (Index, error) {
	return LoadIndex(t.indexFileName(column), column)
}

// ToBytes encodes the table header: a u32 name length, the name bytes,
// then each column's own encoding back to back.
func (t Table) ToBytes() []byte {
	nameLen := make([]byte, 4)
	binary.BigEndian.PutUint32(nameLen, uint32(len(t.Name)))

	out := make([]byte, 0, 4+len(t.Name))
	out = append(out, nameLen...)
	out = append(out, []byte(t.Name)...)
	for _, c := range t.Columns {
		out = append(out, c.ToBytes()...)
	}
	return out
}

// TableFromBytes decodes a table header written by ToBytes.
func TableFromBytes(baseDir string, b []byte) (Table, error) {
	if len(b) < 4 {
		return Table{}, fmt.Errorf("short table header")
	}
	nameSize := int(binary.BigEndian.Uint32(b[0:4]))
	name := string(b[4 : 4+nameSize])

	var columns []Column
	cursor := 4 + nameSize
	for cursor < len(b) {
		size, err := encodedSize(b[cursor:])
		if err != nil {
			return Table{}, err
		}
		col, err := ColumnFromBytes(b[cursor : cursor+size])
		if err != nil {
			return Table{}, err
		}
		columns = append(columns, col)
		cursor += size
	}

	return Table{BaseDir: baseDir, Name: name, Columns: columns}, nil
}

// LoadTable reads and decodes the header file for name out of baseDir.
func LoadTable(baseDir, name string) (Table, error) {
	b, err := os.ReadFile(filepath.Join(baseDir, name))
	if err != nil {
		return Table{}, fmt.Errorf("loading table %s: %w", name, err)
	}
	return TableFromBytes(baseDir, b)
}
