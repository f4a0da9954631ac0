package storage

// RowsIterator walks every row of a table's row file in order.
type RowsIterator struct {
	rows []Row
	pos  int
}

// NewRowsIterator reads and decodes every row of table up front.
func NewRowsIterator(table Table) (*RowsIterator, error) {
	b, err := table.ReadRowsBytes()
	if err != nil {
		return nil, err
	}

	rowSize := table.RowSize()
	var rows []Row
	for i := 0; i+rowSize <= len(b); i += rowSize {
		row, err := RowFromBytes(b[i:i+rowSize], table.Columns)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return &RowsIterator{rows: rows}, nil
}

// Next returns the next row, or (Row{}, false) once exhausted.
func (it *RowsIterator) Next() (Row, bool) {
	if it.pos >= len(it.rows) {
		return Row{}, false
	}
	row := it.rows[it.pos]
	it.pos++
	return row, true
}

// Count returns the total number of rows, regardless of iteration
// position.
func (it *RowsIterator) Count() int { return len(it.rows) }

// Rows returns every remaining row, draining the iterator.
func (it *RowsIterator) Rows() []Row {
	out := it.rows[it.pos:]
	it.pos = len(it.rows)
	return out
}
