package storage

// Row is one table row: one Value per column, in column order.
type Row struct {
	Values []Value
}

// ToBytes encodes a row using the fixed widths declared by columns.
func (r Row) ToBytes(columns []Column) ([]byte, error) {
	var out []byte
	for i, col := range columns {
		b, err := r.Values[i].ToBytes(col.Size(), col.DataType)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// RowFromBytes decodes a row out of a fixed-width byte slice given the
// table's column layout.
func RowFromBytes(b []byte, columns []Column) (Row, error) {
	values := make([]Value, 0, len(columns))
	cursor := 0
	for _, col := range columns {
		size := col.Size()
		v, err := ValueFromBytes(b[cursor:cursor+size], col.DataType)
		if err != nil {
			return Row{}, err
		}
		values = append(values, v)
		cursor += size
	}
	return Row{Values: values}, nil
}
