package storage

import "testing"

func TestRowRoundTrip(t *testing.T) {
	columns := []Column{
		{Name: "id", DataType: NewIntType()},
		{Name: "title", DataType: NewStringType(32)},
		{Name: "active", DataType: NewBoolType()},
		{Name: "price", DataType: NewFloatType()},
	}
	row := Row{Values: []Value{
		IntValue(7),
		StringValue("Bananas"),
		BoolValue(true),
		NullValue(),
	}}

	b, err := row.ToBytes(columns)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if len(b) != 8+32+8+8 {
		t.Fatalf("unexpected encoded row length %d", len(b))
	}

	got, err := RowFromBytes(b, columns)
	if err != nil {
		t.Fatalf("RowFromBytes: %v", err)
	}
	for i, v := range got.Values {
		if !v.Equal(row.Values[i]) {
			t.Errorf("value %d: got %v, want %v", i, v, row.Values[i])
		}
	}
}
