package storage

import (
	"os"
	"testing"
)

func newTestTable(t *testing.T, name string, idColumnIndexed bool) Table {
	t.Helper()
	return Table{
		BaseDir: t.TempDir(),
		Name:    name,
		Columns: []Column{
			{Name: "Name", DataType: NewStringType(255)},
			{Name: "Id", DataType: NewIntType(), IsIndexed: idColumnIndexed},
		},
	}
}

func TestTableToAndFromBytes(t *testing.T) {
	table := newTestTable(t, "Table", false)
	got, err := TableFromBytes(table.BaseDir, table.ToBytes())
	if err != nil {
		t.Fatalf("TableFromBytes: %v", err)
	}
	if got.Name != table.Name {
		t.Errorf("got name %q, want %q", got.Name, table.Name)
	}
	if len(got.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(got.Columns))
	}
	if got.Columns[0].Name != "Name" || got.Columns[0].DataType.Kind != StringType || got.Columns[0].DataType.Size != 255 {
		t.Errorf("unexpected first column: %#v", got.Columns[0])
	}
	if got.Columns[1].Name != "Id" || got.Columns[1].DataType.Kind != IntType {
		t.Errorf("unexpected second column: %#v", got.Columns[1])
	}
}

func TestTableCreateAndDrop(t *testing.T) {
	table := newTestTable(t, "Table", false)
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := os.Stat(table.headerPath()); err != nil {
		t.Errorf("expected a header file to exist: %v", err)
	}
	rowsBytes, err := table.ReadRowsBytes()
	if err != nil {
		t.Fatalf("ReadRowsBytes: %v", err)
	}
	if len(rowsBytes) != 0 {
		t.Errorf("expected an empty rows file right after Create, got %d bytes", len(rowsBytes))
	}

	if err := table.Drop(); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := os.Stat(table.headerPath()); err == nil {
		t.Error("expected the header file to be gone after Drop")
	}
}

func insertTestRow(t *testing.T, table Table, name string, id int32) {
	t.Helper()
	if err := table.InsertRow(Row{Values: []Value{StringValue(name), IntValue(id)}}); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
}

func TestTableInsertAndSeekRow(t *testing.T) {
	table := newTestTable(t, "Table", false)
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	insertTestRow(t, table, "We will surely finish this project.", 1)
	insertTestRow(t, table, "I am sure about it.", 10)

	row, err := table.SeekRow(1)
	if err != nil {
		t.Fatalf("SeekRow: %v", err)
	}
	if row.Values[0].Str != "I am sure about it." || row.Values[1].Int != 10 {
		t.Errorf("unexpected row at index 1: %#v", row)
	}
}

func TestTableIndexes(t *testing.T) {
	table := newTestTable(t, "Table7", true)
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	insertTestRow(t, table, "We will surely finish this project.", 1)
	insertTestRow(t, table, "I am sure about it.", 10)
	insertTestRow(t, table, "third row", 8)

	idColumn := table.Columns[1]
	index, err := table.GetIndex(idColumn)
	if err != nil {
		t.Fatalf("GetIndex: %v", err)
	}

	for rowNumber, id := range map[uint64]int32{0: 1, 1: 10, 2: 8} {
		bucket, ok := index.Rows[IntValue(id).Hash()]
		if !ok {
			t.Fatalf("expected a bucket for id %d", id)
		}
		found := false
		for _, e := range bucket.Values {
			if e.RowNumber == rowNumber {
				found = true
			}
		}
		if !found {
			t.Errorf("expected row %d in the bucket for id %d, got %#v", rowNumber, id, bucket.Values)
		}
	}
}

func TestTableIndexesAddedAfterCreation(t *testing.T) {
	table := newTestTable(t, "Table9", false)
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	insertTestRow(t, table, "We will surely finish this project.", 1)
	insertTestRow(t, table, "I am sure about it.", 10)

	if err := table.AddIndex(1); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	if !table.Columns[1].IsIndexed {
		t.Error("expected the Id column to be marked indexed")
	}

	loaded, err := LoadTable(table.BaseDir, "Table9")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if !loaded.Columns[1].IsIndexed {
		t.Error("expected the reloaded header to show the Id column as indexed")
	}

	index, err := table.GetIndex(table.Columns[1])
	if err != nil {
		t.Fatalf("GetIndex: %v", err)
	}
	if _, ok := index.Rows[IntValue(10).Hash()]; !ok {
		t.Error("expected an index bucket for id 10")
	}
}

func TestTableDeleteRows(t *testing.T) {
	table := newTestTable(t, "Table", false)
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	insertTestRow(t, table, "first", 1)
	insertTestRow(t, table, "second", 2)
	insertTestRow(t, table, "third", 3)

	if err := table.DeleteRows([]uint64{1}); err != nil {
		t.Fatalf("DeleteRows: %v", err)
	}

	it, err := NewRowsIterator(table)
	if err != nil {
		t.Fatalf("NewRowsIterator: %v", err)
	}
	if it.Count() != 2 {
		t.Fatalf("expected 2 rows left, got %d", it.Count())
	}
	row, _ := it.Next()
	if row.Values[0].Str != "first" {
		t.Errorf("expected the first remaining row to be 'first', got %q", row.Values[0].Str)
	}
	row, _ = it.Next()
	if row.Values[0].Str != "third" {
		t.Errorf("expected the second remaining row to be 'third', got %q", row.Values[0].Str)
	}
}

func TestTableRemoveIndex(t *testing.T) {
	table := newTestTable(t, "Table", true)
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	insertTestRow(t, table, "first", 1)

	if err := table.RemoveIndex(1); err != nil {
		t.Fatalf("RemoveIndex: %v", err)
	}
	if table.Columns[1].IsIndexed {
		t.Error("expected the Id column to no longer be indexed")
	}
	if _, err := os.Stat(table.indexFileName(Column{Name: "Id", DataType: NewIntType()})); err == nil {
		t.Error("expected the index file to be removed")
	}
}
