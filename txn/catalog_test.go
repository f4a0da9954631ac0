package txn

import (
	"testing"

	"github.com/Progenitus1/rust-sql-miniserver/storage"
)

func TestAddToInfoTableCreatesCatalogOnFirstUse(t *testing.T) {
	e := NewExecutor(t.TempDir())

	if _, err := storage.LoadTable(e.BaseDir, infoTableName); err == nil {
		t.Fatal("did not expect the catalog table to exist yet")
	}

	if err := e.addToInfoTable("films", 3); err != nil {
		t.Fatalf("addToInfoTable: %v", err)
	}

	table, err := storage.LoadTable(e.BaseDir, infoTableName)
	if err != nil {
		t.Fatalf("expected the catalog table to have been created: %v", err)
	}

	it, err := storage.NewRowsIterator(table)
	if err != nil {
		t.Fatalf("NewRowsIterator: %v", err)
	}
	if it.Count() != 1 {
		t.Fatalf("expected 1 catalog row, got %d", it.Count())
	}
	row, _ := it.Next()
	if row.Values[0].Str != "films" || row.Values[1].Int != 3 {
		t.Errorf("unexpected catalog row: %#v", row)
	}
}

func TestAddToInfoTableAppendsAcrossTables(t *testing.T) {
	e := NewExecutor(t.TempDir())

	if err := e.addToInfoTable("films", 3); err != nil {
		t.Fatalf("addToInfoTable films: %v", err)
	}
	if err := e.addToInfoTable("actors", 2); err != nil {
		t.Fatalf("addToInfoTable actors: %v", err)
	}

	table, err := storage.LoadTable(e.BaseDir, infoTableName)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	it, err := storage.NewRowsIterator(table)
	if err != nil {
		t.Fatalf("NewRowsIterator: %v", err)
	}
	if it.Count() != 2 {
		t.Fatalf("expected 2 catalog rows, got %d", it.Count())
	}
}

func TestRemoveFromInfoTableDeletesRow(t *testing.T) {
	e := NewExecutor(t.TempDir())

	if err := e.addToInfoTable("films", 3); err != nil {
		t.Fatalf("addToInfoTable: %v", err)
	}
	if err := e.addToInfoTable("actors", 2); err != nil {
		t.Fatalf("addToInfoTable: %v", err)
	}
	if err := e.removeFromInfoTable("films"); err != nil {
		t.Fatalf("removeFromInfoTable: %v", err)
	}

	table, err := storage.LoadTable(e.BaseDir, infoTableName)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	it, err := storage.NewRowsIterator(table)
	if err != nil {
		t.Fatalf("NewRowsIterator: %v", err)
	}
	if it.Count() != 1 {
		t.Fatalf("expected 1 catalog row left, got %d", it.Count())
	}
	row, _ := it.Next()
	if row.Values[0].Str != "actors" {
		t.Errorf("expected the remaining row to be 'actors', got %q", row.Values[0].Str)
	}
}

func TestCreateTableRegistersInCatalog(t *testing.T) {
	e := NewExecutor(t.TempDir())

	if _, err := e.Process("CREATE TABLE films id int, title varchar"); err != nil {
		t.Fatalf("CREATE TABLE: %v", err)
	}

	table, err := storage.LoadTable(e.BaseDir, infoTableName)
	if err != nil {
		t.Fatalf("expected a catalog table after CREATE TABLE: %v", err)
	}
	it, err := storage.NewRowsIterator(table)
	if err != nil {
		t.Fatalf("NewRowsIterator: %v", err)
	}
	if it.Count() != 1 {
		t.Fatalf("expected 1 catalog row, got %d", it.Count())
	}
	row, _ := it.Next()
	if row.Values[0].Str != "films" || row.Values[1].Int != 2 {
		t.Errorf("unexpected catalog row: %#v", row)
	}
}

func TestDropTableUnregistersFromCatalog(t *testing.T) {
	e := NewExecutor(t.TempDir())

	if _, err := e.Process("CREATE TABLE films id int, title varchar"); err != nil {
		t.Fatalf("CREATE TABLE: %v", err)
	}
	if _, err := e.Process("DROP TABLE films"); err != nil {
		t.Fatalf("DROP TABLE: %v", err)
	}

	table, err := storage.LoadTable(e.BaseDir, infoTableName)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	it, err := storage.NewRowsIterator(table)
	if err != nil {
		t.Fatalf("NewRowsIterator: %v", err)
	}
	if it.Count() != 0 {
		t.Fatalf("expected 0 catalog rows after drop, got %d", it.Count())
	}
}
