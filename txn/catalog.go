package txn

import (
	"fmt"

	"github.com/Progenitus1/rust-sql-miniserver/storage"
)

// infoTableName is the self-hosted catalog table: every CREATE TABLE
// adds a row here, every DROP TABLE removes one. It lives alongside
// ordinary tables rather than behind a privileged internal API -- the
// bookkeeping is done by recursively calling Process with hand-built
// INSERT/DELETE statements, the same way a client would maintain any
// other table.
const infoTableName = "all_tables"

// addToInfoTable records that table_name now exists with colsCount
// columns, creating the catalog table itself on first use.
func (e *Executor) addToInfoTable(tableName string, colsCount int) error {
	if _, err := storage.LoadTable(e.BaseDir, infoTableName); err != nil {
		if err := e.createInfoTable(); err != nil {
			return err
		}
	}

	query := fmt.Sprintf("INSERT INTO %s VALUES ('%s', %d)", infoTableName, tableName, colsCount)
	_, err := e.Process(query)
	return err
}

// removeFromInfoTable deletes table_name's catalog row.
func (e *Executor) removeFromInfoTable(tableName string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE table_name = '%s'", infoTableName, tableName)
	_, err := e.Process(query)
	return err
}

func (e *Executor) createInfoTable() error {
	table := storage.Table{
		BaseDir: e.BaseDir,
		Name:    infoTableName,
		Columns: []storage.Column{
			{Name: "table_name", DataType: storage.NewStringType(256)},
			{Name: "columns_count", DataType: storage.NewIntType()},
		},
	}
	return table.Create()
}
