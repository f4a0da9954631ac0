package txn

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Progenitus1/rust-sql-miniserver/ast"
	"github.com/Progenitus1/rust-sql-miniserver/format"
	"github.com/Progenitus1/rust-sql-miniserver/parser"
	"github.com/Progenitus1/rust-sql-miniserver/storage"
	"github.com/Progenitus1/rust-sql-miniserver/token"
	"github.com/Progenitus1/rust-sql-miniserver/visitor"
)

// Result is what Executor.Process returns for a successful query: an
// optional projected table (SELECT only) and a human-readable summary.
type Result struct {
	Data    *TableData
	Message string
}

// TableData is a projected result set: the columns it contains and the
// matching rows, in the same column order.
type TableData struct {
	Columns []storage.Column
	Rows    []storage.Row
}

// Executor parses and runs queries against tables rooted at BaseDir,
// taking the appropriate lock from Locks for every table touched.
type Executor struct {
	BaseDir string
	Locks   *LockRegistry
	Log     *logrus.Logger
}

// NewExecutor returns an Executor with a fresh lock registry and a
// logrus logger configured the way the rest of this codebase expects:
// structured fields, no color codes baked into the message text.
func NewExecutor(baseDir string) *Executor {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Executor{BaseDir: baseDir, Locks: NewLockRegistry(), Log: log}
}

// Process parses query and executes it against the tables under
// e.BaseDir.
func (e *Executor) Process(query string) (Result, error) {
	q, err := parser.Parse(query)
	if err != nil {
		e.Log.WithField("query", query).WithError(err).Debug("query failed to parse")
		return Result{}, err
	}
	normalized := format.Query(q)
	e.Log.WithField("query", normalized).Debug("query parsed")

	var result Result
	switch q.Kind {
	case parser.KindCreateTable:
		result, err = e.processCreateTable(q)
	case parser.KindDropTable:
		result, err = e.processDropTable(q)
	case parser.KindInsert:
		result, err = e.processInsert(q)
	case parser.KindSelect:
		result, err = e.processSelect(q)
	case parser.KindDelete:
		result, err = e.processDelete(q)
	case parser.KindCreateIndex:
		result, err = e.processCreateIndex(q)
	case parser.KindDropIndex:
		result, err = e.processDropIndex(q)
	default:
		return Result{}, fmt.Errorf("unhandled query kind %d", q.Kind)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", normalized, err)
	}
	return result, nil
}

func (e *Executor) processCreateTable(q parser.Query) (Result, error) {
	lock := e.Locks.Get(q.TableName)
	lock.Lock()
	defer lock.Unlock()
	e.Log.WithField("table", q.TableName).Debug("create table: acquired write lock")

	if _, err := storage.LoadTable(e.BaseDir, q.TableName); err == nil {
		return Result{}, errTableAlreadyExists(q.TableName)
	}

	columns := make([]storage.Column, 0, len(q.ColumnsDefinition))
	for _, cd := range q.ColumnsDefinition {
		dt, err := storage.ParseDataType(cd.DataType)
		if err != nil {
			return Result{}, err
		}
		columns = append(columns, storage.Column{Name: cd.Name, DataType: dt})
	}

	table := storage.Table{BaseDir: e.BaseDir, Name: q.TableName, Columns: columns}
	if err := table.Create(); err != nil {
		return Result{}, err
	}

	if err := e.addToInfoTable(q.TableName, len(columns)); err != nil {
		return Result{}, err
	}

	e.Log.WithField("table", q.TableName).Info("table created")
	return Result{Message: fmt.Sprintf("Table %s created.", q.TableName)}, nil
}

func (e *Executor) processDropTable(q parser.Query) (Result, error) {
	lock := e.Locks.Get(q.TableName)
	lock.Lock()
	defer lock.Unlock()
	e.Log.WithField("table", q.TableName).Debug("drop table: acquired write lock")

	table, err := storage.LoadTable(e.BaseDir, q.TableName)
	if err != nil {
		return Result{}, err
	}
	if err := table.Drop(); err != nil {
		return Result{}, err
	}
	if err := e.removeFromInfoTable(q.TableName); err != nil {
		return Result{}, err
	}

	e.Log.WithField("table", q.TableName).Info("table dropped")
	return Result{Message: fmt.Sprintf("Table %s dropped.", q.TableName)}, nil
}

func (e *Executor) processInsert(q parser.Query) (Result, error) {
	lock := e.Locks.Get(q.TableName)
	lock.Lock()
	defer lock.Unlock()
	e.Log.WithField("table", q.TableName).Debug("insert: acquired write lock")

	table, err := storage.LoadTable(e.BaseDir, q.TableName)
	if err != nil {
		return Result{}, err
	}

	columnsDefMap := columnsDefinitionMap(table)

	columns := q.Columns
	if len(columns) == 0 {
		if len(q.Values) != len(table.Columns) {
			return Result{}, errIncorrectNumberOfValues(len(table.Columns), len(q.Values))
		}
		for _, c := range table.Columns {
			columns = append(columns, c.Name)
		}
	} else {
		seen := make(map[string]bool, len(columns))
		for _, name := range columns {
			if _, ok := columnsDefMap[name]; !ok {
				return Result{}, errColumnNotExists(name, q.TableName)
			}
			if seen[name] {
				return Result{}, errDuplicateColumn(name)
			}
			seen[name] = true
		}
	}

	dataByColumn := make(map[string]token.Token, len(columns))
	for i, name := range columns {
		dataByColumn[name] = q.Values[i]
	}

	values := make([]storage.Value, len(table.Columns))
	for i, c := range table.Columns {
		tok, ok := dataByColumn[c.Name]
		if !ok {
			values[i] = storage.NullValue()
			continue
		}
		values[i] = valueFromToken(tok)
	}

	for i, v := range values {
		if v.Kind != storage.Null && !v.IsValidForType(table.Columns[i].DataType) {
			return Result{}, errInvalidDataType(table.Columns[i].Name, table.Columns[i].DataType.String(), valueTypeName(v))
		}
	}

	if err := table.InsertRow(storage.Row{Values: values}); err != nil {
		return Result{}, err
	}

	e.Log.WithField("table", q.TableName).Info("row inserted")
	return Result{Message: "1 row was succesfully inserted"}, nil
}

func (e *Executor) processSelect(q parser.Query) (Result, error) {
	lock := e.Locks.Get(q.TableName)
	lock.RLock()
	defer lock.RUnlock()
	e.Log.WithField("table", q.TableName).Debug("select: acquired read lock")

	table, err := storage.LoadTable(e.BaseDir, q.TableName)
	if err != nil {
		return Result{}, err
	}
	columnsDefMap := columnsDefinitionMap(table)

	rowNumbers, err := rowsForWhereCondition(table, columnsDefMap, q.WhereBody)
	if err != nil {
		return Result{}, err
	}

	rows := make([]storage.Row, 0, len(rowNumbers))
	for _, n := range rowNumbers {
		row, err := table.SeekRow(n)
		if err != nil {
			return Result{}, err
		}
		rows = append(rows, row)
	}

	projection, err := projectionColumns(q.Body, q.TableName, table, columnsDefMap)
	if err != nil {
		return Result{}, err
	}

	projected := make([]storage.Row, len(rows))
	for i, row := range rows {
		projected[i] = projectRow(row, projection, columnsDefMap)
	}

	e.Log.WithFields(logrus.Fields{"table": q.TableName, "rows": len(projected)}).Info("select completed")
	return Result{
		Data:    &TableData{Columns: projection, Rows: projected},
		Message: fmt.Sprintf("Retrieved %d rows from table %s.", len(projected), q.TableName),
	}, nil
}

func (e *Executor) processDelete(q parser.Query) (Result, error) {
	// A plain read lock here would let a concurrent writer observe or
	// clobber the rewritten row file mid-delete; take the write lock.
	lock := e.Locks.Get(q.TableName)
	lock.Lock()
	defer lock.Unlock()
	e.Log.WithField("table", q.TableName).Debug("delete: acquired write lock")

	table, err := storage.LoadTable(e.BaseDir, q.TableName)
	if err != nil {
		return Result{}, err
	}
	columnsDefMap := columnsDefinitionMap(table)

	rowNumbers, err := rowsForWhereCondition(table, columnsDefMap, q.WhereBody)
	if err != nil {
		return Result{}, err
	}
	if err := table.DeleteRows(rowNumbers); err != nil {
		return Result{}, err
	}

	e.Log.WithFields(logrus.Fields{"table": q.TableName, "rows": len(rowNumbers)}).Info("delete completed")
	return Result{Message: fmt.Sprintf("Deleted %d rows from table %s.", len(rowNumbers), q.TableName)}, nil
}

func (e *Executor) processCreateIndex(q parser.Query) (Result, error) {
	lock := e.Locks.Get(q.TableName)
	lock.Lock()
	defer lock.Unlock()
	e.Log.WithField("table", q.TableName).Debug("create index: acquired write lock")

	table, err := storage.LoadTable(e.BaseDir, q.TableName)
	if err != nil {
		return Result{}, err
	}
	columnsDefMap := columnsDefinitionMap(table)
	entry, ok := columnsDefMap[q.ColumnName]
	if !ok {
		return Result{}, errColumnNotExists(q.ColumnName, q.TableName)
	}
	if err := table.AddIndex(entry.index); err != nil {
		return Result{}, err
	}

	return Result{Message: fmt.Sprintf("Index on column %s at table %s created succesfully.", q.ColumnName, q.TableName)}, nil
}

func (e *Executor) processDropIndex(q parser.Query) (Result, error) {
	lock := e.Locks.Get(q.TableName)
	lock.Lock()
	defer lock.Unlock()
	e.Log.WithField("table", q.TableName).Debug("drop index: acquired write lock")

	table, err := storage.LoadTable(e.BaseDir, q.TableName)
	if err != nil {
		return Result{}, err
	}
	columnsDefMap := columnsDefinitionMap(table)
	entry, ok := columnsDefMap[q.ColumnName]
	if !ok {
		return Result{}, errColumnNotExists(q.ColumnName, q.TableName)
	}
	if err := table.RemoveIndex(entry.index); err != nil {
		return Result{}, err
	}

	return Result{Message: fmt.Sprintf("Index on column %s at table %s dropped succesfully.", q.ColumnName, q.TableName)}, nil
}

type columnEntry struct {
	index    int
	dataType storage.DataType
}

func columnsDefinitionMap(table storage.Table) map[string]columnEntry {
	m := make(map[string]columnEntry, len(table.Columns))
	for i, c := range table.Columns {
		m[c.Name] = columnEntry{index: i, dataType: c.DataType}
	}
	return m
}

// rowsForWhereCondition resolves a WHERE clause to the row numbers it
// matches. A single "column = literal" predicate against an indexed
// column is served from that column's hash index; anything else falls
// back to evaluating the predicate row by row.
func rowsForWhereCondition(table storage.Table, columnsDefMap map[string]columnEntry, where ast.Node) ([]uint64, error) {
	for _, name := range visitor.Identifiers(where) {
		if _, ok := columnsDefMap[name]; !ok {
			return nil, errColumnNotExists(name, table.Name)
		}
	}

	if where == nil {
		it, err := storage.NewRowsIterator(table)
		if err != nil {
			return nil, err
		}
		out := make([]uint64, it.Count())
		for i := range out {
			out[i] = uint64(i)
		}
		return out, nil
	}

	if binary, ok := where.(ast.Binary); ok && isEqualityOp(binary.Op) {
		if leaf, ok := binary.Left.(ast.Leaf); ok && leaf.Token.Kind == token.Identifier {
			entry, indexed := columnsDefMap[leaf.Token.Str]
			if indexed && table.Columns[entry.index].IsIndexed {
				searched, err := literalValue(binary.Right)
				if err == nil {
					return rowsFromIndex(table, table.Columns[entry.index], searched)
				}
			}
		}
	}

	it, err := storage.NewRowsIterator(table)
	if err != nil {
		return nil, err
	}

	var matches []uint64
	rowNumber := uint64(0)
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		ok, err := applyRowPredicate(row, table, where)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, rowNumber)
		}
		rowNumber++
	}
	return matches, nil
}

func isEqualityOp(op token.Token) bool {
	return op.Kind == token.CompareOp && op.Str == "="
}

func rowsFromIndex(table storage.Table, column storage.Column, searched storage.Value) ([]uint64, error) {
	index, err := table.GetIndex(column)
	if err != nil {
		return nil, err
	}
	bucket, ok := index.Rows[searched.Hash()]
	if !ok {
		return nil, nil
	}
	var out []uint64
	for _, entry := range bucket.Values {
		if entry.Value.Equal(searched) {
			out = append(out, entry.RowNumber)
		}
	}
	return out, nil
}

func literalValue(node ast.Node) (storage.Value, error) {
	v, err := ast.EvalNode(node, nil)
	if err != nil {
		return storage.Value{}, err
	}
	return storageValueFromAst(v), nil
}

func applyRowPredicate(row storage.Row, table storage.Table, where ast.Node) (bool, error) {
	binding := make(map[string]ast.Value, len(table.Columns))
	for i, v := range row.Values {
		binding[table.Columns[i].Name] = astValueFromStorage(v)
	}
	return ast.EvalWhere(where, binding)
}

func projectionColumns(body []token.Token, tableName string, table storage.Table, columnsDefMap map[string]columnEntry) ([]storage.Column, error) {
	var columns []storage.Column
	for _, t := range body {
		switch t.Kind {
		case token.Identifier:
			entry, ok := columnsDefMap[t.Str]
			if !ok {
				return nil, errColumnNotExists(t.Str, tableName)
			}
			columns = append(columns, storage.Column{Name: t.Str, DataType: entry.dataType})
		case token.Star:
			columns = append(columns, table.Columns...)
		default:
			return nil, fmt.Errorf("unexpected token %#v in select body", t)
		}
	}
	return columns, nil
}

func projectRow(row storage.Row, columns []storage.Column, columnsDefMap map[string]columnEntry) storage.Row {
	values := make([]storage.Value, len(columns))
	for i, c := range columns {
		entry := columnsDefMap[c.Name]
		values[i] = row.Values[entry.index]
	}
	return storage.Row{Values: values}
}

func valueFromToken(t token.Token) storage.Value {
	switch t.Kind {
	case token.NumberLiteral:
		return storage.IntValue(t.Int)
	case token.StringLiteral:
		return storage.StringValue(t.Str)
	case token.FloatLiteral:
		return storage.FloatValue(t.Float)
	case token.BoolLiteral:
		return storage.BoolValue(t.Bool)
	default:
		return storage.NullValue()
	}
}

func valueTypeName(v storage.Value) string {
	switch v.Kind {
	case storage.Int:
		return "INT"
	case storage.String:
		return "STRING"
	case storage.Bool:
		return "BOOLEAN"
	case storage.Float:
		return "FLOAT"
	default:
		return "UNKNOWN since value was null"
	}
}

// astValueFromStorage converts a stored cell into the evaluator's value
// representation, the way apply_row_predicate builds its identifier map
// in the reference implementation.
func astValueFromStorage(v storage.Value) ast.Value {
	switch v.Kind {
	case storage.Int:
		return ast.IntValue(v.Int)
	case storage.String:
		return ast.StringValue(v.Str)
	case storage.Bool:
		return ast.BoolValue(v.Bool)
	case storage.Float:
		return ast.FloatValue(v.Float)
	default:
		return ast.NullValue()
	}
}

// storageValueFromAst is the inverse conversion, used when an indexed
// lookup value has to be evaluated out of a literal expression tree.
func storageValueFromAst(v ast.Value) storage.Value {
	switch v.Kind {
	case ast.ValueInt:
		return storage.IntValue(v.Int)
	case ast.ValueString:
		return storage.StringValue(v.Str)
	case ast.ValueBool:
		return storage.BoolValue(v.Bool)
	case ast.ValueFloat:
		return storage.FloatValue(v.Float)
	default:
		return storage.NullValue()
	}
}
