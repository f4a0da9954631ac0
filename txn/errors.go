package txn

import "fmt"

// Error is the schema/semantic failure produced by the query handlers.
// Executor.Process returns parse errors from the parser/lexer/ast packages
// unwrapped; every handler failure, an Error or a storage-layer error
// alike, comes back wrapped with the normalized query text, so callers
// reach an Error through errors.As.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func errColumnNotExists(column, table string) error {
	return &Error{Kind: "ColumnNotExists", Message: fmt.Sprintf("column %s does not exist in table %s", column, table)}
}

func errDuplicateColumn(column string) error {
	return &Error{Kind: "DuplicateColumn", Message: fmt.Sprintf("column %s can't be presented multiple times", column)}
}

func errTableAlreadyExists(table string) error {
	return &Error{Kind: "TableAlreadyExists", Message: fmt.Sprintf("table %s already exist", table)}
}

func errIncorrectNumberOfValues(want, got int) error {
	return &Error{Kind: "IncorrectNumberOfValues", Message: fmt.Sprintf("table has %d columns but %d values provided", want, got)}
}

func errInvalidDataType(column, want, got string) error {
	return &Error{Kind: "InvalidDataType", Message: fmt.Sprintf("column %s has type %s but the value with type %s provided", column, want, got)}
}
