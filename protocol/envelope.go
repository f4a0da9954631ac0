// Package protocol defines the wire types a front door would exchange
// with Executor.Process: a request carrying raw query text, and a
// response carrying either a projected table or an error message. No
// server is wired to these types here -- they exist so an embedder can
// marshal results without reinventing the envelope.
package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Progenitus1/rust-sql-miniserver/storage"
	"github.com/Progenitus1/rust-sql-miniserver/txn"
)

// DataType mirrors storage.DataType on the wire as a bare string, since
// the column's declared width isn't meaningful to a client.
type DataType storage.DataType

func (d DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(storage.DataType(d).String())
}

// Column describes one result column.
type Column struct {
	Name      string   `json:"name"`
	DataType  DataType `json:"dataType"`
	IsIndexed bool     `json:"isIndexed"`
}

// Data is a single cell value, serialized as a single-key object naming
// its variant -- {"INT": 5}, {"NULL": "NULL"}, {"BOOLEAN": "true"} --
// matching an externally-tagged newtype-variant enum encoding rather
// than a flat {"kind": ..., "value": ...} struct.
type Data storage.Value

func (d Data) MarshalJSON() ([]byte, error) {
	v := storage.Value(d)
	switch v.Kind {
	case storage.Int:
		return json.Marshal(map[string]int32{"INT": v.Int})
	case storage.String:
		return json.Marshal(map[string]string{"STRING": v.Str})
	case storage.Bool:
		return json.Marshal(map[string]string{"BOOLEAN": strconv.FormatBool(v.Bool)})
	case storage.Float:
		return json.Marshal(map[string]float64{"FLOAT": v.Float})
	case storage.Null:
		return json.Marshal(map[string]string{"NULL": "NULL"})
	default:
		return nil, fmt.Errorf("unknown data kind %d", v.Kind)
	}
}

// Row is one row of result values, in column order.
type Row struct {
	Values []Data `json:"values"`
}

// TableData is a full projected result set.
type TableData struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// QueryStatus reports whether a query succeeded.
type QueryStatus string

const (
	StatusOk  QueryStatus = "Ok"
	StatusErr QueryStatus = "Err"
)

// QueryRequestData is the body of a query submission.
type QueryRequestData struct {
	Query string `json:"query"`
}

// QueryResponseData is what a caller of Executor.Process gets back,
// ready to marshal straight onto the wire.
type QueryResponseData struct {
	Status   QueryStatus `json:"status"`
	Data     *TableData  `json:"data,omitempty"`
	Message  *string     `json:"message,omitempty"`
	Duration string      `json:"duration"`
}

// FromResult builds a QueryResponseData from a successful Executor.Process
// call. duration is the caller's own formatted elapsed time, since
// Executor itself doesn't time requests.
func FromResult(result txn.Result, duration string) QueryResponseData {
	resp := QueryResponseData{Status: StatusOk, Duration: duration}
	if result.Message != "" {
		msg := result.Message
		resp.Message = &msg
	}
	if result.Data != nil {
		resp.Data = &TableData{
			Columns: columnsToWire(result.Data.Columns),
			Rows:    rowsToWire(result.Data.Rows),
		}
	}
	return resp
}

// FromError builds an error QueryResponseData from a failed
// Executor.Process call.
func FromError(err error, duration string) QueryResponseData {
	msg := err.Error()
	return QueryResponseData{Status: StatusErr, Message: &msg, Duration: duration}
}

func columnsToWire(columns []storage.Column) []Column {
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = Column{Name: c.Name, DataType: DataType(c.DataType), IsIndexed: c.IsIndexed}
	}
	return out
}

func rowsToWire(rows []storage.Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		values := make([]Data, len(row.Values))
		for j, v := range row.Values {
			values[j] = Data(v)
		}
		out[i] = Row{Values: values}
	}
	return out
}
