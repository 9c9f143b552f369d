package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/minij/minij/grammar"
)

type TableJSONEncoder struct {
	w     io.Writer
	table *grammar.Table
}

func NewTableJSONEncoder(w io.Writer) *TableJSONEncoder {
	return &TableJSONEncoder{w: w}
}

func (e *TableJSONEncoder) Encode(table *grammar.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TableJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(NewTableDocument(e.table), "", "  ")
}
