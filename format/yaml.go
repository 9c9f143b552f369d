package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/minij/minij/grammar"
)

type TableYAMLEncoder struct {
	w     io.Writer
	table *grammar.Table
}

func NewTableYAMLEncoder(w io.Writer) *TableYAMLEncoder {
	return &TableYAMLEncoder{w: w}
}

func (e *TableYAMLEncoder) Encode(table *grammar.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TableYAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(NewTableDocument(e.table))
}
