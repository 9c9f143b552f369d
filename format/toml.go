package format

import (
	"bytes"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/minij/minij/grammar"
)

type TableTOMLEncoder struct {
	w     io.Writer
	table *grammar.Table
}

func NewTableTOMLEncoder(w io.Writer) *TableTOMLEncoder {
	return &TableTOMLEncoder{w: w}
}

func (e *TableTOMLEncoder) Encode(table *grammar.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TableTOMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(NewTableDocument(e.table)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
