package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/minij/minij/grammar"
	"github.com/dhamidi/minij/minij/parser"
)

type TreeEncoder interface {
	encoding.TextMarshaler
	Encode(tree *parser.Tree) error
}

type TableEncoder interface {
	encoding.TextMarshaler
	Encode(table *grammar.Table) error
}

type TreeOptions struct {
	Color     bool
	Positions bool
}

var treeFormats = map[string]func(io.Writer, TreeOptions) TreeEncoder{
	"json": func(w io.Writer, _ TreeOptions) TreeEncoder { return NewTreeJSONEncoder(w) },
	"tree": func(w io.Writer, opts TreeOptions) TreeEncoder { return NewTreeTextEncoder(w, opts) },
}

var tableFormats = map[string]func(io.Writer) TableEncoder{
	"json": func(w io.Writer) TableEncoder { return NewTableJSONEncoder(w) },
	"yaml": func(w io.Writer) TableEncoder { return NewTableYAMLEncoder(w) },
	"toml": func(w io.Writer) TableEncoder { return NewTableTOMLEncoder(w) },
	"text": func(w io.Writer) TableEncoder { return NewTableLineEncoder(w) },
}

// NewTreeEncoder returns the parse tree encoder registered under name.
func NewTreeEncoder(name string, w io.Writer, opts TreeOptions) (TreeEncoder, error) {
	newEncoder, ok := treeFormats[name]
	if !ok {
		return nil, fmt.Errorf("unknown tree format %q (available: %v)", name, TreeFormats())
	}
	return newEncoder(w, opts), nil
}

// NewTableEncoder returns the parsing table encoder registered under name.
func NewTableEncoder(name string, w io.Writer) (TableEncoder, error) {
	newEncoder, ok := tableFormats[name]
	if !ok {
		return nil, fmt.Errorf("unknown table format %q (available: %v)", name, TableFormats())
	}
	return newEncoder(w), nil
}

func TreeFormats() []string {
	return sortedKeys(treeFormats)
}

func TableFormats() []string {
	return sortedKeys(tableFormats)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
