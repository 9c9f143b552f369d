package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/minij/minij/parser"
)

type TreeJSONEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

type treeJSONDocument struct {
	File   string       `json:"file,omitempty"`
	Tokens int          `json:"tokens"`
	Root   *parser.Node `json:"root"`
}

func (e *TreeJSONEncoder) MarshalText() ([]byte, error) {
	doc := treeJSONDocument{}
	if t := e.tree; t != nil {
		doc.Root = t.Root
		doc.Tokens = len(t.Tokens)
		if len(t.Tokens) > 0 {
			doc.File = t.Tokens[0].Span.Start.File
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}
