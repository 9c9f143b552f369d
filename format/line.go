package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/minij/minij/grammar"
)

// TableLineEncoder writes one tab-separated line per table entry followed by
// one line per non-terminal with its nullable flag, FIRST and FOLLOW sets.
type TableLineEncoder struct {
	w     io.Writer
	table *grammar.Table
}

func NewTableLineEncoder(w io.Writer) *TableLineEncoder {
	return &TableLineEncoder{w: w}
}

func (e *TableLineEncoder) Encode(table *grammar.Table) error {
	e.table = table
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TableLineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	doc := NewTableDocument(e.table)

	for _, entry := range doc.Entries {
		fmt.Fprintf(&sb, "entry\t%s\t%s\t%s\n",
			entry.NonTerminal,
			entry.Lookahead,
			strings.Join(entry.Production, " "),
		)
	}

	for _, set := range doc.Sets {
		fmt.Fprintf(&sb, "sets\t%s\t%s\t%s\t%s\n",
			set.NonTerminal,
			nullableStr(set.Nullable),
			listStr(set.First),
			listStr(set.Follow),
		)
	}

	return []byte(sb.String()), nil
}

func nullableStr(nullable bool) string {
	if nullable {
		return "nullable"
	}
	return "-"
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}
