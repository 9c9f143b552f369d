package format

import (
	"github.com/dhamidi/minij/minij/grammar"
	"github.com/dhamidi/minij/minij/lex"
)

// TableDocument is the serialized form of a parsing table shared by the
// JSON, YAML and TOML encoders.
type TableDocument struct {
	Start   string        `json:"start" yaml:"start" toml:"start"`
	Entries []TableEntry  `json:"entries" yaml:"entries" toml:"entries"`
	Sets    []TableSymbol `json:"sets" yaml:"sets" toml:"sets"`
}

type TableEntry struct {
	NonTerminal string   `json:"nonTerminal" yaml:"non_terminal" toml:"non_terminal"`
	Lookahead   string   `json:"lookahead" yaml:"lookahead" toml:"lookahead"`
	Production  []string `json:"production" yaml:"production" toml:"production"`
}

type TableSymbol struct {
	NonTerminal string   `json:"nonTerminal" yaml:"non_terminal" toml:"non_terminal"`
	Nullable    bool     `json:"nullable" yaml:"nullable" toml:"nullable"`
	First       []string `json:"first" yaml:"first" toml:"first"`
	Follow      []string `json:"follow" yaml:"follow" toml:"follow"`
}

func NewTableDocument(t *grammar.Table) TableDocument {
	doc := TableDocument{Start: t.Start().String()}
	for _, entry := range t.Entries() {
		prod := make([]string, len(entry.Production))
		for i, sym := range entry.Production {
			prod[i] = sym.String()
		}
		doc.Entries = append(doc.Entries, TableEntry{
			NonTerminal: entry.Label.String(),
			Lookahead:   entry.Lookahead.String(),
			Production:  prod,
		})
	}
	for _, label := range grammar.Labels() {
		doc.Sets = append(doc.Sets, TableSymbol{
			NonTerminal: label.String(),
			Nullable:    t.Nullable(label),
			First:       kindNames(t.First(label)),
			Follow:      kindNames(t.Follow(label)),
		})
	}
	return doc
}

func kindNames(kinds []lex.TokenKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
