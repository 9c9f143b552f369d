package grammar

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dhamidi/minij/minij/lex"
)

// ConflictError reports two productions competing for one table entry,
// which means the grammar is not LL(1).
type ConflictError struct {
	Label     Label
	Lookahead lex.TokenKind
	Existing  Production
	Added     Production
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("LL(1) conflict for (%s, %s): %q and %q",
		e.Label, e.Lookahead, e.Existing.String(), e.Added.String())
}

// DefectError reports a malformed rule or a table that does not cover the
// grammar.
type DefectError struct {
	Label   Label
	Message string
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("grammar defect in %s: %s", e.Label, e.Message)
}

type key struct {
	label     Label
	lookahead lex.TokenKind
}

// Entry is one cell of the parsing table.
type Entry struct {
	Label      Label
	Lookahead  lex.TokenKind
	Production Production
}

// Table maps (non-terminal, lookahead) to the single production to expand.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	start    Label
	entries  map[key]Production
	nullable map[Label]bool
	first    map[Label]termSet
	follow   map[Label]termSet
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table of the fixed grammar, building it on first use.
// It panics if the grammar is defective; Build reports the same problems as
// errors.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Build()
		if err != nil {
			panic(fmt.Sprintf("grammar: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Build constructs and validates the parsing table of the fixed grammar.
func Build() (*Table, error) {
	return build(Rules(), Program)
}

func build(rules []Rule, start Label) (*Table, error) {
	byHead, err := checkRules(rules, start)
	if err != nil {
		return nil, err
	}

	a := analyze(rules, start)
	t := &Table{
		start:    start,
		entries:  make(map[key]Production),
		nullable: a.nullable,
		first:    a.first,
		follow:   a.follow,
	}

	var errs []error
	for _, rule := range rules {
		for _, alt := range rule.Alternatives {
			first, nullable := a.firstOfAlternative(alt)
			for _, la := range first.sorted() {
				if err := t.add(rule.Head, la, alt.Symbols); err != nil {
					errs = append(errs, err)
				}
			}
			if nullable {
				for _, la := range a.follow[rule.Head].sorted() {
					if err := t.add(rule.Head, la, alt.Symbols); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := t.checkCoverage(byHead); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) add(label Label, la lex.TokenKind, prod Production) error {
	k := key{label, la}
	if existing, ok := t.entries[k]; ok {
		if existing.Equal(prod) {
			return nil
		}
		return &ConflictError{Label: label, Lookahead: la, Existing: existing, Added: prod}
	}
	t.entries[k] = append(Production(nil), prod...)
	return nil
}

// checkCoverage verifies that every non-terminal has at least one entry and
// that nullable non-terminals accept every terminal of their FOLLOW set.
func (t *Table) checkCoverage(rules map[Label]Rule) error {
	counts := make(map[Label]int)
	for k := range t.entries {
		counts[k.label]++
	}
	var errs []error
	for _, label := range sortedLabels(rules) {
		if counts[label] == 0 {
			errs = append(errs, &DefectError{Label: label, Message: "no table entries"})
			continue
		}
		if !t.nullable[label] {
			continue
		}
		for _, la := range t.follow[label].sorted() {
			if _, ok := t.entries[key{label, la}]; !ok {
				errs = append(errs, &DefectError{
					Label:   label,
					Message: fmt.Sprintf("nullable but no entry for FOLLOW terminal %s", la),
				})
			}
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the production for expanding nt when the next token has
// kind la.
func (t *Table) Lookup(nt Label, la lex.TokenKind) (Production, bool) {
	prod, ok := t.entries[key{nt, la}]
	return prod, ok
}

func (t *Table) Start() Label {
	return t.start
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Expected lists the lookaheads nt has an entry for, in token kind order.
func (t *Table) Expected(nt Label) []lex.TokenKind {
	var kinds []lex.TokenKind
	for _, k := range lex.Kinds() {
		if _, ok := t.entries[key{nt, k}]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Entries returns every entry ordered by label, then lookahead.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.entries))
	for k, prod := range t.entries {
		entries = append(entries, Entry{Label: k.label, Lookahead: k.lookahead, Production: prod})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Label != entries[j].Label {
			return entries[i].Label < entries[j].Label
		}
		return entries[i].Lookahead < entries[j].Lookahead
	})
	return entries
}

func (t *Table) Nullable(nt Label) bool {
	return t.nullable[nt]
}

func (t *Table) First(nt Label) []lex.TokenKind {
	return t.first[nt].sorted()
}

func (t *Table) Follow(nt Label) []lex.TokenKind {
	return t.follow[nt].sorted()
}

// checkRules validates the shape of the rule list and indexes it by head.
func checkRules(rules []Rule, start Label) (map[Label]Rule, error) {
	byHead := make(map[Label]Rule)
	var errs []error
	defect := func(l Label, format string, args ...any) {
		errs = append(errs, &DefectError{Label: l, Message: fmt.Sprintf(format, args...)})
	}

	for _, rule := range rules {
		if !rule.Head.Valid() {
			defect(rule.Head, "rule for unknown label %d", int(rule.Head))
			continue
		}
		if _, dup := byHead[rule.Head]; dup {
			defect(rule.Head, "more than one rule")
			continue
		}
		byHead[rule.Head] = rule
		if len(rule.Alternatives) == 0 {
			defect(rule.Head, "no alternatives")
		}
		for i, alt := range rule.Alternatives {
			checkAlternative(rule.Head, i, alt, defect)
		}
	}

	if _, ok := byHead[start]; !ok {
		defect(start, "start symbol has no rule")
		return nil, errors.Join(errs...)
	}

	reachable := map[Label]bool{start: true}
	work := []Label{start}
	for len(work) > 0 {
		head := work[len(work)-1]
		work = work[:len(work)-1]
		for _, alt := range byHead[head].Alternatives {
			for _, sym := range alt.Symbols {
				l, ok := sym.Label()
				if !ok {
					continue
				}
				if _, defined := byHead[l]; !defined {
					defect(head, "references %s which has no rule", l)
					continue
				}
				if !reachable[l] {
					reachable[l] = true
					work = append(work, l)
				}
			}
		}
	}
	for _, l := range sortedLabels(byHead) {
		if !reachable[l] {
			defect(l, "unreachable from %s", start)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return byHead, nil
}

func checkAlternative(head Label, i int, alt Alternative, defect func(Label, string, ...any)) {
	if len(alt.Symbols) == 0 {
		defect(head, "alternative %d is empty; use the Empty marker", i)
		return
	}
	for _, sym := range alt.Symbols {
		switch sym.Kind() {
		case SymbolEmpty:
			if len(alt.Symbols) != 1 {
				defect(head, "alternative %d mixes the Empty marker with other symbols", i)
			}
		case SymbolAny:
			if len(alt.Symbols) != 1 {
				defect(head, "alternative %d uses the Any placeholder alongside other symbols", i)
			}
			if len(alt.Accepts) == 0 {
				defect(head, "alternative %d uses the Any placeholder without accepted terminals", i)
			}
		case SymbolTerminal:
			kind, _ := sym.Terminal()
			if kind == lex.TokenEOF || !kind.IsGrammatical() {
				defect(head, "alternative %d uses terminal %s", i, kind)
			}
		case SymbolNonTerminal:
		default:
			defect(head, "alternative %d contains an invalid symbol", i)
		}
	}
	if len(alt.Accepts) > 0 && !(len(alt.Symbols) == 1 && alt.Symbols[0] == Any) {
		defect(head, "alternative %d lists accepted terminals but is not a lone Any placeholder", i)
	}
}

func sortedLabels(m map[Label]Rule) []Label {
	labels := make([]Label, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
