package grammar

import (
	"sort"

	"github.com/dhamidi/minij/minij/lex"
)

type termSet map[lex.TokenKind]struct{}

func (s termSet) add(k lex.TokenKind) bool {
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}

func (s termSet) addAll(o termSet) bool {
	changed := false
	for k := range o {
		if s.add(k) {
			changed = true
		}
	}
	return changed
}

func (s termSet) sorted() []lex.TokenKind {
	kinds := make([]lex.TokenKind, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// analysis holds the nullable, FIRST and FOLLOW sets of a rule list,
// computed by fixed-point iteration.
type analysis struct {
	nullable map[Label]bool
	first    map[Label]termSet
	follow   map[Label]termSet
}

func analyze(rules []Rule, start Label) *analysis {
	a := &analysis{
		nullable: make(map[Label]bool),
		first:    make(map[Label]termSet),
		follow:   make(map[Label]termSet),
	}
	for _, rule := range rules {
		a.first[rule.Head] = termSet{}
		a.follow[rule.Head] = termSet{}
	}
	a.follow[start].add(lex.TokenEOF)

	for changed := true; changed; {
		changed = false
		for _, rule := range rules {
			for _, alt := range rule.Alternatives {
				first, nullable := a.firstOfAlternative(alt)
				if a.first[rule.Head].addAll(first) {
					changed = true
				}
				if nullable && !a.nullable[rule.Head] {
					a.nullable[rule.Head] = true
					changed = true
				}
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, rule := range rules {
			for _, alt := range rule.Alternatives {
				for i, sym := range alt.Symbols {
					l, ok := sym.Label()
					if !ok {
						continue
					}
					trailer, nullable := a.firstOf(alt.Symbols[i+1:])
					if a.follow[l].addAll(trailer) {
						changed = true
					}
					if nullable && a.follow[l].addAll(a.follow[rule.Head]) {
						changed = true
					}
				}
			}
		}
	}
	return a
}

func (a *analysis) firstOfAlternative(alt Alternative) (termSet, bool) {
	if len(alt.Symbols) == 1 && alt.Symbols[0] == Any {
		set := termSet{}
		for _, k := range alt.Accepts {
			set.add(k)
		}
		return set, false
	}
	return a.firstOf(alt.Symbols)
}

// firstOf returns FIRST of a symbol sequence and whether the whole sequence
// can derive the empty string.
func (a *analysis) firstOf(symbols []Symbol) (termSet, bool) {
	set := termSet{}
	for _, sym := range symbols {
		switch sym.Kind() {
		case SymbolEmpty:
			continue
		case SymbolTerminal:
			kind, _ := sym.Terminal()
			set.add(kind)
			return set, false
		case SymbolNonTerminal:
			l, _ := sym.Label()
			set.addAll(a.first[l])
			if !a.nullable[l] {
				return set, false
			}
		default:
			return set, false
		}
	}
	return set, true
}
