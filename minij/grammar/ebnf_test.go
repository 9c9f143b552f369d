package grammar

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedEBNFVerifies(t *testing.T) {
	g, err := EBNF()
	if err != nil {
		t.Fatalf("EBNF() error: %v", err)
	}
	if err := CheckEBNF(g); err != nil {
		t.Errorf("CheckEBNF() error: %v", err)
	}
	for _, l := range Labels() {
		if _, ok := g[ebnfNames[l]]; !ok {
			t.Errorf("no EBNF production for %s", l)
		}
	}
}

func TestParseEBNFRejectsUndefinedProduction(t *testing.T) {
	src := `Program = "public" Missing .`
	if _, err := ParseEBNF("bad.ebnf", strings.NewReader(src)); err == nil {
		t.Fatal("ParseEBNF() accepted an undefined production")
	}
}

func TestCheckEBNFReportsDrift(t *testing.T) {
	src := strings.Replace(string(EBNFSource()),
		`Factor               = "(" ArithmeticExpression ")"`,
		`Factor               = "(" Term ")"`, 1)
	if src == string(EBNFSource()) {
		t.Fatal("replacement did not apply")
	}
	drifted, err := ParseEBNF("drift.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseEBNF() error: %v", err)
	}
	err = CheckEBNF(drifted)
	var defect *DefectError
	if !errors.As(err, &defect) {
		t.Fatalf("CheckEBNF() error = %v, want *DefectError", err)
	}
	if defect.Label != Factor {
		t.Errorf("defect label = %s, want %s", defect.Label, Factor)
	}
}
