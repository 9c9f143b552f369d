package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloProgram = `public class Hello {
  public static void main ( String[] args ) {
    System.out.println ( "hello" ) ;
  }
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGrammarCheckCmd(t *testing.T) {
	out, err := run(t, "grammar", "check")
	if err != nil {
		t.Fatalf("grammar check error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "no conflicts") || !strings.Contains(out, "ebnf: minij.ebnf (embedded) verified") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestGrammarCheckCmdRejectsBrokenEBNF(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.ebnf", `Program = Missing .`)
	out, err := run(t, "grammar", "check", "--ebnf", path)
	if err == nil {
		t.Fatalf("grammar check accepted a broken EBNF file:\n%s", out)
	}
	if !strings.Contains(out, "Missing") {
		t.Errorf("output does not name the undefined production:\n%s", out)
	}
}

func TestGrammarTableCmd(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml", "toml"} {
		t.Run(f, func(t *testing.T) {
			out, err := run(t, "grammar", "table", "-f", f)
			if err != nil {
				t.Fatalf("grammar table error: %v", err)
			}
			if !strings.Contains(out, "while-statement") {
				t.Errorf("table output has no while-statement entry:\n%s", out)
			}
		})
	}
	if _, err := run(t, "grammar", "table", "-f", "csv"); err == nil {
		t.Error("grammar table accepted an unknown format")
	}
}

func TestParseCmd(t *testing.T) {
	path := writeSource(t, t.TempDir(), "Hello.java", helloProgram)

	out, err := run(t, "parse", path)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !strings.HasPrefix(out, "program\n") || !strings.Contains(out, "STRINGLIT hello") {
		t.Errorf("unexpected tree output:\n%s", out)
	}

	out, err = run(t, "parse", "-f", "json", path)
	if err != nil {
		t.Fatalf("parse -f json error: %v", err)
	}
	if !strings.Contains(out, `"label": "print-statement"`) {
		t.Errorf("json output has no print-statement:\n%s", out)
	}
}

func TestParseCmdStart(t *testing.T) {
	path := writeSource(t, t.TempDir(), "stmt.java", "x = 1 ;")
	out, err := run(t, "parse", "--start", "statement", path)
	if err != nil {
		t.Fatalf("parse --start error: %v", err)
	}
	if !strings.HasPrefix(out, "statement\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := run(t, "parse", "--start", "nonsense", path); err == nil {
		t.Error("parse accepted an unknown start label")
	}
}

func TestParseCmdSyntaxError(t *testing.T) {
	path := writeSource(t, t.TempDir(), "Broken.java", strings.Replace(helloProgram, ") ;", ";", 1))
	_, err := run(t, "parse", path)
	if err == nil {
		t.Fatal("parse accepted an invalid program")
	}
	if !strings.Contains(err.Error(), "expected RPAREN") {
		t.Errorf("error = %v", err)
	}
}

func TestTokensCmd(t *testing.T) {
	path := writeSource(t, t.TempDir(), "Hello.java", helloProgram)
	out, err := run(t, "tokens", path)
	if err != nil {
		t.Fatalf("tokens error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "1:1\tPUBLIC\tpublic" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "6:1\tEOF") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "Hello.java", helloProgram)

	out, err := run(t, "check", dir)
	if err != nil {
		t.Fatalf("check error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 files checked, 0 failed") {
		t.Errorf("unexpected output:\n%s", out)
	}

	writeSource(t, dir, "Broken.java", "public class Broken {")
	out, err = run(t, "check", "-q", dir)
	if err == nil {
		t.Fatalf("check accepted an invalid program:\n%s", out)
	}
	if !strings.Contains(out, "Broken.java") || strings.Contains(out, "Hello.java: ok") {
		t.Errorf("unexpected quiet output:\n%s", out)
	}
}
