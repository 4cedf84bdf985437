package rubypir

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompileFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "out")
	r, err := CompileFile(filepath.Join("testdata", "num.rb"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(cfg.OutputDir, "num.pir"); r.Path != want {
		t.Errorf("wrong path: wanted %s, got %s", want, r.Path)
	}
	b, err := os.ReadFile(r.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != r.Output {
		t.Error("written file differs from result output")
	}
	out := string(b)
	// Functions follow main in order of first call, with library calls
	// left unresolved.
	order := []string{".sub main\n", "\n.end\n\n.include \"stdlib/stdlib.pir\"\n", ".sub func\n", ".sub fact\n", ".sub bubbleSort\n", ".sub printHello\n"}
	at := 0
	for _, s := range order {
		i := strings.Index(out[at:], s)
		if i < 0 {
			t.Fatalf("%q missing or out of order in:\n%s", s, out)
		}
		at += i + len(s)
	}
	for _, s := range []string{".sub puts", ".sub gets", ".sub len"} {
		if strings.Contains(out, s) {
			t.Errorf("output contains %q", s)
		}
	}
}

// TestCompileFileErrors tests that a program with semantic errors is never
// written.
func TestCompileFileErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	r, err := CompileFile(filepath.Join("testdata", "errors.rb"), cfg)
	if err == nil {
		t.Fatal("no error")
	}
	var errs ErrorList
	if !errors.As(err, &errs) {
		t.Fatalf("wrong error type %T: %v", err, err)
	}
	want := []string{
		"line 3: Undefined variable count!",
		"line 4: Division by zero!",
		"line 5: Unsupported operands for -: String and Integer!",
	}
	if len(errs) != len(want) {
		t.Fatalf("wrong errors:\n%v", err)
	}
	for i, e := range errs {
		if e.Error() != want[i] {
			t.Errorf("error %d: wanted %q, got %q", i, want[i], e.Error())
		}
	}
	if r == nil || !r.Failed() || r.Path != "" {
		t.Errorf("wrong result %+v", r)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "errors.pir")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output written despite errors: %v", err)
	}
}

func TestCompileFileMissing(t *testing.T) {
	_, err := CompileFile(filepath.Join(t.TempDir(), "nope.rb"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("wrong error for missing file: %v", err)
	}
}

func TestCompileParseError(t *testing.T) {
	r, err := CompileString("while x\n", "partial.rb")
	if r != nil {
		t.Errorf("parse error gave a result: %+v", r)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Label != "partial.rb" {
		t.Fatalf("wrong error %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("unclosed block not reported as incomplete: %v", err)
	}
}

// TestCompileConcurrent tests that independent compilations share no state.
func TestCompileConcurrent(t *testing.T) {
	src := "def f(n)\nreturn n * 2\nend\ni = 0\nwhile i < 10\ni += f(i)\nend"
	want, err := CompileString(src, "c.rb")
	if err != nil {
		t.Fatal(err)
	}
	const n = 8
	outs := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			r, err := CompileString(src, "c.rb")
			if err != nil {
				outs <- err.Error()
				return
			}
			outs <- r.Output
		}()
	}
	for i := 0; i < n; i++ {
		if got := <-outs; got != want.Output {
			t.Errorf("concurrent compile differs:\n%s", got)
		}
	}
}
