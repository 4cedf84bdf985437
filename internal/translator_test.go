package internal_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/rubypir"
	"github.com/zephyrtronium/rubypir/testutils"
)

const stdlibInclude = `.include "stdlib/stdlib.pir"`

// TestDeclarations tests that variables are declared once per scope, with the
// constructor chosen by the type of their first value.
func TestDeclarations(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Redeclare": {
			Source: "x = 1\nx = 2",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc x",
				`x = new "Integer"`,
				"x = 1",
				"x = 2",
				".end",
				stdlibInclude,
			),
		},
		"Double": {
			Source: "x = 2 * 3 + 0.5",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc x",
				`x = new "Double"`,
				"x = 6.5",
				".end",
				stdlibInclude,
			),
		},
		"String": {
			Source: "s = 'ab' * 3",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc s",
				`s = new "String"`,
				`s = "ababab"`,
				".end",
				stdlibInclude,
			),
		},
		"Dynamic": {
			Source: "x = 1\ny = x * 2",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc x",
				`x = new "Integer"`,
				"x = 1",
				".local pmc y",
				`y = new "Integer"`,
				`$P0 = new "Integer"`,
				"$P0 = x * 2",
				"y = $P0",
				".end",
				stdlibInclude,
			),
		},
		"Function-scope": {
			Source: "x = 1\ndef f()\nx = 2\nreturn x\nend\nf()",
			Pass: func(r *rubypir.Result, err error) bool {
				return err == nil && strings.Count(r.Output, ".local pmc x\n") == 2
			},
		},
		"Param-declared": {
			Source: "def f(a)\na += 1\nreturn a\nend\nf(1)",
			Pass:   testutils.PassNotContains(".local pmc a"),
		},
		"Array-redeclare": {
			Source: "a = []\na = []",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc a",
				`a = new "ResizablePMCArray"`,
				`a = new "ResizablePMCArray"`,
				".end",
				stdlibInclude,
			),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestExpressions tests constant folding and runtime lowering of expressions.
func TestExpressions(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Precedence":     {Source: "x = 2 + 3 * 4", Pass: testutils.PassContains("x = 14")},
		"Parens":         {Source: "x = (2 + 3) * 4", Pass: testutils.PassContains("x = 20")},
		"Power-right":    {Source: "x = 2 ** 3 ** 2", Pass: testutils.PassContains("x = 512")},
		"Minus-left":     {Source: "x = 10 - 4 - 3", Pass: testutils.PassContains("x = 3")},
		"Int-div":        {Source: "x = 7 / 2", Pass: testutils.PassContains("x = 3")},
		"Int-mod":        {Source: "x = 7 % 3", Pass: testutils.PassContains("x = 1")},
		"Mixed":          {Source: "x = 1 + 0.5", Pass: testutils.PassContains(`x = new "Double"`, "x = 1.5")},
		"Float-int":      {Source: "x = 3.0 * 2", Pass: testutils.PassContains("x = 6.0")},
		"Concat":         {Source: `x = "a" + "b"`, Pass: testutils.PassContains(`x = "ab"`)},
		"Repeat-zero":    {Source: "x = 'ab' * 0", Pass: testutils.PassContains(`x = ""`)},
		"Repeat-neg":     {Source: "x = 'ab' * -2", Pass: testutils.PassContains(`x = ""`)},
		"Single-quotes":  {Source: `x = 'say "hi"'`, Pass: testutils.PassContains(`x = "say \"hi\""`)},
		"True":           {Source: "x = true", Pass: testutils.PassContains("x = 1")},
		"Neg-fold":       {Source: "x = -5", Pass: testutils.PassContains("x = -5")},
		"No-fold-output": {Source: "x = 2 * 3", Pass: testutils.PassNotContains("$P", "new \"Double\"")},
		"Chain": {
			Source: "x = 1\ny = x + 1 + 2\nz = x - 1",
			Pass: testutils.PassLinesInOrder(
				`$P0 = new "Integer"`,
				"$P0 = x + 1",
				`$P1 = new "Integer"`,
				"$P1 = $P0 + 2",
				"y = $P1",
				`$P0 = new "Integer"`,
				"$P0 = x - 1",
				"z = $P0",
			),
		},
		"Static-right": {
			Source: "x = 1\ny = 2.5 - x",
			Pass:   testutils.PassContains("$P0 = 2.5 - x", `y = new "Integer"`),
		},
		"Neg-runtime": {
			Source: "y = 1\nz = -y",
			Pass:   testutils.PassLinesInOrder(`$P0 = new "Integer"`, "$P0 = neg y", "z = $P0"),
		},
		"Not": {
			Source: "y = 1\nn = not y\nm = !y",
			Pass:   testutils.PassLinesInOrder("$I0 = not y", "n = $I0", "$I1 = not y", "m = $I1"),
		},
		"Pow-runtime": {
			Source: "x = 2\ny = x ** 2",
			Pass:   testutils.PassLinesInOrder(`$P0 = new "Integer"`, "$P0 = pow x, 2", "y = $P0"),
		},
		"Compare-not-folded": {
			Source: "c = 1 < 2",
			Pass: testutils.PassLinesInOrder(
				".local pmc c",
				`c = new "Integer"`,
				"$I0 = islt 1, 2",
				"c = $I0",
			),
		},
		"Equal-not-folded": {Source: "c = 1 == 1", Pass: testutils.PassContains("$I0 = iseq 1, 1")},
		"Logic": {
			Source: "a = 1\nb = 0\nc = a < 2 && b or a",
			Pass:   testutils.PassLinesInOrder("$I0 = islt a, 2", "$I1 = and $I0, b", "$I2 = or $I1, a", "c = $I2"),
		},
		"Bitwise": {
			Source: "a = 1\nc = a & 2 | 4",
			Pass:   testutils.PassLinesInOrder("$I0 = band a, 2", "$I1 = bor $I0, 4"),
		},
		"Global-read": {
			Source: "y = $g + 1",
			Pass: testutils.PassLinesInOrder(
				`$P0 = get_global "g"`,
				`$P1 = new "Integer"`,
				"$P1 = $P0 + 1",
				"y = $P1",
			),
		},
		"Call-arg-temps": {
			Source: "x = 1\nputs x + 1, x",
			Pass:   testutils.PassLinesInOrder(`$P0 = new "Integer"`, "$P0 = x + 1", "puts($P0, x)"),
		},
		"Call-value": {
			Source: "y = f(1) + 2",
			Pass:   testutils.PassLinesInOrder("$P0 = f(1)", `$P1 = new "Integer"`, "$P1 = $P0 + 2", "y = $P1"),
		},
		"Named-args": {
			Source: "foo(1, key: 2)",
			Pass:   testutils.PassContains(`foo(1, 2 :named("key"))`),
		},
		"Float-render": {
			Source: "x = 1.0\ny = x + 2.0",
			Pass:   testutils.PassContains("x = 1.0", "$P0 = x + 2.0"),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestStatements tests arrays, globals, and directives.
func TestStatements(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Arrays": {
			Source: "a = []\na[0] = 5\nb = a[0]\ni = 1\na[i + 1] = 2",
			Pass: testutils.PassLinesInOrder(
				".local pmc a",
				`a = new "ResizablePMCArray"`,
				"a[0] = 5",
				".local pmc b",
				`b = new "Integer"`,
				"b = a[0]",
				`$P0 = new "Integer"`,
				"$P0 = i + 1",
				"a[$P0] = 2",
			),
		},
		"Globals": {
			Source: "$g = 5\nx = $g",
			Pass: testutils.PassExact(
				".sub main",
				`set_global "g", 5`,
				".local pmc x",
				`x = new "Integer"`,
				`get_global x, "g"`,
				".end",
				stdlibInclude,
			),
		},
		"Global-set-dynamic": {
			Source: "x = 1\n$g = x * 2",
			Pass:   testutils.PassLinesInOrder("$P0 = x * 2", `set_global "g", $P0`),
		},
		"Require": {
			Source: "require 'io'\nrequire \"io\"\nrequire 'x.pir'",
			Pass: testutils.PassExact(
				".sub main",
				".end",
				stdlibInclude,
				`.include "io.pir"`,
				`.include "x.pir"`,
			),
		},
		"Inline-PIR": {
			Source: "x = 1\n%pir{\n  say \"hi\"\n\n  noop\n}\ny = 2",
			Pass: testutils.PassLinesInOrder(
				"x = 1",
				`say "hi"`,
				"noop",
				".local pmc y",
			),
		},
		"Bare-call": {
			Source: "puts 1",
			Pass:   testutils.PassExact(".sub main", "puts(1)", ".end", stdlibInclude),
		},
		"Command-negative": {
			Source: "puts -1",
			Pass:   testutils.PassExact(".sub main", "puts(-1)", ".end", stdlibInclude),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestControl tests lowering of branches and loops to labels and gotos.
func TestControl(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"If-else": {
			Source: "if false\na = 1\nelse\nb = 2\nend",
			Pass: testutils.PassExact(
				".sub main",
				"if 0 goto label_0",
				"goto label_1",
				"label_0:",
				".local pmc a",
				`a = new "Integer"`,
				"a = 1",
				"goto label_2",
				"label_1:",
				".local pmc b",
				`b = new "Integer"`,
				"b = 2",
				"label_2:",
				".end",
				stdlibInclude,
			),
		},
		"If": {
			Source: "x = 1\nif x\ny = 1\nend",
			Pass: testutils.PassLinesInOrder(
				"if x goto label_0",
				"goto label_1",
				"label_0:",
				"y = 1",
				"label_1:",
				".end",
			),
		},
		"If-compare": {
			Source: "x = 1\nif x > 0 then y = 1 end",
			Pass:   testutils.PassLinesInOrder("$I0 = isgt x, 0", "if $I0 goto label_0", "goto label_1", "label_0:"),
		},
		"Elsif": {
			Source: "a = 1\nb = 0\nif a\nx = 1\nelsif b\nx = 2\nelse\nx = 3\nend",
			Pass: testutils.PassLinesInOrder(
				"if a goto label_0",
				"goto label_1",
				"label_0:",
				".local pmc x",
				`x = new "Integer"`,
				"x = 1",
				"goto label_2",
				"label_1:",
				"if b goto label_3",
				"goto label_4",
				"label_3:",
				"x = 2",
				"goto label_2",
				"label_4:",
				"x = 3",
				"label_2:",
			),
		},
		"Elsif-no-else": {
			Source: "a = 1\nif a\nx = 1\nelsif a < 2\nx = 2\nelsif a < 3\nx = 3\nend",
			Pass: testutils.PassLinesInOrder(
				"if a goto label_0",
				"label_1:",
				"$I0 = islt a, 2",
				"if $I0 goto label_3",
				"goto label_2",
				"label_4:",
				"$I1 = islt a, 3",
				"if $I1 goto label_5",
				"goto label_2",
				"label_6:",
				"label_2:",
			),
		},
		"Unless": {
			Source: "a = 0\nunless a\nb = 1\nend",
			Pass: testutils.PassLinesInOrder(
				"unless a goto label_0",
				"goto label_1",
				"label_0:",
				"b = 1",
				"label_1:",
			),
		},
		"Unless-else": {
			Source: "a = 0\nunless a\nb = 1\nelse\nb = 2\nend",
			Pass: testutils.PassLinesInOrder(
				"unless a goto label_0",
				"goto label_1",
				"label_0:",
				"goto label_2",
				"label_1:",
				"b = 2",
				"label_2:",
			),
		},
		"While": {
			Source: "i = 0\nwhile i < 10\ni += 1\nend",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc i",
				`i = new "Integer"`,
				"i = 0",
				"label_0:",
				"$I0 = islt i, 10",
				"unless $I0 goto label_1",
				"i += 1",
				"goto label_0",
				"label_1:",
				".end",
				stdlibInclude,
			),
		},
		"Nested-break": {
			Source: "a = 1\nb = 1\nwhile a\nwhile b\nbreak\nend\nbreak\nend",
			Pass: testutils.PassLinesInOrder(
				"label_0:",
				"unless a goto label_1",
				"label_2:",
				"unless b goto label_3",
				"goto label_3",
				"goto label_2",
				"label_3:",
				"goto label_1",
				"goto label_0",
				"label_1:",
			),
		},
		"Break-in-if": {
			Source: "a = 1\nwhile a\nif a then break end\nend",
			Pass: testutils.PassLinesInOrder(
				"label_0:",
				"unless a goto label_1",
				"if a goto label_2",
				"goto label_3",
				"label_2:",
				"goto label_1",
				"label_3:",
				"goto label_0",
				"label_1:",
			),
		},
		"For": {
			Source: "for(i = 0; i < 3; i += 1)\nputs i\nend",
			Pass: testutils.PassLinesInOrder(
				".local pmc i",
				`i = new "Integer"`,
				"i = 0",
				"label_0:",
				"$I0 = islt i, 3",
				"unless $I0 goto label_1",
				"puts(i)",
				"i += 1",
				"goto label_0",
				"label_1:",
			),
		},
		"For-multiple": {
			Source: "for(i = 0, j = 9; i < j; i += 1, j -= 1)\nend",
			Pass:   testutils.PassLinesInOrder("i = 0", "j = 9", "label_0:", "$I0 = islt i, j", "unless $I0 goto label_1", "i += 1", "j -= 1", "goto label_0", "label_1:"),
		},
		"Distinct-labels": {
			Source: "a = 1\nwhile a\nend\nwhile a\nend\nif a\nend",
			Pass: func(r *rubypir.Result, err error) bool {
				if err != nil {
					return false
				}
				seen := make(map[string]bool)
				for _, l := range testutils.Lines(r.Output) {
					if strings.HasSuffix(l, ":") {
						if seen[l] {
							return false
						}
						seen[l] = true
					}
				}
				return len(seen) == 6
			},
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestFunctions tests deferred emission of function bodies.
func TestFunctions(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Called-only": {
			Source: "def f(x)\nreturn x * 2\nend\ndef g()\nreturn 1\nend\ny = f(1)\nf(2)",
			Pass: testutils.PassExact(
				".sub main",
				".local pmc y",
				`y = new "Integer"`,
				"$P0 = f(1)",
				"y = $P0",
				"f(2)",
				".end",
				stdlibInclude,
				".sub f",
				".param pmc x",
				`$P0 = new "Integer"`,
				"$P0 = x * 2",
				".return($P0)",
				".end",
			),
		},
		"First-call-order": {
			Source: "def a()\nend\ndef b()\nend\nb()\na()\nb()",
			Pass: testutils.PassExact(
				".sub main",
				"b()",
				"a()",
				"b()",
				".end",
				stdlibInclude,
				".sub b",
				".end",
				".sub a",
				".end",
			),
		},
		"Forward-reference": {
			Source: "x = twice(2)\ndef twice(n)\nreturn n + n\nend",
			Pass:   testutils.PassLinesInOrder("$P0 = twice(2)", ".end", stdlibInclude, ".sub twice", ".param pmc n"),
		},
		"Redefinition": {
			Source: "def f()\nreturn 1\nend\ndef f()\nreturn 2\nend\nf()",
			Pass: func(r *rubypir.Result, err error) bool {
				return err == nil &&
					strings.Count(r.Output, ".sub f\n") == 1 &&
					strings.Contains(r.Output, ".return(2)") &&
					!strings.Contains(r.Output, ".return(1)")
			},
		},
		"Unresolved": {
			Source: "puts 1\ngets()",
			Pass:   testutils.PassNotContains(".sub puts", ".sub gets"),
		},
		"Bare-return": {
			Source: "def f\nreturn\nend\nf",
			Pass:   testutils.PassLinesInOrder(".sub f", ".return()", ".end"),
		},
		"Named-params": {
			Source: "def f a, b\nreturn a * b\nend\nputs f(3, 4)",
			Pass:   testutils.PassLinesInOrder("$P0 = f(3, 4)", "puts($P0)", ".sub f", ".param pmc a", ".param pmc b", "$P0 = a * b"),
		},
		"Bool-registers-per-sub": {
			Source: "def f(a)\nreturn a < 1\nend\nc = 1 < 2\nd = f(1)",
			Pass:   testutils.PassContains("$I0 = islt 1, 2", "$I0 = islt a, 1"),
		},
		"Recursive": {
			Source: "def fact(n)\nif n == 0\nreturn 1\nelse\nreturn n * fact(n - 1)\nend\nend\nputs fact(5)",
			Pass: func(r *rubypir.Result, err error) bool {
				return err == nil && strings.Count(r.Output, ".sub fact\n") == 1
			},
		},
		"Labels-continue-in-functions": {
			Source: "def f(a)\nwhile a\nend\nend\nf(1)\nwhile 1\nend",
			Pass:   testutils.PassContains("label_0:", "label_1:", "label_2:", "label_3:"),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestSemanticErrors tests that semantic errors accumulate, sort by line, and
// fail the compilation.
func TestSemanticErrors(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Undefined":         {Source: "x += 1", Pass: testutils.PassErrors("line 1: Undefined variable x!")},
		"Undefined-pow":     {Source: "x **= 2", Pass: testutils.PassErrors("line 1: Undefined variable x!")},
		"Undefined-in-func": {Source: "x = 1\ndef f()\nx += 1\nend\nf()", Pass: testutils.PassErrors("line 3: Undefined variable x!")},
		"Div-zero":          {Source: "x = 1 / 0", Pass: testutils.PassErrors("line 1: Division by zero!")},
		"Mod-zero":          {Source: "x = 1 % 0", Pass: testutils.PassErrors("line 1: Division by zero!")},
		"Float-div-zero":    {Source: "x = 1.5 / 0", Pass: testutils.PassErrors("line 1: Division by zero!")},
		"String-minus":      {Source: `x = "a" - "b"`, Pass: testutils.PassErrors("line 1: Unsupported operands for -: String and String!")},
		"String-plus-int":   {Source: "x = 'a' + 1", Pass: testutils.PassErrors("line 1: Unsupported operands for +: String and Integer!")},
		"Float-overflow":    {Source: "x = 1.0e308 * 10.0", Pass: testutils.PassErrors("line 1: Float result out of range!")},
		"Float-pow-inf":     {Source: "y = 0.0 ** -1.0", Pass: testutils.PassErrors("line 1: Float result out of range!")},
		"Float-pow-nan":     {Source: "z = -1.0 ** 0.5", Pass: testutils.PassErrors("line 1: Float result out of range!")},
		"Float-no-inf": {
			Source: "x = 1.0e308 * 10.0",
			Pass: func(r *rubypir.Result, err error) bool {
				return err != nil && r != nil && !strings.Contains(r.Output, "Inf") && strings.Contains(r.Output, "$P0 = ")
			},
		},
		"Negate-string":     {Source: "x = -'a'", Pass: testutils.PassErrors("line 1: Unsupported operand for -: String!")},
		"Operator-line":     {Source: "x = 1 +\n'a'", Pass: testutils.PassErrors("line 1: Unsupported operands for +: Integer and String!")},
		"Sorted": {
			Source: "def f()\ny += 1\nend\nx = 1 / 0\nz -= 2\nf()",
			Pass: testutils.PassErrors(
				"line 2: Undefined variable y!",
				"line 4: Division by zero!",
				"line 5: Undefined variable z!",
			),
		},
		"Output-kept": {
			Source: "x = 1 / 0",
			Pass: func(r *rubypir.Result, err error) bool {
				return err != nil && r != nil && r.Failed() && strings.Contains(r.Output, "$P0 = 1 / 0")
			},
		},
		"Parse-error": {
			Source: "x = ",
			Pass: func(r *rubypir.Result, err error) bool {
				return err != nil && r == nil
			},
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestDeterministic tests that compiling the same source twice gives the same
// output.
func TestDeterministic(t *testing.T) {
	src := "def f(a)\nreturn a + 1\nend\ndef g()\nreturn f(1)\nend\nx = g()\nwhile x < 3\nx += f(x)\nend\nputs x"
	a, err := rubypir.CompileString(src, "a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := rubypir.CompileString(src, "b")
	if err != nil {
		t.Fatal(err)
	}
	if a.Output != b.Output {
		t.Errorf("outputs differ:\n%s\n---\n%s", a.Output, b.Output)
	}
}
