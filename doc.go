/*
Package rubypir compiles a small Ruby-like scripting language to PIR, the
register-based intermediate representation of the Parrot virtual machine.

The compiler is syntax-directed. A parser builds a tree of grammar nodes, and
a translator walks that tree once, emitting IR as it leaves each node. There
is no separate type checker or optimizer: the translator tracks what it knows
statically about every expression as it goes and folds constant arithmetic on
the spot. Everything else becomes runtime instructions.

To compile a program, use Compile, CompileString, or CompileFile. The result
holds the IR text and any semantic errors. A result with errors must not be
written out; CompileFile refuses to do so.

Language

Programs are sequences of statements separated by newlines or semicolons:

	def fact(n)
		if n == 0
			return 1
		else
			return n * fact(n - 1)
		end
	end

	puts 'factorial: '
	puts fact(gets())

Variables are declared by their first assignment with =. Compound assignment
operators (+=, -=, *=, /=, %=, **=) require the variable to exist already; using
one on an undeclared name is a semantic error. Each function body has its own
set of variables, separate from the main program.

Control flow includes if/elsif/else, unless/else, while, C-style for loops, and
break. Arrays are created empty with a = [] and filled by index. Globals are
written $name. A string literal can be repeated with *, as in '-' * 10, and
concatenated with +.

Two directives pass through to the output: require 'lib' includes lib.pir, and
%pir{ ... } copies IR instructions verbatim.

Output

The main program becomes the .sub main block. It is followed by an include of
the runtime library, any required libraries, and then every function that the
program calls, in the order of first call. Functions that are defined but
never called are not emitted. Calls to names with no definition are assumed to
refer to library functions and are emitted as they are.

Expressions whose operands are all constants are folded:

	x = 2 * 3 + 0.5

compiles to

	.local pmc x
	x = new "Double"
	x = 6.5

Otherwise the translator allocates temporaries:

	y = x * 2

becomes

	.local pmc y
	y = new "Integer"
	$P0 = new "Integer"
	$P0 = x * 2
	y = $P0

Comparisons and boolean connectives are never folded. They always compute
into integer registers, like $I0 = islt i, 10.
*/
package rubypir
