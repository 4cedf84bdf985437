// Command kindgen writes the String method and name table for an integer
// enumeration type. It is meant for go:generate:
//
//	//go:generate go run ../cmd/kindgen -type Kind -output kind_string.go
//
// Every exported constant of the named type in the package becomes an entry
// in the table, indexed by its value.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/constant"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"sort"

	"golang.org/x/tools/go/packages"
)

func main() {
	var typeName, output, pkgPath string
	flag.StringVar(&typeName, "type", "Kind", "name of the enumeration type")
	flag.StringVar(&output, "output", "", "output file; standard output if empty")
	flag.StringVar(&pkgPath, "pkg", ".", "package containing the type")
	flag.Parse()

	fset := token.NewFileSet()
	config := packages.Config{Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax, Fset: fset}
	pkgs, err := packages.Load(&config, pkgPath)
	if err != nil {
		fail("error loading packages:", err)
	}
	if len(pkgs) != 1 {
		fail("expected one package, got", len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		fail("error in package:", pkg.Errors[0])
	}
	typ := getType(pkg.Types, typeName)
	consts := find(pkg.Types.Scope(), typ)
	if len(consts) == 0 {
		fail(pkg.Types.Name(), "has no exported constants of type", typeName)
	}
	src, err := generate(pkg.Types.Name(), typeName, consts)
	if err != nil {
		fail("error formatting output:", err)
	}
	if output == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(output, src, 0644); err != nil {
		fail("error writing output:", err)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func getType(pkg *types.Package, name string) types.Type {
	r := pkg.Scope().Lookup(name)
	if r == nil {
		fail(pkg.Name(), "has no definition of", name)
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name(), "has incorrect definition of", name+":", r)
	}
	if b, ok := t.Type().Underlying().(*types.Basic); !ok || b.Info()&types.IsInteger == 0 {
		fail(name, "is not an integer type")
	}
	return t.Type()
}

type enumConst struct {
	name string
	val  int64
}

// find lists the exported constants of type typ in value order.
func find(scope *types.Scope, typ types.Type) []enumConst {
	var r []enumConst
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() || !types.Identical(c.Type(), typ) {
			continue
		}
		v, exact := constant.Int64Val(c.Val())
		if !exact || v < 0 {
			fail(name, "has a value that cannot index a table:", c.Val())
		}
		r = append(r, enumConst{name: name, val: v})
	}
	sort.SliceStable(r, func(i, j int) bool { return r[i].val < r[j].val })
	return r
}

func generate(pkg, typ string, consts []enumConst) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by kindgen -type %s; DO NOT EDIT.\n\n", typ)
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	names := "kindNames"
	if typ != "Kind" {
		names = lowerFirst(typ) + "Names"
	}
	fmt.Fprintf(&b, "var %s = [...]string{\n", names)
	for _, c := range consts {
		fmt.Fprintf(&b, "\t%s: %q,\n", c.name, c.name)
	}
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "// String returns the name of the %s.\n", typ)
	fmt.Fprintf(&b, "func (k %s) String() string {\n", typ)
	fmt.Fprintf(&b, "\tif k < 0 || int(k) >= len(%[1]s) || %[1]s[k] == \"\" {\n", names)
	fmt.Fprintf(&b, "\t\treturn %q + itoa(int(k)) + \")\"\n", typ+"(")
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\treturn %s[k]\n", names)
	b.WriteString("}\n")
	return format.Source(b.Bytes())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
