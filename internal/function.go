package internal

import (
	"strings"

	"github.com/zephyrtronium/contains"

	"github.com/zephyrtronium/rubypir/logger"
)

// A FunctionRecord is the assembled text of one function definition.
type FunctionRecord struct {
	Name string
	// Text is the complete .sub ... .end block.
	Text string
	// Line is where the definition starts.
	Line int
}

// Functions holds defined functions and every call site's callee, in order.
type Functions struct {
	records []FunctionRecord
	index   map[string]int
	calls   []string
}

// Define stores a function. A later definition of the same name replaces the
// earlier one.
func (f *Functions) Define(rec FunctionRecord) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	i, replaced := f.index[rec.Name]
	if replaced {
		f.records[i] = rec
	} else {
		f.index[rec.Name] = len(f.records)
		f.records = append(f.records, rec)
	}
	logger.LogFunctionStored(rec.Name, rec.Line, replaced)
}

// Lookup returns the record for a function name.
func (f *Functions) Lookup(name string) (FunctionRecord, bool) {
	i, ok := f.index[name]
	if !ok {
		return FunctionRecord{}, false
	}
	return f.records[i], true
}

// Call records a call site. Duplicates are kept.
func (f *Functions) Call(name string) {
	f.calls = append(f.calls, name)
}

// Calls returns the recorded callees in call order.
func (f *Functions) Calls() []string {
	return f.calls
}

// Emit writes each called function once, in order of first call, each
// preceded by a blank line. Callees with no definition are skipped; they are
// expected to come from an included library.
func (f *Functions) Emit(w *strings.Builder) {
	var done contains.Set
	for _, name := range f.calls {
		i, ok := f.index[name]
		if !ok {
			logger.LogCallSkipped(name)
			continue
		}
		if !done.Add(uintptr(i)) {
			continue
		}
		w.WriteByte('\n')
		w.WriteString(f.records[i].Text)
	}
}
