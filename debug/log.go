package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/visit"
)

// Out receives all debug output.
var Out io.Writer = os.Stderr

type Tree struct{ *ast.Node }

func (t Tree) String() string {
	if t.Node == nil {
		return "<nil tree>"
	}
	return visit.Dump(t.Node)
}

// Logf writes to Out. Pass trees as Tree so they print as their dump.
func Logf(msg string, args ...any) {
	fmt.Fprintf(Out, msg, args...)
}
