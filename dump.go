package linop

import (
	"fmt"
	"strings"
)

// Dump renders op's tree as indented lines of "name, kind, shape, dtype",
// one per node, children nested under their parent with a "|   " prefix
// per level (matching slo/operators.py's Operator._dump). A node with an
// empty Name is rendered as "noname".
func Dump(op Operator) string {
	var b strings.Builder
	dump(&b, op, 0)
	return b.String()
}

func dump(b *strings.Builder, op Operator, indent int) {
	name := op.Name()
	if name == "" {
		name = "noname"
	}
	m, n := op.Shape()
	fmt.Fprintf(b, "%s%s, %s, (%d, %d), %s\n",
		strings.Repeat("|   ", indent), name, op.Kind(), m, n, op.Dtype())
	for _, c := range op.Children() {
		dump(b, c, indent+1)
	}
}
