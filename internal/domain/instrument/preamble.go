package instrument

import (
	"bytes"
	"encoding/json"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/jscov/internal/model"
)

// preambleOffset is where the accessor declaration goes: after the
// directive prologue, or after a hashbang line, or at the very start.
func preambleOffset(root *sitter.Node, src []byte) int {
	if last := lastDirective(root); last != nil {
		return int(last.EndByte())
	}

	if root.NamedChildCount() > 0 {
		if first := root.NamedChild(0); kindOf(first) == KindHashBang {
			end := int(first.EndByte())
			if nl := bytes.IndexByte(src[end:], '\n'); nl >= 0 {
				return end + nl + 1
			}

			return end
		}
	}

	return 0
}

// renderPreamble declares the accessor function. On first call it creates
// the per-file store under the coverage variable and then replaces itself
// with a plain getter.
func renderPreamble(root *sitter.Node, src []byte, accessor, variable string, cov *m.SourceCoverage) string {
	var b strings.Builder

	b.WriteString("function ")
	b.WriteString(accessor)
	b.WriteString("(){var g=typeof globalThis!==\"undefined\"?globalThis:this,k=")
	b.WriteString(jsString(variable))
	b.WriteString(",p=")
	b.WriteString(jsString(cov.Path))
	b.WriteString(",c=g[k]||(g[k]={});if(!c[p]){c[p]={path:p,s:")
	b.WriteString(zeros(len(cov.Statements())))
	b.WriteString(",f:")
	b.WriteString(zeros(len(cov.Functions())))
	b.WriteString(",b:")
	b.WriteString(branchZeros(cov.Branches(), false))

	if cov.HasTruthy() {
		b.WriteString(",bT:")
		b.WriteString(branchZeros(cov.Branches(), true))
		b.WriteString(",truthy:function(b,i,v){if(v){this.bT[b][i]++}return v}")
	}

	b.WriteString("}}var d=c[p];")
	b.WriteString(accessor)
	b.WriteString("=function(){return d};return d}")

	offset := preambleOffset(root, src)
	if offset > 0 && src[offset-1] != '\n' {
		return "\n" + b.String()
	}

	b.WriteString("\n")

	return b.String()
}

func jsString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

func zeros(n int) string {
	out, _ := json.Marshal(make([]int, n))
	return string(out)
}

// branchZeros renders one zeroed array per branch. Truthiness arrays are
// only sized for branches that feed them.
func branchZeros(branches []m.Branch, truthy bool) string {
	rows := make([][]int, len(branches))

	for i, br := range branches {
		if truthy && !br.Truthy {
			rows[i] = []int{}
			continue
		}

		rows[i] = make([]int, len(br.Paths))
	}

	out, _ := json.Marshal(rows)

	return string(out)
}
