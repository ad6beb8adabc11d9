package instrument

import sitter "github.com/smacker/go-tree-sitter"

// Frame is one entry of the ancestor stack.
type Frame struct {
	Kind NodeKind
	Node *sitter.Node
}

// Ancestors records the constructs enclosing the node being instrumented.
// The traversal pushes on enter and pops on exit; placement logic only reads.
type Ancestors struct {
	frames []Frame
}

// Push records n as the innermost enclosing construct.
func (a *Ancestors) Push(n *sitter.Node) {
	a.frames = append(a.frames, Frame{Kind: kindOf(n), Node: n})
}

// Pop drops the innermost frame. Popping an empty stack is a no-op.
func (a *Ancestors) Pop() {
	if len(a.frames) == 0 {
		return
	}

	a.frames = a.frames[:len(a.frames)-1]
}

// Len returns the number of frames.
func (a *Ancestors) Len() int {
	return len(a.frames)
}

// NthFromTop returns the kind n frames below the top; 0 is the top.
func (a *Ancestors) NthFromTop(n int) (NodeKind, bool) {
	f, ok := a.FrameFromTop(n)

	return f.Kind, ok
}

// FrameFromTop returns the frame n frames below the top; 0 is the top.
func (a *Ancestors) FrameFromTop(n int) (Frame, bool) {
	if n < 0 || n >= len(a.frames) {
		return Frame{}, false
	}

	return a.frames[len(a.frames)-1-n], true
}
