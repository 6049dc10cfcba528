package ast

import (
	"iter"
)

type Node struct {
	kind        Kind
	parent      *Node
	parentIndex int
	children    []*Node

	literal string

	level     int
	listType  ListType
	listStart int
	tight     bool
	delim     Delim

	url   string
	title string
	info  string

	onEnter string
	onExit  string
}

// New creates an empty node of kind k. It panics if k is not a valid kind.
func New(k Kind) *Node {
	if !k.Valid() {
		panic("ast: New called with invalid kind")
	}
	n := &Node{kind: k}
	switch k {
	case HeadingKind:
		n.level = 1
	case ListKind:
		n.listStart = 1
	}
	return n
}

// NewText returns a text leaf holding v.
func NewText(v string) *Node {
	n := New(TextKind)
	n.literal = v
	return n
}

func (n *Node) Kind() Kind { return n.kind }

// Parent returns the containing node, or nil for a root or standalone node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered children of n. The slice must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Len() int { return len(n.children) }

// All iterates over the children of n.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Next returns the following sibling, if any.
func (n *Node) Next() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parentIndex + 1
	if i >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i]
}

// HasSuccessor reports whether n has a sibling after it.
func (n *Node) HasSuccessor() bool {
	return n.Next() != nil
}

func (n *Node) Root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// IsDocumentRooted reports whether n is reachable from a document node.
func (n *Node) IsDocumentRooted() bool {
	return n.Root().kind == DocumentKind
}

// AppendChild appends child to n without any wrapping. The child's category
// must be admitted by the class of n, and the child must not already be
// attached anywhere. Use package coerce to append loose content.
func (n *Node) AppendChild(child *Node) error {
	if child == nil {
		return invalidf("append nil child to %s", n.kind)
	}
	if child.parent != nil {
		return invalidf("%s already has a parent %s", child.kind, child.parent.kind)
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return invalidf("appending %s to %s would create a cycle", child.kind, n.kind)
		}
	}
	cat := child.kind.Category()
	if !n.kind.Class().Admits(cat) {
		return invalidf("%s (class %s) cannot contain %s (category %s)",
			n.kind, n.kind.Class(), child.kind, cat)
	}
	child.parent = n
	child.parentIndex = len(n.children)
	n.children = append(n.children, child)
	return nil
}

// Literal returns the literal payload of text bearing kinds.
func (n *Node) Literal() (string, error) {
	if !n.kind.Class().Has(Literal) {
		return "", invalidf("%s has no literal", n.kind)
	}
	return n.literal, nil
}

func (n *Node) SetLiteral(v string) error {
	if !n.kind.Class().Has(Literal) {
		return invalidf("%s has no literal", n.kind)
	}
	n.literal = v
	return nil
}

func (n *Node) HeadingLevel() (int, error) {
	if n.kind != HeadingKind {
		return 0, invalidf("heading level on %s", n.kind)
	}
	return n.level, nil
}

func (n *Node) SetHeadingLevel(level int) error {
	if n.kind != HeadingKind {
		return invalidf("heading level on %s", n.kind)
	}
	if level < 1 || level > 6 {
		return invalidf("heading level %d out of range 1-6", level)
	}
	n.level = level
	return nil
}

func (n *Node) ListType() (ListType, error) {
	if n.kind != ListKind {
		return 0, invalidf("list type on %s", n.kind)
	}
	return n.listType, nil
}

func (n *Node) SetListType(t ListType) error {
	if n.kind != ListKind {
		return invalidf("list type on %s", n.kind)
	}
	n.listType = t
	return nil
}

func (n *Node) ListStart() (int, error) {
	if n.kind != ListKind {
		return 0, invalidf("list start on %s", n.kind)
	}
	return n.listStart, nil
}

func (n *Node) SetListStart(start int) error {
	if n.kind != ListKind {
		return invalidf("list start on %s", n.kind)
	}
	if start < 0 {
		return invalidf("negative list start %d", start)
	}
	n.listStart = start
	return nil
}

// ListTight reports whether the list is tight, that is whether no blank
// lines separate its items.
func (n *Node) ListTight() (bool, error) {
	if n.kind != ListKind {
		return false, invalidf("list tight on %s", n.kind)
	}
	return n.tight, nil
}

func (n *Node) SetListTight(v bool) error {
	if n.kind != ListKind {
		return invalidf("list tight on %s", n.kind)
	}
	n.tight = v
	return nil
}

func (n *Node) ListDelim() (Delim, error) {
	if n.kind != ListKind {
		return 0, invalidf("list delim on %s", n.kind)
	}
	return n.delim, nil
}

func (n *Node) SetListDelim(d Delim) error {
	if n.kind != ListKind {
		return invalidf("list delim on %s", n.kind)
	}
	n.delim = d
	return nil
}

func isLinkLike(k Kind) bool {
	return k == LinkKind || k == ImageKind
}

// URL returns the destination of a link or image.
func (n *Node) URL() (string, error) {
	if !isLinkLike(n.kind) {
		return "", invalidf("url on %s", n.kind)
	}
	return n.url, nil
}

func (n *Node) SetURL(v string) error {
	if !isLinkLike(n.kind) {
		return invalidf("url on %s", n.kind)
	}
	n.url = v
	return nil
}

// Title returns the optional title of a link or image; "" when absent.
func (n *Node) Title() (string, error) {
	if !isLinkLike(n.kind) {
		return "", invalidf("title on %s", n.kind)
	}
	return n.title, nil
}

func (n *Node) SetTitle(v string) error {
	if !isLinkLike(n.kind) {
		return invalidf("title on %s", n.kind)
	}
	n.title = v
	return nil
}

// FenceInfo returns the info string trailing the opening fence of a code
// block, such as a language name.
func (n *Node) FenceInfo() (string, error) {
	if n.kind != CodeBlockKind {
		return "", invalidf("fence info on %s", n.kind)
	}
	return n.info, nil
}

func (n *Node) SetFenceInfo(v string) error {
	if n.kind != CodeBlockKind {
		return invalidf("fence info on %s", n.kind)
	}
	n.info = v
	return nil
}

func isCustom(k Kind) bool {
	return k == CustomBlockKind || k == CustomInlineKind
}

// OnEnter returns the markup emitted before the children of a custom node.
func (n *Node) OnEnter() (string, error) {
	if !isCustom(n.kind) {
		return "", invalidf("on enter on %s", n.kind)
	}
	return n.onEnter, nil
}

func (n *Node) SetOnEnter(v string) error {
	if !isCustom(n.kind) {
		return invalidf("on enter on %s", n.kind)
	}
	n.onEnter = v
	return nil
}

// OnExit returns the markup emitted after the children of a custom node.
func (n *Node) OnExit() (string, error) {
	if !isCustom(n.kind) {
		return "", invalidf("on exit on %s", n.kind)
	}
	return n.onExit, nil
}

func (n *Node) SetOnExit(v string) error {
	if !isCustom(n.kind) {
		return invalidf("on exit on %s", n.kind)
	}
	n.onExit = v
	return nil
}

// Visit walks the tree rooted at n, calling f before (isPost false) and
// after (isPost true) the children of each node. Children are visited only
// when the pre call returns true.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy of the tree rooted at n. The copy has no parent.
func (n *Node) Clone() *Node {
	dst := &Node{}
	n.cloneTo(dst)
	return dst
}

func (n *Node) cloneTo(dst *Node) {
	*dst = *n
	dst.parent = nil
	dst.parentIndex = 0
	if n.children == nil {
		return
	}
	dst.children = make([]*Node, len(n.children))
	for i, c := range n.children {
		dc := &Node{}
		c.cloneTo(dc)
		dc.parent = dst
		dc.parentIndex = i
		dst.children[i] = dc
	}
}

// TextContent concatenates the literals of all text and code descendants.
func (n *Node) TextContent() string {
	var buf []byte
	_ = n.Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		switch y.kind {
		case TextKind, CodeKind:
			buf = append(buf, y.literal...)
		case SoftBreakKind, LineBreakKind:
			buf = append(buf, '\n')
		}
		return true, nil
	})
	return string(buf)
}
