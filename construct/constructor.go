package construct

import (
	"errors"
	"fmt"

	"github.com/mdforge/down/ast"
	"github.com/mdforge/down/coerce"
	"github.com/mdforge/down/debug"
	"github.com/mdforge/down/event"
)

var ErrMalformedEventStream = errors.New("malformed event stream")

// ErrSkip is returned from enter events which open nothing.
var ErrSkip = event.ErrSkip

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedEventStream, fmt.Sprintf(format, args...))
}

// Constructor is an event.Handler which assembles a tree. The zero value is
// ready to use.
type Constructor struct {
	stack []*ast.Node
	skip  int
	root  *ast.Node
	err   error
}

func New() *Constructor {
	return &Constructor{}
}

var _ event.Handler = (*Constructor)(nil)

// Depth returns the number of open nodes.
func (c *Constructor) Depth() int { return len(c.stack) }

// SkipDepth returns the current nesting depth of skipped constructs.
func (c *Constructor) SkipDepth() int { return c.skip }

// Err returns the error which aborted construction, if any.
func (c *Constructor) Err() error { return c.err }

// Result returns the finished root. It fails if construction was aborted or
// the stream ended with blocks open or skipped constructs unclosed. A stream
// with no events yields a nil root and no error.
func (c *Constructor) Result() (*ast.Node, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.skip != 0 {
		return nil, malformed("stream ended inside %d skipped constructs", c.skip)
	}
	if len(c.stack) != 0 {
		return nil, malformed("stream ended with %d open nodes, innermost %s",
			len(c.stack), c.top().Kind())
	}
	return c.root, nil
}

// Reset discards all state so c can build another tree.
func (c *Constructor) Reset() {
	c.stack = c.stack[:0]
	c.skip = 0
	c.root = nil
	c.err = nil
}

func (c *Constructor) fail(err error) error {
	c.err = err
	if debug.Construct() {
		debug.Logf("construct: abort: %v\n", err)
	}
	return err
}

func (c *Constructor) top() *ast.Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *Constructor) push(n *ast.Node) error {
	if c.root != nil {
		return c.fail(malformed("%s opened after the root was closed", n.Kind()))
	}
	c.stack = append(c.stack, n)
	return nil
}

func (c *Constructor) pop(want ast.Kind, what string) error {
	n := c.top()
	if n == nil {
		return c.fail(malformed("leave %s with no open node", what))
	}
	if n.Kind() != want {
		return c.fail(malformed("leave %s while %s is open", what, n.Kind()))
	}
	c.stack = c.stack[:len(c.stack)-1]
	if len(c.stack) == 0 {
		c.root = n
		return nil
	}
	if err := c.attach(n); err != nil {
		return c.fail(err)
	}
	return nil
}

// attach appends n to the top of the stack. Inline content under an item
// goes to the item's trailing paragraph, created on demand.
func (c *Constructor) attach(n *ast.Node) error {
	target := c.top()
	if n.Kind().IsInline() && target.Kind() == ast.ItemKind {
		p := target.LastChild()
		if p == nil || p.Kind() != ast.ParagraphKind {
			if p != nil && debug.Construct() {
				debug.Logf("construct: item ends in %s, starting a new paragraph\n", p.Kind())
			}
			p = ast.New(ast.ParagraphKind)
			if err := target.AppendChild(p); err != nil {
				return err
			}
		}
		target = p
	}
	if n.Kind() == ast.TextKind {
		if last := target.LastChild(); last != nil && last.Kind() == ast.TextKind {
			a, _ := last.Literal()
			b, _ := n.Literal()
			return last.SetLiteral(a + b)
		}
	}
	return coerce.AppendNode(target, n)
}

func (c *Constructor) EnterBlock(t event.BlockType, detail any) error {
	if c.err != nil {
		return c.err
	}
	if debug.Construct() {
		debug.Logf("construct: enter block: %s (skip %d)\n", t, c.skip)
	}
	if c.skip > 0 {
		c.skip++
		return ErrSkip
	}
	n, err := blockNode(t, detail)
	if err != nil {
		return c.fail(err)
	}
	if n == nil {
		c.skip++
		return ErrSkip
	}
	return c.push(n)
}

func (c *Constructor) LeaveBlock(t event.BlockType, _ any) error {
	if c.err != nil {
		return c.err
	}
	if debug.Construct() {
		debug.Logf("construct: leave block: %s (skip %d)\n", t, c.skip)
	}
	if c.skip > 0 {
		c.skip--
		return nil
	}
	k, ok := blockKinds[t]
	if !ok {
		return c.fail(malformed("leave skipped block %s at skip depth 0", t))
	}
	return c.pop(k, t.String())
}

func (c *Constructor) EnterSpan(t event.SpanType, detail any) error {
	if c.err != nil {
		return c.err
	}
	if debug.Construct() {
		debug.Logf("construct: enter span: %s (skip %d)\n", t, c.skip)
	}
	if c.skip > 0 {
		c.skip++
		return ErrSkip
	}
	n, err := spanNode(t, detail)
	if err != nil {
		return c.fail(err)
	}
	if n == nil {
		c.skip++
		return ErrSkip
	}
	if len(c.stack) == 0 {
		return c.fail(malformed("span %s outside any block", t))
	}
	return c.push(n)
}

func (c *Constructor) LeaveSpan(t event.SpanType, _ any) error {
	if c.err != nil {
		return c.err
	}
	if debug.Construct() {
		debug.Logf("construct: leave span: %s (skip %d)\n", t, c.skip)
	}
	if c.skip > 0 {
		c.skip--
		return nil
	}
	k, ok := spanKinds[t]
	if !ok {
		return c.fail(malformed("leave skipped span %s at skip depth 0", t))
	}
	return c.pop(k, t.String())
}

func (c *Constructor) Text(t event.TextType, text []byte) error {
	if c.err != nil {
		return c.err
	}
	if debug.Construct() {
		debug.Logf("construct: text %s %q (skip %d)\n", t, text, c.skip)
	}
	if c.skip > 0 {
		return nil
	}
	top := c.top()
	if top == nil {
		return c.fail(malformed("text outside any block"))
	}
	if top.Kind().Class().Has(ast.Literal) {
		// verbatim content may arrive in several runs
		lit, _ := top.Literal()
		v := string(text)
		if t == event.TextBR || t == event.TextSoftBR {
			v = "\n"
		}
		if err := top.SetLiteral(lit + v); err != nil {
			return c.fail(err)
		}
		return nil
	}
	var n *ast.Node
	switch t {
	case event.TextBR:
		n = ast.New(ast.LineBreakKind)
	case event.TextSoftBR:
		n = ast.New(ast.SoftBreakKind)
	case event.TextCode:
		n = ast.New(ast.CodeKind)
		_ = n.SetLiteral(string(text))
	case event.TextHTML:
		n = ast.New(ast.HTMLInlineKind)
		_ = n.SetLiteral(string(text))
	case event.TextNullChar:
		n = ast.NewText("\uFFFD")
	default:
		n = ast.NewText(string(text))
	}
	if err := c.attach(n); err != nil {
		return c.fail(err)
	}
	return nil
}
