// Package ast defines the typed node model for markdown documents.
//
// # Overview
//
// Every document, whether built by hand with package build or reconstructed
// from a tokenizer's event stream by package construct, is represented as a
// tree of *ast.Node values. A Node carries a Kind, an ordered list of
// children owned exclusively by it, an optional literal payload and a few
// kind specific attributes.
//
// # Kinds and Containment
//
// Each Kind has a Category, which is what the node is when it is offered as
// a child (block, inline or item), and a Class, which is the set of
// categories it accepts as children:
//
//   - Document, BlockQuote, Item: blocks
//   - List: items
//   - Paragraph, Heading, Emphasis, Strong, Link, Image, CustomInline: inlines
//   - CustomBlock: blocks, inlines and items
//   - Text, Code, HTMLInline, CodeBlock, HTMLBlock: a literal, no children
//   - ThematicBreak, SoftBreak, LineBreak: nothing
//
// Kind.Class and Kind.Category form the single containment table consulted
// by package coerce and package construct, so a tree built by hand and a
// tree parsed from equivalent markup are structurally indistinguishable.
//
// # Appending Children
//
// Node.AppendChild is the raw, precondition checked append. It never wraps
// content: appending a Text node to a List fails with ErrInvalidOperation.
// Package coerce layers the wrapping rules (paragraph, item) on top.
//
// # Attributes
//
// Attribute accessors fail with ErrInvalidOperation when called on a kind
// lacking the attribute:
//
//	level, err := n.HeadingLevel() // err != nil unless n is a heading
//
// # Ownership
//
// A tree is an ordinary recursive Go value. Dropping the last reference to
// the root releases the whole tree; there is no explicit free.
//
// # Thread Safety
//
// Nodes are populated once and then treated as read-only. They are not safe
// for concurrent mutation.
package ast
