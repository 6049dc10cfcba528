package ast

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two trees by kind, attributes,
// literal and children. Parent links are not considered.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := compareAttrs(a, b); c != 0 {
		return c
	}
	return compareChildren(a, b)
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

func compareAttrs(a, b *Node) int {
	if c := strings.Compare(a.literal, b.literal); c != 0 {
		return c
	}
	switch a.kind {
	case HeadingKind:
		return cmp.Compare(a.level, b.level)
	case ListKind:
		if c := cmp.Compare(a.listType, b.listType); c != 0 {
			return c
		}
		if c := cmp.Compare(a.listStart, b.listStart); c != 0 {
			return c
		}
		if c := cmp.Compare(a.delim, b.delim); c != 0 {
			return c
		}
		return compareBool(a.tight, b.tight)
	case LinkKind, ImageKind:
		if c := strings.Compare(a.url, b.url); c != 0 {
			return c
		}
		return strings.Compare(a.title, b.title)
	case CodeBlockKind:
		return strings.Compare(a.info, b.info)
	case CustomBlockKind, CustomInlineKind:
		if c := strings.Compare(a.onEnter, b.onEnter); c != 0 {
			return c
		}
		return strings.Compare(a.onExit, b.onExit)
	}
	return 0
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareChildren(a, b *Node) int {
	lenA := len(a.children)
	lenB := len(b.children)
	for i := range min(lenA, lenB) {
		if c := Compare(a.children[i], b.children[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
