package ast

import (
	"encoding/json"
	"fmt"
)

type jsonList struct {
	Kind  string `json:"type"`
	Start int    `json:"start"`
	Tight bool   `json:"tight"`
	Delim string `json:"delim,omitempty"`
}

type nodeBase struct {
	Kind     Kind      `json:"kind"`
	Children []*Node   `json:"children,omitempty"`
	Literal  *string   `json:"literal,omitempty"`
	Level    int       `json:"level,omitempty"`
	List     *jsonList `json:"list,omitempty"`
	URL      *string   `json:"url,omitempty"`
	Title    string    `json:"title,omitempty"`
	Info     *string   `json:"info,omitempty"`
	OnEnter  string    `json:"onEnter,omitempty"`
	OnExit   string    `json:"onExit,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	base := &nodeBase{
		Kind:     n.kind,
		Children: n.children,
	}
	if n.kind.Class().Has(Literal) {
		lit := n.literal
		base.Literal = &lit
	}
	switch n.kind {
	case HeadingKind:
		base.Level = n.level
	case ListKind:
		base.List = &jsonList{
			Kind:  n.listType.String(),
			Start: n.listStart,
			Tight: n.tight,
		}
		if n.delim != NoDelim {
			base.List.Delim = n.delim.String()
		}
	case LinkKind, ImageKind:
		url := n.url
		base.URL = &url
		base.Title = n.title
	case CodeBlockKind:
		info := n.info
		base.Info = &info
	case CustomBlockKind, CustomInlineKind:
		base.OnEnter = n.onEnter
		base.OnExit = n.onExit
	}
	return json.Marshal(base)
}

// UnmarshalJSON decodes a node and its subtree, re-linking parents and
// checking every child against the containment table.
func (n *Node) UnmarshalJSON(d []byte) error {
	tmp := &nodeBase{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	*n = *New(tmp.Kind)
	if tmp.Literal != nil {
		if err := n.SetLiteral(*tmp.Literal); err != nil {
			return err
		}
	}
	switch n.kind {
	case HeadingKind:
		if tmp.Level != 0 {
			if err := n.SetHeadingLevel(tmp.Level); err != nil {
				return err
			}
		}
	case ListKind:
		if tmp.List != nil {
			switch tmp.List.Kind {
			case "ordered":
				n.listType = OrderedList
			case "bullet", "":
				n.listType = BulletList
			default:
				return fmt.Errorf("unrecognized list type %q", tmp.List.Kind)
			}
			n.listStart = tmp.List.Start
			n.tight = tmp.List.Tight
			switch tmp.List.Delim {
			case "":
				n.delim = NoDelim
			case "period":
				n.delim = PeriodDelim
			case "paren":
				n.delim = ParenDelim
			default:
				return fmt.Errorf("unrecognized list delim %q", tmp.List.Delim)
			}
		}
	case LinkKind, ImageKind:
		if tmp.URL != nil {
			n.url = *tmp.URL
		}
		n.title = tmp.Title
	case CodeBlockKind:
		if tmp.Info != nil {
			n.info = *tmp.Info
		}
	case CustomBlockKind, CustomInlineKind:
		n.onEnter = tmp.OnEnter
		n.onExit = tmp.OnExit
	}
	for _, c := range tmp.Children {
		if err := n.AppendChild(c); err != nil {
			return err
		}
	}
	return nil
}
