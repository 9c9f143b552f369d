package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Label    string      `json:"label,omitempty"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    *jsonToken  `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}
	if n.Kind == KindNonTerminal {
		jn.Label = n.Label.String()
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = &jsonToken{Kind: n.Token.Kind.String(), Literal: n.Token.Literal}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
