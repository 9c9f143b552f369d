package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dhamidi/minij/minij/parser"
)

var (
	colorLabel   = lipgloss.Color("#7C3AED")
	colorKind    = lipgloss.Color("#10B981")
	colorLiteral = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
)

type treeStyles struct {
	label    lipgloss.Style
	kind     lipgloss.Style
	literal  lipgloss.Style
	empty    lipgloss.Style
	position lipgloss.Style
}

func newTreeStyles(r *lipgloss.Renderer) treeStyles {
	return treeStyles{
		label:    r.NewStyle().Foreground(colorLabel).Bold(true),
		kind:     r.NewStyle().Foreground(colorKind),
		literal:  r.NewStyle().Foreground(colorLiteral),
		empty:    r.NewStyle().Foreground(colorMuted).Italic(true),
		position: r.NewStyle().Foreground(colorMuted),
	}
}

// TreeTextEncoder writes the indented parse tree dump, two spaces per level.
// Without Color the output equals parser.Node.String.
type TreeTextEncoder struct {
	w      io.Writer
	opts   TreeOptions
	styles treeStyles
	tree   *parser.Tree
}

func NewTreeTextEncoder(w io.Writer, opts TreeOptions) *TreeTextEncoder {
	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &TreeTextEncoder{w: w, opts: opts, styles: newTreeStyles(r)}
}

func (e *TreeTextEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeTextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.tree != nil && e.tree.Root != nil {
		e.writeNode(&sb, e.tree.Root, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeTextEncoder) writeNode(sb *strings.Builder, n *parser.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Kind {
	case parser.KindNonTerminal:
		sb.WriteString(e.styles.label.Render(n.Name()))
	case parser.KindTerminal:
		sb.WriteString(e.styles.kind.Render(n.Name()))
	default:
		sb.WriteString(e.styles.empty.Render(n.Name()))
	}
	if e.opts.Positions && n.Kind != parser.KindEmpty {
		sb.WriteString(" " + e.styles.position.Render("["+n.Span.Start.String()+"-"+n.Span.End.String()+"]"))
	}
	if lit := n.TokenLiteral(); lit != "" {
		sb.WriteString(" " + e.styles.literal.Render(lit))
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		e.writeNode(sb, child, depth+1)
	}
}
