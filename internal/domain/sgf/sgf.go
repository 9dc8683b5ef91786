package sgf

import (
	"fmt"
	"strconv"
	"strings"

	"goban/internal/domain/game"
)

// GameTree is one SGF tree: a main line of nodes plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds the properties of one SGF node. A property may carry several
// values, as in AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}

// Header describes the root node of a record.
type Header struct {
	Size        int
	PlayerBlack string
	PlayerWhite string
	Result      *game.Result
}

// FromMoves builds a single-line record of moves played on a board of
// h.Size. Moves whose vertex cannot be read are skipped.
func FromMoves(h Header, moves []game.Move) SGF {
	root := Node{Properties: map[string][]string{
		"FF": {"4"},
		"GM": {"1"},
		"SZ": {strconv.Itoa(h.Size)},
	}}
	if h.PlayerBlack != "" {
		root.Properties["PB"] = []string{h.PlayerBlack}
	}
	if h.PlayerWhite != "" {
		root.Properties["PW"] = []string{h.PlayerWhite}
	}
	if h.Result != nil {
		root.Properties["RE"] = []string{resultValue(*h.Result)}
	}

	tree := &GameTree{Nodes: []Node{root}}
	for _, m := range moves {
		point, ok := Point(m, h.Size)
		if !ok {
			continue
		}
		tree.Nodes = append(tree.Nodes, Node{Properties: map[string][]string{
			m.Player.String(): {point},
		}})
	}
	return SGF{Root: tree}
}

// Point converts a move to SGF's two-letter point, counted from the top left.
// A pass is the empty point.
func Point(m game.Move, size int) (string, bool) {
	if m.IsPass() {
		return "", true
	}
	row, col, err := game.ParseVertex(m.Vertex, size)
	if err != nil {
		return "", false
	}
	return string([]byte{'a' + byte(col), 'a' + byte(size-1-row)}), true
}

func resultValue(r game.Result) string {
	diff := r.BlackPoints - r.WhitePoints
	switch r.Winner() {
	case game.Black:
		return fmt.Sprintf("B+%d", diff)
	case game.White:
		return fmt.Sprintf("W+%d", -diff)
	default:
		return "0"
	}
}

func (s SGF) String() string {
	var sb strings.Builder
	if s.Root != nil {
		writeTree(&sb, s.Root)
	}
	return sb.String()
}

func writeTree(sb *strings.Builder, t *GameTree) {
	sb.WriteByte('(')
	for _, n := range t.Nodes {
		writeNode(sb, n)
	}
	for _, child := range t.Children {
		writeTree(sb, child)
	}
	sb.WriteByte(')')
}

// Root properties are written in a fixed order so the output is stable.
var propertyOrder = []string{"FF", "GM", "SZ", "PB", "PW", "RE", "B", "W"}

func writeNode(sb *strings.Builder, n Node) {
	sb.WriteByte(';')
	for _, key := range propertyOrder {
		values, ok := n.Properties[key]
		if !ok {
			continue
		}
		sb.WriteString(key)
		for _, v := range values {
			sb.WriteByte('[')
			sb.WriteString(escape(v))
			sb.WriteByte(']')
		}
	}
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `]`, `\]`).Replace(v)
}
