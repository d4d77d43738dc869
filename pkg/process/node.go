package process

import (
	"strings"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// Node identifies a process node.
type Node string

// Supported process nodes.
const (
	T28  Node = "T28"
	T180 Node = "T180"
)

// Supported returns every process node with a configuration document.
func Supported() []Node {
	return []Node{T28, T180}
}

// String returns the canonical node identifier.
func (n Node) String() string { return string(n) }

// Normalize maps loose spellings ("28nm", "t180", "180") to a supported
// node. Anything that contains neither "28" nor "180" is rejected.
func Normalize(s string) (Node, error) {
	switch Node(s) {
	case T28, T180:
		return Node(s), nil
	}

	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.Contains(upper, "T28"),
		strings.Contains(upper, "28") && !strings.Contains(upper, "180"):
		return T28, nil
	case strings.Contains(upper, "T180"), strings.Contains(upper, "180"):
		return T180, nil
	}
	return "", errors.New(errors.ErrCodeInvalidProcessNode,
		"cannot normalize process node %q: supported values are T180, T28", s)
}
