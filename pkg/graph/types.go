package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/gitlanes/pkg/errors"
)

// Node is one vertex of the commit graph as delivered by the upstream walker.
type Node struct {
	ID      int    `json:"id" toml:"id"`
	Column  int    `json:"column" toml:"column"`
	Parents []int  `json:"parents,omitempty" toml:"parents,omitempty"`
	Label   string `json:"label,omitempty" toml:"label,omitempty"` // Free text shown after the graph
}

// IsRoot reports whether the node has no parents, i.e. its lineage ends here.
func (n Node) IsRoot() bool { return len(n.Parents) == 0 }

// IsMerge reports whether the node continues as two or more lineages.
func (n Node) IsMerge() bool { return len(n.Parents) > 1 }

// HasParent reports whether id is one of the node's parents.
func (n Node) HasParent(id int) bool { return slices.Contains(n.Parents, id) }

// Stream is an ordered sequence of nodes rendered in one session.
//
// Lanes is fixed for the whole session. A zero value means "derive from the
// nodes"; see [Stream.LaneCount].
type Stream struct {
	Lanes int    `json:"lanes,omitempty" toml:"lanes,omitempty"`
	Nodes []Node `json:"nodes" toml:"nodes"`
}

// LaneCount returns the number of lanes for the session. If Lanes is unset it
// is derived as one more than the largest column, with a minimum of one.
func (s Stream) LaneCount() int {
	if s.Lanes > 0 {
		return s.Lanes
	}
	n := 1
	for _, node := range s.Nodes {
		if node.Column+1 > n {
			n = node.Column + 1
		}
	}
	return n
}

// DefaultMaxLanes is the lane limit applied by [Stream.CheckLanes] when the
// caller does not set one.
const DefaultMaxLanes = 1024

// CheckLanes returns an [errors.ErrCodeInvalidInput] error if the session
// needs more than limit lanes. A limit of zero or less means
// [DefaultMaxLanes].
func (s Stream) CheckLanes(limit int) error {
	if limit <= 0 {
		limit = DefaultMaxLanes
	}
	if n := s.LaneCount(); n > limit {
		return errors.New(errors.ErrCodeInvalidInput, "stream needs %d lanes, limit is %d", n, limit)
	}
	return nil
}

// EdgeCount returns the total number of parent links in the stream.
func (s Stream) EdgeCount() int {
	n := 0
	for _, node := range s.Nodes {
		n += len(node.Parents)
	}
	return n
}

// Validate checks that every node fits the session's lane range and that no
// node repeats a parent. The returned error is an [*errors.Error] carrying
// [errors.ErrCodeInvalidColumn] or [errors.ErrCodeInvalidInput].
func (s Stream) Validate() error {
	if s.Lanes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "lane count must not be negative, got %d", s.Lanes)
	}
	lanes := s.LaneCount()
	for i, n := range s.Nodes {
		if n.Column < 0 || n.Column >= lanes {
			return errors.New(errors.ErrCodeInvalidColumn,
				"node %d (id %d): column %d outside lanes 0..%d", i, n.ID, n.Column, lanes-1)
		}
		if dup, ok := firstDuplicate(n.Parents); ok {
			return errors.New(errors.ErrCodeInvalidInput,
				"node %d (id %d): parent %d listed twice", i, n.ID, dup)
		}
	}
	return nil
}

func firstDuplicate(ids []int) (int, bool) {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return 0, false
}

// String implements fmt.Stringer for log output.
func (n Node) String() string {
	return fmt.Sprintf("node(id=%d col=%d parents=%v)", n.ID, n.Column, n.Parents)
}
