package lanes

import (
	"fmt"
	"slices"
)

// State maps each lane index to the set of lineage identities open in it.
//
// The zero value is not usable; create instances with [New].
type State struct {
	lanes []map[int]struct{}
}

// New creates an empty State with n lanes. It panics if n is not positive.
func New(n int) *State {
	if n <= 0 {
		panic(fmt.Sprintf("lanes: lane count must be positive, got %d", n))
	}
	s := &State{lanes: make([]map[int]struct{}, n)}
	for i := range s.lanes {
		s.lanes[i] = make(map[int]struct{})
	}
	return s
}

// Count returns the number of lanes.
func (s *State) Count() int { return len(s.lanes) }

// IsOpen reports whether lineage id is open in lane.
func (s *State) IsOpen(lane, id int) bool {
	_, ok := s.lane(lane)[id]
	return ok
}

// OpenCount returns how many lineages are open in lane.
func (s *State) OpenCount(lane int) int { return len(s.lane(lane)) }

// MinOpen returns the smallest identity open in lane, or false if the lane is
// empty. It gives callers a deterministic representative of a lane without
// depending on map iteration order.
func (s *State) MinOpen(lane int) (int, bool) {
	return s.MinOther(lane, nil)
}

// MinOther returns the smallest identity in lane for which keep returns false.
// A nil keep matches every identity.
func (s *State) MinOther(lane int, keep func(id int) bool) (int, bool) {
	found := false
	var m int
	for id := range s.lane(lane) {
		if keep != nil && keep(id) {
			continue
		}
		if !found || id < m {
			m, found = id, true
		}
	}
	return m, found
}

// Retire removes id from every lane.
func (s *State) Retire(id int) {
	for _, set := range s.lanes {
		delete(set, id)
	}
}

// Seed opens each of ids in lane.
func (s *State) Seed(lane int, ids []int) {
	set := s.lane(lane)
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

// Lanes returns the lanes in which id is open, in ascending order.
func (s *State) Lanes(id int) []int {
	var out []int
	for i, set := range s.lanes {
		if _, ok := set[id]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Snapshot returns a sorted copy of every lane's open identities. Empty lanes
// are returned as nil slices.
func (s *State) Snapshot() [][]int {
	out := make([][]int, len(s.lanes))
	for i, set := range s.lanes {
		for id := range set {
			out[i] = append(out[i], id)
		}
		slices.Sort(out[i])
	}
	return out
}

func (s *State) lane(i int) map[int]struct{} {
	if i < 0 || i >= len(s.lanes) {
		panic(fmt.Sprintf("lanes: lane %d outside 0..%d", i, len(s.lanes)-1))
	}
	return s.lanes[i]
}
