package graph

import (
	"encoding/json"
)

// Node is a single entity in a co-occurrence snapshot. The id is the
// normalized entity string and is unique within a snapshot.
type Node struct {
	ID string `json:"id"`
}

// Link is a weighted association between two nodes, addressed by id.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// linkWire mirrors the backend wire shape. Older snapshots carry the
// weight under "value"; "weight" wins when both are present.
type linkWire struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight *float64 `json:"weight,omitempty"`
	Value  *float64 `json:"value,omitempty"`
}

// UnmarshalJSON decodes a link, preferring "weight" over "value" and
// defaulting the weight to 1 when neither field is present.
func (l *Link) UnmarshalJSON(data []byte) error {
	var raw linkWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.Source = raw.Source
	l.Target = raw.Target

	switch {
	case raw.Weight != nil:
		l.Weight = *raw.Weight
	case raw.Value != nil:
		l.Weight = *raw.Value
	default:
		l.Weight = 1
	}

	return nil
}

// Snapshot is the full set of nodes and links for one point in time.
// A snapshot replaces all prior state wholesale; there is no diffing.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Empty returns a snapshot with no nodes and no links. The slices are
// non-nil so the snapshot marshals as empty arrays, not null.
func Empty() *Snapshot {
	return &Snapshot{
		Nodes: []Node{},
		Links: []Link{},
	}
}

// HasNode reports whether the snapshot contains a node with the given id.
func (s *Snapshot) HasNode(id string) bool {
	for _, n := range s.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// NodeSet returns the snapshot's node ids as a set for O(1) lookups.
func (s *Snapshot) NodeSet() map[string]bool {
	set := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		set[n.ID] = true
	}
	return set
}

// WeightRange returns the minimum and maximum link weight in the
// snapshot. Both are zero when the snapshot has no links.
func (s *Snapshot) WeightRange() (min, max float64) {
	if len(s.Links) == 0 {
		return 0, 0
	}

	min = s.Links[0].Weight
	max = s.Links[0].Weight
	for _, l := range s.Links[1:] {
		if l.Weight < min {
			min = l.Weight
		}
		if l.Weight > max {
			max = l.Weight
		}
	}
	return min, max
}
