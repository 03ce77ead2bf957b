package core

import (
	"encoding/json"
	"maps"
	"slices"
)

// DefaultLikesKey is the LocalStore key holding the liked note IDs.
const DefaultLikesKey = "likedNotes"

// LikeState is the set of note IDs the local user has liked.
// It is a client-side annotation and is never merged into Note.LikeCount.
type LikeState struct {
	ids map[string]struct{}
}

// NewLikeState creates a LikeState containing ids.
func NewLikeState(ids ...string) *LikeState {
	s := &LikeState{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is liked.
func (s *LikeState) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle flips membership of id and returns the new membership.
func (s *LikeState) Toggle(id string) bool {
	if s.Has(id) {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len returns the number of liked notes.
func (s *LikeState) Len() int {
	return len(s.ids)
}

// IDs returns the liked IDs in sorted order.
func (s *LikeState) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s *LikeState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON replaces the set with the decoded array.
func (s *LikeState) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = *NewLikeState(ids...)
	return nil
}

// DisplayedLikes returns the like count shown for a note: the server baseline
// plus one if liked locally, floored at zero.
func DisplayedLikes(n Note, liked bool) int {
	count := n.LikeCount
	if liked {
		count++
	}
	return max(count, 0)
}
