// Package domain — association pair sets.
//
// Many-to-many relationships are modeled as a first-class set of
// (left id, right id) pairs. Each side's relationship view is computed by
// filtering the pair set, so the two views cannot diverge within a unit of
// work; there is no mirrored-pointer bookkeeping to get wrong.
package domain

import (
	"cmp"
	"slices"
)

type pair[L, R cmp.Ordered] struct {
	left  L
	right R
}

// PairSet is an unordered set of (left, right) association pairs with
// symmetric views. Add and Remove are O(1); the per-side views are computed
// on demand and returned in ascending order.
//
// The zero value is not usable; construct with NewPairSet.
type PairSet[L, R cmp.Ordered] struct {
	pairs map[pair[L, R]]struct{}
}

// NewPairSet returns an empty association set.
func NewPairSet[L, R cmp.Ordered]() *PairSet[L, R] {
	return &PairSet[L, R]{pairs: make(map[pair[L, R]]struct{})}
}

// Add registers the (l, r) association. Adding an existing pair is a no-op,
// and the pair becomes visible from both sides at once.
func (s *PairSet[L, R]) Add(l L, r R) {
	s.pairs[pair[L, R]{l, r}] = struct{}{}
}

// Remove deletes the (l, r) association from both sides. Removing an absent
// pair is a no-op.
func (s *PairSet[L, R]) Remove(l L, r R) {
	delete(s.pairs, pair[L, R]{l, r})
}

// Contains reports whether the (l, r) association exists.
func (s *PairSet[L, R]) Contains(l L, r R) bool {
	_, ok := s.pairs[pair[L, R]{l, r}]
	return ok
}

// Len returns the number of associations in the set.
func (s *PairSet[L, R]) Len() int { return len(s.pairs) }

// RightsOf returns the ascending right-side view for l.
func (s *PairSet[L, R]) RightsOf(l L) []R {
	var out []R
	for p := range s.pairs {
		if p.left == l {
			out = append(out, p.right)
		}
	}
	slices.Sort(out)
	return out
}

// LeftsOf returns the ascending left-side view for r.
func (s *PairSet[L, R]) LeftsOf(r R) []L {
	var out []L
	for p := range s.pairs {
		if p.right == r {
			out = append(out, p.left)
		}
	}
	slices.Sort(out)
	return out
}

// VetSpecialtyPairs collects the vet↔specialty associations reachable from
// the given vets into a pair set keyed by entity ids. Unsaved entities
// (nil id) are skipped — an association is only meaningful between
// identified records.
func VetSpecialtyPairs(vets []*Vet) *PairSet[int64, int64] {
	set := NewPairSet[int64, int64]()
	for _, v := range vets {
		if v == nil || v.ID == nil {
			continue
		}
		for _, sp := range v.Specialties {
			if sp == nil || sp.ID == nil {
				continue
			}
			set.Add(*v.ID, *sp.ID)
		}
	}
	return set
}

// RelinkVetSpecialties rewrites every vet's Specialties slice from the pair
// set: deduplicated, sorted by specialty id, and consistent with what the
// specialty side would derive from the same set. Called after eager loads so
// in-memory views stay symmetric regardless of how the rows were hydrated.
func RelinkVetSpecialties(vets []*Vet) {
	set := VetSpecialtyPairs(vets)
	for _, v := range vets {
		if v == nil || v.ID == nil || len(v.Specialties) == 0 {
			continue
		}
		byID := make(map[int64]*Specialty, len(v.Specialties))
		for _, sp := range v.Specialties {
			if sp != nil && sp.ID != nil {
				byID[*sp.ID] = sp
			}
		}
		ids := set.RightsOf(*v.ID)
		relinked := make([]*Specialty, 0, len(ids))
		for _, id := range ids {
			if sp, ok := byID[id]; ok {
				relinked = append(relinked, sp)
			}
		}
		v.Specialties = relinked
	}
}
