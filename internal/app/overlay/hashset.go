package overlay

import "sort"

// HashSet is a sorted-slice set of entry hashes. Lookups use binary search,
// and Values returns a stable order for free, which keeps reconciliation
// and range operations deterministic.
type HashSet struct {
	hashes []string
}

// NewHashSet creates a set containing the given hashes
func NewHashSet(hashes ...string) *HashSet {
	s := &HashSet{}
	if len(hashes) == 0 {
		return s
	}

	s.hashes = make([]string, len(hashes))
	copy(s.hashes, hashes)
	sort.Strings(s.hashes)

	deduped := s.hashes[:1]
	for _, h := range s.hashes[1:] {
		if h != deduped[len(deduped)-1] {
			deduped = append(deduped, h)
		}
	}
	s.hashes = deduped

	return s
}

// Add inserts a hash, keeping the slice sorted
func (s *HashSet) Add(hash string) {
	i := sort.SearchStrings(s.hashes, hash)
	if i < len(s.hashes) && s.hashes[i] == hash {
		return
	}

	s.hashes = append(s.hashes, "")
	copy(s.hashes[i+1:], s.hashes[i:])
	s.hashes[i] = hash
}

// Remove deletes a hash if present
func (s *HashSet) Remove(hash string) {
	i := sort.SearchStrings(s.hashes, hash)
	if i >= len(s.hashes) || s.hashes[i] != hash {
		return
	}

	s.hashes = append(s.hashes[:i], s.hashes[i+1:]...)
}

// Has reports whether the hash is in the set
func (s *HashSet) Has(hash string) bool {
	i := sort.SearchStrings(s.hashes, hash)

	return i < len(s.hashes) && s.hashes[i] == hash
}

// Len returns the number of hashes in the set
func (s *HashSet) Len() int {
	return len(s.hashes)
}

// Values returns the hashes in sorted order
func (s *HashSet) Values() []string {
	out := make([]string, len(s.hashes))
	copy(out, s.hashes)

	return out
}

// Clear removes all hashes
func (s *HashSet) Clear() {
	s.hashes = s.hashes[:0]
}

// Intersect drops every hash not present in valid
func (s *HashSet) Intersect(valid *HashSet) {
	kept := s.hashes[:0]

	for _, h := range s.hashes {
		if valid.Has(h) {
			kept = append(kept, h)
		}
	}

	s.hashes = kept
}
