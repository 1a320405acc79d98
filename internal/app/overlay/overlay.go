package overlay

// Overlay tracks per-entry view state keyed by entry hash, so selections,
// deletions and wrap toggles survive reloads of the underlying files.
type Overlay struct {
	selected *HashSet
	deleted  *HashSet
	wrapped  *HashSet

	lastSelected string
}

// New creates an empty overlay
func New() *Overlay {
	return &Overlay{
		selected: NewHashSet(),
		deleted:  NewHashSet(),
		wrapped:  NewHashSet(),
	}
}

// Selected returns the set of selected entry hashes
func (o *Overlay) Selected() *HashSet {
	return o.selected
}

// Deleted returns the set of deleted entry hashes
func (o *Overlay) Deleted() *HashSet {
	return o.deleted
}

// Wrapped returns the set of entries with wrapping toggled on
func (o *Overlay) Wrapped() *HashSet {
	return o.wrapped
}

// LastSelected returns the anchor hash for range selection, empty when no
// anchor exists
func (o *Overlay) LastSelected() string {
	return o.lastSelected
}

// ToggleSelection flips the selection state of one entry. Selecting makes
// the entry the new range anchor, deselecting the anchor clears it.
func (o *Overlay) ToggleSelection(hash string) {
	if o.selected.Has(hash) {
		o.selected.Remove(hash)

		if o.lastSelected == hash {
			o.lastSelected = ""
		}

		return
	}

	o.selected.Add(hash)
	o.lastSelected = hash
}

// SelectRange selects the inclusive span between two hashes in the given
// visible order. When either end is not present the call is a no-op. The
// destination becomes the new anchor.
func (o *Overlay) SelectRange(from, to string, orderedHashes []string) {
	fromIdx, toIdx := -1, -1

	for i, h := range orderedHashes {
		if h == from {
			fromIdx = i
		}

		if h == to {
			toIdx = i
		}
	}

	if fromIdx == -1 || toIdx == -1 {
		return
	}

	if fromIdx > toIdx {
		fromIdx, toIdx = toIdx, fromIdx
	}

	for _, h := range orderedHashes[fromIdx : toIdx+1] {
		o.selected.Add(h)
	}

	o.lastSelected = to
}

// SelectAll replaces the selection with exactly the given hashes
func (o *Overlay) SelectAll(orderedHashes []string) {
	o.selected = NewHashSet(orderedHashes...)
}

// DeleteSelected moves the current selection into the deleted set and
// clears the selection. It returns the number of entries deleted.
func (o *Overlay) DeleteSelected() int {
	moved := o.selected.Len()

	for _, h := range o.selected.Values() {
		o.deleted.Add(h)
	}

	o.selected.Clear()
	o.lastSelected = ""

	return moved
}

// ClearSelection deselects everything
func (o *Overlay) ClearSelection() {
	o.selected.Clear()
	o.lastSelected = ""
}

// ClearDeleted restores every deleted entry
func (o *Overlay) ClearDeleted() {
	o.deleted.Clear()
}

// ToggleWrap flips line wrapping for one entry
func (o *Overlay) ToggleWrap(hash string) {
	if o.wrapped.Has(hash) {
		o.wrapped.Remove(hash)
		return
	}

	o.wrapped.Add(hash)
}

// Reconcile drops every hash that no longer exists in the loaded corpus.
// Call it after a full reload or replace, never after plain appends.
func (o *Overlay) Reconcile(validHashes []string) {
	valid := NewHashSet(validHashes...)

	o.selected.Intersect(valid)
	o.deleted.Intersect(valid)
	o.wrapped.Intersect(valid)

	if o.lastSelected != "" && !valid.Has(o.lastSelected) {
		o.lastSelected = ""
	}
}
